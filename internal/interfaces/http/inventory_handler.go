package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-erp/internal/application/dto"
	"github.com/jhoicas/Almacen-erp/internal/application/inventory"
)

// InventoryHandler maneja el catálogo de ítems y los ajustes de stock.
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Create godoc
// @Summary      Crear ítem de inventario
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Success      201  {object}  dto.ItemResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in.CreatedByUserID = GetUserID(c)
	item, err := h.uc.CreateItem(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToItemResponse(item))
}

// GetByCode devuelve un ítem por su código.
func (h *InventoryHandler) GetByCode(c *fiber.Ctx) error {
	item, err := h.uc.GetItem(c.Context(), c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToItemResponse(item))
}

// Update actualiza campos del ítem; los campos ausentes no se tocan.
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in.UpdatedByUserID = GetUserID(c)
	item, err := h.uc.UpdateItem(c.Context(), c.Params("code"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToItemResponse(item))
}

// Deactivate marca el ítem como inactivo.
func (h *InventoryHandler) Deactivate(c *fiber.Ctx) error {
	item, err := h.uc.DeactivateItem(c.Context(), c.Params("code"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToItemResponse(item))
}

// AdjustStock godoc
// @Summary      Ajustar stock de un ítem (delta positivo o negativo)
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Success      200  {object}  dto.ItemResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/items/{code}/adjust-stock [patch]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in.AdjustingUserID = GetUserID(c)
	item, err := h.uc.AdjustStock(c.Context(), c.Params("code"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToItemResponse(item))
}

// List devuelve los ítems; acepta ?category= para filtrar por categoría.
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	if category := c.Query("category"); category != "" {
		items, err := h.uc.ListItemsByCategory(c.Context(), category)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(dto.ToItemResponses(items))
	}
	items, err := h.uc.ListItems(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToItemResponses(items))
}

// ListLowStock devuelve los ítems activos con stock en o bajo su mínimo.
func (h *InventoryHandler) ListLowStock(c *fiber.Ctx) error {
	items, err := h.uc.ListLowStock(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToItemResponses(items))
}

// ListCategories devuelve las categorías de ítems.
func (h *InventoryHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.uc.ListCategories(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}

// ListTypes devuelve los tipos de ítems.
func (h *InventoryHandler) ListTypes(c *fiber.Ctx) error {
	types, err := h.uc.ListTypes(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(types)
}
