package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-erp/internal/application/dto"
	"github.com/jhoicas/Almacen-erp/internal/application/procurement"
)

// PurchaseHandler maneja solicitudes de compra y notas de recepción.
type PurchaseHandler struct {
	uc *procurement.UseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *procurement.UseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

// Create godoc
// @Summary      Crear solicitud de compra
// @Description  El total decide el estado inicial: hasta el límite de compra
// @Description  directa arranca en DIRECT_PURCHASE, por encima en PENDING.
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Success      201  {object}  dto.PurchaseRequestResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/purchase-requests [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequestInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in.RequestedByUserID = GetUserID(c)
	pr, err := h.uc.CreatePurchaseRequest(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToPurchaseRequestResponse(pr))
}

// GetByID devuelve la solicitud de compra con sus líneas.
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	pr, err := h.uc.GetPurchaseRequest(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToPurchaseRequestResponse(pr))
}

// List devuelve las solicitudes de compra, más recientes primero.
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	prs, err := h.uc.ListPurchaseRequests(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.PurchaseRequestResponse, 0, len(prs))
	for _, pr := range prs {
		out = append(out, dto.ToPurchaseRequestResponse(pr))
	}
	return c.JSON(out)
}

// Approve aprueba una solicitud de compra en estado PENDING.
func (h *PurchaseHandler) Approve(c *fiber.Ctx) error {
	pr, err := h.uc.Approve(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToPurchaseRequestResponse(pr))
}

// CreateGRN registra la nota de recepción de la compra y levanta la marca de
// compra pendiente de los ítems asociados.
func (h *PurchaseHandler) CreateGRN(c *fiber.Ctx) error {
	var in dto.CreateGRNInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in.CreatedByUserID = GetUserID(c)
	grn, err := h.uc.CreateGRN(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(grn)
}

// CheckGRN indica si el usuario autenticado ya registró una nota de recepción
// para la solicitud de compra.
func (h *PurchaseHandler) CheckGRN(c *fiber.Ctx) error {
	resp, err := h.uc.CheckExistingGRN(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
