package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-erp/internal/application/dto"
	"github.com/jhoicas/Almacen-erp/internal/application/fulfillment"
	"github.com/jhoicas/Almacen-erp/internal/application/reports"
)

// RequestHandler maneja las peticiones HTTP del ciclo de solicitudes de
// material: creación, entregas, sin-stock y la nota de entrega PDF.
type RequestHandler struct {
	uc    *fulfillment.UseCase
	pdfUC *reports.PDFUseCase
}

// NewRequestHandler construye el handler.
func NewRequestHandler(uc *fulfillment.UseCase, pdfUC *reports.PDFUseCase) *RequestHandler {
	return &RequestHandler{uc: uc, pdfUC: pdfUC}
}

// Create godoc
// @Summary      Crear solicitud de material
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Success      201  {object}  dto.RequestResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/requests [post]
func (h *RequestHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRequestInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	// El solicitante es siempre el dueño del token.
	in.RequesterUserID = GetUserID(c)
	request, err := h.uc.CreateRequest(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToRequestResponse(request))
}

// GetByID devuelve la solicitud con sus líneas.
func (h *RequestHandler) GetByID(c *fiber.Ctx) error {
	request, err := h.uc.GetRequest(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToRequestResponse(request))
}

// ListPending devuelve las solicitudes con estado agregado PENDING.
func (h *RequestHandler) ListPending(c *fiber.Ctx) error {
	requests, err := h.uc.ListPendingRequests(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToRequestResponses(requests))
}

// ListIssued devuelve las solicitudes con estado agregado ISSUED.
func (h *RequestHandler) ListIssued(c *fiber.Ctx) error {
	requests, err := h.uc.ListIssuedRequests(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToRequestResponses(requests))
}

// Issue godoc
// @Summary      Entregar cantidad contra una línea
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Success      201  {object}  dto.IssueResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/requests/line-items/{id}/issue [patch]
func (h *RequestHandler) Issue(c *fiber.Ctx) error {
	var in dto.IssueInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	// Quien entrega es siempre el dueño del token.
	in.IssuedByUserID = GetUserID(c)
	issue, err := h.uc.Issue(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToIssueResponse(issue))
}

// IssueBatch entrega contra varias líneas de la misma solicitud en una transacción.
func (h *RequestHandler) IssueBatch(c *fiber.Ctx) error {
	var in dto.BatchIssueInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in.IssuedByUserID = GetUserID(c)
	request, err := h.uc.IssueBatch(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToRequestResponse(request))
}

// MarkNoStock marca una línea PENDING como NO_STOCK.
func (h *RequestHandler) MarkNoStock(c *fiber.Ctx) error {
	var in dto.NoStockInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in.StoreKeeperUserID = GetUserID(c)
	request, err := h.uc.MarkNoStock(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToRequestResponse(request))
}

// DownloadIssueNote descarga la nota de entrega (PDF) de la solicitud.
func (h *RequestHandler) DownloadIssueNote(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdfUC.DownloadIssueNotePDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
