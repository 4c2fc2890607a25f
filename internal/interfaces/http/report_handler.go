package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-erp/internal/application/dto"
	"github.com/jhoicas/Almacen-erp/internal/application/reports"
)

// ReportHandler maneja el historial de entregas y los reportes de distribución.
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// ListIssues devuelve el libro de entregas completo, más recientes primero.
func (h *ReportHandler) ListIssues(c *fiber.Ctx) error {
	issues, err := h.uc.ListAllIssues(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToIssueResponses(issues))
}

// ListIssuesByItem devuelve las entregas de un ítem por su ID.
func (h *ReportHandler) ListIssuesByItem(c *fiber.Ctx) error {
	issues, err := h.uc.ListIssuesByItem(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToIssueResponses(issues))
}

// ListIssuesByRequest devuelve las entregas de una solicitud, en orden cronológico.
func (h *ReportHandler) ListIssuesByRequest(c *fiber.Ctx) error {
	issues, err := h.uc.ListIssuesByRequest(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToIssueResponses(issues))
}

// ListIssuesByItemCode devuelve las entregas de un ítem por su código.
func (h *ReportHandler) ListIssuesByItemCode(c *fiber.Ctx) error {
	issues, err := h.uc.ListIssuesByItemCode(c.Context(), c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToIssueResponses(issues))
}

// ListIssuesByUser devuelve las entregas donde el usuario entrega o recibe.
func (h *ReportHandler) ListIssuesByUser(c *fiber.Ctx) error {
	issues, err := h.uc.ListIssuesByUser(c.Context(), c.Params("userId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToIssueResponses(issues))
}

// MaterialDistribution godoc
// @Summary      Distribución de materiales entregados a un usuario
// @Description  Totales por ítem Material: mes anterior, mes en curso e histórico.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        userId    path   string  true   "ID del usuario"
// @Param        ref_date  query  string  false  "Fecha de referencia (YYYY-MM-DD, por defecto hoy)"
// @Success      200  {array}  dto.MaterialDistributionRow
// @Router       /api/reports/material-distribution/{userId} [get]
func (h *ReportHandler) MaterialDistribution(c *fiber.Ctx) error {
	refDate := time.Now()
	if raw := c.Query("ref_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ref_date inválida, formato esperado YYYY-MM-DD"})
		}
		refDate = parsed
	}
	rows, err := h.uc.MaterialDistribution(c.Context(), c.Params("userId"), refDate)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

// OtherDistributions devuelve las entregas de ítems no-material al usuario,
// agrupadas por fecha y solicitud.
func (h *ReportHandler) OtherDistributions(c *fiber.Ctx) error {
	resp, err := h.uc.OtherDistributions(c.Context(), c.Params("userId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
