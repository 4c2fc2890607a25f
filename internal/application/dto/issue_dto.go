package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-erp/internal/domain/entity"
)

// IssueResponse asiento del libro de entregas en respuestas.
type IssueResponse struct {
	ID                string          `json:"id"`
	RequestID         string          `json:"request_id"`
	RequestLineItemID string          `json:"request_line_item_id"`
	ItemID            string          `json:"item_id"`
	ItemCode          string          `json:"item_code"`
	ItemName          string          `json:"item_name"`
	IssuedQuantity    decimal.Decimal `json:"issued_quantity"`
	IssuedByUserID    string          `json:"issued_by_user_id"`
	IssuedByUsername  string          `json:"issued_by_username,omitempty"`
	IssuedToUserID    string          `json:"issued_to_user_id"`
	IssuedToUsername  string          `json:"issued_to_username,omitempty"`
	IssuedAt          time.Time       `json:"issued_at"`
	ItemValue         decimal.Decimal `json:"item_value"`
	Purpose           string          `json:"purpose,omitempty"`
	Notes             string          `json:"notes,omitempty"`
}

// ToIssueResponse mapea la entidad a DTO de respuesta.
func ToIssueResponse(i *entity.InventoryIssue) *IssueResponse {
	return &IssueResponse{
		ID:                i.ID,
		RequestID:         i.RequestID,
		RequestLineItemID: i.RequestLineItemID,
		ItemID:            i.ItemID,
		ItemCode:          i.ItemCode,
		ItemName:          i.ItemName,
		IssuedQuantity:    i.IssuedQuantity,
		IssuedByUserID:    i.IssuedByUserID,
		IssuedByUsername:  i.IssuedByUsername,
		IssuedToUserID:    i.IssuedToUserID,
		IssuedToUsername:  i.IssuedToUsername,
		IssuedAt:          i.IssuedAt,
		ItemValue:         i.ItemValue,
		Purpose:           i.Purpose,
		Notes:             i.Notes,
	}
}

// ToIssueResponses mapea una lista de asientos.
func ToIssueResponses(issues []*entity.InventoryIssue) []*IssueResponse {
	out := make([]*IssueResponse, 0, len(issues))
	for _, i := range issues {
		out = append(out, ToIssueResponse(i))
	}
	return out
}

// MaterialDistributionRow fila de la tabla de distribución de materiales:
// cantidades del mes anterior, del mes actual y total histórico por ítem.
type MaterialDistributionRow struct {
	ItemID           string          `json:"item_id"`
	ItemName         string          `json:"item_name"`
	PreviousMonthQty decimal.Decimal `json:"previous_month_qty"`
	CurrentMonthQty  decimal.Decimal `json:"current_month_qty"`
	TotalQty         decimal.Decimal `json:"total_qty"`
}

// OtherDistributionRecord una entrega agrupada por fecha+solicitud en el
// reporte de distribuciones no-material.
type OtherDistributionRecord struct {
	Date           string                     `json:"date"` // YYYY-MM-DD
	IssueNumber    string                     `json:"issue_number"`
	ItemQuantities map[string]decimal.Decimal `json:"item_quantities"`
}

// OtherDistributionsResponse reporte de distribuciones de ítems "Non Materials".
type OtherDistributionsResponse struct {
	ItemHeaders   []string                  `json:"item_headers"`
	Distributions []OtherDistributionRecord `json:"distributions"`
}
