package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-erp/internal/domain/entity"
)

// CreateRequestLineItem una línea {código de ítem, cantidad} al crear la solicitud.
type CreateRequestLineItem struct {
	ItemCode          string          `json:"item_code"`
	RequestedQuantity decimal.Decimal `json:"requested_quantity"`
}

// CreateRequestInput body para POST /api/requests.
type CreateRequestInput struct {
	RequesterUserID string                  `json:"requester_user_id"`
	Purpose         string                  `json:"purpose"`
	Items           []CreateRequestLineItem `json:"items"`
}

// IssueInput body para PATCH /api/requests/line-items/:id/issue.
type IssueInput struct {
	IssuedByUserID string          `json:"issued_by_user_id"`
	IssuedQuantity decimal.Decimal `json:"issued_quantity"`
	IssueNotes     string          `json:"issue_notes"`
}

// BatchIssueLine una línea del lote: línea de solicitud + cantidad a entregar.
type BatchIssueLine struct {
	RequestLineItemID string          `json:"request_line_item_id"`
	IssuedQuantity    decimal.Decimal `json:"issued_quantity"`
}

// BatchIssueInput body para POST /api/requests/issue-batch.
type BatchIssueInput struct {
	IssuedByUserID string           `json:"issued_by_user_id"`
	IssueNotes     string           `json:"issue_notes"`
	Items          []BatchIssueLine `json:"items"`
}

// NoStockInput body para PATCH /api/requests/line-items/:id/no-stock.
type NoStockInput struct {
	StoreKeeperUserID string `json:"store_keeper_user_id"`
	Notes             string `json:"notes"`
}

// LineItemResponse línea de solicitud en respuestas.
type LineItemResponse struct {
	ID                string          `json:"id"`
	ItemID            string          `json:"item_id"`
	ItemCode          string          `json:"item_code"`
	ItemName          string          `json:"item_name"`
	RequestedQuantity decimal.Decimal `json:"requested_quantity"`
	Status            string          `json:"status"`
}

// RequestResponse solicitud de material en respuestas.
type RequestResponse struct {
	ID                string             `json:"id"`
	RequesterUserID   string             `json:"requester_user_id"`
	RequesterName     string             `json:"requester_name,omitempty"`
	Purpose           string             `json:"purpose"`
	Status            string             `json:"status"`
	RequestedAt       time.Time          `json:"requested_at"`
	ProcessedByUserID string             `json:"processed_by_user_id,omitempty"`
	ProcessedAt       *time.Time         `json:"processed_at,omitempty"`
	LineItems         []LineItemResponse `json:"line_items"`
}

// ToRequestResponse mapea la entidad a DTO de respuesta.
func ToRequestResponse(r *entity.InventoryRequest) *RequestResponse {
	resp := &RequestResponse{
		ID:                r.ID,
		RequesterUserID:   r.RequesterUserID,
		RequesterName:     r.RequesterName,
		Purpose:           r.Purpose,
		Status:            string(r.Status),
		RequestedAt:       r.RequestedAt,
		ProcessedByUserID: r.ProcessedByUserID,
		ProcessedAt:       r.ProcessedAt,
		LineItems:         make([]LineItemResponse, 0, len(r.LineItems)),
	}
	for _, li := range r.LineItems {
		resp.LineItems = append(resp.LineItems, LineItemResponse{
			ID:                li.ID,
			ItemID:            li.ItemID,
			ItemCode:          li.ItemCode,
			ItemName:          li.ItemName,
			RequestedQuantity: li.RequestedQuantity,
			Status:            string(li.Status),
		})
	}
	return resp
}

// ToRequestResponses mapea un listado de solicitudes.
func ToRequestResponses(requests []*entity.InventoryRequest) []*RequestResponse {
	out := make([]*RequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, ToRequestResponse(r))
	}
	return out
}
