package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-erp/internal/domain/entity"
)

// PurchaseLineItemInput línea para crear una solicitud de compra.
type PurchaseLineItemInput struct {
	ItemID         string          `json:"item_id"`
	ItemName       string          `json:"item_name"`
	Quantity       decimal.Decimal `json:"quantity"`
	EstimatedPrice decimal.Decimal `json:"estimated_price"`
}

// CreatePurchaseRequestInput body para POST /api/purchase-requests.
type CreatePurchaseRequestInput struct {
	RefNo             string                  `json:"ref_no"`
	Division          string                  `json:"division,omitempty"`
	SubDivision       string                  `json:"sub_division,omitempty"`
	Programme         string                  `json:"programme,omitempty"`
	Project           string                  `json:"project,omitempty"`
	Object            string                  `json:"object,omitempty"`
	RequestedByUserID string                  `json:"requested_by_user_id"`
	Items             []PurchaseLineItemInput `json:"items"`
}

// PurchaseRequestResponse solicitud de compra en respuestas.
type PurchaseRequestResponse struct {
	ID                string                  `json:"id"`
	RefNo             string                  `json:"ref_no"`
	Division          string                  `json:"division,omitempty"`
	SubDivision       string                  `json:"sub_division,omitempty"`
	Programme         string                  `json:"programme,omitempty"`
	Project           string                  `json:"project,omitempty"`
	Object            string                  `json:"object,omitempty"`
	Status            string                  `json:"status"`
	TotalValue        decimal.Decimal         `json:"total_value"`
	RequestedByUserID string                  `json:"requested_by_user_id"`
	RequestedAt       time.Time               `json:"requested_at"`
	Items             []PurchaseLineItemInput `json:"items"`
}

// ToPurchaseRequestResponse mapea la entidad a DTO de respuesta.
func ToPurchaseRequestResponse(pr *entity.PurchaseRequest) *PurchaseRequestResponse {
	resp := &PurchaseRequestResponse{
		ID:                pr.ID,
		RefNo:             pr.RefNo,
		Division:          pr.Division,
		SubDivision:       pr.SubDivision,
		Programme:         pr.Programme,
		Project:           pr.Project,
		Object:            pr.Object,
		Status:            string(pr.Status),
		TotalValue:        pr.TotalValue,
		RequestedByUserID: pr.RequestedByUserID,
		RequestedAt:       pr.RequestedAt,
		Items:             make([]PurchaseLineItemInput, 0, len(pr.Items)),
	}
	for _, it := range pr.Items {
		resp.Items = append(resp.Items, PurchaseLineItemInput{
			ItemID:         it.ItemID,
			ItemName:       it.ItemName,
			Quantity:       it.Quantity,
			EstimatedPrice: it.EstimatedPrice,
		})
	}
	return resp
}

// GRNItemInput línea recibida en la nota de recepción.
type GRNItemInput struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
}

// CreateGRNInput body para POST /api/purchase-requests/:id/grn.
type CreateGRNInput struct {
	ReceiptNo          string         `json:"receipt_no"`
	ReceivingStation   string         `json:"receiving_station,omitempty"`
	ReferenceOrderNo   string         `json:"reference_order_no,omitempty"`
	ReferenceOrderDate *time.Time     `json:"reference_order_date,omitempty"`
	IssuingOfficer     string         `json:"issuing_officer,omitempty"`
	Station            string         `json:"station,omitempty"`
	CreatedByUserID    string         `json:"created_by_user_id"`
	Items              []GRNItemInput `json:"items"`
}

// GRNCheckResponse indica si ya existe una nota de recepción del usuario para
// la solicitud de compra, con sus cabeceras si existe.
type GRNCheckResponse struct {
	Exists bool            `json:"exists"`
	GRN    *CreateGRNInput `json:"grn,omitempty"`
}
