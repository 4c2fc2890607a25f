package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestStatus estado agregado de una solicitud de material.
// Siempre es función del estado de sus líneas; nunca se asigna de forma independiente.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "PENDING"
	RequestStatusIssued    RequestStatus = "ISSUED"
	RequestStatusNoStock   RequestStatus = "NO_STOCK"
	RequestStatusRejected  RequestStatus = "REJECTED"
	RequestStatusCancelled RequestStatus = "CANCELLED"
)

// LineItemStatus estado de una línea individual de la solicitud.
type LineItemStatus string

const (
	LineItemStatusPending         LineItemStatus = "PENDING"
	LineItemStatusIssued          LineItemStatus = "ISSUED"
	LineItemStatusIssuedPartially LineItemStatus = "ISSUED_PARTIALLY"
	LineItemStatusNoStock         LineItemStatus = "NO_STOCK"
)

// IsTerminal indica si la línea ya no admite más entregas.
// Una línea ISSUED_PARTIALLY sí puede volver a entregarse.
func (s LineItemStatus) IsTerminal() bool {
	return s == LineItemStatusIssued || s == LineItemStatusNoStock
}

// InventoryRequest solicitud de material con una o más líneas.
// Las líneas se crean junto con la solicitud y se eliminan con ella (composición).
type InventoryRequest struct {
	ID                string
	RequesterUserID   string
	RequesterName     string // cargado vía JOIN
	Purpose           string
	Status            RequestStatus
	RequestedAt       time.Time
	ProcessedByUserID string
	ProcessedAt       *time.Time
	LineItems         []InventoryRequestLineItem
}

// InventoryRequestLineItem una línea ítem/cantidad dentro de la solicitud.
// RequestedQuantity es inmutable tras la creación: el avance de la entrega se
// deriva del libro de entregas (InventoryIssue), nunca mutando este campo.
type InventoryRequestLineItem struct {
	ID                string
	RequestID         string
	ItemID            string
	ItemCode          string // cargado vía JOIN
	ItemName          string // cargado vía JOIN
	RequestedQuantity decimal.Decimal
	Status            LineItemStatus
}
