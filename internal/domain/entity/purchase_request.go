package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseStatus estado de una solicitud de compra (cambio de estado simple,
// no es máquina de estados como la solicitud de material).
type PurchaseStatus string

const (
	PurchaseStatusPending        PurchaseStatus = "PENDING"
	PurchaseStatusApproved       PurchaseStatus = "APPROVED"
	PurchaseStatusDirectPurchase PurchaseStatus = "DIRECT_PURCHASE"
)

// PurchaseRequest solicitud de compra generada cuando el almacén no puede
// cubrir un faltante. Valores <= al límite de compra directa pasan de una vez
// a DIRECT_PURCHASE sin aprobación.
type PurchaseRequest struct {
	ID                string
	RefNo             string
	Division          string
	SubDivision       string
	Programme         string
	Project           string
	Object            string
	Status            PurchaseStatus
	TotalValue        decimal.Decimal
	RequestedByUserID string
	RequestedAt       time.Time
	Items             []PurchaseRequestLineItem
}

// PurchaseRequestLineItem línea de la solicitud de compra.
type PurchaseRequestLineItem struct {
	ID                string
	PurchaseRequestID string
	ItemID            string
	ItemName          string
	Quantity          decimal.Decimal
	EstimatedPrice    decimal.Decimal
}
