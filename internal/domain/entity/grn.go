package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoodsReceivingNote nota de recepción de mercancía contra una solicitud de
// compra. Registrarla limpia la marca pendingPurchaseRequest de los ítems.
type GoodsReceivingNote struct {
	ID                 string
	ReceiptNo          string
	ReceivingStation   string
	ReferenceOrderNo   string
	ReferenceOrderDate *time.Time
	IssuingOfficer     string
	Station            string
	PurchaseRequestID  string
	CreatedByUserID    string
	CreatedAt          time.Time
	Items              []GoodsReceivingItem
}

// GoodsReceivingItem línea recibida en la nota de recepción.
type GoodsReceivingItem struct {
	ID          string
	GRNID       string
	Description string
	Quantity    decimal.Decimal
	Unit        string
}
