package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryIssue asiento del libro de entregas: cuánto se entregó físicamente
// contra una línea de solicitud. Es inmutable una vez creado (append-only);
// "cuánto se ha entregado de la línea X" siempre se deriva sumando este libro.
type InventoryIssue struct {
	ID                string
	RequestLineItemID string
	RequestID         string
	ItemID            string
	ItemCode          string // cargado vía JOIN
	ItemName          string // cargado vía JOIN
	IssuedQuantity    decimal.Decimal
	IssuedByUserID    string
	IssuedByUsername  string // cargado vía JOIN
	IssuedToUserID    string
	IssuedToUsername  string // cargado vía JOIN
	IssuedAt          time.Time
	ItemValue         decimal.Decimal // precio unitario al momento de la entrega × cantidad
	Purpose           string          // copiado de la solicitud
	Notes             string
}
