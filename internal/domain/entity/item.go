package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockStatus estado derivado del nivel de stock de un ítem (se calcula al leer).
type StockStatus string

const (
	StockStatusGood       StockStatus = "GOOD"
	StockStatusLow        StockStatus = "LOW"
	StockStatusOutOfStock StockStatus = "OUT_OF_STOCK"
)

// InventoryItem representa un ítem del almacén. CurrentStockQuantity es la
// única fuente de verdad de la existencia; se muta solo vía débito/crédito
// dentro de la misma transacción que la operación que lo causa.
type InventoryItem struct {
	ID                     string
	ItemCode               string // único
	ItemName               string
	ItemDescription        string
	UnitOfMeasurement      string
	CurrentStockQuantity   decimal.Decimal
	MinimumStockLevel      decimal.Decimal
	LocationInStore        string
	UnitPrice              decimal.Decimal
	CategoryID             string
	CategoryName           string // cargado vía JOIN, no se persiste en inventory_items
	TypeID                 string
	TypeName               string // cargado vía JOIN
	PendingPurchaseRequest bool
	IsActive               bool
	CreatedByUserID        string
	LastUpdatedByUserID    string
	LastUpdatedAt          time.Time
	CreatedAt              time.Time
}

// StockStatus deriva el estado de stock: OUT_OF_STOCK si la existencia es <= 0,
// LOW si es <= al nivel mínimo, GOOD en otro caso.
func (i *InventoryItem) StockStatus() StockStatus {
	if i.CurrentStockQuantity.LessThanOrEqual(decimal.Zero) {
		return StockStatusOutOfStock
	}
	if i.CurrentStockQuantity.LessThanOrEqual(i.MinimumStockLevel) {
		return StockStatusLow
	}
	return StockStatusGood
}

// IsMaterial indica si el ítem pertenece a la clase "Material" (stock no negativo).
func (i *InventoryItem) IsMaterial() bool {
	return i.TypeName == ItemTypeMaterial
}
