package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-erp/internal/domain/entity"
)

// CreateItemRequest body para POST /api/items.
type CreateItemRequest struct {
	ItemCode             string          `json:"item_code"`
	ItemName             string          `json:"item_name"`
	ItemDescription      string          `json:"item_description,omitempty"`
	UnitOfMeasurement    string          `json:"unit_of_measurement"`
	CurrentStockQuantity decimal.Decimal `json:"current_stock_quantity"`
	MinimumStockLevel    decimal.Decimal `json:"minimum_stock_level"`
	LocationInStore      string          `json:"location_in_store,omitempty"`
	UnitPrice            decimal.Decimal `json:"unit_price"`
	CategoryName         string          `json:"category_name"`
	TypeName             string          `json:"type_name"`
	CreatedByUserID      string          `json:"created_by_user_id"`
}

// UpdateItemRequest body para PUT /api/items/:code. Campos nil no se tocan.
type UpdateItemRequest struct {
	ItemName          *string          `json:"item_name,omitempty"`
	ItemDescription   *string          `json:"item_description,omitempty"`
	UnitOfMeasurement *string          `json:"unit_of_measurement,omitempty"`
	MinimumStockLevel *decimal.Decimal `json:"minimum_stock_level,omitempty"`
	LocationInStore   *string          `json:"location_in_store,omitempty"`
	UnitPrice         *decimal.Decimal `json:"unit_price,omitempty"`
	CategoryName      *string          `json:"category_name,omitempty"`
	TypeName          *string          `json:"type_name,omitempty"`
	IsActive          *bool            `json:"is_active,omitempty"`
	UpdatedByUserID   string           `json:"updated_by_user_id"`
}

// AdjustStockRequest body para PATCH /api/items/:code/adjust-stock.
type AdjustStockRequest struct {
	QuantityChange   decimal.Decimal `json:"quantity_change"`
	AdjustingUserID  string          `json:"adjusting_user_id"`
	Reason           string          `json:"reason,omitempty"`
}

// ItemResponse ítem de inventario en respuestas, con estado de stock derivado.
type ItemResponse struct {
	ID                     string          `json:"id"`
	ItemCode               string          `json:"item_code"`
	ItemName               string          `json:"item_name"`
	ItemDescription        string          `json:"item_description,omitempty"`
	UnitOfMeasurement      string          `json:"unit_of_measurement"`
	CurrentStockQuantity   decimal.Decimal `json:"current_stock_quantity"`
	MinimumStockLevel      decimal.Decimal `json:"minimum_stock_level"`
	LocationInStore        string          `json:"location_in_store,omitempty"`
	UnitPrice              decimal.Decimal `json:"unit_price"`
	CategoryName           string          `json:"category_name"`
	TypeName               string          `json:"type_name"`
	StockStatus            string          `json:"stock_status"`
	PendingPurchaseRequest bool            `json:"pending_purchase_request"`
	IsActive               bool            `json:"is_active"`
	LastUpdatedAt          time.Time       `json:"last_updated_at"`
}

// ToItemResponse mapea la entidad a DTO de respuesta.
func ToItemResponse(i *entity.InventoryItem) *ItemResponse {
	return &ItemResponse{
		ID:                     i.ID,
		ItemCode:               i.ItemCode,
		ItemName:               i.ItemName,
		ItemDescription:        i.ItemDescription,
		UnitOfMeasurement:      i.UnitOfMeasurement,
		CurrentStockQuantity:   i.CurrentStockQuantity,
		MinimumStockLevel:      i.MinimumStockLevel,
		LocationInStore:        i.LocationInStore,
		UnitPrice:              i.UnitPrice,
		CategoryName:           i.CategoryName,
		TypeName:               i.TypeName,
		StockStatus:            string(i.StockStatus()),
		PendingPurchaseRequest: i.PendingPurchaseRequest,
		IsActive:               i.IsActive,
		LastUpdatedAt:          i.LastUpdatedAt,
	}
}

// ToItemResponses mapea una lista de entidades.
func ToItemResponses(items []*entity.InventoryItem) []*ItemResponse {
	out := make([]*ItemResponse, 0, len(items))
	for _, i := range items {
		out = append(out, ToItemResponse(i))
	}
	return out
}
