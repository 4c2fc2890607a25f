package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Almacen-erp/internal/domain/entity"
)

func TestStockStatus(t *testing.T) {
	tests := []struct {
		name    string
		stock   int64
		minimum int64
		want    entity.StockStatus
	}{
		{"existencia cero", 0, 10, entity.StockStatusOutOfStock},
		{"existencia negativa", -2, 10, entity.StockStatusOutOfStock},
		{"igual al mínimo", 10, 10, entity.StockStatusLow},
		{"bajo el mínimo", 5, 10, entity.StockStatusLow},
		{"sobre el mínimo", 11, 10, entity.StockStatusGood},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &entity.InventoryItem{
				CurrentStockQuantity: decimal.NewFromInt(tt.stock),
				MinimumStockLevel:    decimal.NewFromInt(tt.minimum),
			}
			assert.Equal(t, tt.want, item.StockStatus())
		})
	}
}
