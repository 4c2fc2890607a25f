package fulfillment_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-erp/internal/domain"
	"github.com/jhoicas/Almacen-erp/internal/domain/entity"
	"github.com/jhoicas/Almacen-erp/internal/domain/fulfillment"
)

func materialItem(stock int64) *entity.InventoryItem {
	return &entity.InventoryItem{
		ItemCode:             "TUB-050",
		ItemName:             "Tubería PVC 50mm",
		CurrentStockQuantity: decimal.NewFromInt(stock),
		MinimumStockLevel:    decimal.NewFromInt(10),
		TypeName:             entity.ItemTypeMaterial,
	}
}

func TestDebitStock_Descuenta(t *testing.T) {
	item := materialItem(100)
	err := fulfillment.DebitStock(item, decimal.NewFromInt(30))
	require.NoError(t, err)
	assert.True(t, item.CurrentStockQuantity.Equal(decimal.NewFromInt(70)))
}

func TestDebitStock_CantidadNoPositiva(t *testing.T) {
	item := materialItem(100)
	err := fulfillment.DebitStock(item, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, item.CurrentStockQuantity.Equal(decimal.NewFromInt(100)), "el stock no debe mutarse")
}

func TestDebitStock_StockInsuficiente(t *testing.T) {
	item := materialItem(5)
	err := fulfillment.DebitStock(item, decimal.NewFromInt(10))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insuf *domain.InsufficientStockError
	require.True(t, errors.As(err, &insuf), "debe ser InsufficientStockError tipado")
	assert.True(t, insuf.Available.Equal(decimal.NewFromInt(5)))
	assert.True(t, insuf.Requested.Equal(decimal.NewFromInt(10)))
	assert.Contains(t, err.Error(), "disponible 5")
	assert.Contains(t, err.Error(), "solicitado 10")
	assert.True(t, item.CurrentStockQuantity.Equal(decimal.NewFromInt(5)), "el stock no debe mutarse")
}

func TestAdjustStock_MaterialNoPuedeQuedarNegativo(t *testing.T) {
	item := materialItem(3)
	err := fulfillment.AdjustStock(item, decimal.NewFromInt(-5))
	assert.ErrorIs(t, err, domain.ErrNegativeStock)
	assert.True(t, item.CurrentStockQuantity.Equal(decimal.NewFromInt(3)))
}

func TestAdjustStock_NoMaterialAdmiteNegativo(t *testing.T) {
	item := materialItem(3)
	item.TypeName = entity.ItemTypeNonMaterial
	err := fulfillment.AdjustStock(item, decimal.NewFromInt(-5))
	require.NoError(t, err)
	assert.True(t, item.CurrentStockQuantity.Equal(decimal.NewFromInt(-2)))
}

func TestAdjustStock_CreditoSuma(t *testing.T) {
	item := materialItem(3)
	err := fulfillment.AdjustStock(item, decimal.NewFromInt(20))
	require.NoError(t, err)
	assert.True(t, item.CurrentStockQuantity.Equal(decimal.NewFromInt(23)))
}
