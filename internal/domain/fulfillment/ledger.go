package fulfillment

import (
	"github.com/jhoicas/Almacen-erp/internal/domain"
	"github.com/jhoicas/Almacen-erp/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DebitStock aplica un débito sobre la existencia del ítem. La cantidad debe
// ser positiva y no exceder el stock actual; en ese caso retorna
// InsufficientStockError con disponible y solicitado. El caller debe tener la
// fila bloqueada (SELECT FOR UPDATE) y persistir el ítem en la misma
// transacción.
func DebitStock(item *entity.InventoryItem, quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if item.CurrentStockQuantity.LessThan(quantity) {
		return &domain.InsufficientStockError{
			ItemCode:  item.ItemCode,
			Available: item.CurrentStockQuantity,
			Requested: quantity,
		}
	}
	item.CurrentStockQuantity = item.CurrentStockQuantity.Sub(quantity)
	return nil
}

// AdjustStock aplica un ajuste (delta puede ser negativo). Para ítems de la
// clase "Material" el resultado no puede quedar negativo; en ese caso retorna
// ErrNegativeStock y no muta el ítem. Mismo contrato transaccional que
// DebitStock.
func AdjustStock(item *entity.InventoryItem, delta decimal.Decimal) error {
	newQuantity := item.CurrentStockQuantity.Add(delta)
	if newQuantity.LessThan(decimal.Zero) && item.IsMaterial() {
		return domain.ErrNegativeStock
	}
	item.CurrentStockQuantity = newQuantity
	return nil
}
