package repository

import "github.com/jhoicas/Almacen-erp/internal/domain/entity"

// ItemRepository define el puerto de persistencia para ítems de inventario.
// Las lecturas que preceden a una escritura de stock deben usar GetByIDForUpdate
// dentro de una transacción para serializar débitos concurrentes sobre el mismo ítem.
type ItemRepository interface {
	Create(item *entity.InventoryItem) error
	GetByID(id string) (*entity.InventoryItem, error)
	GetByCode(code string) (*entity.InventoryItem, error)
	// GetByIDForUpdate bloquea la fila del ítem (SELECT FOR UPDATE).
	GetByIDForUpdate(id string) (*entity.InventoryItem, error)
	// UpdateStock persiste existencia y auditoría (last_updated_by/at).
	UpdateStock(item *entity.InventoryItem) error
	Update(item *entity.InventoryItem) error
	List() ([]*entity.InventoryItem, error)
	ListByCategory(categoryID string) ([]*entity.InventoryItem, error)
	// ListLowStock devuelve ítems activos con existencia <= nivel mínimo.
	ListLowStock() ([]*entity.InventoryItem, error)
	// SetPendingPurchase marca o limpia pending_purchase_request para un conjunto de ítems.
	SetPendingPurchase(itemIDs []string, pending bool) error
}

// CategoryRepository define el puerto para categorías y tipos de ítem (CRUD simple).
type CategoryRepository interface {
	GetCategoryByID(id string) (*entity.ItemCategory, error)
	GetCategoryByName(name string) (*entity.ItemCategory, error)
	ListCategories() ([]*entity.ItemCategory, error)
	GetTypeByName(name string) (*entity.ItemType, error)
	ListTypes() ([]*entity.ItemType, error)
}
