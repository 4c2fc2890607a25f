package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-erp/internal/domain"
	"github.com/jhoicas/Almacen-erp/internal/domain/entity"
	"github.com/jhoicas/Almacen-erp/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de ítems. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `
	i.id, i.item_code, i.item_name, COALESCE(i.item_description, ''),
	i.unit_of_measurement, i.current_stock_quantity, i.minimum_stock_level,
	COALESCE(i.location_in_store, ''), i.unit_price,
	i.category_id, c.name, i.type_id, t.name,
	i.pending_purchase_request, i.is_active,
	COALESCE(i.created_by, ''), COALESCE(i.last_updated_by, ''), i.last_updated_at, i.created_at`

const itemJoins = `
	FROM inventory_items i
	JOIN item_categories c ON c.id = i.category_id
	JOIN item_types t ON t.id = i.type_id`

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var i entity.InventoryItem
	err := row.Scan(
		&i.ID, &i.ItemCode, &i.ItemName, &i.ItemDescription,
		&i.UnitOfMeasurement, &i.CurrentStockQuantity, &i.MinimumStockLevel,
		&i.LocationInStore, &i.UnitPrice,
		&i.CategoryID, &i.CategoryName, &i.TypeID, &i.TypeName,
		&i.PendingPurchaseRequest, &i.IsActive,
		&i.CreatedByUserID, &i.LastUpdatedByUserID, &i.LastUpdatedAt, &i.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// nullable convierte "" en NULL para columnas FK opcionales.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Create persiste un ítem. Un código duplicado devuelve ErrItemCodeAlreadyExists.
func (r *ItemRepo) Create(item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (
			id, item_code, item_name, item_description, unit_of_measurement,
			current_stock_quantity, minimum_stock_level, location_in_store, unit_price,
			category_id, type_id, pending_purchase_request, is_active,
			created_by, last_updated_by, last_updated_at, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.ItemCode, item.ItemName, item.ItemDescription, item.UnitOfMeasurement,
		item.CurrentStockQuantity, item.MinimumStockLevel, item.LocationInStore, item.UnitPrice,
		item.CategoryID, item.TypeID, item.PendingPurchaseRequest, item.IsActive,
		nullable(item.CreatedByUserID), nullable(item.LastUpdatedByUserID), item.LastUpdatedAt, item.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrItemCodeAlreadyExists
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por id. Devuelve (nil, nil) si no existe.
func (r *ItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	query := `SELECT` + itemColumns + itemJoins + ` WHERE i.id = $1`
	item, err := scanItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// GetByCode obtiene un ítem por su código. Devuelve (nil, nil) si no existe.
func (r *ItemRepo) GetByCode(code string) (*entity.InventoryItem, error) {
	query := `SELECT` + itemColumns + itemJoins + ` WHERE i.item_code = $1`
	item, err := scanItem(r.q.QueryRow(context.Background(), query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item by code: %w", err)
	}
	return item, nil
}

// GetByIDForUpdate obtiene el ítem y bloquea la fila (SELECT FOR UPDATE).
// Serializa entregas y ajustes concurrentes sobre la misma existencia.
func (r *ItemRepo) GetByIDForUpdate(id string) (*entity.InventoryItem, error) {
	query := `SELECT` + itemColumns + itemJoins + ` WHERE i.id = $1 FOR UPDATE OF i`
	item, err := scanItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item for update: %w", err)
	}
	return item, nil
}

// UpdateStock persiste existencia y auditoría tras un débito o ajuste.
func (r *ItemRepo) UpdateStock(item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET current_stock_quantity = $2, last_updated_by = $3, last_updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.CurrentStockQuantity, nullable(item.LastUpdatedByUserID), item.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	return nil
}

// Update persiste los campos editables del ítem.
func (r *ItemRepo) Update(item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET item_name = $2, item_description = $3, unit_of_measurement = $4,
			minimum_stock_level = $5, location_in_store = $6, unit_price = $7,
			category_id = $8, type_id = $9, is_active = $10,
			last_updated_by = $11, last_updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.ItemName, item.ItemDescription, item.UnitOfMeasurement,
		item.MinimumStockLevel, item.LocationInStore, item.UnitPrice,
		item.CategoryID, item.TypeID, item.IsActive,
		nullable(item.LastUpdatedByUserID), item.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// List devuelve el catálogo completo ordenado por código.
func (r *ItemRepo) List() ([]*entity.InventoryItem, error) {
	query := `SELECT` + itemColumns + itemJoins + ` ORDER BY i.item_code`
	return r.list(query)
}

// ListByCategory devuelve los ítems de una categoría.
func (r *ItemRepo) ListByCategory(categoryID string) ([]*entity.InventoryItem, error) {
	query := `SELECT` + itemColumns + itemJoins + ` WHERE i.category_id = $1 ORDER BY i.item_code`
	return r.list(query, categoryID)
}

// ListLowStock devuelve los ítems activos con existencia en o bajo el mínimo.
func (r *ItemRepo) ListLowStock() ([]*entity.InventoryItem, error) {
	query := `SELECT` + itemColumns + itemJoins + `
		WHERE i.is_active AND i.current_stock_quantity <= i.minimum_stock_level
		ORDER BY i.item_code`
	return r.list(query)
}

// SetPendingPurchase marca o limpia pending_purchase_request para un conjunto de ítems.
func (r *ItemRepo) SetPendingPurchase(itemIDs []string, pending bool) error {
	if len(itemIDs) == 0 {
		return nil
	}
	query := `UPDATE inventory_items SET pending_purchase_request = $2 WHERE id = ANY($1)`
	_, err := r.q.Exec(context.Background(), query, itemIDs, pending)
	if err != nil {
		return fmt.Errorf("set pending purchase: %w", err)
	}
	return nil
}

func (r *ItemRepo) list(query string, args ...any) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []*entity.InventoryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
