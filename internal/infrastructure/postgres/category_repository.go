package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-erp/internal/domain/entity"
	"github.com/jhoicas/Almacen-erp/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación de CategoryRepository sobre PostgreSQL (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de categorías y tipos. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// GetCategoryByID obtiene una categoría. Devuelve (nil, nil) si no existe.
func (r *CategoryRepo) GetCategoryByID(id string) (*entity.ItemCategory, error) {
	query := `SELECT id, name, COALESCE(description, '') FROM item_categories WHERE id = $1`
	return r.getCategory(query, id)
}

// GetCategoryByName obtiene una categoría por nombre. Devuelve (nil, nil) si no existe.
func (r *CategoryRepo) GetCategoryByName(name string) (*entity.ItemCategory, error) {
	query := `SELECT id, name, COALESCE(description, '') FROM item_categories WHERE name = $1`
	return r.getCategory(query, name)
}

func (r *CategoryRepo) getCategory(query, arg string) (*entity.ItemCategory, error) {
	var c entity.ItemCategory
	err := r.q.QueryRow(context.Background(), query, arg).Scan(&c.ID, &c.Name, &c.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// ListCategories devuelve todas las categorías ordenadas por nombre.
func (r *CategoryRepo) ListCategories() ([]*entity.ItemCategory, error) {
	query := `SELECT id, name, COALESCE(description, '') FROM item_categories ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []*entity.ItemCategory
	for rows.Next() {
		var c entity.ItemCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}

// GetTypeByName obtiene un tipo de ítem por nombre. Devuelve (nil, nil) si no existe.
func (r *CategoryRepo) GetTypeByName(name string) (*entity.ItemType, error) {
	query := `SELECT id, name, COALESCE(description, '') FROM item_types WHERE name = $1`
	var t entity.ItemType
	err := r.q.QueryRow(context.Background(), query, name).Scan(&t.ID, &t.Name, &t.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item type: %w", err)
	}
	return &t, nil
}

// ListTypes devuelve todos los tipos de ítem.
func (r *CategoryRepo) ListTypes() ([]*entity.ItemType, error) {
	query := `SELECT id, name, COALESCE(description, '') FROM item_types ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list item types: %w", err)
	}
	defer rows.Close()

	var types []*entity.ItemType
	for rows.Next() {
		var t entity.ItemType
		if err := rows.Scan(&t.ID, &t.Name, &t.Description); err != nil {
			return nil, fmt.Errorf("scan item type: %w", err)
		}
		types = append(types, &t)
	}
	return types, rows.Err()
}
