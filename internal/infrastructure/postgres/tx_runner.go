package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Almacen-erp/internal/application/fulfillment"
	"github.com/jhoicas/Almacen-erp/internal/application/inventory"
	"github.com/jhoicas/Almacen-erp/internal/application/procurement"
	"github.com/jhoicas/Almacen-erp/internal/domain/repository"
)

var _ fulfillment.TxRunner = (*TxRunner)(nil)
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ procurement.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repos del motor de entregas
// atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	requestRepo repository.RequestRepository,
	issueRepo repository.IssueRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	itemRepo := NewItemRepository(tx)
	requestRepo := NewRequestRepository(tx)
	issueRepo := NewIssueRepository(tx)

	if err := fn(itemRepo, requestRepo, issueRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunItems inicia una transacción solo con el repo de ítems (ajustes de stock).
func (r *TxRunner) RunItems(ctx context.Context, fn func(itemRepo repository.ItemRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewItemRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunProcurement inicia una transacción con los repos de compras y el de ítems
// (la solicitud de compra y la marca pending_purchase_request confirman juntas).
func (r *TxRunner) RunProcurement(ctx context.Context, fn func(
	purchaseRepo repository.PurchaseRequestRepository,
	grnRepo repository.GRNRepository,
	itemRepo repository.ItemRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	purchaseRepo := NewPurchaseRequestRepository(tx)
	grnRepo := NewGRNRepository(tx)
	itemRepo := NewItemRepository(tx)

	if err := fn(purchaseRepo, grnRepo, itemRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
