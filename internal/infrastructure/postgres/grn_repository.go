package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Almacen-erp/internal/domain/entity"
	"github.com/jhoicas/Almacen-erp/internal/domain/repository"
)

var _ repository.GRNRepository = (*GRNRepo)(nil)

// GRNRepo implementación de GRNRepository sobre PostgreSQL (usable con pool o tx).
type GRNRepo struct {
	q Querier
}

// NewGRNRepository construye el adaptador de notas de recepción. Pasar pool o tx (Querier).
func NewGRNRepository(q Querier) *GRNRepo {
	return &GRNRepo{q: q}
}

// Create persiste la nota de recepción con sus líneas.
func (r *GRNRepo) Create(grn *entity.GoodsReceivingNote) error {
	query := `
		INSERT INTO goods_receiving_notes (
			id, receipt_no, receiving_station, reference_order_no, reference_order_date,
			issuing_officer, station, purchase_request_id, created_by_user_id, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`
	_, err := r.q.Exec(context.Background(), query,
		grn.ID, grn.ReceiptNo, grn.ReceivingStation, grn.ReferenceOrderNo, grn.ReferenceOrderDate,
		grn.IssuingOfficer, grn.Station, grn.PurchaseRequestID, grn.CreatedByUserID, grn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert grn: %w", err)
	}
	lineQuery := `
		INSERT INTO goods_receiving_items (id, grn_id, description, quantity, unit)
		VALUES ($1,$2,$3,$4,$5)`
	for _, item := range grn.Items {
		_, err := r.q.Exec(context.Background(), lineQuery,
			item.ID, item.GRNID, item.Description, item.Quantity, item.Unit,
		)
		if err != nil {
			return fmt.Errorf("insert grn item: %w", err)
		}
	}
	return nil
}

// ListByPurchaseRequest devuelve las notas de recepción contra una solicitud de compra.
func (r *GRNRepo) ListByPurchaseRequest(purchaseRequestID string) ([]*entity.GoodsReceivingNote, error) {
	query := `
		SELECT id, receipt_no, COALESCE(receiving_station, ''), COALESCE(reference_order_no, ''),
			reference_order_date, COALESCE(issuing_officer, ''), COALESCE(station, ''),
			purchase_request_id, created_by_user_id, created_at
		FROM goods_receiving_notes
		WHERE purchase_request_id = $1
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, purchaseRequestID)
	if err != nil {
		return nil, fmt.Errorf("list grns: %w", err)
	}
	defer rows.Close()

	var grns []*entity.GoodsReceivingNote
	for rows.Next() {
		var grn entity.GoodsReceivingNote
		err := rows.Scan(
			&grn.ID, &grn.ReceiptNo, &grn.ReceivingStation, &grn.ReferenceOrderNo,
			&grn.ReferenceOrderDate, &grn.IssuingOfficer, &grn.Station,
			&grn.PurchaseRequestID, &grn.CreatedByUserID, &grn.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan grn: %w", err)
		}
		grns = append(grns, &grn)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, grn := range grns {
		items, err := r.loadItems(grn.ID)
		if err != nil {
			return nil, err
		}
		grn.Items = items
	}
	return grns, nil
}

func (r *GRNRepo) loadItems(grnID string) ([]entity.GoodsReceivingItem, error) {
	query := `
		SELECT id, grn_id, description, quantity, COALESCE(unit, '')
		FROM goods_receiving_items WHERE grn_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, grnID)
	if err != nil {
		return nil, fmt.Errorf("load grn items: %w", err)
	}
	defer rows.Close()

	var items []entity.GoodsReceivingItem
	for rows.Next() {
		var item entity.GoodsReceivingItem
		if err := rows.Scan(&item.ID, &item.GRNID, &item.Description, &item.Quantity, &item.Unit); err != nil {
			return nil, fmt.Errorf("scan grn item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
