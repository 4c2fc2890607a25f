package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-erp/internal/domain/entity"
	"github.com/jhoicas/Almacen-erp/internal/domain/repository"
)

var _ repository.PurchaseRequestRepository = (*PurchaseRequestRepo)(nil)

// PurchaseRequestRepo implementación sobre PostgreSQL (usable con pool o tx).
type PurchaseRequestRepo struct {
	q Querier
}

// NewPurchaseRequestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRequestRepository(q Querier) *PurchaseRequestRepo {
	return &PurchaseRequestRepo{q: q}
}

// Create persiste la solicitud de compra con sus líneas.
func (r *PurchaseRequestRepo) Create(request *entity.PurchaseRequest) error {
	query := `
		INSERT INTO purchase_requests (
			id, ref_no, division, sub_division, programme, project, object,
			status, total_value, requested_by_user_id, requested_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`
	_, err := r.q.Exec(context.Background(), query,
		request.ID, request.RefNo, request.Division, request.SubDivision,
		request.Programme, request.Project, request.Object,
		request.Status, request.TotalValue, request.RequestedByUserID, request.RequestedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase request: %w", err)
	}
	lineQuery := `
		INSERT INTO purchase_request_line_items (id, purchase_request_id, item_id, item_name, quantity, estimated_price)
		VALUES ($1,$2,$3,$4,$5,$6)`
	for _, line := range request.Items {
		_, err := r.q.Exec(context.Background(), lineQuery,
			line.ID, line.PurchaseRequestID, nullable(line.ItemID), line.ItemName,
			line.Quantity, line.EstimatedPrice,
		)
		if err != nil {
			return fmt.Errorf("insert purchase request line: %w", err)
		}
	}
	return nil
}

const purchaseColumns = `
	id, ref_no, COALESCE(division, ''), COALESCE(sub_division, ''), COALESCE(programme, ''),
	COALESCE(project, ''), COALESCE(object, ''), status, total_value, requested_by_user_id, requested_at`

// GetByID obtiene la solicitud de compra con sus líneas. Devuelve (nil, nil) si no existe.
func (r *PurchaseRequestRepo) GetByID(id string) (*entity.PurchaseRequest, error) {
	query := `SELECT` + purchaseColumns + ` FROM purchase_requests WHERE id = $1`
	var pr entity.PurchaseRequest
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&pr.ID, &pr.RefNo, &pr.Division, &pr.SubDivision, &pr.Programme,
		&pr.Project, &pr.Object, &pr.Status, &pr.TotalValue, &pr.RequestedByUserID, &pr.RequestedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase request: %w", err)
	}
	items, err := r.loadLines(pr.ID)
	if err != nil {
		return nil, err
	}
	pr.Items = items
	return &pr, nil
}

// List devuelve todas las solicitudes de compra, con líneas, de la más reciente
// a la más antigua.
func (r *PurchaseRequestRepo) List() ([]*entity.PurchaseRequest, error) {
	query := `SELECT` + purchaseColumns + ` FROM purchase_requests ORDER BY requested_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list purchase requests: %w", err)
	}
	defer rows.Close()

	var requests []*entity.PurchaseRequest
	for rows.Next() {
		var pr entity.PurchaseRequest
		err := rows.Scan(
			&pr.ID, &pr.RefNo, &pr.Division, &pr.SubDivision, &pr.Programme,
			&pr.Project, &pr.Object, &pr.Status, &pr.TotalValue, &pr.RequestedByUserID, &pr.RequestedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan purchase request: %w", err)
		}
		requests = append(requests, &pr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, pr := range requests {
		items, err := r.loadLines(pr.ID)
		if err != nil {
			return nil, err
		}
		pr.Items = items
	}
	return requests, nil
}

// UpdateStatus transiciona el estado de la solicitud de compra.
func (r *PurchaseRequestRepo) UpdateStatus(id string, status entity.PurchaseStatus) error {
	query := `UPDATE purchase_requests SET status = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update purchase request status: %w", err)
	}
	return nil
}

func (r *PurchaseRequestRepo) loadLines(purchaseRequestID string) ([]entity.PurchaseRequestLineItem, error) {
	query := `
		SELECT id, purchase_request_id, COALESCE(item_id, ''), item_name, quantity, estimated_price
		FROM purchase_request_line_items WHERE purchase_request_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, purchaseRequestID)
	if err != nil {
		return nil, fmt.Errorf("load purchase request lines: %w", err)
	}
	defer rows.Close()

	var lines []entity.PurchaseRequestLineItem
	for rows.Next() {
		var line entity.PurchaseRequestLineItem
		err := rows.Scan(&line.ID, &line.PurchaseRequestID, &line.ItemID, &line.ItemName, &line.Quantity, &line.EstimatedPrice)
		if err != nil {
			return nil, fmt.Errorf("scan purchase request line: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
