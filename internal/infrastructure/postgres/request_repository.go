package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-erp/internal/domain/entity"
	"github.com/jhoicas/Almacen-erp/internal/domain/repository"
)

var _ repository.RequestRepository = (*RequestRepo)(nil)

// RequestRepo implementación de RequestRepository sobre PostgreSQL (usable con pool o tx).
type RequestRepo struct {
	q Querier
}

// NewRequestRepository construye el adaptador de solicitudes. Pasar pool o tx (Querier).
func NewRequestRepository(q Querier) *RequestRepo {
	return &RequestRepo{q: q}
}

// Create persiste la solicitud con todas sus líneas.
func (r *RequestRepo) Create(request *entity.InventoryRequest) error {
	query := `
		INSERT INTO inventory_requests (id, requester_user_id, purpose, status, requested_at)
		VALUES ($1,$2,$3,$4,$5)`
	_, err := r.q.Exec(context.Background(), query,
		request.ID, request.RequesterUserID, request.Purpose, request.Status, request.RequestedAt,
	)
	if err != nil {
		return fmt.Errorf("insert request: %w", err)
	}
	lineQuery := `
		INSERT INTO inventory_request_line_items (id, request_id, item_id, requested_quantity, status)
		VALUES ($1,$2,$3,$4,$5)`
	for _, line := range request.LineItems {
		_, err := r.q.Exec(context.Background(), lineQuery,
			line.ID, line.RequestID, line.ItemID, line.RequestedQuantity, line.Status,
		)
		if err != nil {
			return fmt.Errorf("insert request line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la solicitud con sus líneas, siempre releídas de la DB.
// Devuelve (nil, nil) si no existe.
func (r *RequestRepo) GetByID(id string) (*entity.InventoryRequest, error) {
	query := `
		SELECT r.id, r.requester_user_id, u.full_name, COALESCE(r.purpose, ''), r.status,
			r.requested_at, COALESCE(r.processed_by_user_id, ''), r.processed_at
		FROM inventory_requests r
		JOIN users u ON u.id = r.requester_user_id
		WHERE r.id = $1`
	var req entity.InventoryRequest
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&req.ID, &req.RequesterUserID, &req.RequesterName, &req.Purpose, &req.Status,
		&req.RequestedAt, &req.ProcessedByUserID, &req.ProcessedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get request: %w", err)
	}
	lines, err := r.loadLines(req.ID)
	if err != nil {
		return nil, err
	}
	req.LineItems = lines
	return &req, nil
}

// ListByStatus devuelve las solicitudes con un estado agregado, con líneas,
// de la más reciente a la más antigua.
func (r *RequestRepo) ListByStatus(status entity.RequestStatus) ([]*entity.InventoryRequest, error) {
	query := `
		SELECT r.id, r.requester_user_id, u.full_name, COALESCE(r.purpose, ''), r.status,
			r.requested_at, COALESCE(r.processed_by_user_id, ''), r.processed_at
		FROM inventory_requests r
		JOIN users u ON u.id = r.requester_user_id
		WHERE r.status = $1
		ORDER BY r.requested_at DESC`
	rows, err := r.q.Query(context.Background(), query, status)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()

	var requests []*entity.InventoryRequest
	for rows.Next() {
		var req entity.InventoryRequest
		err := rows.Scan(
			&req.ID, &req.RequesterUserID, &req.RequesterName, &req.Purpose, &req.Status,
			&req.RequestedAt, &req.ProcessedByUserID, &req.ProcessedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		requests = append(requests, &req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, req := range requests {
		lines, err := r.loadLines(req.ID)
		if err != nil {
			return nil, err
		}
		req.LineItems = lines
	}
	return requests, nil
}

const lineColumns = `
	li.id, li.request_id, li.item_id, i.item_code, i.item_name, li.requested_quantity, li.status
	FROM inventory_request_line_items li
	JOIN inventory_items i ON i.id = li.item_id`

// GetLineItem obtiene una línea por id. Devuelve (nil, nil) si no existe.
func (r *RequestRepo) GetLineItem(id string) (*entity.InventoryRequestLineItem, error) {
	return r.getLine(`SELECT` + lineColumns + ` WHERE li.id = $1`, id)
}

// GetLineItemForUpdate obtiene la línea y bloquea su fila (SELECT FOR UPDATE).
// Serializa entregas concurrentes contra la misma línea.
func (r *RequestRepo) GetLineItemForUpdate(id string) (*entity.InventoryRequestLineItem, error) {
	return r.getLine(`SELECT`+lineColumns+` WHERE li.id = $1 FOR UPDATE OF li`, id)
}

func (r *RequestRepo) getLine(query, id string) (*entity.InventoryRequestLineItem, error) {
	var line entity.InventoryRequestLineItem
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&line.ID, &line.RequestID, &line.ItemID, &line.ItemCode, &line.ItemName,
		&line.RequestedQuantity, &line.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get request line: %w", err)
	}
	return &line, nil
}

// UpdateLineItemStatus transiciona el estado de una línea.
func (r *RequestRepo) UpdateLineItemStatus(lineItemID string, status entity.LineItemStatus) error {
	query := `UPDATE inventory_request_line_items SET status = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, lineItemID, status)
	if err != nil {
		return fmt.Errorf("update line status: %w", err)
	}
	return nil
}

// UpdateStatus persiste el estado agregado y el sello de procesado.
func (r *RequestRepo) UpdateStatus(request *entity.InventoryRequest) error {
	query := `
		UPDATE inventory_requests
		SET status = $2, processed_by_user_id = $3, processed_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		request.ID, request.Status, nullable(request.ProcessedByUserID), request.ProcessedAt,
	)
	if err != nil {
		return fmt.Errorf("update request status: %w", err)
	}
	return nil
}

func (r *RequestRepo) loadLines(requestID string) ([]entity.InventoryRequestLineItem, error) {
	query := `SELECT` + lineColumns + ` WHERE li.request_id = $1 ORDER BY li.id`
	rows, err := r.q.Query(context.Background(), query, requestID)
	if err != nil {
		return nil, fmt.Errorf("load request lines: %w", err)
	}
	defer rows.Close()

	var lines []entity.InventoryRequestLineItem
	for rows.Next() {
		var line entity.InventoryRequestLineItem
		err := rows.Scan(
			&line.ID, &line.RequestID, &line.ItemID, &line.ItemCode, &line.ItemName,
			&line.RequestedQuantity, &line.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("scan request line: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
