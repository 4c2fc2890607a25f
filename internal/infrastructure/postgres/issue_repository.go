package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-erp/internal/domain/entity"
	"github.com/jhoicas/Almacen-erp/internal/domain/repository"
)

var _ repository.IssueRepository = (*IssueRepo)(nil)

// IssueRepo implementación del libro de entregas sobre PostgreSQL (usable con pool o tx).
// El libro es append-only: sin UPDATE ni DELETE.
type IssueRepo struct {
	q Querier
}

// NewIssueRepository construye el adaptador del libro. Pasar pool o tx (Querier).
func NewIssueRepository(q Querier) *IssueRepo {
	return &IssueRepo{q: q}
}

const issueColumns = `
	s.id, s.request_line_item_id, s.request_id, s.item_id, i.item_code, i.item_name,
	s.issued_quantity, s.issued_by_user_id, ub.username, s.issued_to_user_id, ut.username,
	s.issued_at, s.item_value, COALESCE(s.purpose, ''), COALESCE(s.notes, '')`

const issueJoins = `
	FROM inventory_issues s
	JOIN inventory_items i ON i.id = s.item_id
	JOIN users ub ON ub.id = s.issued_by_user_id
	JOIN users ut ON ut.id = s.issued_to_user_id`

func scanIssue(row pgx.Row) (*entity.InventoryIssue, error) {
	var s entity.InventoryIssue
	err := row.Scan(
		&s.ID, &s.RequestLineItemID, &s.RequestID, &s.ItemID, &s.ItemCode, &s.ItemName,
		&s.IssuedQuantity, &s.IssuedByUserID, &s.IssuedByUsername, &s.IssuedToUserID, &s.IssuedToUsername,
		&s.IssuedAt, &s.ItemValue, &s.Purpose, &s.Notes,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create añade un asiento al libro.
func (r *IssueRepo) Create(issue *entity.InventoryIssue) error {
	query := `
		INSERT INTO inventory_issues (
			id, request_line_item_id, request_id, item_id, issued_quantity,
			issued_by_user_id, issued_to_user_id, issued_at, item_value, purpose, notes
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`
	_, err := r.q.Exec(context.Background(), query,
		issue.ID, issue.RequestLineItemID, issue.RequestID, issue.ItemID, issue.IssuedQuantity,
		issue.IssuedByUserID, issue.IssuedToUserID, issue.IssuedAt, issue.ItemValue,
		issue.Purpose, issue.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert issue: %w", err)
	}
	return nil
}

// SumIssuedByLineItem total histórico entregado contra una línea; 0 sin asientos.
func (r *IssueRepo) SumIssuedByLineItem(lineItemID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(issued_quantity), 0)
		FROM inventory_issues WHERE request_line_item_id = $1`
	var sum decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, lineItemID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum issued: %w", err)
	}
	return sum, nil
}

// GetByID obtiene un asiento. Devuelve (nil, nil) si no existe.
func (r *IssueRepo) GetByID(id string) (*entity.InventoryIssue, error) {
	query := `SELECT` + issueColumns + issueJoins + ` WHERE s.id = $1`
	issue, err := scanIssue(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get issue: %w", err)
	}
	return issue, nil
}

// ListAll devuelve el libro completo, del asiento más reciente al más antiguo.
func (r *IssueRepo) ListAll() ([]*entity.InventoryIssue, error) {
	return r.list(`SELECT` + issueColumns + issueJoins + ` ORDER BY s.issued_at DESC`)
}

// ListByItem asientos contra un ítem.
func (r *IssueRepo) ListByItem(itemID string) ([]*entity.InventoryIssue, error) {
	return r.list(`SELECT`+issueColumns+issueJoins+` WHERE s.item_id = $1 ORDER BY s.issued_at DESC`, itemID)
}

// ListByItemCode asientos contra un ítem identificado por código.
func (r *IssueRepo) ListByItemCode(itemCode string) ([]*entity.InventoryIssue, error) {
	return r.list(`SELECT`+issueColumns+issueJoins+` WHERE i.item_code = $1 ORDER BY s.issued_at DESC`, itemCode)
}

// ListByRequest asientos contra una solicitud.
func (r *IssueRepo) ListByRequest(requestID string) ([]*entity.InventoryIssue, error) {
	return r.list(`SELECT`+issueColumns+issueJoins+` WHERE s.request_id = $1 ORDER BY s.issued_at`, requestID)
}

// ListByUser asientos donde el usuario entregó o recibió.
func (r *IssueRepo) ListByUser(userID string) ([]*entity.InventoryIssue, error) {
	return r.list(`SELECT`+issueColumns+issueJoins+`
		WHERE s.issued_by_user_id = $1 OR s.issued_to_user_id = $1
		ORDER BY s.issued_at DESC`, userID)
}

// ListNonMaterialByUser asientos de ítems "Non Materials" recibidos por el usuario.
func (r *IssueRepo) ListNonMaterialByUser(userID string) ([]*entity.InventoryIssue, error) {
	return r.list(`SELECT`+issueColumns+issueJoins+`
		JOIN item_types t ON t.id = i.type_id
		WHERE t.name = $2 AND s.issued_to_user_id = $1
		ORDER BY s.issued_at`, userID, entity.ItemTypeNonMaterial)
}

// DistinctNonMaterialItemNames nombres de ítems "Non Materials" alguna vez entregados.
func (r *IssueRepo) DistinctNonMaterialItemNames() ([]string, error) {
	query := `
		SELECT DISTINCT i.item_name
		FROM inventory_issues s
		JOIN inventory_items i ON i.id = s.item_id
		JOIN item_types t ON t.id = i.type_id
		WHERE t.name = $1
		ORDER BY i.item_name`
	rows, err := r.q.Query(context.Background(), query, entity.ItemTypeNonMaterial)
	if err != nil {
		return nil, fmt.Errorf("distinct non material names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// MaterialDistribution agrupa el libro por ítem clase "Material" para un
// usuario (como entregador o receptor): mes anterior, mes actual y total
// histórico. La agregación corre en la DB, no en memoria.
func (r *IssueRepo) MaterialDistribution(userID string, current, previous repository.MonthYear) ([]repository.MaterialDistributionRow, error) {
	query := `
		SELECT i.id, i.item_name,
			COALESCE(SUM(CASE WHEN EXTRACT(MONTH FROM s.issued_at) = $4 AND EXTRACT(YEAR FROM s.issued_at) = $5
				THEN s.issued_quantity ELSE 0 END), 0) AS previous_month_qty,
			COALESCE(SUM(CASE WHEN EXTRACT(MONTH FROM s.issued_at) = $2 AND EXTRACT(YEAR FROM s.issued_at) = $3
				THEN s.issued_quantity ELSE 0 END), 0) AS current_month_qty,
			COALESCE(SUM(s.issued_quantity), 0) AS total_qty
		FROM inventory_issues s
		JOIN inventory_items i ON i.id = s.item_id
		JOIN item_types t ON t.id = i.type_id
		WHERE t.name = $6 AND (s.issued_by_user_id = $1 OR s.issued_to_user_id = $1)
		GROUP BY i.id, i.item_name
		ORDER BY i.item_name`
	rows, err := r.q.Query(context.Background(), query,
		userID, current.Month, current.Year, previous.Month, previous.Year, entity.ItemTypeMaterial,
	)
	if err != nil {
		return nil, fmt.Errorf("material distribution: %w", err)
	}
	defer rows.Close()

	var out []repository.MaterialDistributionRow
	for rows.Next() {
		var row repository.MaterialDistributionRow
		err := rows.Scan(&row.ItemID, &row.ItemName, &row.PreviousMonthQty, &row.CurrentMonthQty, &row.TotalQty)
		if err != nil {
			return nil, fmt.Errorf("scan distribution row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *IssueRepo) list(query string, args ...any) ([]*entity.InventoryIssue, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}
	defer rows.Close()

	var issues []*entity.InventoryIssue
	for rows.Next() {
		issue, err := scanIssue(rows)
		if err != nil {
			return nil, fmt.Errorf("scan issue: %w", err)
		}
		issues = append(issues, issue)
	}
	return issues, rows.Err()
}
