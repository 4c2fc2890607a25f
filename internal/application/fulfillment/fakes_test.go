package fulfillment_test

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-erp/internal/domain/entity"
	"github.com/jhoicas/Almacen-erp/internal/domain/repository"
)

// memStore almacén en memoria que implementa los puertos de persistencia del
// motor de entregas. Las solicitudes se reconstruyen desde el mapa de líneas
// en cada GetByID para emular la recarga fresca de la BD.
type memStore struct {
	items     map[string]*entity.InventoryItem
	requests  map[string]*entity.InventoryRequest // cabeceras, sin líneas
	lines     map[string]*entity.InventoryRequestLineItem
	lineOrder map[string][]string // requestID -> IDs de línea en orden de creación
	issues    []*entity.InventoryIssue
	users     map[string]*entity.User
}

func newMemStore() *memStore {
	return &memStore{
		items:     map[string]*entity.InventoryItem{},
		requests:  map[string]*entity.InventoryRequest{},
		lines:     map[string]*entity.InventoryRequestLineItem{},
		lineOrder: map[string][]string{},
		users:     map[string]*entity.User{},
	}
}

// ── repository.ItemRepository (vía memItemRepo) ──────────────────────────────

func (s *memStore) CreateItem(item *entity.InventoryItem) error {
	cp := *item
	s.items[item.ID] = &cp
	return nil
}

func (s *memStore) GetByID(id string) (*entity.InventoryItem, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (s *memStore) GetByCode(code string) (*entity.InventoryItem, error) {
	for _, item := range s.items {
		if item.ItemCode == code {
			cp := *item
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memStore) GetByIDForUpdate(id string) (*entity.InventoryItem, error) {
	return s.GetByID(id)
}

func (s *memStore) UpdateStock(item *entity.InventoryItem) error {
	cp := *item
	s.items[item.ID] = &cp
	return nil
}

func (s *memStore) Update(item *entity.InventoryItem) error { return s.UpdateStock(item) }

func (s *memStore) List() ([]*entity.InventoryItem, error)                  { return nil, nil }
func (s *memStore) ListByCategory(string) ([]*entity.InventoryItem, error)  { return nil, nil }
func (s *memStore) ListLowStock() ([]*entity.InventoryItem, error)          { return nil, nil }
func (s *memStore) SetPendingPurchase([]string, bool) error                 { return nil }

// ── repository.RequestRepository ─────────────────────────────────────────────

type memRequestRepo struct{ s *memStore }

func (r *memRequestRepo) Create(request *entity.InventoryRequest) error {
	header := *request
	header.LineItems = nil
	r.s.requests[request.ID] = &header
	for i := range request.LineItems {
		li := request.LineItems[i]
		r.s.lines[li.ID] = &li
		r.s.lineOrder[request.ID] = append(r.s.lineOrder[request.ID], li.ID)
	}
	return nil
}

func (r *memRequestRepo) GetByID(id string) (*entity.InventoryRequest, error) {
	header, ok := r.s.requests[id]
	if !ok {
		return nil, nil
	}
	cp := *header
	for _, lineID := range r.s.lineOrder[id] {
		cp.LineItems = append(cp.LineItems, *r.s.lines[lineID])
	}
	return &cp, nil
}

func (r *memRequestRepo) ListByStatus(status entity.RequestStatus) ([]*entity.InventoryRequest, error) {
	var out []*entity.InventoryRequest
	ids := make([]string, 0, len(r.s.requests))
	for id := range r.s.requests {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if r.s.requests[id].Status == status {
			req, _ := r.GetByID(id)
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *memRequestRepo) GetLineItem(id string) (*entity.InventoryRequestLineItem, error) {
	line, ok := r.s.lines[id]
	if !ok {
		return nil, nil
	}
	cp := *line
	return &cp, nil
}

func (r *memRequestRepo) GetLineItemForUpdate(id string) (*entity.InventoryRequestLineItem, error) {
	return r.GetLineItem(id)
}

func (r *memRequestRepo) UpdateLineItemStatus(lineItemID string, status entity.LineItemStatus) error {
	r.s.lines[lineItemID].Status = status
	return nil
}

func (r *memRequestRepo) UpdateStatus(request *entity.InventoryRequest) error {
	header := *request
	header.LineItems = nil
	r.s.requests[request.ID] = &header
	return nil
}

// ── repository.IssueRepository ───────────────────────────────────────────────

type memIssueRepo struct{ s *memStore }

func (r *memIssueRepo) Create(issue *entity.InventoryIssue) error {
	cp := *issue
	r.s.issues = append(r.s.issues, &cp)
	return nil
}

func (r *memIssueRepo) SumIssuedByLineItem(lineItemID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, issue := range r.s.issues {
		if issue.RequestLineItemID == lineItemID {
			sum = sum.Add(issue.IssuedQuantity)
		}
	}
	return sum, nil
}

func (r *memIssueRepo) GetByID(id string) (*entity.InventoryIssue, error) {
	for _, issue := range r.s.issues {
		if issue.ID == id {
			cp := *issue
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memIssueRepo) ListAll() ([]*entity.InventoryIssue, error)           { return r.s.issues, nil }
func (r *memIssueRepo) ListByItem(string) ([]*entity.InventoryIssue, error)  { return nil, nil }
func (r *memIssueRepo) ListByItemCode(string) ([]*entity.InventoryIssue, error) {
	return nil, nil
}
func (r *memIssueRepo) ListByRequest(requestID string) ([]*entity.InventoryIssue, error) {
	var out []*entity.InventoryIssue
	for _, issue := range r.s.issues {
		if issue.RequestID == requestID {
			out = append(out, issue)
		}
	}
	return out, nil
}
func (r *memIssueRepo) ListByUser(string) ([]*entity.InventoryIssue, error) { return nil, nil }
func (r *memIssueRepo) ListNonMaterialByUser(string) ([]*entity.InventoryIssue, error) {
	return nil, nil
}
func (r *memIssueRepo) DistinctNonMaterialItemNames() ([]string, error) { return nil, nil }
func (r *memIssueRepo) MaterialDistribution(string, repository.MonthYear, repository.MonthYear) ([]repository.MaterialDistributionRow, error) {
	return nil, nil
}

// ── repository.UserRepository ────────────────────────────────────────────────

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(user *entity.User) error {
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	user, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *user
	return &cp, nil
}

func (r *memUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, user := range r.s.users {
		if strings.EqualFold(user.Username, username) {
			cp := *user
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(user *entity.User) error { return r.Create(user) }
func (r *memUserRepo) List() ([]*entity.User, error)  { return nil, nil }

// ── TxRunner con semántica de rollback ───────────────────────────────────────

// memTxRunner ejecuta fn contra el almacén y restaura un snapshot completo si
// fn falla, emulando el Rollback de la transacción real.
type memTxRunner struct{ s *memStore }

func (t *memTxRunner) Run(_ context.Context, fn func(
	itemRepo repository.ItemRepository,
	requestRepo repository.RequestRepository,
	issueRepo repository.IssueRepository,
) error) error {
	snapshot := t.s.clone()
	if err := fn(&memItemRepo{t.s}, &memRequestRepo{t.s}, &memIssueRepo{t.s}); err != nil {
		t.s.restore(snapshot)
		return err
	}
	return nil
}

// memItemRepo adapta memStore al puerto ItemRepository evitando el choque de
// nombre con el Create de otros puertos.
type memItemRepo struct{ s *memStore }

func (r *memItemRepo) Create(item *entity.InventoryItem) error { return r.s.CreateItem(item) }
func (r *memItemRepo) GetByID(id string) (*entity.InventoryItem, error)  { return r.s.GetByID(id) }
func (r *memItemRepo) GetByCode(code string) (*entity.InventoryItem, error) {
	return r.s.GetByCode(code)
}
func (r *memItemRepo) GetByIDForUpdate(id string) (*entity.InventoryItem, error) {
	return r.s.GetByIDForUpdate(id)
}
func (r *memItemRepo) UpdateStock(item *entity.InventoryItem) error { return r.s.UpdateStock(item) }
func (r *memItemRepo) Update(item *entity.InventoryItem) error      { return r.s.Update(item) }
func (r *memItemRepo) List() ([]*entity.InventoryItem, error)       { return r.s.List() }
func (r *memItemRepo) ListByCategory(id string) ([]*entity.InventoryItem, error) {
	return r.s.ListByCategory(id)
}
func (r *memItemRepo) ListLowStock() ([]*entity.InventoryItem, error) { return r.s.ListLowStock() }
func (r *memItemRepo) SetPendingPurchase(ids []string, pending bool) error {
	return r.s.SetPendingPurchase(ids, pending)
}

func (s *memStore) clone() *memStore {
	cp := newMemStore()
	for id, item := range s.items {
		v := *item
		cp.items[id] = &v
	}
	for id, request := range s.requests {
		v := *request
		cp.requests[id] = &v
	}
	for id, line := range s.lines {
		v := *line
		cp.lines[id] = &v
	}
	for id, order := range s.lineOrder {
		cp.lineOrder[id] = append([]string(nil), order...)
	}
	for _, issue := range s.issues {
		v := *issue
		cp.issues = append(cp.issues, &v)
	}
	for id, user := range s.users {
		v := *user
		cp.users[id] = &v
	}
	return cp
}

func (s *memStore) restore(snapshot *memStore) {
	s.items = snapshot.items
	s.requests = snapshot.requests
	s.lines = snapshot.lines
	s.lineOrder = snapshot.lineOrder
	s.issues = snapshot.issues
	s.users = snapshot.users
}
