package procurement_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-erp/internal/application/dto"
	"github.com/jhoicas/Almacen-erp/internal/application/procurement"
	"github.com/jhoicas/Almacen-erp/internal/domain"
	"github.com/jhoicas/Almacen-erp/internal/domain/entity"
	"github.com/jhoicas/Almacen-erp/internal/domain/repository"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fakeStore struct {
	purchases map[string]*entity.PurchaseRequest
	grns      []*entity.GoodsReceivingNote
	pending   map[string]bool // itemID -> pending_purchase_request
	users     map[string]*entity.User
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		purchases: map[string]*entity.PurchaseRequest{},
		pending:   map[string]bool{},
		users: map[string]*entity.User{
			"user-bod": {ID: "user-bod", Username: "mrodriguez", Role: entity.RoleBodeguero, IsActive: true},
		},
	}
}

// Puertos de compras.

func (s *fakeStore) Create(request *entity.PurchaseRequest) error {
	cp := *request
	s.purchases[request.ID] = &cp
	return nil
}

func (s *fakeStore) GetByID(id string) (*entity.PurchaseRequest, error) {
	request, ok := s.purchases[id]
	if !ok {
		return nil, nil
	}
	cp := *request
	return &cp, nil
}

func (s *fakeStore) List() ([]*entity.PurchaseRequest, error) {
	out := make([]*entity.PurchaseRequest, 0, len(s.purchases))
	for _, request := range s.purchases {
		out = append(out, request)
	}
	return out, nil
}

func (s *fakeStore) UpdateStatus(id string, status entity.PurchaseStatus) error {
	s.purchases[id].Status = status
	return nil
}

type fakeGRNRepo struct{ s *fakeStore }

func (r *fakeGRNRepo) Create(grn *entity.GoodsReceivingNote) error {
	cp := *grn
	r.s.grns = append(r.s.grns, &cp)
	return nil
}

func (r *fakeGRNRepo) ListByPurchaseRequest(purchaseRequestID string) ([]*entity.GoodsReceivingNote, error) {
	var out []*entity.GoodsReceivingNote
	for _, grn := range r.s.grns {
		if grn.PurchaseRequestID == purchaseRequestID {
			out = append(out, grn)
		}
	}
	return out, nil
}

type fakeItemRepo struct{ s *fakeStore }

func (r *fakeItemRepo) Create(*entity.InventoryItem) error                       { return nil }
func (r *fakeItemRepo) GetByID(string) (*entity.InventoryItem, error)            { return nil, nil }
func (r *fakeItemRepo) GetByCode(string) (*entity.InventoryItem, error)          { return nil, nil }
func (r *fakeItemRepo) GetByIDForUpdate(string) (*entity.InventoryItem, error)   { return nil, nil }
func (r *fakeItemRepo) UpdateStock(*entity.InventoryItem) error                  { return nil }
func (r *fakeItemRepo) Update(*entity.InventoryItem) error                       { return nil }
func (r *fakeItemRepo) List() ([]*entity.InventoryItem, error)                   { return nil, nil }
func (r *fakeItemRepo) ListByCategory(string) ([]*entity.InventoryItem, error)   { return nil, nil }
func (r *fakeItemRepo) ListLowStock() ([]*entity.InventoryItem, error)           { return nil, nil }
func (r *fakeItemRepo) SetPendingPurchase(itemIDs []string, pending bool) error {
	for _, id := range itemIDs {
		r.s.pending[id] = pending
	}
	return nil
}

type fakeUserRepo struct{ s *fakeStore }

func (r *fakeUserRepo) Create(*entity.User) error { return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}
func (r *fakeUserRepo) GetByUsername(string) (*entity.User, error) { return nil, nil }
func (r *fakeUserRepo) Update(*entity.User) error                  { return nil }
func (r *fakeUserRepo) List() ([]*entity.User, error)              { return nil, nil }

type fakeTxRunner struct{ s *fakeStore }

func (t *fakeTxRunner) RunProcurement(_ context.Context, fn func(
	purchaseRepo repository.PurchaseRequestRepository,
	grnRepo repository.GRNRepository,
	itemRepo repository.ItemRepository,
) error) error {
	return fn(t.s, &fakeGRNRepo{t.s}, &fakeItemRepo{t.s})
}

func newUseCase(s *fakeStore) *procurement.UseCase {
	return procurement.NewUseCase(&fakeTxRunner{s}, s, &fakeGRNRepo{s}, &fakeUserRepo{s})
}

func TestCreatePurchaseRequest_CompraDirectaBajoLimite(t *testing.T) {
	s := newFakeStore()
	uc := newUseCase(s)

	request, err := uc.CreatePurchaseRequest(context.Background(), dto.CreatePurchaseRequestInput{
		RefNo:             "PR-2025-001",
		RequestedByUserID: "user-bod",
		Items: []dto.PurchaseLineItemInput{
			{ItemID: "item-1", ItemName: "Tubo PVC 50mm", Quantity: dec("100"), EstimatedPrice: dec("12.50")},
		},
	})
	require.NoError(t, err)

	assert.True(t, request.TotalValue.Equal(dec("1250")))
	assert.Equal(t, entity.PurchaseStatusDirectPurchase, request.Status)
	assert.True(t, s.pending["item-1"], "los ítems quedan marcados pendientes de compra")
}

func TestCreatePurchaseRequest_PendientePorEncimaDelLimite(t *testing.T) {
	s := newFakeStore()
	uc := newUseCase(s)

	request, err := uc.CreatePurchaseRequest(context.Background(), dto.CreatePurchaseRequestInput{
		RefNo:             "PR-2025-002",
		RequestedByUserID: "user-bod",
		Items: []dto.PurchaseLineItemInput{
			{ItemID: "item-1", ItemName: "Bomba sumergible", Quantity: dec("3"), EstimatedPrice: dec("2000")},
		},
	})
	require.NoError(t, err)

	assert.True(t, request.TotalValue.Equal(dec("6000")))
	assert.Equal(t, entity.PurchaseStatusPending, request.Status)
}

func TestCreatePurchaseRequest_LimiteExacto(t *testing.T) {
	s := newFakeStore()
	uc := newUseCase(s)

	request, err := uc.CreatePurchaseRequest(context.Background(), dto.CreatePurchaseRequestInput{
		RefNo:             "PR-2025-003",
		RequestedByUserID: "user-bod",
		Items: []dto.PurchaseLineItemInput{
			{ItemName: "Cemento", Quantity: dec("100"), EstimatedPrice: dec("50")},
		},
	})
	require.NoError(t, err)
	// 5000 exactos aún califica como compra directa.
	assert.Equal(t, entity.PurchaseStatusDirectPurchase, request.Status)
}

func TestCreatePurchaseRequest_SinLineas(t *testing.T) {
	uc := newUseCase(newFakeStore())
	_, err := uc.CreatePurchaseRequest(context.Background(), dto.CreatePurchaseRequestInput{
		RequestedByUserID: "user-bod",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApprove_SoloDesdePendiente(t *testing.T) {
	s := newFakeStore()
	uc := newUseCase(s)

	pending, err := uc.CreatePurchaseRequest(context.Background(), dto.CreatePurchaseRequestInput{
		RefNo:             "PR-2025-004",
		RequestedByUserID: "user-bod",
		Items: []dto.PurchaseLineItemInput{
			{ItemName: "Bomba sumergible", Quantity: dec("3"), EstimatedPrice: dec("2000")},
		},
	})
	require.NoError(t, err)

	approved, err := uc.Approve(context.Background(), pending.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusApproved, approved.Status)

	// Re-aprobar o aprobar una compra directa falla.
	_, err = uc.Approve(context.Background(), pending.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCreateGRN_LimpiaMarcaPendiente(t *testing.T) {
	s := newFakeStore()
	uc := newUseCase(s)

	request, err := uc.CreatePurchaseRequest(context.Background(), dto.CreatePurchaseRequestInput{
		RefNo:             "PR-2025-005",
		RequestedByUserID: "user-bod",
		Items: []dto.PurchaseLineItemInput{
			{ItemID: "item-1", ItemName: "Tubo PVC 50mm", Quantity: dec("100"), EstimatedPrice: dec("12.50")},
		},
	})
	require.NoError(t, err)
	require.True(t, s.pending["item-1"])

	grn, err := uc.CreateGRN(context.Background(), request.ID, dto.CreateGRNInput{
		ReceiptNo:       "GRN-001",
		CreatedByUserID: "user-bod",
		Items: []dto.GRNItemInput{
			{Description: "Tubo PVC 50mm", Quantity: dec("100"), Unit: "unidad"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, request.ID, grn.PurchaseRequestID)
	assert.False(t, s.pending["item-1"], "la recepción limpia la marca de compra pendiente")
}

func TestCheckExistingGRN(t *testing.T) {
	s := newFakeStore()
	uc := newUseCase(s)

	request, err := uc.CreatePurchaseRequest(context.Background(), dto.CreatePurchaseRequestInput{
		RefNo:             "PR-2025-006",
		RequestedByUserID: "user-bod",
		Items: []dto.PurchaseLineItemInput{
			{ItemName: "Cemento", Quantity: dec("10"), EstimatedPrice: dec("50")},
		},
	})
	require.NoError(t, err)

	check, err := uc.CheckExistingGRN(context.Background(), request.ID, "user-bod")
	require.NoError(t, err)
	assert.False(t, check.Exists)

	_, err = uc.CreateGRN(context.Background(), request.ID, dto.CreateGRNInput{
		ReceiptNo:       "GRN-002",
		CreatedByUserID: "user-bod",
		Items:           []dto.GRNItemInput{{Description: "Cemento", Quantity: dec("10"), Unit: "saco"}},
	})
	require.NoError(t, err)

	check, err = uc.CheckExistingGRN(context.Background(), request.ID, "user-bod")
	require.NoError(t, err)
	assert.True(t, check.Exists)
	require.NotNil(t, check.GRN)
	assert.Equal(t, "GRN-002", check.GRN.ReceiptNo)
}
