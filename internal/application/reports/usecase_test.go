package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-erp/internal/application/reports"
	"github.com/jhoicas/Almacen-erp/internal/domain"
	"github.com/jhoicas/Almacen-erp/internal/domain/entity"
	"github.com/jhoicas/Almacen-erp/internal/domain/repository"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fakeIssueRepo struct {
	issues           []*entity.InventoryIssue
	nonMaterialNames []string
	distribution     []repository.MaterialDistributionRow

	gotUserID   string
	gotCurrent  repository.MonthYear
	gotPrevious repository.MonthYear
}

func (r *fakeIssueRepo) Create(*entity.InventoryIssue) error { return nil }
func (r *fakeIssueRepo) SumIssuedByLineItem(string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}
func (r *fakeIssueRepo) GetByID(string) (*entity.InventoryIssue, error) { return nil, nil }
func (r *fakeIssueRepo) ListAll() ([]*entity.InventoryIssue, error)     { return r.issues, nil }
func (r *fakeIssueRepo) ListByItem(string) ([]*entity.InventoryIssue, error) {
	return nil, nil
}
func (r *fakeIssueRepo) ListByItemCode(string) ([]*entity.InventoryIssue, error) {
	return nil, nil
}
func (r *fakeIssueRepo) ListByRequest(string) ([]*entity.InventoryIssue, error) {
	return nil, nil
}
func (r *fakeIssueRepo) ListByUser(string) ([]*entity.InventoryIssue, error) {
	return r.issues, nil
}
func (r *fakeIssueRepo) ListNonMaterialByUser(string) ([]*entity.InventoryIssue, error) {
	return r.issues, nil
}
func (r *fakeIssueRepo) DistinctNonMaterialItemNames() ([]string, error) {
	return r.nonMaterialNames, nil
}
func (r *fakeIssueRepo) MaterialDistribution(userID string, current, previous repository.MonthYear) ([]repository.MaterialDistributionRow, error) {
	r.gotUserID = userID
	r.gotCurrent = current
	r.gotPrevious = previous
	return r.distribution, nil
}

type fakeUserRepo struct{ users map[string]*entity.User }

func (r *fakeUserRepo) Create(u *entity.User) error { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}
func (r *fakeUserRepo) GetByUsername(string) (*entity.User, error) { return nil, nil }
func (r *fakeUserRepo) Update(*entity.User) error                  { return nil }
func (r *fakeUserRepo) List() ([]*entity.User, error)              { return nil, nil }

func newUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{
		"user-1": {ID: "user-1", Username: "jperez", FullName: "Juan Pérez"},
	}}
}

func issueAt(requestID, itemName, qty string, at time.Time) *entity.InventoryIssue {
	return &entity.InventoryIssue{
		ID:             requestID + "-" + itemName,
		RequestID:      requestID,
		ItemName:       itemName,
		IssuedQuantity: dec(qty),
		IssuedToUserID: "user-1",
		IssuedAt:       at,
	}
}

func TestMaterialDistribution_MesesDeReferencia(t *testing.T) {
	issueRepo := &fakeIssueRepo{
		distribution: []repository.MaterialDistributionRow{
			{ItemID: "item-1", ItemName: "Tubo PVC 50mm", PreviousMonthQty: dec("10"), CurrentMonthQty: dec("20"), TotalQty: dec("55")},
		},
	}
	uc := reports.NewUseCase(issueRepo, newUserRepo())

	refDate := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	rows, err := uc.MaterialDistribution(context.Background(), "user-1", refDate)
	require.NoError(t, err)

	// Enero como mes actual implica diciembre del año anterior como previo.
	assert.Equal(t, repository.MonthYear{Month: 1, Year: 2025}, issueRepo.gotCurrent)
	assert.Equal(t, repository.MonthYear{Month: 12, Year: 2024}, issueRepo.gotPrevious)
	assert.Equal(t, "user-1", issueRepo.gotUserID)

	require.Len(t, rows, 1)
	assert.Equal(t, "Tubo PVC 50mm", rows[0].ItemName)
	assert.True(t, rows[0].TotalQty.Equal(dec("55")))
}

func TestMaterialDistribution_UsuarioInexistente(t *testing.T) {
	uc := reports.NewUseCase(&fakeIssueRepo{}, newUserRepo())
	_, err := uc.MaterialDistribution(context.Background(), "fantasma", time.Now())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestOtherDistributions_AgrupaPorFechaYSolicitud(t *testing.T) {
	day1 := time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, time.March, 7, 16, 30, 0, 0, time.UTC)
	issueRepo := &fakeIssueRepo{
		nonMaterialNames: []string{"Guantes", "Casco"},
		issues: []*entity.InventoryIssue{
			issueAt("req-1", "Guantes", "2", day1),
			issueAt("req-1", "Casco", "1", day1),
			issueAt("req-2", "Guantes", "3", day2),
		},
	}
	uc := reports.NewUseCase(issueRepo, newUserRepo())

	resp, err := uc.OtherDistributions(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, []string{"Casco", "Guantes"}, resp.ItemHeaders)
	require.Len(t, resp.Distributions, 2)

	first := resp.Distributions[0]
	assert.Equal(t, "2025-03-03", first.Date)
	assert.Equal(t, "req-1", first.IssueNumber)
	assert.True(t, first.ItemQuantities["Guantes"].Equal(dec("2")))
	assert.True(t, first.ItemQuantities["Casco"].Equal(dec("1")))

	second := resp.Distributions[1]
	assert.Equal(t, "2025-03-07", second.Date)
	assert.True(t, second.ItemQuantities["Guantes"].Equal(dec("3")))
}

func TestOtherDistributions_AcumulaMismoItemEnGrupo(t *testing.T) {
	day := time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)
	issues := []*entity.InventoryIssue{
		issueAt("req-1", "Guantes", "2", day),
		issueAt("req-1", "Guantes", "5", day.Add(2*time.Hour)),
	}
	// IDs distintos para los dos asientos del mismo ítem.
	issues[1].ID = "req-1-Guantes-2"
	uc := reports.NewUseCase(&fakeIssueRepo{issues: issues, nonMaterialNames: []string{"Guantes"}}, newUserRepo())

	resp, err := uc.OtherDistributions(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, resp.Distributions, 1)
	assert.True(t, resp.Distributions[0].ItemQuantities["Guantes"].Equal(dec("7")))
}
