package reports

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-erp/internal/application/dto"
	"github.com/jhoicas/Almacen-erp/internal/domain"
	"github.com/jhoicas/Almacen-erp/internal/domain/entity"
	"github.com/jhoicas/Almacen-erp/internal/domain/repository"
)

// UseCase produce los reportes de distribución a partir del libro de entregas.
// No muta nada: el libro es append-only y los reportes son lecturas puras.
type UseCase struct {
	issueRepo repository.IssueRepository
	userRepo  repository.UserRepository
}

func NewUseCase(issueRepo repository.IssueRepository, userRepo repository.UserRepository) *UseCase {
	return &UseCase{issueRepo: issueRepo, userRepo: userRepo}
}

// MaterialDistribution tabla de distribución de materiales para un usuario
// (como entregador o receptor): por cada ítem clase Material, cantidad del mes
// anterior, del mes actual y total histórico. refDate define el "mes actual".
func (uc *UseCase) MaterialDistribution(_ context.Context, userID string, refDate time.Time) ([]dto.MaterialDistributionRow, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	current := repository.MonthYear{Month: int(refDate.Month()), Year: refDate.Year()}
	prevDate := refDate.AddDate(0, -1, 0)
	previous := repository.MonthYear{Month: int(prevDate.Month()), Year: prevDate.Year()}

	rows, err := uc.issueRepo.MaterialDistribution(userID, current, previous)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MaterialDistributionRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.MaterialDistributionRow{
			ItemID:           row.ItemID,
			ItemName:         row.ItemName,
			PreviousMonthQty: row.PreviousMonthQty,
			CurrentMonthQty:  row.CurrentMonthQty,
			TotalQty:         row.TotalQty,
		})
	}
	return out, nil
}

// OtherDistributions reporte de entregas de ítems "Non Materials" recibidas
// por un usuario, agrupadas por fecha y solicitud, con una columna por nombre
// de ítem alguna vez entregado.
func (uc *UseCase) OtherDistributions(_ context.Context, userID string) (*dto.OtherDistributionsResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	headers, err := uc.issueRepo.DistinctNonMaterialItemNames()
	if err != nil {
		return nil, err
	}
	sort.Strings(headers)

	issues, err := uc.issueRepo.ListNonMaterialByUser(userID)
	if err != nil {
		return nil, err
	}

	// Agrupar por (fecha, solicitud); dentro de un grupo, cantidades por ítem.
	type groupKey struct {
		date      string
		requestID string
	}
	groups := map[groupKey]*dto.OtherDistributionRecord{}
	var order []groupKey
	for _, issue := range issues {
		key := groupKey{date: issue.IssuedAt.Format("2006-01-02"), requestID: issue.RequestID}
		record, ok := groups[key]
		if !ok {
			record = &dto.OtherDistributionRecord{
				Date:           key.date,
				IssueNumber:    issue.RequestID,
				ItemQuantities: map[string]decimal.Decimal{},
			}
			groups[key] = record
			order = append(order, key)
		}
		record.ItemQuantities[issue.ItemName] = record.ItemQuantities[issue.ItemName].Add(issue.IssuedQuantity)
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].date != order[j].date {
			return order[i].date < order[j].date
		}
		return order[i].requestID < order[j].requestID
	})

	resp := &dto.OtherDistributionsResponse{ItemHeaders: headers}
	for _, key := range order {
		resp.Distributions = append(resp.Distributions, *groups[key])
	}
	return resp, nil
}

// ListIssuesByUser historial completo de entregas donde el usuario participó.
func (uc *UseCase) ListIssuesByUser(_ context.Context, userID string) ([]*entity.InventoryIssue, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return uc.issueRepo.ListByUser(userID)
}

// ListIssuesByRequest asientos del libro contra una solicitud.
func (uc *UseCase) ListIssuesByRequest(_ context.Context, requestID string) ([]*entity.InventoryIssue, error) {
	return uc.issueRepo.ListByRequest(requestID)
}

// ListIssuesByItemCode asientos del libro contra un ítem por su código.
func (uc *UseCase) ListIssuesByItemCode(_ context.Context, itemCode string) ([]*entity.InventoryIssue, error) {
	return uc.issueRepo.ListByItemCode(itemCode)
}

// ListIssuesByItem asientos del libro contra un ítem por su ID.
func (uc *UseCase) ListIssuesByItem(_ context.Context, itemID string) ([]*entity.InventoryIssue, error) {
	return uc.issueRepo.ListByItem(itemID)
}

// ListAllIssues el libro de entregas completo, más recientes primero.
func (uc *UseCase) ListAllIssues(_ context.Context) ([]*entity.InventoryIssue, error) {
	return uc.issueRepo.ListAll()
}
