package repository

import (
	"github.com/jhoicas/Almacen-erp/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// MaterialDistributionRow fila cruda de la tabla de distribución de materiales.
// La produce la DB agrupando el libro de entregas; el use case la convierte en DTO.
type MaterialDistributionRow struct {
	ItemID            string
	ItemName          string
	PreviousMonthQty  decimal.Decimal
	CurrentMonthQty   decimal.Decimal
	TotalQty          decimal.Decimal
}

// MonthYear identifica un mes calendario para las sumas del reporte.
type MonthYear struct {
	Month int // 1..12
	Year  int
}

// IssueRepository define el puerto del libro de entregas (append-only).
// Los asientos nunca se actualizan ni borran desde el motor de entregas.
type IssueRepository interface {
	Create(issue *entity.InventoryIssue) error
	// SumIssuedByLineItem devuelve el total histórico entregado contra una
	// línea (0 si no hay asientos). Es la cantidad canónica "ya entregada";
	// no se cachea en ningún otro lugar.
	SumIssuedByLineItem(lineItemID string) (decimal.Decimal, error)
	GetByID(id string) (*entity.InventoryIssue, error)
	ListAll() ([]*entity.InventoryIssue, error)
	ListByItem(itemID string) ([]*entity.InventoryIssue, error)
	ListByItemCode(itemCode string) ([]*entity.InventoryIssue, error)
	ListByRequest(requestID string) ([]*entity.InventoryIssue, error)
	// ListByUser devuelve asientos donde el usuario entregó o recibió.
	ListByUser(userID string) ([]*entity.InventoryIssue, error)
	// ListNonMaterialByUser asientos de ítems "Non Materials" recibidos por el usuario.
	ListNonMaterialByUser(userID string) ([]*entity.InventoryIssue, error)
	// DistinctNonMaterialItemNames nombres de ítems "Non Materials" alguna vez entregados.
	DistinctNonMaterialItemNames() ([]string, error)
	// MaterialDistribution agrupa el libro por ítem clase "Material" para un
	// usuario (como entregador o receptor): mes anterior, mes actual y total
	// histórico, ordenado por nombre de ítem.
	MaterialDistribution(userID string, current, previous MonthYear) ([]MaterialDistributionRow, error)
}
