package reports

import (
	"context"

	"github.com/jhoicas/Almacen-erp/internal/domain/entity"
)

// IssueNotePDFGenerator genera la nota de entrega (PDF) de una solicitud con
// sus asientos del libro de entregas.
type IssueNotePDFGenerator interface {
	GenerateIssueNotePDF(ctx context.Context, request *entity.InventoryRequest, issues []*entity.InventoryIssue) ([]byte, error)
}
