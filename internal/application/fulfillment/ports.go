package fulfillment

import (
	"context"

	"github.com/jhoicas/Almacen-erp/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// entregas: débito de stock, asiento del libro, transición de la línea y
// recomputación del estado agregado, o todo o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		requestRepo repository.RequestRepository,
		issueRepo repository.IssueRepository,
	) error) error
}
