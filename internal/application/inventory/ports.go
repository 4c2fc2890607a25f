package inventory

import (
	"context"

	"github.com/jhoicas/Almacen-erp/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con un repositorio de ítems
// atado a ella. Lo usa el ajuste manual de stock para leer con bloqueo de fila
// y escribir en la misma transacción.
type TxRunner interface {
	RunItems(ctx context.Context, fn func(itemRepo repository.ItemRepository) error) error
}
