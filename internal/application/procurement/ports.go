package procurement

import (
	"context"

	"github.com/jhoicas/Almacen-erp/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con los repositorios de
// compras atados a ella. La creación de una solicitud de compra y el marcado
// pending_purchase_request de sus ítems deben confirmar o revertir juntos.
type TxRunner interface {
	RunProcurement(ctx context.Context, fn func(
		purchaseRepo repository.PurchaseRequestRepository,
		grnRepo repository.GRNRepository,
		itemRepo repository.ItemRepository,
	) error) error
}
