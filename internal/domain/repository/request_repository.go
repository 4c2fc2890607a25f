package repository

import "github.com/jhoicas/Almacen-erp/internal/domain/entity"

// RequestRepository define el puerto de persistencia para solicitudes de
// material y sus líneas. Las líneas viven y mueren con la solicitud; nunca se
// crean ni eliminan por separado.
type RequestRepository interface {
	// Create persiste la solicitud con todas sus líneas.
	Create(request *entity.InventoryRequest) error
	// GetByID devuelve la solicitud con sus líneas, o nil si no existe.
	GetByID(id string) (*entity.InventoryRequest, error)
	ListByStatus(status entity.RequestStatus) ([]*entity.InventoryRequest, error)
	GetLineItem(id string) (*entity.InventoryRequestLineItem, error)
	// GetLineItemForUpdate bloquea la fila de la línea (SELECT FOR UPDATE) para
	// serializar entregas concurrentes contra la misma línea.
	GetLineItemForUpdate(id string) (*entity.InventoryRequestLineItem, error)
	UpdateLineItemStatus(lineItemID string, status entity.LineItemStatus) error
	// UpdateStatus persiste estado agregado y processed_by/processed_at.
	UpdateStatus(request *entity.InventoryRequest) error
}
