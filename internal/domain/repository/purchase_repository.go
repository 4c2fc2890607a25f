package repository

import "github.com/jhoicas/Almacen-erp/internal/domain/entity"

// PurchaseRequestRepository define el puerto de persistencia para solicitudes de compra.
type PurchaseRequestRepository interface {
	// Create persiste la solicitud de compra con sus líneas.
	Create(request *entity.PurchaseRequest) error
	GetByID(id string) (*entity.PurchaseRequest, error)
	List() ([]*entity.PurchaseRequest, error)
	UpdateStatus(id string, status entity.PurchaseStatus) error
}

// GRNRepository define el puerto de persistencia para notas de recepción de mercancía.
type GRNRepository interface {
	Create(grn *entity.GoodsReceivingNote) error
	ListByPurchaseRequest(purchaseRequestID string) ([]*entity.GoodsReceivingNote, error)
}
