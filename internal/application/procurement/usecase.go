package procurement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-erp/internal/application/dto"
	"github.com/jhoicas/Almacen-erp/internal/domain"
	"github.com/jhoicas/Almacen-erp/internal/domain/entity"
	"github.com/jhoicas/Almacen-erp/internal/domain/repository"
)

// DirectPurchaseLimit valor total hasta el cual una solicitud de compra pasa
// directo a DIRECT_PURCHASE sin circuito de aprobación.
var DirectPurchaseLimit = decimal.NewFromInt(5000)

// UseCase gestiona las solicitudes de compra que cubren faltantes del almacén
// y las notas de recepción de mercancía (GRN) que las cierran.
type UseCase struct {
	txRunner     TxRunner
	purchaseRepo repository.PurchaseRequestRepository
	grnRepo      repository.GRNRepository
	userRepo     repository.UserRepository
}

func NewUseCase(
	txRunner TxRunner,
	purchaseRepo repository.PurchaseRequestRepository,
	grnRepo repository.GRNRepository,
	userRepo repository.UserRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		purchaseRepo: purchaseRepo,
		grnRepo:      grnRepo,
		userRepo:     userRepo,
	}
}

// CreatePurchaseRequest crea una solicitud de compra y marca sus ítems con
// pending_purchase_request, todo en una transacción. El valor total se deriva
// de las líneas; si no supera el límite de compra directa la solicitud nace
// en DIRECT_PURCHASE, si no en PENDING a la espera de aprobación.
func (uc *UseCase) CreatePurchaseRequest(ctx context.Context, in dto.CreatePurchaseRequestInput) (*entity.PurchaseRequest, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	requester, err := uc.userRepo.GetByID(in.RequestedByUserID)
	if err != nil {
		return nil, err
	}
	if requester == nil {
		return nil, domain.ErrUserNotFound
	}

	request := &entity.PurchaseRequest{
		ID:                uuid.New().String(),
		RefNo:             in.RefNo,
		Division:          in.Division,
		SubDivision:       in.SubDivision,
		Programme:         in.Programme,
		Project:           in.Project,
		Object:            in.Object,
		RequestedByUserID: requester.ID,
		RequestedAt:       time.Now(),
	}

	total := decimal.Zero
	itemIDs := make([]string, 0, len(in.Items))
	for _, lineIn := range in.Items {
		if lineIn.Quantity.LessThanOrEqual(decimal.Zero) || lineIn.EstimatedPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		total = total.Add(lineIn.Quantity.Mul(lineIn.EstimatedPrice))
		if lineIn.ItemID != "" {
			itemIDs = append(itemIDs, lineIn.ItemID)
		}
		request.Items = append(request.Items, entity.PurchaseRequestLineItem{
			ID:                uuid.New().String(),
			PurchaseRequestID: request.ID,
			ItemID:            lineIn.ItemID,
			ItemName:          lineIn.ItemName,
			Quantity:          lineIn.Quantity,
			EstimatedPrice:    lineIn.EstimatedPrice,
		})
	}
	request.TotalValue = total
	if total.LessThanOrEqual(DirectPurchaseLimit) {
		request.Status = entity.PurchaseStatusDirectPurchase
	} else {
		request.Status = entity.PurchaseStatusPending
	}

	err = uc.txRunner.RunProcurement(ctx, func(
		purchaseRepo repository.PurchaseRequestRepository,
		_ repository.GRNRepository,
		itemRepo repository.ItemRepository,
	) error {
		if err := purchaseRepo.Create(request); err != nil {
			return err
		}
		return itemRepo.SetPendingPurchase(itemIDs, true)
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

// Approve pasa una solicitud PENDING a APPROVED. Cualquier otro estado de
// partida se rechaza.
func (uc *UseCase) Approve(_ context.Context, purchaseRequestID string) (*entity.PurchaseRequest, error) {
	request, err := uc.purchaseRepo.GetByID(purchaseRequestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, domain.ErrNotFound
	}
	if request.Status != entity.PurchaseStatusPending {
		return nil, domain.ErrInvalidTransition
	}
	if err := uc.purchaseRepo.UpdateStatus(request.ID, entity.PurchaseStatusApproved); err != nil {
		return nil, err
	}
	request.Status = entity.PurchaseStatusApproved
	return request, nil
}

// CreateGRN registra la nota de recepción contra una solicitud de compra y
// limpia la marca pending_purchase_request de los ítems de la solicitud, en
// una transacción.
func (uc *UseCase) CreateGRN(ctx context.Context, purchaseRequestID string, in dto.CreateGRNInput) (*entity.GoodsReceivingNote, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	creator, err := uc.userRepo.GetByID(in.CreatedByUserID)
	if err != nil {
		return nil, err
	}
	if creator == nil {
		return nil, domain.ErrUserNotFound
	}
	request, err := uc.purchaseRepo.GetByID(purchaseRequestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, domain.ErrNotFound
	}

	grn := &entity.GoodsReceivingNote{
		ID:                 uuid.New().String(),
		ReceiptNo:          in.ReceiptNo,
		ReceivingStation:   in.ReceivingStation,
		ReferenceOrderNo:   in.ReferenceOrderNo,
		ReferenceOrderDate: in.ReferenceOrderDate,
		IssuingOfficer:     in.IssuingOfficer,
		Station:            in.Station,
		PurchaseRequestID:  request.ID,
		CreatedByUserID:    creator.ID,
		CreatedAt:          time.Now(),
	}
	for _, itemIn := range in.Items {
		grn.Items = append(grn.Items, entity.GoodsReceivingItem{
			ID:          uuid.New().String(),
			GRNID:       grn.ID,
			Description: itemIn.Description,
			Quantity:    itemIn.Quantity,
			Unit:        itemIn.Unit,
		})
	}

	itemIDs := make([]string, 0, len(request.Items))
	for _, line := range request.Items {
		if line.ItemID != "" {
			itemIDs = append(itemIDs, line.ItemID)
		}
	}

	err = uc.txRunner.RunProcurement(ctx, func(
		_ repository.PurchaseRequestRepository,
		grnRepo repository.GRNRepository,
		itemRepo repository.ItemRepository,
	) error {
		if err := grnRepo.Create(grn); err != nil {
			return err
		}
		// La mercancía llegó: los ítems dejan de estar pendientes de compra.
		return itemRepo.SetPendingPurchase(itemIDs, false)
	})
	if err != nil {
		return nil, err
	}
	return grn, nil
}

// CheckExistingGRN indica si el usuario ya registró una nota de recepción
// para la solicitud de compra.
func (uc *UseCase) CheckExistingGRN(_ context.Context, purchaseRequestID, userID string) (*dto.GRNCheckResponse, error) {
	grns, err := uc.grnRepo.ListByPurchaseRequest(purchaseRequestID)
	if err != nil {
		return nil, err
	}
	for _, grn := range grns {
		if grn.CreatedByUserID == userID {
			resp := &dto.GRNCheckResponse{Exists: true, GRN: &dto.CreateGRNInput{
				ReceiptNo:          grn.ReceiptNo,
				ReceivingStation:   grn.ReceivingStation,
				ReferenceOrderNo:   grn.ReferenceOrderNo,
				ReferenceOrderDate: grn.ReferenceOrderDate,
				IssuingOfficer:     grn.IssuingOfficer,
				Station:            grn.Station,
				CreatedByUserID:    grn.CreatedByUserID,
			}}
			return resp, nil
		}
	}
	return &dto.GRNCheckResponse{Exists: false}, nil
}

// GetPurchaseRequest devuelve una solicitud de compra con sus líneas.
func (uc *UseCase) GetPurchaseRequest(_ context.Context, id string) (*entity.PurchaseRequest, error) {
	request, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, domain.ErrNotFound
	}
	return request, nil
}

// ListPurchaseRequests devuelve todas las solicitudes de compra.
func (uc *UseCase) ListPurchaseRequests(_ context.Context) ([]*entity.PurchaseRequest, error) {
	return uc.purchaseRepo.List()
}
