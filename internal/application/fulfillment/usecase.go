package fulfillment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-erp/internal/application/dto"
	"github.com/jhoicas/Almacen-erp/internal/domain"
	"github.com/jhoicas/Almacen-erp/internal/domain/entity"
	domfulfillment "github.com/jhoicas/Almacen-erp/internal/domain/fulfillment"
	"github.com/jhoicas/Almacen-erp/internal/domain/repository"
)

// UseCase es el motor de entregas: valida cada intento de entrega contra lo
// pendiente y el stock disponible, aplica el débito con bloqueo de fila
// (SELECT FOR UPDATE), escribe el asiento en el libro de entregas, transiciona
// la línea y recomputa el estado agregado de la solicitud — todo dentro de una
// transacción con Commit/Rollback.
type UseCase struct {
	txRunner    TxRunner
	requestRepo repository.RequestRepository
	itemRepo    repository.ItemRepository
	userRepo    repository.UserRepository
}

// NewUseCase construye el motor de entregas.
func NewUseCase(
	txRunner TxRunner,
	requestRepo repository.RequestRepository,
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		requestRepo: requestRepo,
		itemRepo:    itemRepo,
		userRepo:    userRepo,
	}
}

// CreateRequest crea una solicitud de material en PENDING con todas sus líneas
// en PENDING. El solicitante y cada código de ítem deben existir; cada cantidad
// debe ser positiva; la lista no puede estar vacía.
func (uc *UseCase) CreateRequest(ctx context.Context, in dto.CreateRequestInput) (*entity.InventoryRequest, error) {
	requester, err := uc.userRepo.GetByID(in.RequesterUserID)
	if err != nil {
		return nil, err
	}
	if requester == nil {
		return nil, domain.ErrUserNotFound
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	request := &entity.InventoryRequest{
		ID:              uuid.New().String(),
		RequesterUserID: requester.ID,
		RequesterName:   requester.FullName,
		Purpose:         in.Purpose,
		Status:          entity.RequestStatusPending,
		RequestedAt:     now,
	}
	for _, lineIn := range in.Items {
		item, err := uc.itemRepo.GetByCode(lineIn.ItemCode)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrNotFound
		}
		if lineIn.RequestedQuantity.LessThanOrEqual(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		request.LineItems = append(request.LineItems, entity.InventoryRequestLineItem{
			ID:                uuid.New().String(),
			RequestID:         request.ID,
			ItemID:            item.ID,
			ItemCode:          item.ItemCode,
			ItemName:          item.ItemName,
			RequestedQuantity: lineIn.RequestedQuantity,
			Status:            entity.LineItemStatusPending,
		})
	}

	// La solicitud y sus N líneas se insertan en la misma transacción.
	err = uc.txRunner.Run(ctx, func(
		_ repository.ItemRepository,
		requestRepo repository.RequestRepository,
		_ repository.IssueRepository,
	) error {
		return requestRepo.Create(request)
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

// Issue entrega una cantidad contra una línea de solicitud.
//
// Dentro de una sola transacción: bloquea la línea y la fila del ítem,
// deriva lo pendiente sumando el libro de entregas, valida cantidad y stock,
// aplica el débito, escribe el asiento, transiciona la línea
// (ISSUED si lo acumulado cubre lo solicitado, ISSUED_PARTIALLY si no) y
// recomputa el estado agregado de la solicitud. Cualquier fallo revierte todo.
func (uc *UseCase) Issue(ctx context.Context, lineItemID string, in dto.IssueInput) (*entity.InventoryIssue, error) {
	storeKeeper, err := uc.userRepo.GetByID(in.IssuedByUserID)
	if err != nil {
		return nil, err
	}
	if storeKeeper == nil {
		return nil, domain.ErrUserNotFound
	}

	now := time.Now()
	var issue *entity.InventoryIssue
	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		requestRepo repository.RequestRepository,
		issueRepo repository.IssueRepository,
	) error {
		line, err := requestRepo.GetLineItemForUpdate(lineItemID)
		if err != nil {
			return err
		}
		if line == nil {
			return domain.ErrNotFound
		}
		// Una línea ISSUED o NO_STOCK ya no admite entregas;
		// una ISSUED_PARTIALLY sí puede volver a entregarse.
		if line.Status.IsTerminal() {
			return domain.ErrLineItemProcessed
		}

		request, err := requestRepo.GetByID(line.RequestID)
		if err != nil {
			return err
		}
		if request == nil {
			return domain.ErrNotFound
		}

		issue, err = uc.issueLine(itemRepo, requestRepo, issueRepo, line, request, storeKeeper, in.IssuedQuantity, in.IssueNotes, now)
		if err != nil {
			return err
		}

		_, err = uc.recomputeStatus(requestRepo, line.RequestID, storeKeeper, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return issue, nil
}

// IssueBatch entrega contra varias líneas de la misma solicitud en una sola
// transacción. El lote se rechaza completo antes de tocar ninguna línea si
// está vacío o si mezcla solicitudes; un fallo en cualquier línea revierte los
// débitos ya aplicados en el mismo lote. Las líneas se procesan en el orden
// recibido, sin pre-chequeo de que el lote completo sea satisfacible.
func (uc *UseCase) IssueBatch(ctx context.Context, in dto.BatchIssueInput) (*entity.InventoryRequest, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptyBatch
	}
	storeKeeper, err := uc.userRepo.GetByID(in.IssuedByUserID)
	if err != nil {
		return nil, err
	}
	if storeKeeper == nil {
		return nil, domain.ErrUserNotFound
	}

	now := time.Now()
	var updated *entity.InventoryRequest
	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		requestRepo repository.RequestRepository,
		issueRepo repository.IssueRepository,
	) error {
		// Cargar y bloquear todas las líneas y verificar que pertenecen a la
		// misma solicitud antes de aplicar cualquier mutación.
		lines := make([]*entity.InventoryRequestLineItem, 0, len(in.Items))
		var parentID string
		for _, batchLine := range in.Items {
			line, err := requestRepo.GetLineItemForUpdate(batchLine.RequestLineItemID)
			if err != nil {
				return err
			}
			if line == nil {
				return domain.ErrNotFound
			}
			if parentID == "" {
				parentID = line.RequestID
			} else if line.RequestID != parentID {
				return domain.ErrCrossRequestBatch
			}
			lines = append(lines, line)
		}

		request, err := requestRepo.GetByID(parentID)
		if err != nil {
			return err
		}
		if request == nil {
			return domain.ErrNotFound
		}

		for i, line := range lines {
			if _, err := uc.issueLine(itemRepo, requestRepo, issueRepo, line, request, storeKeeper, in.Items[i].IssuedQuantity, in.IssueNotes, now); err != nil {
				return err
			}
		}

		updated, err = uc.recomputeStatus(requestRepo, parentID, storeKeeper, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// MarkNoStock marca una línea PENDING como NO_STOCK (sin mutación de stock) y
// recomputa el estado agregado de la solicitud.
func (uc *UseCase) MarkNoStock(ctx context.Context, lineItemID string, in dto.NoStockInput) (*entity.InventoryRequest, error) {
	storeKeeper, err := uc.userRepo.GetByID(in.StoreKeeperUserID)
	if err != nil {
		return nil, err
	}
	if storeKeeper == nil {
		return nil, domain.ErrUserNotFound
	}

	now := time.Now()
	var updated *entity.InventoryRequest
	err = uc.txRunner.Run(ctx, func(
		_ repository.ItemRepository,
		requestRepo repository.RequestRepository,
		_ repository.IssueRepository,
	) error {
		line, err := requestRepo.GetLineItemForUpdate(lineItemID)
		if err != nil {
			return err
		}
		if line == nil {
			return domain.ErrNotFound
		}
		if line.Status != entity.LineItemStatusPending {
			return domain.ErrLineItemProcessed
		}
		if err := requestRepo.UpdateLineItemStatus(line.ID, entity.LineItemStatusNoStock); err != nil {
			return err
		}
		updated, err = uc.recomputeStatus(requestRepo, line.RequestID, storeKeeper, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// issueLine ejecuta una entrega contra una línea usando repositorios atados a
// la transacción del caller: débito con fila bloqueada, asiento en el libro y
// transición de la línea. No recomputa el estado agregado; eso lo hace el
// caller una vez por operación.
func (uc *UseCase) issueLine(
	itemRepo repository.ItemRepository,
	requestRepo repository.RequestRepository,
	issueRepo repository.IssueRepository,
	line *entity.InventoryRequestLineItem,
	request *entity.InventoryRequest,
	storeKeeper *entity.User,
	quantity decimal.Decimal,
	notes string,
	now time.Time,
) (*entity.InventoryIssue, error) {
	// Bloquea la fila del ítem: serializa entregas concurrentes sobre el mismo stock.
	item, err := itemRepo.GetByIDForUpdate(line.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	// Lo pendiente se deriva siempre del libro, nunca de un campo cacheado.
	alreadyIssued, err := issueRepo.SumIssuedByLineItem(line.ID)
	if err != nil {
		return nil, err
	}
	remaining := line.RequestedQuantity.Sub(alreadyIssued)
	if quantity.LessThanOrEqual(decimal.Zero) || quantity.GreaterThan(remaining) {
		return nil, &domain.InvalidQuantityError{Remaining: remaining}
	}

	if err := domfulfillment.DebitStock(item, quantity); err != nil {
		return nil, err
	}
	item.LastUpdatedByUserID = storeKeeper.ID
	item.LastUpdatedAt = now
	if err := itemRepo.UpdateStock(item); err != nil {
		return nil, err
	}

	issue := &entity.InventoryIssue{
		ID:                uuid.New().String(),
		RequestLineItemID: line.ID,
		RequestID:         request.ID,
		ItemID:            item.ID,
		ItemCode:          item.ItemCode,
		ItemName:          item.ItemName,
		IssuedQuantity:    quantity,
		IssuedByUserID:    storeKeeper.ID,
		IssuedToUserID:    request.RequesterUserID,
		IssuedAt:          now,
		// Valor al precio unitario vigente; cambios de precio posteriores no
		// alteran asientos históricos.
		ItemValue: item.UnitPrice.Mul(quantity),
		Purpose:   request.Purpose,
		Notes:     notes,
	}
	if err := issueRepo.Create(issue); err != nil {
		return nil, err
	}

	newStatus := entity.LineItemStatusIssuedPartially
	if alreadyIssued.Add(quantity).GreaterThanOrEqual(line.RequestedQuantity) {
		newStatus = entity.LineItemStatusIssued
	}
	if err := requestRepo.UpdateLineItemStatus(line.ID, newStatus); err != nil {
		return nil, err
	}
	return issue, nil
}

// recomputeStatus recarga las líneas de la solicitud (fresco, no de una copia
// en memoria posiblemente desactualizada), deriva el estado agregado y lo
// persiste. Al pasar a ISSUED estampa processed_by/processed_at con el usuario
// que disparó la transición. Es idempotente y corre tras cada mutación de línea.
func (uc *UseCase) recomputeStatus(
	requestRepo repository.RequestRepository,
	requestID string,
	processedBy *entity.User,
	now time.Time,
) (*entity.InventoryRequest, error) {
	request, err := requestRepo.GetByID(requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, domain.ErrNotFound
	}

	statuses := make([]entity.LineItemStatus, 0, len(request.LineItems))
	for _, li := range request.LineItems {
		statuses = append(statuses, li.Status)
	}
	request.Status = domfulfillment.DeriveRequestStatus(statuses)
	if request.Status == entity.RequestStatusIssued {
		request.ProcessedByUserID = processedBy.ID
		processedAt := now
		request.ProcessedAt = &processedAt
	}
	if err := requestRepo.UpdateStatus(request); err != nil {
		return nil, err
	}
	return request, nil
}

// GetRequest devuelve una solicitud con sus líneas.
func (uc *UseCase) GetRequest(_ context.Context, requestID string) (*entity.InventoryRequest, error) {
	request, err := uc.requestRepo.GetByID(requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, domain.ErrNotFound
	}
	return request, nil
}

// ListPendingRequests devuelve las solicitudes con estado agregado PENDING.
func (uc *UseCase) ListPendingRequests(_ context.Context) ([]*entity.InventoryRequest, error) {
	return uc.requestRepo.ListByStatus(entity.RequestStatusPending)
}

// ListIssuedRequests devuelve las solicitudes con estado agregado ISSUED.
func (uc *UseCase) ListIssuedRequests(_ context.Context) ([]*entity.InventoryRequest, error) {
	return uc.requestRepo.ListByStatus(entity.RequestStatusIssued)
}
