package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-erp/internal/application/dto"
	"github.com/jhoicas/Almacen-erp/internal/domain"
	"github.com/jhoicas/Almacen-erp/internal/domain/entity"
	"github.com/jhoicas/Almacen-erp/internal/domain/fulfillment"
	"github.com/jhoicas/Almacen-erp/internal/domain/repository"
)

// UseCase administra el catálogo de ítems: altas con código único, ediciones
// parciales, desactivación y ajustes manuales de stock con bloqueo de fila.
type UseCase struct {
	txRunner     TxRunner
	itemRepo     repository.ItemRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
}

func NewUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		itemRepo:     itemRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
	}
}

// CreateItem da de alta un ítem. El código debe ser único; la categoría, el
// tipo y el usuario creador deben existir; stock inicial y precio no pueden
// ser negativos.
func (uc *UseCase) CreateItem(_ context.Context, in dto.CreateItemRequest) (*entity.InventoryItem, error) {
	if in.ItemCode == "" || in.ItemName == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CurrentStockQuantity.IsNegative() || in.UnitPrice.IsNegative() || in.MinimumStockLevel.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.itemRepo.GetByCode(in.ItemCode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrItemCodeAlreadyExists
	}

	creator, err := uc.userRepo.GetByID(in.CreatedByUserID)
	if err != nil {
		return nil, err
	}
	if creator == nil {
		return nil, domain.ErrUserNotFound
	}

	category, err := uc.categoryRepo.GetCategoryByName(in.CategoryName)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	itemType, err := uc.categoryRepo.GetTypeByName(in.TypeName)
	if err != nil {
		return nil, err
	}
	if itemType == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	item := &entity.InventoryItem{
		ID:                   uuid.New().String(),
		ItemCode:             in.ItemCode,
		ItemName:             in.ItemName,
		ItemDescription:      in.ItemDescription,
		UnitOfMeasurement:    in.UnitOfMeasurement,
		CurrentStockQuantity: in.CurrentStockQuantity,
		MinimumStockLevel:    in.MinimumStockLevel,
		LocationInStore:      in.LocationInStore,
		UnitPrice:            in.UnitPrice,
		CategoryID:           category.ID,
		CategoryName:         category.Name,
		TypeID:               itemType.ID,
		TypeName:             itemType.Name,
		IsActive:             true,
		CreatedByUserID:      creator.ID,
		LastUpdatedByUserID:  creator.ID,
		LastUpdatedAt:        now,
		CreatedAt:            now,
	}
	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetItem devuelve un ítem por su código.
func (uc *UseCase) GetItem(_ context.Context, code string) (*entity.InventoryItem, error) {
	item, err := uc.itemRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// UpdateItem aplica una edición parcial: solo los campos presentes se tocan.
func (uc *UseCase) UpdateItem(_ context.Context, code string, in dto.UpdateItemRequest) (*entity.InventoryItem, error) {
	item, err := uc.itemRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	updater, err := uc.userRepo.GetByID(in.UpdatedByUserID)
	if err != nil {
		return nil, err
	}
	if updater == nil {
		return nil, domain.ErrUserNotFound
	}

	if in.ItemName != nil {
		item.ItemName = *in.ItemName
	}
	if in.ItemDescription != nil {
		item.ItemDescription = *in.ItemDescription
	}
	if in.UnitOfMeasurement != nil {
		item.UnitOfMeasurement = *in.UnitOfMeasurement
	}
	if in.MinimumStockLevel != nil {
		if in.MinimumStockLevel.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.MinimumStockLevel = *in.MinimumStockLevel
	}
	if in.LocationInStore != nil {
		item.LocationInStore = *in.LocationInStore
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.UnitPrice = *in.UnitPrice
	}
	if in.CategoryName != nil {
		category, err := uc.categoryRepo.GetCategoryByName(*in.CategoryName)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrNotFound
		}
		item.CategoryID = category.ID
		item.CategoryName = category.Name
	}
	if in.TypeName != nil {
		itemType, err := uc.categoryRepo.GetTypeByName(*in.TypeName)
		if err != nil {
			return nil, err
		}
		if itemType == nil {
			return nil, domain.ErrNotFound
		}
		item.TypeID = itemType.ID
		item.TypeName = itemType.Name
	}
	if in.IsActive != nil {
		item.IsActive = *in.IsActive
	}

	item.LastUpdatedByUserID = updater.ID
	item.LastUpdatedAt = time.Now()
	if err := uc.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeactivateItem marca el ítem como inactivo sin borrarlo: el historial de
// entregas lo sigue referenciando.
func (uc *UseCase) DeactivateItem(ctx context.Context, code, userID string) (*entity.InventoryItem, error) {
	inactive := false
	return uc.UpdateItem(ctx, code, dto.UpdateItemRequest{IsActive: &inactive, UpdatedByUserID: userID})
}

// AdjustStock aplica un ajuste manual (positivo o negativo) sobre la
// existencia, con la fila bloqueada durante el read-modify-write. Un ajuste
// que dejaría negativo un ítem clase Material se rechaza sin mutar nada.
func (uc *UseCase) AdjustStock(ctx context.Context, code string, in dto.AdjustStockRequest) (*entity.InventoryItem, error) {
	if in.QuantityChange.Equal(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	adjuster, err := uc.userRepo.GetByID(in.AdjustingUserID)
	if err != nil {
		return nil, err
	}
	if adjuster == nil {
		return nil, domain.ErrUserNotFound
	}

	var updated *entity.InventoryItem
	err = uc.txRunner.RunItems(ctx, func(itemRepo repository.ItemRepository) error {
		found, err := itemRepo.GetByCode(code)
		if err != nil {
			return err
		}
		if found == nil {
			return domain.ErrNotFound
		}
		item, err := itemRepo.GetByIDForUpdate(found.ID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if err := fulfillment.AdjustStock(item, in.QuantityChange); err != nil {
			return err
		}
		item.LastUpdatedByUserID = adjuster.ID
		item.LastUpdatedAt = time.Now()
		if err := itemRepo.UpdateStock(item); err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ListItems devuelve el catálogo completo.
func (uc *UseCase) ListItems(_ context.Context) ([]*entity.InventoryItem, error) {
	return uc.itemRepo.List()
}

// ListItemsByCategory filtra por nombre de categoría.
func (uc *UseCase) ListItemsByCategory(_ context.Context, categoryName string) ([]*entity.InventoryItem, error) {
	category, err := uc.categoryRepo.GetCategoryByName(categoryName)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return uc.itemRepo.ListByCategory(category.ID)
}

// ListLowStock devuelve los ítems activos en o bajo su nivel mínimo.
func (uc *UseCase) ListLowStock(_ context.Context) ([]*entity.InventoryItem, error) {
	return uc.itemRepo.ListLowStock()
}

// ListCategories y ListTypes exponen los catálogos auxiliares.
func (uc *UseCase) ListCategories(_ context.Context) ([]*entity.ItemCategory, error) {
	return uc.categoryRepo.ListCategories()
}

func (uc *UseCase) ListTypes(_ context.Context) ([]*entity.ItemType, error) {
	return uc.categoryRepo.ListTypes()
}
