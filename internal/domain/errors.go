package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrUsernameAlreadyExists = errors.New("el nombre de usuario ya está registrado")
	ErrItemCodeAlreadyExists = errors.New("el código de ítem ya está registrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrInvalidQuantity       = errors.New("cantidad a entregar inválida")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrNegativeStock         = errors.New("el stock no puede quedar negativo")
	ErrLineItemProcessed     = errors.New("la línea de solicitud ya fue procesada")
	ErrEmptyBatch            = errors.New("el lote de entrega no puede estar vacío")
	ErrCrossRequestBatch     = errors.New("todas las líneas del lote deben pertenecer a la misma solicitud")
	ErrInvalidTransition     = errors.New("transición de estado inválida")
)

// InvalidQuantityError indica una cantidad de entrega fuera de rango.
// Incluye la cantidad pendiente para que el solicitante pueda corregir.
type InvalidQuantityError struct {
	Remaining decimal.Decimal
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("la cantidad a entregar debe ser positiva y no exceder lo pendiente (%s)", e.Remaining)
}

func (e *InvalidQuantityError) Unwrap() error { return ErrInvalidQuantity }

// InsufficientStockError indica que el stock disponible no cubre el débito solicitado.
type InsufficientStockError struct {
	ItemCode  string
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para el ítem '%s': disponible %s, solicitado %s",
		e.ItemCode, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
