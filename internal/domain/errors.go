package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUserNotFound = errors.New("usuario no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
)

// Errores del libro de movimientos (ledger).
var (
	ErrProductNotFound        = errors.New("producto no encontrado")
	ErrInvalidQuantity        = errors.New("cantidad inválida: debe ser un entero positivo")
	ErrInsufficientStock      = errors.New("stock insuficiente")
	ErrConcurrentModification = errors.New("el producto fue modificado por otro movimiento, reintente")
	ErrQuantityMismatch       = errors.New("la cantidad almacenada no coincide con el historial de movimientos")
	ErrStoreUnavailable       = errors.New("almacenamiento no disponible")
)

// IsRetryable indica si el ledger puede reintentar la operación con una lectura nueva.
// Solo ErrConcurrentModification es reintentable; el resto es terminal para la llamada.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConcurrentModification)
}
