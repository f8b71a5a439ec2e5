package inventory

import (
	"context"
	"errors"

	"github.com/SakshamC12/fliprinventory/internal/domain/repository"
)

// TxFunc recibe repositorios atados a la transacción en curso.
type TxFunc func(movRepo repository.StockMovementRepository, productRepo repository.ProductRepository) error

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el ledger: si fn devuelve error o ctx se cancela antes del commit, se hace Rollback.
type TxRunner interface {
	Run(ctx context.Context, fn TxFunc) error
	// RunSnapshot ejecuta fn en una transacción de solo lectura con snapshot consistente.
	RunSnapshot(ctx context.Context, fn TxFunc) error
}

// ErrLockNotObtained el lock de producto está tomado por otro proceso.
var ErrLockNotObtained = errors.New("lock de producto no obtenido")

// ProductLocker lock distribuido por producto. Es best-effort: reduce contención
// entre instancias pero la corrección la garantiza la transacción.
type ProductLocker interface {
	Lock(ctx context.Context, productID string) (release func(), err error)
}
