package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	goredis "github.com/redis/go-redis/v9"

	"github.com/SakshamC12/fliprinventory/internal/application/inventory"
)

var _ inventory.ProductLocker = (*ProductLocker)(nil)

const (
	lockPrefix   = "ledger:product:"
	lockAttempts = 10
	lockBackoff  = 25 * time.Millisecond
)

// ProductLocker lock por producto entre instancias con redislock.
// Reduce la contención sobre la fila; la transacción sigue siendo la garantía de corrección.
type ProductLocker struct {
	locker *redislock.Client
	ttl    time.Duration
}

// NewProductLocker construye el locker. ttl es la vida máxima del lock si el proceso muere sin liberarlo.
func NewProductLocker(client *goredis.Client, ttl time.Duration) *ProductLocker {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	return &ProductLocker{locker: redislock.New(client), ttl: ttl}
}

// Lock intenta tomar el lock del producto con reintentos acotados.
// Devuelve inventory.ErrLockNotObtained si otro proceso lo mantiene.
func (l *ProductLocker) Lock(ctx context.Context, productID string) (func(), error) {
	lock, err := l.locker.Obtain(ctx, lockPrefix+productID, l.ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(lockBackoff), lockAttempts),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, inventory.ErrLockNotObtained
	}
	if err != nil {
		return nil, fmt.Errorf("obtain product lock: %w", err)
	}
	// La liberación no debe depender de un ctx ya cancelado por el cliente HTTP.
	releaseCtx := context.WithoutCancel(ctx)
	return func() {
		_ = lock.Release(releaseCtx)
	}, nil
}
