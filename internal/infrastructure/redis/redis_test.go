package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SakshamC12/fliprinventory/internal/application/inventory"
	"github.com/SakshamC12/fliprinventory/internal/infrastructure/redis"
	"github.com/SakshamC12/fliprinventory/pkg/config"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := redis.NewClient(context.Background(), config.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestNewClient_SinServidor(t *testing.T) {
	_, err := redis.NewClient(context.Background(), config.RedisConfig{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}

func TestRevocationStore_RevocaHastaExpirar(t *testing.T) {
	mr, client := newTestClient(t)
	store := redis.NewRevocationStore(client)
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "jti-1", time.Minute))
	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(2 * time.Minute)
	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked, "la revocación expira con el token")
}

func TestRevocationStore_TokenExpiradoNoSeGuarda(t *testing.T) {
	mr, client := newTestClient(t)
	store := redis.NewRevocationStore(client)

	require.NoError(t, store.Revoke(context.Background(), "jti-2", 0))
	assert.Empty(t, mr.Keys())
}

func TestProductLocker_ExclusionPorProducto(t *testing.T) {
	_, client := newTestClient(t)
	locker := redis.NewProductLocker(client, 5*time.Second)
	ctx := context.Background()

	release, err := locker.Lock(ctx, "p-1")
	require.NoError(t, err)

	_, err = locker.Lock(ctx, "p-1")
	require.ErrorIs(t, err, inventory.ErrLockNotObtained)

	other, err := locker.Lock(ctx, "p-2")
	require.NoError(t, err, "otro producto no comparte lock")
	other()

	release()
	again, err := locker.Lock(ctx, "p-1")
	require.NoError(t, err, "tras liberar se puede volver a tomar")
	again()
}
