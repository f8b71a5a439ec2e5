package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SakshamC12/fliprinventory/internal/domain"
	"github.com/SakshamC12/fliprinventory/internal/domain/entity"
	"github.com/SakshamC12/fliprinventory/internal/domain/repository"
	"github.com/SakshamC12/fliprinventory/internal/infrastructure/memory"
)

func product(id, sku string, qty int64) *entity.Product {
	return &entity.Product{ID: id, SKU: sku, Name: "Producto " + sku, Quantity: qty, InitialQuantity: qty, ReorderLevel: 5, Price: decimal.NewFromInt(10)}
}

func TestStore_SKUDuplicado(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, s.Products().Create(ctx, product("p1", "SKU-1", 1)))
	assert.ErrorIs(t, s.Products().Create(ctx, product("p2", "SKU-1", 1)), domain.ErrDuplicate)
}

func TestStore_RollbackDescartaEscrituras(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, s.Products().Create(ctx, product("p1", "SKU-1", 10)))

	boom := errors.New("boom")
	err := s.Run(ctx, func(movRepo repository.StockMovementRepository, productRepo repository.ProductRepository) error {
		p, err := productRepo.GetForUpdate(ctx, "p1")
		require.NoError(t, err)
		require.NoError(t, movRepo.Create(ctx, &entity.StockMovement{ID: "m1", ProductID: "p1", Direction: entity.DirectionIn, Quantity: 1}))
		ok, err := productRepo.UpdateQuantity(ctx, "p1", p.Quantity, p.Version, 11)
		require.NoError(t, err)
		require.True(t, ok)

		inTx, _ := productRepo.GetByID(ctx, "p1")
		assert.Equal(t, int64(11), inTx.Quantity, "la tx ve sus propias escrituras")
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, _ := s.Products().GetByID(ctx, "p1")
	assert.Equal(t, int64(10), p.Quantity)
	m, _ := s.Movements().GetByID(ctx, "m1")
	assert.Nil(t, m)
}

func TestStore_CommitDetectaVersionObsoleta(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, s.Products().Create(ctx, product("p1", "SKU-1", 10)))

	err := s.Run(ctx, func(_ repository.StockMovementRepository, productRepo repository.ProductRepository) error {
		p, _ := productRepo.GetByID(ctx, "p1") // sin lock
		ok, err := productRepo.UpdateQuantity(ctx, "p1", p.Quantity, p.Version, 8)
		require.True(t, ok)

		// Otra escritura confirmada entre la lectura y el commit.
		won, werr := s.Products().UpdateQuantity(ctx, "p1", 10, p.Version, 7)
		require.NoError(t, werr)
		require.True(t, won)
		return err
	})
	require.ErrorIs(t, err, domain.ErrConcurrentModification)

	p, _ := s.Products().GetByID(ctx, "p1")
	assert.Equal(t, int64(7), p.Quantity)
}

func TestStore_GetForUpdateRespetaCancelacion(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, s.Products().Create(ctx, product("p1", "SKU-1", 10)))

	held := make(chan struct{})
	done := make(chan struct{})
	go func() {
		_ = s.Run(ctx, func(_ repository.StockMovementRepository, productRepo repository.ProductRepository) error {
			_, _ = productRepo.GetForUpdate(ctx, "p1")
			close(held)
			<-done
			return nil
		})
	}()
	<-held

	waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	err := s.Run(waitCtx, func(_ repository.StockMovementRepository, productRepo repository.ProductRepository) error {
		_, err := productRepo.GetForUpdate(waitCtx, "p1")
		return err
	})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	close(done)
}

func TestStore_ListadoDeMovimientosConCursor(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, s.Products().Create(ctx, product("p1", "SKU-1", 0)))
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, s.Movements().Create(ctx, &entity.StockMovement{
			ID: id, ProductID: "p1", Direction: entity.DirectionIn, Quantity: 1,
			CreatedAt: base.Add(time.Duration(i/2) * time.Minute), // pares con el mismo instante
		}))
	}

	all, err := s.Movements().List(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	ids := func(ms []*entity.StockMovement) []string {
		out := make([]string, 0, len(ms))
		for _, m := range ms {
			out = append(out, m.ID)
		}
		return out
	}
	assert.Equal(t, []string{"d", "c", "b", "a"}, ids(all))

	after, err := s.Movements().List(ctx, repository.MovementFilter{
		After: &repository.MovementCursor{CreatedAt: all[1].CreatedAt, ID: all[1].ID},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, ids(after))

	chrono, err := s.Movements().ListByProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(chrono))
}

func TestRevocationStore_ExpiraConElToken(t *testing.T) {
	rs := memory.NewRevocationStore()
	ctx := context.Background()

	require.NoError(t, rs.Revoke(ctx, "jti-1", time.Hour))
	require.NoError(t, rs.Revoke(ctx, "jti-2", 0))

	revoked, err := rs.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = rs.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked, "un token ya expirado no necesita revocarse")
}

func TestReportRepository_ResumenYReposicion(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, s.Products().Create(ctx, product("p1", "A", 0)))  // agotado
	require.NoError(t, s.Products().Create(ctx, product("p2", "B", 3)))  // stock bajo
	require.NoError(t, s.Products().Create(ctx, product("p3", "C", 50))) // normal
	require.NoError(t, s.Products().Create(ctx, product("p4", "D", 1)))
	require.NoError(t, s.Products().Archive(ctx, "p4", time.Now()))

	ov, err := s.Reports().Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, ov.TotalProducts)
	assert.Equal(t, 1, ov.OutOfStock)
	assert.Equal(t, 1, ov.LowStock)
	assert.Equal(t, int64(53), ov.TotalUnits)
	assert.True(t, decimal.NewFromInt(530).Equal(ov.StockValue))

	items, err := s.Reports().BelowReorderLevel(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].SKU, "mayor déficit primero")
	assert.Equal(t, "B", items[1].SKU)
}
