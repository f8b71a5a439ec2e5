package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SakshamC12/fliprinventory/internal/domain"
)

// unreachableQuerier falla el test si un repositorio llega a consultar la base.
type unreachableQuerier struct {
	t *testing.T
}

func (q unreachableQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	q.t.Fatal("no se esperaba Exec")
	return pgconn.CommandTag{}, nil
}

func (q unreachableQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	q.t.Fatal("no se esperaba Query")
	return nil, nil
}

func (q unreachableQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	q.t.Fatal("no se esperaba QueryRow")
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// IDs mal formados: fila ausente, sin viaje al servidor
// ──────────────────────────────────────────────────────────────────────────────

func TestValidID(t *testing.T) {
	assert.True(t, validID("6f1c2b9e-4a57-4b8e-9d3a-2f0e5c7a1b44"))
	assert.False(t, validID("abc"))
	assert.False(t, validID(""))
}

func TestRepositorios_IDMalFormadoEsFilaAusente(t *testing.T) {
	ctx := context.Background()
	q := unreachableQuerier{t: t}

	p, err := NewProductRepository(q).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = NewProductRepository(q).GetForUpdate(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, p)

	assert.ErrorIs(t, NewProductRepository(q).Archive(ctx, "abc", time.Now()), domain.ErrProductNotFound)

	m, err := NewStockMovementRepository(q).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, m)

	c, err := NewCategoryRepository(q).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, c)
	assert.ErrorIs(t, NewCategoryRepository(q).Delete(ctx, "abc"), domain.ErrNotFound)

	s, err := NewSupplierRepository(q).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, s)
	assert.ErrorIs(t, NewSupplierRepository(q).Delete(ctx, "abc"), domain.ErrNotFound)

	st, err := NewStaffRepository(q).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, st)

	u, err := NewUserRepository(q).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, u)

	act, err := NewReportRepository(q).ActorActivity(ctx, "abc")
	require.NoError(t, err)
	assert.Zero(t, act.MovementsIn+act.MovementsOut)
}
