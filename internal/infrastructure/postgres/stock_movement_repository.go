package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/SakshamC12/fliprinventory/internal/domain/entity"
	"github.com/SakshamC12/fliprinventory/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, product_id, direction, quantity, actor_id, actor_kind, note,
	previous_quantity, resulting_quantity, created_at`

// StockMovementRepo ledger sobre PostgreSQL (usable con pool o tx). Solo INSERT y SELECT.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento con su snapshot de cantidades.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, direction, quantity, actor_id, actor_kind, note,
			previous_quantity, resulting_quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, string(m.Direction), m.Quantity, m.ActorID, m.ActorKind, m.Note,
		m.PreviousQuantity, m.ResultingQuantity, m.CreatedAt,
	)
	return mapError("insert stock movement", err)
}

// GetByID obtiene un movimiento por ID. (nil, nil) si no existe.
func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	if !validID(id) {
		return nil, nil
	}
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM stock_movements WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get stock movement", err)
	}
	return m, nil
}

// List filtra el historial; orden created_at DESC, id DESC.
func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	query, args := buildMovementQuery(f)
	return r.list(ctx, "list stock movements", query, args...)
}

// ListByProduct historial completo de un producto en orden cronológico (conciliación).
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error) {
	return r.list(ctx, "list stock movements by product",
		`SELECT `+movementColumns+` FROM stock_movements WHERE product_id = $1 ORDER BY created_at ASC, id ASC`,
		productID)
}

func (r *StockMovementRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(op, err)
	}
	defer rows.Close()
	list := make([]*entity.StockMovement, 0)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, mapError(op, rows.Err())
}

// buildMovementQuery arma el SELECT del historial con placeholders posicionales.
// El cursor (After) usa comparación de filas para paginar por keyset sobre el índice (created_at, id).
func buildMovementQuery(f repository.MovementFilter) (string, []any) {
	var (
		sb   strings.Builder
		args []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		fmt.Fprintf(&sb, " AND "+cond, len(args))
	}
	sb.WriteString(`SELECT ` + movementColumns + ` FROM stock_movements WHERE 1=1`)
	if f.ProductID != "" {
		add("product_id = $%d", f.ProductID)
	}
	if f.ActorID != "" {
		add("actor_id = $%d", f.ActorID)
	}
	if f.Direction != "" {
		add("direction = $%d", string(f.Direction))
	}
	if f.From != nil {
		add("created_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("created_at <= $%d", *f.To)
	}
	if f.After != nil {
		args = append(args, f.After.CreatedAt, f.After.ID)
		fmt.Fprintf(&sb, " AND (created_at, id) < ($%d, $%d)", len(args)-1, len(args))
	}
	sb.WriteString(" ORDER BY created_at DESC, id DESC")
	if f.Limit > 0 {
		args = append(args, f.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	}
	return sb.String(), args
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var (
		m   entity.StockMovement
		dir string
	)
	if err := row.Scan(
		&m.ID, &m.ProductID, &dir, &m.Quantity, &m.ActorID, &m.ActorKind, &m.Note,
		&m.PreviousQuantity, &m.ResultingQuantity, &m.CreatedAt,
	); err != nil {
		return nil, err
	}
	m.Direction = entity.Direction(dir)
	return &m, nil
}
