package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/SakshamC12/fliprinventory/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para dashboard y reportes.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// Overview conteos generales del catálogo activo.
// Usa COALESCE para devolver cero si no hay productos.
func (r *ReportRepo) Overview(ctx context.Context) (repository.OverviewResult, error) {
	const query = `
	SELECT
	    COUNT(*)                                                          AS total_products,
	    COUNT(*) FILTER (WHERE quantity > 0 AND quantity <= reorder_level) AS low_stock,
	    COUNT(*) FILTER (WHERE quantity = 0)                              AS out_of_stock,
	    COALESCE(SUM(quantity), 0)::BIGINT                                AS total_units,
	    COALESCE(SUM(quantity * price), 0)                                AS stock_value
	FROM products
	WHERE archived_at IS NULL`

	var res repository.OverviewResult
	err := r.q.QueryRow(ctx, query).Scan(
		&res.TotalProducts, &res.LowStock, &res.OutOfStock, &res.TotalUnits, &res.StockValue)
	if err != nil {
		return repository.OverviewResult{}, mapError("reports.Overview", err)
	}
	return res, nil
}

// ProductsByCategory productos y unidades por categoría; los productos sin categoría
// se consolidan en "Sin categoría".
func (r *ReportRepo) ProductsByCategory(ctx context.Context) ([]repository.CategoryCount, error) {
	const query = `
	SELECT
	    COALESCE(c.id::TEXT, '')              AS category_id,
	    COALESCE(c.name, 'Sin categoría')     AS category_name,
	    COUNT(p.id)                           AS products,
	    COALESCE(SUM(p.quantity), 0)::BIGINT  AS units
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
	WHERE p.archived_at IS NULL
	GROUP BY c.id, c.name
	ORDER BY products DESC, category_name ASC`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, mapError("reports.ProductsByCategory", err)
	}
	defer rows.Close()

	results := make([]repository.CategoryCount, 0)
	for rows.Next() {
		var row repository.CategoryCount
		if err := rows.Scan(&row.CategoryID, &row.CategoryName, &row.Products, &row.Units); err != nil {
			return nil, fmt.Errorf("reports.ProductsByCategory scan: %w", err)
		}
		results = append(results, row)
	}
	return results, mapError("reports.ProductsByCategory", rows.Err())
}

// MovementSeries totales diarios (UTC) de entradas y salidas en [from, to].
// Solo devuelve días con movimientos.
func (r *ReportRepo) MovementSeries(ctx context.Context, from, to time.Time) ([]repository.MovementDay, error) {
	const query = `
	SELECT
	    date_trunc('day', created_at AT TIME ZONE 'UTC')                    AS day,
	    COALESCE(SUM(quantity) FILTER (WHERE direction = 'IN'),  0)::BIGINT AS units_in,
	    COALESCE(SUM(quantity) FILTER (WHERE direction = 'OUT'), 0)::BIGINT AS units_out,
	    COUNT(*)                                                           AS movements
	FROM stock_movements
	WHERE created_at BETWEEN $1 AND $2
	GROUP BY day
	ORDER BY day ASC`

	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, mapError("reports.MovementSeries", err)
	}
	defer rows.Close()

	results := make([]repository.MovementDay, 0)
	for rows.Next() {
		var row repository.MovementDay
		if err := rows.Scan(&row.Day, &row.UnitsIn, &row.UnitsOut, &row.Count); err != nil {
			return nil, fmt.Errorf("reports.MovementSeries scan: %w", err)
		}
		row.Day = time.Date(row.Day.Year(), row.Day.Month(), row.Day.Day(), 0, 0, 0, 0, time.UTC)
		results = append(results, row)
	}
	return results, mapError("reports.MovementSeries", rows.Err())
}

// TopMovers los `limit` productos con más unidades de salida en el período.
func (r *ReportRepo) TopMovers(ctx context.Context, from, to time.Time, limit int) ([]repository.TopMover, error) {
	const query = `
	SELECT
	    p.id             AS product_id,
	    p.sku,
	    p.name           AS product_name,
	    SUM(m.quantity)::BIGINT AS units_out,
	    COUNT(*)         AS movements
	FROM stock_movements m
	JOIN products p ON p.id = m.product_id
	WHERE m.direction = 'OUT'
	  AND m.created_at BETWEEN $1 AND $2
	GROUP BY p.id, p.sku, p.name
	ORDER BY units_out DESC, p.sku ASC
	LIMIT $3`

	rows, err := r.q.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, mapError("reports.TopMovers", err)
	}
	defer rows.Close()

	results := make([]repository.TopMover, 0)
	for rows.Next() {
		var row repository.TopMover
		if err := rows.Scan(&row.ProductID, &row.SKU, &row.ProductName, &row.UnitsOut, &row.Movements); err != nil {
			return nil, fmt.Errorf("reports.TopMovers scan: %w", err)
		}
		results = append(results, row)
	}
	return results, mapError("reports.TopMovers", rows.Err())
}

// BelowReorderLevel productos activos en o bajo su umbral (> 0), mayor déficit primero.
func (r *ReportRepo) BelowReorderLevel(ctx context.Context) ([]repository.ReplenishmentItem, error) {
	const query = `
	SELECT
	    p.id,
	    p.sku,
	    p.name,
	    COALESCE(p.supplier_id::TEXT, '') AS supplier_id,
	    p.quantity,
	    p.reorder_level,
	    p.price
	FROM products p
	WHERE p.archived_at IS NULL
	  AND p.reorder_level > 0
	  AND p.quantity <= p.reorder_level
	ORDER BY (p.reorder_level - p.quantity) DESC, p.sku ASC`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, mapError("reports.BelowReorderLevel", err)
	}
	defer rows.Close()

	results := make([]repository.ReplenishmentItem, 0)
	for rows.Next() {
		var row repository.ReplenishmentItem
		if err := rows.Scan(&row.ProductID, &row.SKU, &row.ProductName, &row.SupplierID,
			&row.Quantity, &row.ReorderLevel, &row.Price); err != nil {
			return nil, fmt.Errorf("reports.BelowReorderLevel scan: %w", err)
		}
		results = append(results, row)
	}
	return results, mapError("reports.BelowReorderLevel", rows.Err())
}

// ActorActivity conteos y unidades por sentido de los movimientos de un actor.
func (r *ReportRepo) ActorActivity(ctx context.Context, actorID string) (repository.ActorActivity, error) {
	var res repository.ActorActivity
	if !validID(actorID) {
		return res, nil
	}
	const query = `
	SELECT
	    COUNT(*) FILTER (WHERE direction = 'IN')                            AS movements_in,
	    COUNT(*) FILTER (WHERE direction = 'OUT')                           AS movements_out,
	    COALESCE(SUM(quantity) FILTER (WHERE direction = 'IN'),  0)::BIGINT AS units_in,
	    COALESCE(SUM(quantity) FILTER (WHERE direction = 'OUT'), 0)::BIGINT AS units_out
	FROM stock_movements
	WHERE actor_id = $1`

	err := r.q.QueryRow(ctx, query, actorID).Scan(&res.MovementsIn, &res.MovementsOut, &res.UnitsIn, &res.UnitsOut)
	return res, mapError("reports.ActorActivity", err)
}
