package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// OverviewResult conteos generales del inventario (productos no archivados).
type OverviewResult struct {
	TotalProducts int
	LowStock      int // 0 < quantity <= reorder_level
	OutOfStock    int // quantity = 0
	TotalUnits    int64
	StockValue    decimal.Decimal // Σ quantity × price
}

// CategoryCount productos por categoría ("Sin categoría" si no tiene).
type CategoryCount struct {
	CategoryID   string
	CategoryName string
	Products     int
	Units        int64
}

// MovementDay totales diarios de entradas y salidas (serie para gráficos).
type MovementDay struct {
	Day      time.Time
	UnitsIn  int64
	UnitsOut int64
	Count    int
}

// TopMover producto con más unidades de salida en el período.
type TopMover struct {
	ProductID   string
	SKU         string
	ProductName string
	UnitsOut    int64
	Movements   int
}

// ReplenishmentItem producto en o bajo su umbral de reposición.
type ReplenishmentItem struct {
	ProductID    string
	SKU          string
	ProductName  string
	SupplierID   string
	Quantity     int64
	ReorderLevel int64
	Price        decimal.Decimal
}

// ActorActivity movimientos registrados por un actor, por sentido.
type ActorActivity struct {
	MovementsIn  int
	MovementsOut int
	UnitsIn      int64
	UnitsOut     int64
}

// ReportRepository consultas de solo lectura para dashboard y reportes.
type ReportRepository interface {
	Overview(ctx context.Context) (OverviewResult, error)
	ProductsByCategory(ctx context.Context) ([]CategoryCount, error)
	MovementSeries(ctx context.Context, from, to time.Time) ([]MovementDay, error)
	TopMovers(ctx context.Context, from, to time.Time, limit int) ([]TopMover, error)
	// BelowReorderLevel ordena por déficit descendente (reorder_level - quantity).
	BelowReorderLevel(ctx context.Context) ([]ReplenishmentItem, error)
	ActorActivity(ctx context.Context, actorID string) (ActorActivity, error)
}
