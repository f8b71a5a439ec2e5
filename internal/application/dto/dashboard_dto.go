package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OverviewDTO respuesta de GET /api/reports/overview.
type OverviewDTO struct {
	TotalProducts int                `json:"total_products"`
	LowStock      int                `json:"low_stock"`    // 0 < quantity <= reorder_level
	OutOfStock    int                `json:"out_of_stock"` // quantity = 0
	TotalUnits    int64              `json:"total_units"`
	StockValue    decimal.Decimal    `json:"stock_value"` // Σ quantity × price
	ByCategory    []CategoryCountDTO `json:"by_category"`
}

// CategoryCountDTO productos y unidades por categoría.
type CategoryCountDTO struct {
	CategoryID   string `json:"category_id,omitempty"`
	CategoryName string `json:"category_name"`
	Products     int    `json:"products"`
	Units        int64  `json:"units"`
}

// ReportRangeRequest rango de fechas (YYYY-MM-DD, inclusivo). Vacío = últimos 30 días.
type ReportRangeRequest struct {
	From  string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To    string `query:"to" validate:"omitempty,datetime=2006-01-02"`
	Limit int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

// MovementDayDTO totales de un día para el gráfico de movimientos.
type MovementDayDTO struct {
	Day      string `json:"day"` // YYYY-MM-DD
	UnitsIn  int64  `json:"units_in"`
	UnitsOut int64  `json:"units_out"`
	Count    int    `json:"count"`
}

// MovementSeriesDTO respuesta de GET /api/reports/movements.
type MovementSeriesDTO struct {
	From string           `json:"from"`
	To   string           `json:"to"`
	Days []MovementDayDTO `json:"days"`
}

// TopMoverDTO producto con más salidas en el período.
type TopMoverDTO struct {
	ProductID   string `json:"product_id"`
	SKU         string `json:"sku"`
	ProductName string `json:"product_name"`
	UnitsOut    int64  `json:"units_out"`
	Movements   int    `json:"movements"`
}

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// KPIs del inventario, actividad de los últimos 7 días, top 5 de salidas y reposición pendiente.
type DashboardSummaryDTO struct {
	Overview          OverviewDTO      `json:"overview"`
	LastWeek          []MovementDayDTO `json:"last_week"`
	TopMovers         []TopMoverDTO    `json:"top_movers"`
	ReplenishmentSize int              `json:"replenishment_size"`
	GeneratedAt       time.Time        `json:"generated_at"`
}

// ActorActivityDTO respuesta de GET /api/dashboard/me: movimientos registrados por quien consulta.
type ActorActivityDTO struct {
	ActorID      string `json:"actor_id"`
	MovementsIn  int    `json:"movements_in"`
	MovementsOut int    `json:"movements_out"`
	UnitsIn      int64  `json:"units_in"`
	UnitsOut     int64  `json:"units_out"`
}
