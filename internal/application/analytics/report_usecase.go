// Package analytics contiene los casos de uso de reportes del inventario y el dashboard.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/SakshamC12/fliprinventory/internal/application/dto"
	"github.com/SakshamC12/fliprinventory/internal/domain"
	"github.com/SakshamC12/fliprinventory/internal/domain/repository"
)

const (
	dayLayout        = "2006-01-02"
	defaultRangeDays = 30
	defaultTopMovers = 10
	maxRangeDays     = 366
)

// ReportUseCase reportes de solo lectura sobre catálogo y movimientos.
type ReportUseCase struct {
	reportRepo repository.ReportRepository
	now        func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(reportRepo repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{reportRepo: reportRepo, now: time.Now}
}

// Overview KPIs del inventario con el desglose por categoría.
func (uc *ReportUseCase) Overview(ctx context.Context) (*dto.OverviewDTO, error) {
	ov, err := uc.reportRepo.Overview(ctx)
	if err != nil {
		return nil, fmt.Errorf("reportes: overview: %w", err)
	}
	cats, err := uc.reportRepo.ProductsByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("reportes: categorías: %w", err)
	}
	out := toOverviewDTO(ov)
	out.ByCategory = make([]dto.CategoryCountDTO, 0, len(cats))
	for _, c := range cats {
		out.ByCategory = append(out.ByCategory, dto.CategoryCountDTO{
			CategoryID:   c.CategoryID,
			CategoryName: c.CategoryName,
			Products:     c.Products,
			Units:        c.Units,
		})
	}
	return out, nil
}

// MovementSeries totales diarios de entradas y salidas en el rango (por defecto últimos 30 días).
func (uc *ReportUseCase) MovementSeries(ctx context.Context, req dto.ReportRangeRequest) (*dto.MovementSeriesDTO, error) {
	from, to, err := uc.resolveRange(req)
	if err != nil {
		return nil, err
	}
	days, err := uc.reportRepo.MovementSeries(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("reportes: serie de movimientos: %w", err)
	}
	return &dto.MovementSeriesDTO{
		From: from.Format(dayLayout),
		To:   to.Format(dayLayout),
		Days: toDayDTOs(days),
	}, nil
}

// TopMovers productos con más unidades de salida en el rango.
func (uc *ReportUseCase) TopMovers(ctx context.Context, req dto.ReportRangeRequest) ([]dto.TopMoverDTO, error) {
	from, to, err := uc.resolveRange(req)
	if err != nil {
		return nil, err
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultTopMovers
	}
	movers, err := uc.reportRepo.TopMovers(ctx, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("reportes: top de salidas: %w", err)
	}
	return toTopMoverDTOs(movers), nil
}

// resolveRange interpreta from/to como días UTC inclusivos; to se extiende al final del día.
func (uc *ReportUseCase) resolveRange(req dto.ReportRangeRequest) (time.Time, time.Time, error) {
	today := truncateDay(uc.now().UTC())
	to := today
	if req.To != "" {
		t, err := time.Parse(dayLayout, req.To)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: fecha 'to' inválida", domain.ErrInvalidInput)
		}
		to = t
	}
	from := to.AddDate(0, 0, -(defaultRangeDays - 1))
	if req.From != "" {
		t, err := time.Parse(dayLayout, req.From)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: fecha 'from' inválida", domain.ErrInvalidInput)
		}
		from = t
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: 'from' posterior a 'to'", domain.ErrInvalidInput)
	}
	if to.Sub(from) > maxRangeDays*24*time.Hour {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: rango máximo de %d días", domain.ErrInvalidInput, maxRangeDays)
	}
	return from, to.Add(24*time.Hour - time.Nanosecond), nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func toOverviewDTO(ov repository.OverviewResult) *dto.OverviewDTO {
	return &dto.OverviewDTO{
		TotalProducts: ov.TotalProducts,
		LowStock:      ov.LowStock,
		OutOfStock:    ov.OutOfStock,
		TotalUnits:    ov.TotalUnits,
		StockValue:    ov.StockValue.Round(2),
	}
}

func toDayDTOs(days []repository.MovementDay) []dto.MovementDayDTO {
	out := make([]dto.MovementDayDTO, 0, len(days))
	for _, d := range days {
		out = append(out, dto.MovementDayDTO{
			Day:      d.Day.UTC().Format(dayLayout),
			UnitsIn:  d.UnitsIn,
			UnitsOut: d.UnitsOut,
			Count:    d.Count,
		})
	}
	return out
}

func toTopMoverDTOs(movers []repository.TopMover) []dto.TopMoverDTO {
	out := make([]dto.TopMoverDTO, 0, len(movers))
	for _, m := range movers {
		out = append(out, dto.TopMoverDTO{
			ProductID:   m.ProductID,
			SKU:         m.SKU,
			ProductName: m.ProductName,
			UnitsOut:    m.UnitsOut,
			Movements:   m.Movements,
		})
	}
	return out
}
