package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/SakshamC12/fliprinventory/internal/application/dto"
	"github.com/SakshamC12/fliprinventory/internal/domain/repository"
)

const dashboardTopMovers = 5 // productos en el widget de salidas

// DashboardUseCase arma el resumen del dashboard.
//
// Fuente de datos: ReportRepository (consultas read-only).
type DashboardUseCase struct {
	reportRepo repository.ReportRepository
	now        func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(reportRepo repository.ReportRepository) *DashboardUseCase {
	return &DashboardUseCase{reportRepo: reportRepo, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cuatro consultas en paralelo:
//  1. Overview + ProductsByCategory → KPIs
//  2. MovementSeries(7 días)        → LastWeek
//  3. TopMovers(7 días, top 5)      → TopMovers
//  4. BelowReorderLevel             → ReplenishmentSize
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now().UTC()
	weekStart := truncateDay(now).AddDate(0, 0, -6)
	weekEnd := truncateDay(now).Add(24*time.Hour - time.Nanosecond)

	var (
		overview   repository.OverviewResult
		categories []repository.CategoryCount
		series     []repository.MovementDay
		movers     []repository.TopMover
		pending    []repository.ReplenishmentItem
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if overview, err = uc.reportRepo.Overview(gctx); err != nil {
			return fmt.Errorf("dashboard: overview: %w", err)
		}
		if categories, err = uc.reportRepo.ProductsByCategory(gctx); err != nil {
			return fmt.Errorf("dashboard: categorías: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if series, err = uc.reportRepo.MovementSeries(gctx, weekStart, weekEnd); err != nil {
			return fmt.Errorf("dashboard: serie semanal: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if movers, err = uc.reportRepo.TopMovers(gctx, weekStart, weekEnd, dashboardTopMovers); err != nil {
			return fmt.Errorf("dashboard: top de salidas: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if pending, err = uc.reportRepo.BelowReorderLevel(gctx); err != nil {
			return fmt.Errorf("dashboard: reposición: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ov := toOverviewDTO(overview)
	ov.ByCategory = make([]dto.CategoryCountDTO, 0, len(categories))
	for _, c := range categories {
		ov.ByCategory = append(ov.ByCategory, dto.CategoryCountDTO{
			CategoryID:   c.CategoryID,
			CategoryName: c.CategoryName,
			Products:     c.Products,
			Units:        c.Units,
		})
	}

	return &dto.DashboardSummaryDTO{
		Overview:          *ov,
		LastWeek:          toDayDTOs(series),
		TopMovers:         toTopMoverDTOs(movers),
		ReplenishmentSize: len(pending),
		GeneratedAt:       now,
	}, nil
}

// GetActorActivity movimientos IN/OUT registrados por actorID (panel del personal).
func (uc *DashboardUseCase) GetActorActivity(ctx context.Context, actorID string) (*dto.ActorActivityDTO, error) {
	act, err := uc.reportRepo.ActorActivity(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: actividad del actor: %w", err)
	}
	return &dto.ActorActivityDTO{
		ActorID:      actorID,
		MovementsIn:  act.MovementsIn,
		MovementsOut: act.MovementsOut,
		UnitsIn:      act.UnitsIn,
		UnitsOut:     act.UnitsOut,
	}, nil
}
