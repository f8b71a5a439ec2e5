package inventory

import (
	"context"

	"github.com/SakshamC12/fliprinventory/internal/domain"
	"github.com/SakshamC12/fliprinventory/internal/domain/entity"
	"github.com/SakshamC12/fliprinventory/internal/domain/inventory"
	"github.com/SakshamC12/fliprinventory/internal/domain/repository"
)

const reconcilePageSize = 200

// ReconcileSummary resultado de conciliar todo el catálogo.
type ReconcileSummary struct {
	ProductsChecked int
	Mismatches      []*entity.QuantityMismatch
}

// Reconcile verifica que la cantidad almacenada sea igual a InitialQuantity + Σ movimientos.
// Lee producto e historial en un mismo snapshot. Solo diagnostica: nunca corrige la cantidad.
func (uc *LedgerUseCase) Reconcile(ctx context.Context, productID string) (*entity.ReconciliationReport, error) {
	var report *entity.ReconciliationReport
	err := uc.txRunner.RunSnapshot(ctx, func(movRepo repository.StockMovementRepository, productRepo repository.ProductRepository) error {
		p, err := productRepo.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrProductNotFound
		}
		movs, err := movRepo.ListByProduct(ctx, productID)
		if err != nil {
			return err
		}
		report = uc.buildReport(p, movs)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// ReconcileAll concilia todos los productos (incluidos archivados) y devuelve solo las discrepancias.
func (uc *LedgerUseCase) ReconcileAll(ctx context.Context) (*ReconcileSummary, error) {
	summary := &ReconcileSummary{Mismatches: []*entity.QuantityMismatch{}}
	err := uc.txRunner.RunSnapshot(ctx, func(movRepo repository.StockMovementRepository, productRepo repository.ProductRepository) error {
		for offset := 0; ; offset += reconcilePageSize {
			products, err := productRepo.List(ctx, repository.ProductFilter{
				IncludeArchived: true,
				Limit:           reconcilePageSize,
				Offset:          offset,
			})
			if err != nil {
				return err
			}
			for _, p := range products {
				if err := ctx.Err(); err != nil {
					return err
				}
				movs, err := movRepo.ListByProduct(ctx, p.ID)
				if err != nil {
					return err
				}
				summary.ProductsChecked++
				if r := uc.buildReport(p, movs); r.Mismatch != nil {
					summary.Mismatches = append(summary.Mismatches, r.Mismatch)
				}
			}
			if len(products) < reconcilePageSize {
				return nil
			}
		}
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Int("products_checked", summary.ProductsChecked).
		Int("mismatches", len(summary.Mismatches)).
		Msg("conciliación completa")
	return summary, nil
}

func (uc *LedgerUseCase) buildReport(p *entity.Product, movs []*entity.StockMovement) *entity.ReconciliationReport {
	_, expected := inventory.Fold(p.InitialQuantity, movs)
	report := &entity.ReconciliationReport{
		ProductID:        p.ID,
		StoredQuantity:   p.Quantity,
		ExpectedQuantity: expected,
		MovementCount:    len(movs),
		CheckedAt:        uc.cfg.Clock().UTC(),
		Mismatch:         inventory.Reconcile(p, movs),
	}
	if report.Mismatch != nil {
		uc.log.Warn().
			Err(domain.ErrQuantityMismatch).
			Str("product_id", p.ID).
			Int64("stored", p.Quantity).
			Int64("expected", expected).
			Msg("discrepancia entre cantidad e historial")
	}
	for _, m := range movs {
		if !inventory.CheckSnapshot(m) {
			uc.log.Warn().Str("movement_id", m.ID).Msg("snapshot de movimiento inconsistente")
		}
	}
	return report
}
