package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/SakshamC12/fliprinventory/internal/application/dto"
	"github.com/SakshamC12/fliprinventory/internal/domain/inventory"
	"github.com/SakshamC12/fliprinventory/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición: productos en o bajo su umbral.
type ReplenishmentUseCase struct {
	reportRepo repository.ReportRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(reportRepo repository.ReportRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{reportRepo: reportRepo}
}

// GenerateReplenishmentList devuelve los productos en o bajo su umbral con la cantidad sugerida
// (umbral × 1.5 − cantidad, redondeo hacia arriba) y un ranking de prioridad por déficit.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	rawItems, err := uc.reportRepo.BelowReorderLevel(ctx)
	if err != nil {
		return nil, err
	}
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(rawItems))
	for _, item := range rawItems {
		suggestedQty := inventory.SuggestedOrderQty(item.Quantity, item.ReorderLevel)
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:          item.ProductID,
			SKU:                item.SKU,
			ProductName:        item.ProductName,
			SupplierID:         item.SupplierID,
			CurrentStock:       item.Quantity,
			ReorderLevel:       item.ReorderLevel,
			IdealStock:         item.Quantity + suggestedQty,
			SuggestedOrderQty:  suggestedQty,
			UnitPrice:          item.Price,
			EstimatedOrderCost: item.Price.Mul(decimal.NewFromInt(suggestedQty)),
		})
	}

	// Mayor déficit primero; agotados antes que stock bajo; desempate por SKU.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		defA, defB := a.ReorderLevel-a.CurrentStock, b.ReorderLevel-b.CurrentStock
		if defA != defB {
			return defA > defB
		}
		if (a.CurrentStock == 0) != (b.CurrentStock == 0) {
			return a.CurrentStock == 0
		}
		return a.SKU < b.SKU
	})

	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
