package inventory

import (
	"fmt"
	"math"

	"github.com/SakshamC12/fliprinventory/internal/domain"
	"github.com/SakshamC12/fliprinventory/internal/domain/entity"
)

// ApplyMovement calcula la nueva cantidad (servicio de dominio).
// IN suma, OUT resta; una salida mayor al stock se rechaza, nunca se recorta a cero.
func ApplyMovement(current int64, direction entity.Direction, quantity int64) (int64, error) {
	if quantity <= 0 {
		return current, domain.ErrInvalidQuantity
	}
	switch direction {
	case entity.DirectionIn:
		if quantity > math.MaxInt64-current {
			return current, fmt.Errorf("%w: la entrada desborda la cantidad", domain.ErrInvalidQuantity)
		}
		return current + quantity, nil
	case entity.DirectionOut:
		if quantity > current {
			return current, domain.ErrInsufficientStock
		}
		return current - quantity, nil
	default:
		return current, fmt.Errorf("%w: sentido %q", domain.ErrInvalidInput, direction)
	}
}

// Fold reconstruye la cantidad a partir del stock inicial y el historial (en cualquier orden).
// Devuelve la suma con signo de los movimientos y la cantidad esperada.
func Fold(initial int64, movements []*entity.StockMovement) (sum, expected int64) {
	for _, m := range movements {
		sum += m.Signed()
	}
	return sum, initial + sum
}

// CheckSnapshot verifica la invariante de un movimiento: Resulting = Previous ± Quantity.
func CheckSnapshot(m *entity.StockMovement) bool {
	return m.ResultingQuantity == m.PreviousQuantity+m.Signed() && m.ResultingQuantity >= 0
}

// Reconcile compara la cantidad almacenada con la reconstruida desde el historial.
// Devuelve nil si cuadran.
func Reconcile(p *entity.Product, movements []*entity.StockMovement) *entity.QuantityMismatch {
	sum, expected := Fold(p.InitialQuantity, movements)
	if expected == p.Quantity {
		return nil
	}
	return &entity.QuantityMismatch{
		ProductID:        p.ID,
		SKU:              p.SKU,
		StoredQuantity:   p.Quantity,
		InitialQuantity:  p.InitialQuantity,
		MovementSum:      sum,
		ExpectedQuantity: expected,
		Difference:       p.Quantity - expected,
	}
}

// SuggestedOrderQty cantidad sugerida de pedido: lleva el stock a 1.5 × umbral (redondeo hacia arriba).
func SuggestedOrderQty(quantity, reorderLevel int64) int64 {
	ideal := (reorderLevel*3 + 1) / 2
	if quantity >= ideal {
		return 0
	}
	return ideal - quantity
}
