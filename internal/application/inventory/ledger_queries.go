package inventory

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/SakshamC12/fliprinventory/internal/domain"
	"github.com/SakshamC12/fliprinventory/internal/domain/entity"
	"github.com/SakshamC12/fliprinventory/internal/domain/repository"
)

// ListMovements devuelve el historial filtrado, más recientes primero (created_at DESC, id DESC).
// Es de solo lectura: repetir la llamada sin escrituras intermedias devuelve la misma secuencia.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	if err := validateMovementFilter(filter); err != nil {
		return nil, err
	}
	return uc.movementRepo.List(ctx, filter)
}

// Movements recorre el historial de forma perezosa en páginas por keyset.
// La secuencia es reiniciable: cada iteración vuelve a empezar desde el movimiento más reciente.
// filter.Limit define el tamaño de página; Offset y After se ignoran.
// Un error corta la iteración y se entrega como último elemento.
func (uc *LedgerUseCase) Movements(ctx context.Context, filter repository.MovementFilter) iter.Seq2[*entity.StockMovement, error] {
	pageSize := filter.Limit
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return func(yield func(*entity.StockMovement, error) bool) {
		if err := validateMovementFilter(filter); err != nil {
			yield(nil, err)
			return
		}
		page := filter
		page.Limit = pageSize
		page.Offset = 0
		page.After = nil
		for {
			items, err := uc.movementRepo.List(ctx, page)
			if err != nil {
				yield(nil, err)
				return
			}
			for _, m := range items {
				if !yield(m, nil) {
					return
				}
			}
			if len(items) < pageSize {
				return
			}
			last := items[len(items)-1]
			page.After = &repository.MovementCursor{CreatedAt: last.CreatedAt, ID: last.ID}
		}
	}
}

// GetMovement devuelve un movimiento por ID.
func (uc *LedgerUseCase) GetMovement(ctx context.Context, id string) (*entity.StockMovement, error) {
	m, err := uc.movementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

// CurrentQuantity lectura puntual de la cantidad almacenada de un producto.
func (uc *LedgerUseCase) CurrentQuantity(ctx context.Context, productID string) (int64, error) {
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return 0, err
	}
	if p == nil {
		return 0, domain.ErrProductNotFound
	}
	return p.Quantity, nil
}

func validateMovementFilter(f repository.MovementFilter) error {
	if f.Direction != "" && !f.Direction.Valid() {
		return fmt.Errorf("%w: dirección %q no soportada (IN, OUT)", domain.ErrInvalidInput, f.Direction)
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return fmt.Errorf("%w: from posterior a to", domain.ErrInvalidInput)
	}
	if f.Limit < 0 || f.Offset < 0 {
		return fmt.Errorf("%w: paginación negativa", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(f.ProductID) != f.ProductID {
		return fmt.Errorf("%w: product_id inválido", domain.ErrInvalidInput)
	}
	return nil
}
