package memory

import (
	"context"
	"sort"

	"github.com/SakshamC12/fliprinventory/internal/domain"
	"github.com/SakshamC12/fliprinventory/internal/domain/entity"
	"github.com/SakshamC12/fliprinventory/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepository)(nil)

// StockMovementRepository ledger en memoria: solo inserción y lectura.
type StockMovementRepository struct {
	s  *Store
	tx *tx
}

// Create agrega un movimiento. Dentro de una tx queda pendiente hasta el commit.
func (r *StockMovementRepository) Create(_ context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		return domain.ErrInvalidInput
	}
	c := copyMovement(m)
	if r.tx != nil {
		r.tx.movements = append(r.tx.movements, c)
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[m.ProductID]; !ok {
		return domain.ErrProductNotFound
	}
	r.s.movements = append(r.s.movements, c)
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *StockMovementRepository) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, m := range r.s.movements {
		if m.ID == id {
			return copyMovement(m), nil
		}
	}
	return nil, nil
}

// List filtra y ordena por created_at DESC, id DESC.
func (r *StockMovementRepository) List(_ context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	r.s.mu.RLock()
	out := make([]*entity.StockMovement, 0)
	for _, m := range r.s.movements {
		if matchMovement(m, f) {
			out = append(out, copyMovement(m))
		}
	}
	r.s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return newerThan(out[i], out[j]) })
	return page(out, f.Limit, f.Offset), nil
}

// ListByProduct historial completo de un producto en orden cronológico.
func (r *StockMovementRepository) ListByProduct(_ context.Context, productID string) ([]*entity.StockMovement, error) {
	r.s.mu.RLock()
	out := make([]*entity.StockMovement, 0)
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			out = append(out, copyMovement(m))
		}
	}
	r.s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return newerThan(out[j], out[i]) })
	return out, nil
}

func newerThan(a, b *entity.StockMovement) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

func matchMovement(m *entity.StockMovement, f repository.MovementFilter) bool {
	if f.ProductID != "" && m.ProductID != f.ProductID {
		return false
	}
	if f.ActorID != "" && m.ActorID != f.ActorID {
		return false
	}
	if f.Direction != "" && m.Direction != f.Direction {
		return false
	}
	if f.From != nil && m.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && m.CreatedAt.After(*f.To) {
		return false
	}
	if f.After != nil {
		cursor := &entity.StockMovement{ID: f.After.ID, CreatedAt: f.After.CreatedAt}
		if !newerThan(cursor, m) {
			return false
		}
	}
	return true
}
