// Package memory implementa los puertos de persistencia en memoria.
// Se usa con STORE_DRIVER=memory (desarrollo local) y en pruebas; no persiste entre reinicios.
package memory

import (
	"context"
	"sync"

	"github.com/SakshamC12/fliprinventory/internal/domain/entity"
)

// Store estado compartido de todos los repositorios en memoria.
// Las entidades guardadas nunca se modifican en sitio: cada escritura reemplaza el puntero.
type Store struct {
	mu         sync.RWMutex
	products   map[string]*entity.Product
	movements  []*entity.StockMovement
	categories map[string]*entity.Category
	suppliers  map[string]*entity.Supplier
	staff      map[string]*entity.Staff
	users      map[string]*entity.User

	locksMu  sync.Mutex
	rowLocks map[string]chan struct{}
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		products:   make(map[string]*entity.Product),
		categories: make(map[string]*entity.Category),
		suppliers:  make(map[string]*entity.Supplier),
		staff:      make(map[string]*entity.Staff),
		users:      make(map[string]*entity.User),
		rowLocks:   make(map[string]chan struct{}),
	}
}

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepository { return &ProductRepository{s: s} }

// Movements repositorio del ledger fuera de transacción.
func (s *Store) Movements() *StockMovementRepository { return &StockMovementRepository{s: s} }

// Categories repositorio de categorías.
func (s *Store) Categories() *CategoryRepository { return &CategoryRepository{s: s} }

// Suppliers repositorio de proveedores.
func (s *Store) Suppliers() *SupplierRepository { return &SupplierRepository{s: s} }

// Staff repositorio de personal.
func (s *Store) Staff() *StaffRepository { return &StaffRepository{s: s} }

// Users repositorio de administradores.
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// Reports consultas de dashboard y reportes.
func (s *Store) Reports() *ReportRepository { return &ReportRepository{s: s} }

// lockRow toma el lock exclusivo de una fila (equivalente a SELECT ... FOR UPDATE).
// Respeta la cancelación del contexto mientras espera.
func (s *Store) lockRow(ctx context.Context, id string) error {
	s.locksMu.Lock()
	ch, ok := s.rowLocks[id]
	if !ok {
		ch = make(chan struct{}, 1)
		s.rowLocks[id] = ch
	}
	s.locksMu.Unlock()

	select {
	case ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) unlockRow(id string) {
	s.locksMu.Lock()
	ch := s.rowLocks[id]
	s.locksMu.Unlock()
	<-ch
}

// snapshot copia el estado confirmado para lecturas consistentes.
func (s *Store) snapshot() *Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := NewStore()
	for k, v := range s.products {
		snap.products[k] = v
	}
	snap.movements = append(snap.movements, s.movements...)
	for k, v := range s.categories {
		snap.categories[k] = v
	}
	for k, v := range s.suppliers {
		snap.suppliers[k] = v
	}
	return snap
}

func copyProduct(p *entity.Product) *entity.Product {
	if p == nil {
		return nil
	}
	c := *p
	if p.ArchivedAt != nil {
		at := *p.ArchivedAt
		c.ArchivedAt = &at
	}
	return &c
}

func copyMovement(m *entity.StockMovement) *entity.StockMovement {
	if m == nil {
		return nil
	}
	c := *m
	return &c
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return items[:0]
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
