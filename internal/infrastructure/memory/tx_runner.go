package memory

import (
	"context"

	"github.com/SakshamC12/fliprinventory/internal/application/inventory"
	"github.com/SakshamC12/fliprinventory/internal/domain"
	"github.com/SakshamC12/fliprinventory/internal/domain/entity"
)

var _ inventory.TxRunner = (*Store)(nil)

const newRow int64 = -1

// stagedProduct escritura pendiente y la versión confirmada sobre la que se calculó.
type stagedProduct struct {
	product     *entity.Product
	baseVersion int64 // newRow si el producto se crea en esta tx
}

// tx acumula escrituras hasta el commit; un error o cancelación las descarta.
type tx struct {
	s         *Store
	locked    []string
	products  map[string]stagedProduct
	movements []*entity.StockMovement
}

// Run ejecuta fn con repositorios atados a una transacción en memoria.
// Las escrituras se aplican todas juntas al confirmar; si fn falla o ctx se cancela no se aplica nada.
func (s *Store) Run(ctx context.Context, fn inventory.TxFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t := &tx{s: s, products: make(map[string]stagedProduct)}
	defer t.release()

	if err := fn(&StockMovementRepository{s: s, tx: t}, &ProductRepository{s: s, tx: t}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.commit()
}

// RunSnapshot ejecuta fn sobre una copia del estado confirmado.
func (s *Store) RunSnapshot(ctx context.Context, fn inventory.TxFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	snap := s.snapshot()
	return fn(snap.Movements(), snap.Products())
}

func (t *tx) lock(ctx context.Context, id string) error {
	for _, l := range t.locked {
		if l == id {
			return nil
		}
	}
	if err := t.s.lockRow(ctx, id); err != nil {
		return err
	}
	t.locked = append(t.locked, id)
	return nil
}

func (t *tx) release() {
	for _, id := range t.locked {
		t.s.unlockRow(id)
	}
	t.locked = nil
}

// view devuelve la versión del producto visible para la tx (pendiente o confirmada).
func (t *tx) view(id string) *entity.Product {
	if sp, ok := t.products[id]; ok {
		return sp.product
	}
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	return t.s.products[id]
}

func (t *tx) stage(p *entity.Product, created bool) {
	if sp, ok := t.products[p.ID]; ok {
		t.products[p.ID] = stagedProduct{product: p, baseVersion: sp.baseVersion}
		return
	}
	base := newRow
	if !created {
		t.s.mu.RLock()
		if cur, ok := t.s.products[p.ID]; ok {
			base = cur.Version
		}
		t.s.mu.RUnlock()
	}
	t.products[p.ID] = stagedProduct{product: p, baseVersion: base}
}

func (t *tx) commit() error {
	s := t.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sp := range t.products {
		cur, exists := s.products[id]
		if sp.baseVersion == newRow {
			if exists || s.skuTakenLocked(sp.product.SKU, id) {
				return domain.ErrDuplicate
			}
			continue
		}
		if !exists || cur.Version != sp.baseVersion {
			return domain.ErrConcurrentModification
		}
	}
	for _, m := range t.movements {
		if _, ok := s.products[m.ProductID]; !ok {
			if _, staged := t.products[m.ProductID]; !staged {
				return domain.ErrProductNotFound
			}
		}
	}

	for id, sp := range t.products {
		s.products[id] = sp.product
	}
	s.movements = append(s.movements, t.movements...)
	return nil
}
