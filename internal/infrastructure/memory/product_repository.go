package memory

import (
	"context"
	"sort"
	"time"

	"github.com/SakshamC12/fliprinventory/internal/domain"
	"github.com/SakshamC12/fliprinventory/internal/domain/entity"
	"github.com/SakshamC12/fliprinventory/internal/domain/repository"
	"github.com/SakshamC12/fliprinventory/pkg/textnorm"
)

var _ repository.ProductRepository = (*ProductRepository)(nil)

// ProductRepository implementación en memoria de repository.ProductRepository.
// Con tx != nil las escrituras quedan pendientes hasta el commit.
type ProductRepository struct {
	s  *Store
	tx *tx
}

// Create persiste un producto nuevo. SKU duplicado devuelve domain.ErrDuplicate.
func (r *ProductRepository) Create(_ context.Context, p *entity.Product) error {
	c := copyProduct(p)
	if r.tx != nil {
		if r.tx.view(p.ID) != nil {
			return domain.ErrDuplicate
		}
		r.tx.stage(c, true)
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; ok || r.s.skuTakenLocked(p.SKU, p.ID) {
		return domain.ErrDuplicate
	}
	r.s.products[p.ID] = c
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *ProductRepository) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if r.tx != nil {
		return copyProduct(r.tx.view(id)), nil
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return copyProduct(r.s.products[id]), nil
}

// GetBySKU devuelve (nil, nil) si no existe.
func (r *ProductRepository) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.products {
		if p.SKU == sku {
			return copyProduct(p), nil
		}
	}
	return nil, nil
}

// GetForUpdate bloquea la fila hasta el fin de la transacción. Fuera de tx equivale a GetByID.
func (r *ProductRepository) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	if r.tx != nil {
		if err := r.tx.lock(ctx, id); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

// Update reemplaza los datos descriptivos conservando cantidad y versión almacenadas.
func (r *ProductRepository) Update(_ context.Context, p *entity.Product) error {
	apply := func(cur *entity.Product) *entity.Product {
		c := copyProduct(p)
		c.Quantity = cur.Quantity
		c.InitialQuantity = cur.InitialQuantity
		c.Version = cur.Version
		c.CreatedAt = cur.CreatedAt
		c.ArchivedAt = cur.ArchivedAt
		return c
	}
	if r.tx != nil {
		cur := r.tx.view(p.ID)
		if cur == nil {
			return domain.ErrProductNotFound
		}
		r.tx.stage(apply(cur), false)
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.products[p.ID]
	if !ok {
		return domain.ErrProductNotFound
	}
	r.s.products[p.ID] = apply(cur)
	return nil
}

// UpdateQuantity compare-and-swap sobre cantidad y versión.
func (r *ProductRepository) UpdateQuantity(_ context.Context, id string, expectedQty, expectedVersion, newQty int64) (bool, error) {
	if newQty < 0 {
		return false, domain.ErrInsufficientStock
	}
	apply := func(cur *entity.Product) (*entity.Product, bool) {
		if cur.Quantity != expectedQty || cur.Version != expectedVersion {
			return nil, false
		}
		c := copyProduct(cur)
		c.Quantity = newQty
		c.Version++
		c.UpdatedAt = time.Now().UTC()
		return c, true
	}
	if r.tx != nil {
		cur := r.tx.view(id)
		if cur == nil {
			return false, domain.ErrProductNotFound
		}
		next, ok := apply(cur)
		if ok {
			r.tx.stage(next, false)
		}
		return ok, nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, found := r.s.products[id]
	if !found {
		return false, domain.ErrProductNotFound
	}
	next, ok := apply(cur)
	if ok {
		r.s.products[id] = next
	}
	return ok, nil
}

// Archive marca el producto como archivado.
func (r *ProductRepository) Archive(_ context.Context, id string, at time.Time) error {
	apply := func(cur *entity.Product) *entity.Product {
		c := copyProduct(cur)
		c.ArchivedAt = &at
		c.UpdatedAt = at
		return c
	}
	if r.tx != nil {
		cur := r.tx.view(id)
		if cur == nil {
			return domain.ErrProductNotFound
		}
		r.tx.stage(apply(cur), false)
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	r.s.products[id] = apply(cur)
	return nil
}

// List filtra por texto (nombre o SKU, sin acentos ni mayúsculas), categoría y archivado.
// Ordena por nombre e id.
func (r *ProductRepository) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	r.s.mu.RLock()
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		if !f.IncludeArchived && p.IsArchived() {
			continue
		}
		if f.CategoryID != "" && p.CategoryID != f.CategoryID {
			continue
		}
		if f.Query != "" && !textnorm.Contains(p.Name, f.Query) && !textnorm.Contains(p.SKU, f.Query) {
			continue
		}
		out = append(out, copyProduct(p))
	}
	r.s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return page(out, f.Limit, f.Offset), nil
}

// CountByCategory productos (incluidos archivados) que referencian la categoría.
func (r *ProductRepository) CountByCategory(_ context.Context, categoryID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, p := range r.s.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

// CountBySupplier productos (incluidos archivados) que referencian el proveedor.
func (r *ProductRepository) CountBySupplier(_ context.Context, supplierID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, p := range r.s.products {
		if p.SupplierID == supplierID {
			n++
		}
	}
	return n, nil
}

func (s *Store) skuTakenLocked(sku, exceptID string) bool {
	for id, p := range s.products {
		if id != exceptID && p.SKU == sku {
			return true
		}
	}
	return false
}
