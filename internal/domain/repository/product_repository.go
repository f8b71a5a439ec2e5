package repository

import (
	"context"
	"time"

	"github.com/SakshamC12/fliprinventory/internal/domain/entity"
)

// ProductFilter criterios de búsqueda del catálogo.
type ProductFilter struct {
	Query           string // subcadena de nombre o SKU
	CategoryID      string
	IncludeArchived bool
	Limit           int
	Offset          int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID/GetBySKU devuelven (nil, nil) si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// Update modifica datos descriptivos; nunca Quantity, InitialQuantity ni Version.
	Update(ctx context.Context, product *entity.Product) error
	// UpdateQuantity escribe la nueva cantidad solo si la fila conserva la cantidad y versión leídas.
	// Devuelve false si otra escritura se adelantó (compare-and-swap).
	UpdateQuantity(ctx context.Context, id string, expectedQty, expectedVersion, newQty int64) (bool, error)
	Archive(ctx context.Context, id string, at time.Time) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	CountByCategory(ctx context.Context, categoryID string) (int, error)
	CountBySupplier(ctx context.Context, supplierID string) (int, error)
}
