package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario.
// Quantity es una proyección del ledger: solo la modifica el registro de movimientos.
type Product struct {
	ID              string
	SKU             string // único, normalizado en mayúsculas
	Name            string
	Description     string
	CategoryID      string // vacío si no tiene categoría
	SupplierID      string // vacío si no tiene proveedor
	Quantity        int64  // stock disponible, nunca negativo
	InitialQuantity int64  // stock con el que se creó el producto
	ReorderLevel    int64  // umbral de reposición
	Price           decimal.Decimal
	ImageURL        string
	Version         int64 // se incrementa con cada cambio de cantidad
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ArchivedAt      *time.Time
}

// IsArchived indica si el producto fue archivado (no se borra físicamente).
func (p *Product) IsArchived() bool {
	return p.ArchivedAt != nil
}

// IsLowStock indica stock bajo: por encima de cero pero en o bajo el umbral.
func (p *Product) IsLowStock() bool {
	return p.Quantity > 0 && p.Quantity <= p.ReorderLevel
}

// IsOutOfStock indica que no quedan unidades.
func (p *Product) IsOutOfStock() bool {
	return p.Quantity == 0
}
