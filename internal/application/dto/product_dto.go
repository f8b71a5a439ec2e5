package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Quantity es el stock inicial.
type CreateProductRequest struct {
	SKU          string          `json:"sku" validate:"required,min=1,max=100"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Description  string          `json:"description" validate:"omitempty,max=2000"`
	CategoryID   string          `json:"category_id" validate:"omitempty,uuid"`
	SupplierID   string          `json:"supplier_id" validate:"omitempty,uuid"`
	Quantity     int64           `json:"quantity" validate:"min=0"`
	ReorderLevel int64           `json:"reorder_level" validate:"min=0"`
	Price        decimal.Decimal `json:"price"`
	ImageURL     string          `json:"image_url" validate:"omitempty,url,max=500"`
}

// UpdateProductRequest entrada para actualizar un producto (sin cantidad: solo el ledger la cambia).
type UpdateProductRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description  *string          `json:"description" validate:"omitempty,max=2000"`
	CategoryID   *string          `json:"category_id" validate:"omitempty,uuid"`
	SupplierID   *string          `json:"supplier_id" validate:"omitempty,uuid"`
	ReorderLevel *int64           `json:"reorder_level" validate:"omitempty,min=0"`
	Price        *decimal.Decimal `json:"price"`
	ImageURL     *string          `json:"image_url" validate:"omitempty,url,max=500"`
}

// ProductSearchRequest filtros de GET /api/products.
type ProductSearchRequest struct {
	Query           string `query:"q" validate:"omitempty,max=100"`
	CategoryID      string `query:"category_id" validate:"omitempty,uuid"`
	IncludeArchived bool   `query:"include_archived"`
	PageRequest
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID              string          `json:"id"`
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	CategoryID      string          `json:"category_id,omitempty"`
	SupplierID      string          `json:"supplier_id,omitempty"`
	Quantity        int64           `json:"quantity"`
	InitialQuantity int64           `json:"initial_quantity"`
	ReorderLevel    int64           `json:"reorder_level"`
	Price           decimal.Decimal `json:"price"`
	ImageURL        string          `json:"image_url,omitempty"`
	LowStock        bool            `json:"low_stock"`
	OutOfStock      bool            `json:"out_of_stock"`
	Archived        bool            `json:"archived"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
