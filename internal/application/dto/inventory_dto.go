package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
type RegisterMovementRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Direction string `json:"direction" validate:"required,oneof=IN OUT"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
	Note      string `json:"note" validate:"omitempty,max=500"`
}

// MovementResponse movimiento del ledger con su snapshot de cantidades.
type MovementResponse struct {
	ID                string    `json:"id"`
	ProductID         string    `json:"product_id"`
	Direction         string    `json:"direction"`
	Quantity          int64     `json:"quantity"`
	ActorID           string    `json:"actor_id"`
	ActorKind         string    `json:"actor_kind"`
	Note              string    `json:"note,omitempty"`
	PreviousQuantity  int64     `json:"previous_quantity"`
	ResultingQuantity int64     `json:"resulting_quantity"`
	CreatedAt         time.Time `json:"created_at"`
}

// RegisterMovementResponse salida de POST /api/inventory/movements.
type RegisterMovementResponse struct {
	Movement    MovementResponse `json:"movement"`
	NewQuantity int64            `json:"new_quantity"`
}

// MovementListRequest filtros de GET /api/inventory/movements (query string).
type MovementListRequest struct {
	ProductID string `query:"product_id" validate:"omitempty,uuid"`
	ActorID   string `query:"actor_id" validate:"omitempty,uuid"`
	Direction string `query:"direction" validate:"omitempty,oneof=IN OUT"`
	From      string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To        string `query:"to" validate:"omitempty,datetime=2006-01-02"`
	Limit     int    `query:"limit" validate:"omitempty,min=1,max=500"`
	Offset    int    `query:"offset" validate:"omitempty,min=0"`
}

// MovementListResponse lista paginada de movimientos (más recientes primero).
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// QuantityResponse salida de GET /api/products/:id/quantity.
type QuantityResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// QuantityMismatchDTO discrepancia entre la cantidad almacenada y la reconstruida.
type QuantityMismatchDTO struct {
	ProductID        string `json:"product_id"`
	SKU              string `json:"sku"`
	StoredQuantity   int64  `json:"stored_quantity"`
	InitialQuantity  int64  `json:"initial_quantity"`
	MovementSum      int64  `json:"movement_sum"`
	ExpectedQuantity int64  `json:"expected_quantity"`
	Difference       int64  `json:"difference"`
}

// ReconciliationReportDTO salida de POST /api/products/:id/reconcile.
type ReconciliationReportDTO struct {
	ProductID        string               `json:"product_id"`
	StoredQuantity   int64                `json:"stored_quantity"`
	ExpectedQuantity int64                `json:"expected_quantity"`
	MovementCount    int                  `json:"movement_count"`
	Consistent       bool                 `json:"consistent"`
	Mismatch         *QuantityMismatchDTO `json:"mismatch,omitempty"`
	CheckedAt        time.Time            `json:"checked_at"`
}

// ReconcileAllResponse salida de GET /api/inventory/reconcile.
type ReconcileAllResponse struct {
	ProductsChecked int                   `json:"products_checked"`
	Mismatches      []QuantityMismatchDTO `json:"mismatches"`
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un SKU en o bajo su umbral.
type ReplenishmentSuggestionDTO struct {
	ProductID          string          `json:"product_id"`
	SKU                string          `json:"sku"`
	ProductName        string          `json:"product_name"`
	SupplierID         string          `json:"supplier_id,omitempty"`
	CurrentStock       int64           `json:"current_stock"`
	ReorderLevel       int64           `json:"reorder_level"`
	IdealStock         int64           `json:"ideal_stock"`          // ReorderLevel * 1.5, redondeo hacia arriba
	SuggestedOrderQty  int64           `json:"suggested_order_qty"`  // IdealStock - CurrentStock
	UnitPrice          decimal.Decimal `json:"unit_price"`
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * UnitPrice
	Priority           int             `json:"priority"`             // 1 = más urgente
}
