package entity

import "time"

// QuantityMismatch hallazgo de conciliación: la cantidad almacenada difiere de
// InitialQuantity + Σ movimientos. Se reporta, nunca se corrige automáticamente.
type QuantityMismatch struct {
	ProductID        string
	SKU              string
	StoredQuantity   int64
	InitialQuantity  int64
	MovementSum      int64
	ExpectedQuantity int64
	Difference       int64 // StoredQuantity - ExpectedQuantity
}

// ReconciliationReport resultado de conciliar un producto.
type ReconciliationReport struct {
	ProductID        string
	StoredQuantity   int64
	ExpectedQuantity int64
	MovementCount    int
	CheckedAt        time.Time
	Mismatch         *QuantityMismatch // nil si cuadra
}
