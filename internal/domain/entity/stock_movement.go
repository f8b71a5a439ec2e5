package entity

import "time"

// Direction sentido de un movimiento de stock.
type Direction string

// Sentidos válidos.
const (
	DirectionIn  Direction = "IN"  // entrada
	DirectionOut Direction = "OUT" // salida
)

// Valid indica si el sentido es IN u OUT.
func (d Direction) Valid() bool {
	return d == DirectionIn || d == DirectionOut
}

// Tipos de actor que pueden registrar movimientos.
const (
	ActorAdmin = "admin"
	ActorStaff = "staff"
)

// StockMovement es un registro inmutable del ledger. Nunca se actualiza ni se borra.
// ResultingQuantity = PreviousQuantity ± Quantity según Direction.
type StockMovement struct {
	ID                string
	ProductID         string
	Direction         Direction
	Quantity          int64 // siempre positivo
	ActorID           string
	ActorKind         string // admin, staff
	Note              string
	PreviousQuantity  int64
	ResultingQuantity int64
	CreatedAt         time.Time
}

// Signed devuelve la cantidad con signo: positiva para IN, negativa para OUT.
func (m *StockMovement) Signed() int64 {
	if m.Direction == DirectionOut {
		return -m.Quantity
	}
	return m.Quantity
}
