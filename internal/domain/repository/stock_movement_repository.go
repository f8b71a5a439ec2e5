package repository

import (
	"context"
	"time"

	"github.com/SakshamC12/fliprinventory/internal/domain/entity"
)

// MovementCursor posición de paginación por keyset (created_at DESC, id DESC).
type MovementCursor struct {
	CreatedAt time.Time
	ID        string
}

// MovementFilter criterios para listar movimientos. Campos vacíos no filtran.
// From y To son inclusivos. Limit <= 0 significa sin límite.
type MovementFilter struct {
	ProductID string
	ActorID   string
	Direction entity.Direction
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
	After     *MovementCursor // si no es nil, devuelve solo lo posterior al cursor en el orden
}

// StockMovementRepository puerto del ledger: solo inserción y lectura (append-only).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	// List ordena por created_at DESC, id DESC.
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error)
}
