package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SakshamC12/fliprinventory/internal/domain"
	"github.com/SakshamC12/fliprinventory/internal/domain/entity"
	"github.com/SakshamC12/fliprinventory/internal/domain/inventory"
	"github.com/SakshamC12/fliprinventory/internal/domain/repository"
)

// MovementInput datos para registrar un movimiento de stock.
type MovementInput struct {
	ProductID string
	Direction entity.Direction
	Quantity  int64
	ActorID   string
	ActorKind string // admin, staff
	Note      string
}

// MovementResult movimiento registrado y cantidad resultante del producto.
type MovementResult struct {
	Movement    *entity.StockMovement
	NewQuantity int64
}

// RecordMovement aplica un movimiento IN/OUT sobre un producto.
// Dentro de una sola transacción: bloquea la fila del producto, calcula la nueva cantidad,
// inserta el movimiento con su snapshot (anterior, resultante) y actualiza la cantidad de forma condicional.
// Si otra escritura ganó la carrera se reintenta hasta MaxRetries veces; agotados, devuelve ErrConcurrentModification.
func (uc *LedgerUseCase) RecordMovement(ctx context.Context, in MovementInput) (*MovementResult, error) {
	if err := validateMovementInput(in); err != nil {
		return nil, err
	}

	release := uc.lockProduct(ctx, in.ProductID)
	defer release()

	var (
		result *MovementResult
		err    error
	)
	for attempt := 0; attempt <= uc.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			if werr := wait(ctx, time.Duration(attempt)*uc.cfg.Backoff); werr != nil {
				return nil, werr
			}
			uc.log.Debug().
				Str("product_id", in.ProductID).
				Int("attempt", attempt).
				Msg("reintentando movimiento por modificación concurrente")
		}
		result, err = uc.recordOnce(ctx, in)
		if !domain.IsRetryable(err) {
			break
		}
	}
	if err != nil {
		ev := uc.log.Info()
		if !isBusinessRejection(err) {
			ev = uc.log.Error()
		}
		ev.Err(err).
			Str("product_id", in.ProductID).
			Str("direction", string(in.Direction)).
			Int64("quantity", in.Quantity).
			Msg("movimiento rechazado")
		return nil, err
	}

	uc.log.Debug().
		Str("movement_id", result.Movement.ID).
		Str("product_id", in.ProductID).
		Str("direction", string(in.Direction)).
		Int64("quantity", in.Quantity).
		Int64("resulting_quantity", result.NewQuantity).
		Str("actor_id", in.ActorID).
		Msg("movimiento registrado")
	return result, nil
}

func (uc *LedgerUseCase) recordOnce(ctx context.Context, in MovementInput) (*MovementResult, error) {
	var result *MovementResult
	err := uc.txRunner.Run(ctx, func(movRepo repository.StockMovementRepository, productRepo repository.ProductRepository) error {
		product, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil || product.IsArchived() {
			return domain.ErrProductNotFound
		}

		newQty, err := inventory.ApplyMovement(product.Quantity, in.Direction, in.Quantity)
		if err != nil {
			return err
		}

		// created_at se asigna con la fila bloqueada para que el orden temporal coincida con el de commit.
		mov := &entity.StockMovement{
			ID:                uuid.New().String(),
			ProductID:         product.ID,
			Direction:         in.Direction,
			Quantity:          in.Quantity,
			ActorID:           in.ActorID,
			ActorKind:         in.ActorKind,
			Note:              strings.TrimSpace(in.Note),
			PreviousQuantity:  product.Quantity,
			ResultingQuantity: newQty,
			CreatedAt:         uc.cfg.Clock().UTC(),
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}

		ok, err := productRepo.UpdateQuantity(ctx, product.ID, product.Quantity, product.Version, newQty)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrConcurrentModification
		}

		result = &MovementResult{Movement: mov, NewQuantity: newQty}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *LedgerUseCase) lockProduct(ctx context.Context, productID string) func() {
	if uc.locker == nil {
		return func() {}
	}
	release, err := uc.locker.Lock(ctx, productID)
	if err != nil {
		uc.log.Debug().Err(err).Str("product_id", productID).Msg("lock de producto no disponible, se continúa con la transacción")
		return func() {}
	}
	return release
}

func validateMovementInput(in MovementInput) error {
	if strings.TrimSpace(in.ProductID) == "" {
		return fmt.Errorf("%w: product_id es obligatorio", domain.ErrInvalidInput)
	}
	if !in.Direction.Valid() {
		return fmt.Errorf("%w: dirección %q no soportada (IN, OUT)", domain.ErrInvalidInput, in.Direction)
	}
	if in.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	if strings.TrimSpace(in.ActorID) == "" {
		return fmt.Errorf("%w: actor_id es obligatorio", domain.ErrInvalidInput)
	}
	return nil
}

// isBusinessRejection errores esperables del dominio (no fallos de infraestructura).
func isBusinessRejection(err error) bool {
	return errors.Is(err, domain.ErrInsufficientStock) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrProductNotFound) ||
		errors.Is(err, domain.ErrInvalidInput) ||
		errors.Is(err, domain.ErrConcurrentModification)
}

func wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
