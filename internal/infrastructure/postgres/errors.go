package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/SakshamC12/fliprinventory/internal/domain"
)

// Códigos SQLSTATE que el dominio distingue.
const (
	sqlUniqueViolation      = "23505"
	sqlForeignKeyViolation  = "23503"
	sqlCheckViolation       = "23514"
	sqlInvalidText          = "22P02"
	sqlSerializationFailure = "40001"
	sqlDeadlockDetected     = "40P01"
)

// validID indica si id es un UUID. Las columnas id son uuid: un texto mal formado
// no puede existir, se trata como fila ausente en vez de dejar que el servidor responda 22P02.
func validID(id string) bool {
	return uuid.Validate(id) == nil
}

// mapError traduce errores del driver a errores de dominio.
// Conflictos de serialización y deadlocks → ErrConcurrentModification (reintentables);
// fallos de conexión → envueltos en ErrStoreUnavailable; el resto se envuelve con op.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlUniqueViolation:
			return domain.ErrDuplicate
		case sqlForeignKeyViolation:
			return fmt.Errorf("%w: %s", domain.ErrConflict, pgErr.ConstraintName)
		case sqlCheckViolation, sqlInvalidText:
			return fmt.Errorf("%w: %s", domain.ErrInvalidInput, pgErr.Message)
		case sqlSerializationFailure, sqlDeadlockDetected:
			return domain.ErrConcurrentModification
		}
		// Clase 08: excepciones de conexión; 57P0x: servidor apagándose.
		if strings.HasPrefix(pgErr.Code, "08") || strings.HasPrefix(pgErr.Code, "57P0") {
			return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if isConnectionError(err) {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isConnectionError(err error) bool {
	// context.DeadlineExceeded también satisface net.Error; es una cancelación del llamador, no una caída.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return pgconn.Timeout(err)
}
