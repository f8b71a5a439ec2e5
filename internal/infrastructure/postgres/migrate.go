package postgres

import (
	"context"
	_ "embed"
)

//go:embed migrations/schema.sql
var schemaSQL string

// Migrate aplica el esquema embebido. Es idempotente.
// Sin argumentos pgx usa el protocolo simple, que admite varias sentencias en un solo Exec.
func Migrate(ctx context.Context, q Querier) error {
	_, err := q.Exec(ctx, schemaSQL)
	return mapError("apply schema", err)
}
