// migrate aplica el esquema de PostgreSQL embebido en el binario.
//
// Uso: go run ./cmd/migrate
package main

import (
	"context"
	"time"

	"github.com/SakshamC12/fliprinventory/internal/infrastructure/postgres"
	"github.com/SakshamC12/fliprinventory/pkg/config"
	"github.com/SakshamC12/fliprinventory/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("migrate")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("aplicar esquema")
	}
	log.Info().Str("db", cfg.DB.DBName).Msg("esquema aplicado")
}
