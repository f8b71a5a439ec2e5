package main

import (
	"context"
	"fmt"

	"github.com/SakshamC12/fliprinventory/internal/application/inventory"
	"github.com/SakshamC12/fliprinventory/internal/domain/repository"
	"github.com/SakshamC12/fliprinventory/internal/infrastructure/memory"
	"github.com/SakshamC12/fliprinventory/internal/infrastructure/postgres"
	infraredis "github.com/SakshamC12/fliprinventory/internal/infrastructure/redis"
	httpRouter "github.com/SakshamC12/fliprinventory/internal/interfaces/http"
	"github.com/SakshamC12/fliprinventory/pkg/config"
	"github.com/SakshamC12/fliprinventory/pkg/logger"
)

// stores agrupa los adaptadores de persistencia elegidos según la configuración.
type stores struct {
	txRunner    inventory.TxRunner
	products    repository.ProductRepository
	movements   repository.StockMovementRepository
	categories  repository.CategoryRepository
	suppliers   repository.SupplierRepository
	staff       repository.StaffRepository
	users       repository.UserRepository
	reports     repository.ReportRepository
	revocations repository.TokenRevocationStore
	locker      inventory.ProductLocker // nil sin Redis
	checks      map[string]httpRouter.HealthCheck
	closers     []func()
}

func (s *stores) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// openStores conecta PostgreSQL (o el store en memoria) y, si está configurado, Redis.
func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	s := &stores{checks: make(map[string]httpRouter.HealthCheck)}

	switch cfg.App.StoreDriver {
	case config.StoreMemory:
		log.Warn().Msg("STORE_DRIVER=memory: los datos se pierden al reiniciar")
		mem := memory.NewStore()
		s.txRunner = mem
		s.products = mem.Products()
		s.movements = mem.Movements()
		s.categories = mem.Categories()
		s.suppliers = mem.Suppliers()
		s.staff = mem.Staff()
		s.users = mem.Users()
		s.reports = mem.Reports()
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		s.closers = append(s.closers, pool.Close)
		s.checks["postgres"] = pool.Ping
		s.txRunner = postgres.NewTxRunner(pool)
		s.products = postgres.NewProductRepository(pool)
		s.movements = postgres.NewStockMovementRepository(pool)
		s.categories = postgres.NewCategoryRepository(pool)
		s.suppliers = postgres.NewSupplierRepository(pool)
		s.staff = postgres.NewStaffRepository(pool)
		s.users = postgres.NewUserRepository(pool)
		s.reports = postgres.NewReportRepository(pool)
	}

	if !cfg.Redis.Enabled() {
		log.Info().Msg("Redis deshabilitado: revocación en memoria y sin lock distribuido")
		s.revocations = memory.NewRevocationStore()
		return s, nil
	}
	client, err := infraredis.NewClient(ctx, cfg.Redis)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.closers = append(s.closers, func() { _ = client.Close() })
	s.checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	s.revocations = infraredis.NewRevocationStore(client)
	s.locker = infraredis.NewProductLocker(client, cfg.Ledger.LockTTL)
	return s, nil
}
