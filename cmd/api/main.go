package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	appanalytics "github.com/SakshamC12/fliprinventory/internal/application/analytics"
	"github.com/SakshamC12/fliprinventory/internal/application/auth"
	"github.com/SakshamC12/fliprinventory/internal/application/inventory"
	"github.com/SakshamC12/fliprinventory/internal/application/usecase"
	"github.com/SakshamC12/fliprinventory/internal/domain"
	httpRouter "github.com/SakshamC12/fliprinventory/internal/interfaces/http"
	"github.com/SakshamC12/fliprinventory/pkg/config"
	"github.com/SakshamC12/fliprinventory/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.StoreDriver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer st.Close()

	authUC := auth.NewAuthUseCase(st.users, st.staff, st.revocations, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if cfg.Admin.Email != "" {
		seedAdmin(ctx, authUC, cfg.Admin, log)
	}

	ledgerUC := inventory.NewLedgerUseCase(st.txRunner, st.products, st.movements, st.locker, log, inventory.LedgerConfig{
		MaxRetries: cfg.Ledger.MaxRetries,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs (solo si se generó docs/swagger.json)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Fliprinventory API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		UserUC:        usecase.NewUserUseCase(st.users),
		ProductUC:     usecase.NewProductUseCase(st.products, st.categories, st.suppliers),
		CategoryUC:    usecase.NewCategoryUseCase(st.categories, st.products),
		SupplierUC:    usecase.NewSupplierUseCase(st.suppliers, st.products),
		StaffUC:       usecase.NewStaffUseCase(st.staff),
		Ledger:        ledgerUC,
		Replenishment: inventory.NewReplenishmentUseCase(st.reports),
		DashboardUC:   appanalytics.NewDashboardUseCase(st.reports),
		ReportUC:      appanalytics.NewReportUseCase(st.reports),
		HealthChecks:  st.checks,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// seedAdmin crea el administrador inicial si no existe (útil con STORE_DRIVER=memory).
func seedAdmin(ctx context.Context, uc *auth.AuthUseCase, cfg config.AdminConfig, log *logger.Logger) {
	_, err := uc.SeedAdmin(ctx, cfg.Email, cfg.Password, cfg.Name)
	switch {
	case err == nil:
		log.Info().Str("email", cfg.Email).Msg("administrador inicial creado")
	case errors.Is(err, domain.ErrDuplicate):
		log.Debug().Str("email", cfg.Email).Msg("administrador inicial ya existe")
	default:
		log.Error().Err(err).Msg("crear administrador inicial")
	}
}
