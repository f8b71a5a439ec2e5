package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/SakshamC12/fliprinventory/internal/application/analytics"
	"github.com/SakshamC12/fliprinventory/internal/application/auth"
	"github.com/SakshamC12/fliprinventory/internal/application/inventory"
	"github.com/SakshamC12/fliprinventory/internal/application/usecase"
	"github.com/SakshamC12/fliprinventory/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	ProductUC     *usecase.ProductUseCase
	CategoryUC    *usecase.CategoryUseCase
	SupplierUC    *usecase.SupplierUseCase
	StaffUC       *usecase.StaffUseCase
	Ledger        *inventory.LedgerUseCase
	Replenishment *inventory.ReplenishmentUseCase
	DashboardUC   *appanalytics.DashboardUseCase
	ReportUC      *appanalytics.ReportUseCase
	HealthChecks  map[string]HealthCheck
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", NewHealthHandler(deps.HealthChecks).Check)

	api := app.Group("/api")
	adminOnly := RequireRole(entity.RoleAdmin)
	anyActor := RequireRole(entity.RoleAdmin, entity.RoleStaff)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/staff/login", authHandler.StaffLogin)

	// Rutas protegidas (requieren Bearer Token no revocado)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.AuthUC), anyActor)
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)

	// Products
	productHandler := NewProductHandler(deps.ProductUC)
	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.Replenishment)
	products := protected.Group("/products")
	products.Get("/", productHandler.List)
	products.Post("/", adminOnly, productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Archive)
	products.Get("/:id/quantity", inventoryHandler.Quantity)
	products.Get("/:id/movements", inventoryHandler.ProductMovements)
	products.Post("/:id/reconcile", adminOnly, inventoryHandler.Reconcile)

	// Categories (escritura solo admin)
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories := protected.Group("/categories")
	categories.Get("/", categoryHandler.List)
	categories.Post("/", adminOnly, categoryHandler.Create)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", adminOnly, categoryHandler.Update)
	categories.Delete("/:id", adminOnly, categoryHandler.Delete)

	// Suppliers (escritura solo admin)
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers := protected.Group("/suppliers")
	suppliers.Get("/", supplierHandler.List)
	suppliers.Post("/", adminOnly, supplierHandler.Create)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", adminOnly, supplierHandler.Update)
	suppliers.Delete("/:id", adminOnly, supplierHandler.Delete)

	// Staff y administradores (solo admin)
	staffHandler := NewStaffHandler(deps.StaffUC)
	staff := protected.Group("/staff", adminOnly)
	staff.Get("/", staffHandler.List)
	staff.Post("/", staffHandler.Create)
	staff.Get("/:id", staffHandler.GetByID)
	staff.Put("/:id", staffHandler.Update)
	staff.Delete("/:id", staffHandler.Deactivate)

	userHandler := NewUserHandler(deps.UserUC)
	protected.Get("/users/:id", adminOnly, userHandler.GetByID)

	// Inventory movements
	inv := protected.Group("/inventory")
	inv.Post("/movements", inventoryHandler.RegisterMovement)
	inv.Get("/movements", inventoryHandler.ListMovements)
	inv.Get("/movements/:id", inventoryHandler.GetMovement)
	inv.Get("/reconcile", adminOnly, inventoryHandler.ReconcileAll)
	inv.Get("/replenishment-list", inventoryHandler.GetReplenishmentList)

	// Dashboard y reportes
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)
	protected.Get("/dashboard/me", dashboardHandler.Me)

	reportHandler := NewReportHandler(deps.ReportUC)
	reports := protected.Group("/reports", adminOnly)
	reports.Get("/overview", reportHandler.Overview)
	reports.Get("/movements", reportHandler.MovementSeries)
	reports.Get("/top-movers", reportHandler.TopMovers)
}
