package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/SakshamC12/fliprinventory/internal/application/analytics"
	"github.com/SakshamC12/fliprinventory/internal/application/auth"
	"github.com/SakshamC12/fliprinventory/internal/application/dto"
	"github.com/SakshamC12/fliprinventory/internal/application/inventory"
	"github.com/SakshamC12/fliprinventory/internal/application/usecase"
	"github.com/SakshamC12/fliprinventory/internal/infrastructure/memory"
	apphttp "github.com/SakshamC12/fliprinventory/internal/interfaces/http"
	"github.com/SakshamC12/fliprinventory/pkg/logger"
	pkgjwt "github.com/SakshamC12/fliprinventory/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type testAPI struct {
	app    *fiber.App
	authUC *auth.AuthUseCase
	admin  string
	staff  string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	store := memory.NewStore()
	authUC := auth.NewAuthUseCase(store.Users(), store.Staff(), memory.NewRevocationStore(), auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
	})
	ledger := inventory.NewLedgerUseCase(store, store.Products(), store.Movements(), nil, logger.Nop(), inventory.LedgerConfig{
		Backoff: time.Millisecond,
	})

	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:        authUC,
		UserUC:        usecase.NewUserUseCase(store.Users()),
		ProductUC:     usecase.NewProductUseCase(store.Products(), store.Categories(), store.Suppliers()),
		CategoryUC:    usecase.NewCategoryUseCase(store.Categories(), store.Products()),
		SupplierUC:    usecase.NewSupplierUseCase(store.Suppliers(), store.Products()),
		StaffUC:       usecase.NewStaffUseCase(store.Staff()),
		Ledger:        ledger,
		Replenishment: inventory.NewReplenishmentUseCase(store.Reports()),
		DashboardUC:   appanalytics.NewDashboardUseCase(store.Reports()),
		ReportUC:      appanalytics.NewReportUseCase(store.Reports()),
		JWTSecret:     testJWTSecret,
	})

	admin, _, err := pkgjwt.Generate(testJWTSecret, uuid.New().String(), "admin", "Admin", testIssuer, testExpMin)
	require.NoError(t, err)
	staff, _, err := pkgjwt.Generate(testJWTSecret, uuid.New().String(), "staff", "Bodega", testIssuer, testExpMin)
	require.NoError(t, err)
	return &testAPI{app: app, authUC: authUC, admin: admin, staff: staff}
}

// call lanza la petición y decodifica el body JSON en out (si no es nil).
func (a *testAPI) call(t *testing.T, method, path, token string, body any, out any) int {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (a *testAPI) createProduct(t *testing.T, sku string, qty int64) dto.ProductResponse {
	t.Helper()
	var p dto.ProductResponse
	status := a.call(t, http.MethodPost, "/api/products", a.admin, fiber.Map{
		"sku": sku, "name": "Producto " + sku, "quantity": qty, "reorder_level": 5, "price": "1500.00",
	}, &p)
	require.Equal(t, http.StatusCreated, status)
	return p
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_RegistrarMovimientosYConsultarHistorial(t *testing.T) {
	api := newTestAPI(t)
	p := api.createProduct(t, "CAF-001", 10)

	var res dto.RegisterMovementResponse
	status := api.call(t, http.MethodPost, "/api/inventory/movements", api.staff, dto.RegisterMovementRequest{
		ProductID: p.ID, Direction: "OUT", Quantity: 3, Note: "despacho",
	}, &res)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, int64(7), res.NewQuantity)
	assert.Equal(t, int64(10), res.Movement.PreviousQuantity)
	assert.Equal(t, int64(7), res.Movement.ResultingQuantity)
	assert.Equal(t, "staff", res.Movement.ActorKind)

	var errBody dto.ErrorResponse
	status = api.call(t, http.MethodPost, "/api/inventory/movements", api.staff, dto.RegisterMovementRequest{
		ProductID: p.ID, Direction: "OUT", Quantity: 20,
	}, &errBody)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", errBody.Code)

	var qty dto.QuantityResponse
	status = api.call(t, http.MethodGet, "/api/products/"+p.ID+"/quantity", api.staff, nil, &qty)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(7), qty.Quantity)

	var list dto.MovementListResponse
	status = api.call(t, http.MethodGet, "/api/products/"+p.ID+"/movements", api.staff, nil, &list)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list.Items, 1)
	assert.Equal(t, res.Movement.ID, list.Items[0].ID)

	var mov dto.MovementResponse
	status = api.call(t, http.MethodGet, "/api/inventory/movements/"+res.Movement.ID, api.staff, nil, &mov)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "despacho", mov.Note)

	status = api.call(t, http.MethodGet, "/api/inventory/movements/00000000-0000-0000-0000-000000000000", api.staff, nil, &errBody)
	assert.Equal(t, http.StatusNotFound, status)

	status = api.call(t, http.MethodGet, "/api/inventory/movements?direction=IN", api.staff, nil, &list)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, list.Items)
}

func TestAPI_MovimientoInvalido(t *testing.T) {
	api := newTestAPI(t)

	for _, qty := range []any{0, -3, 2.5, "diez"} {
		var errBody dto.ErrorResponse
		status := api.call(t, http.MethodPost, "/api/inventory/movements", api.staff, fiber.Map{
			"product_id": uuid.New().String(), "direction": "OUT", "quantity": qty,
		}, &errBody)
		assert.Equal(t, http.StatusBadRequest, status, "cantidad %v", qty)
		assert.Equal(t, "INVALID_QUANTITY", errBody.Code, "cantidad %v", qty)
	}

	var errBody dto.ErrorResponse
	status := api.call(t, http.MethodPost, "/api/inventory/movements", api.staff, fiber.Map{
		"product_id": uuid.New().String(), "direction": "SIDEWAYS", "quantity": 1,
	}, &errBody)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errBody.Code)
	assert.Contains(t, errBody.Details, "direction")

	status = api.call(t, http.MethodPost, "/api/inventory/movements", api.staff, dto.RegisterMovementRequest{
		ProductID: uuid.New().String(), Direction: "IN", Quantity: 1,
	}, &errBody)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "PRODUCT_NOT_FOUND", errBody.Code)
}

func TestAPI_IDMalFormadoEsNoEncontrado(t *testing.T) {
	api := newTestAPI(t)

	var errBody dto.ErrorResponse
	for _, path := range []string{"/api/products/abc", "/api/products/abc/quantity", "/api/products/abc/movements"} {
		status := api.call(t, http.MethodGet, path, api.staff, nil, &errBody)
		assert.Equal(t, http.StatusNotFound, status, path)
		assert.Equal(t, "PRODUCT_NOT_FOUND", errBody.Code, path)
	}

	status := api.call(t, http.MethodPost, "/api/products/abc/reconcile", api.admin, nil, &errBody)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "PRODUCT_NOT_FOUND", errBody.Code)

	status = api.call(t, http.MethodGet, "/api/inventory/movements/abc", api.staff, nil, &errBody)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errBody.Code)
}

func TestAPI_ConciliacionSoloAdmin(t *testing.T) {
	api := newTestAPI(t)
	p := api.createProduct(t, "TE-001", 4)

	status := api.call(t, http.MethodPost, "/api/products/"+p.ID+"/reconcile", api.staff, nil, nil)
	assert.Equal(t, http.StatusForbidden, status)

	var report dto.ReconciliationReportDTO
	status = api.call(t, http.MethodPost, "/api/products/"+p.ID+"/reconcile", api.admin, nil, &report)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, report.Consistent)
	assert.Equal(t, int64(4), report.ExpectedQuantity)

	var all dto.ReconcileAllResponse
	status = api.call(t, http.MethodGet, "/api/inventory/reconcile", api.admin, nil, &all)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, all.ProductsChecked)
	assert.Empty(t, all.Mismatches)
}

func TestAPI_ProductoArchivadoRechazaMovimientos(t *testing.T) {
	api := newTestAPI(t)
	p := api.createProduct(t, "AR-001", 4)

	status := api.call(t, http.MethodDelete, "/api/products/"+p.ID, api.staff, nil, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status = api.call(t, http.MethodDelete, "/api/products/"+p.ID, api.admin, nil, nil)
	require.Equal(t, http.StatusNoContent, status)

	status = api.call(t, http.MethodPost, "/api/inventory/movements", api.staff, dto.RegisterMovementRequest{
		ProductID: p.ID, Direction: "IN", Quantity: 1,
	}, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_LoginLogoutRevocaToken(t *testing.T) {
	api := newTestAPI(t)
	_, err := api.authUC.SeedAdmin(context.Background(), "admin@example.com", "supersecreto", "Admin")
	require.NoError(t, err)

	var login dto.LoginResponse
	status := api.call(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email: "admin@example.com", Password: "supersecreto",
	}, &login)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, login.Token)

	var me dto.MeResponse
	status = api.call(t, http.MethodGet, "/api/auth/me", login.Token, nil, &me)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "admin", me.Role)

	status = api.call(t, http.MethodPost, "/api/auth/logout", login.Token, nil, nil)
	require.Equal(t, http.StatusNoContent, status)

	status = api.call(t, http.MethodGet, "/api/auth/me", login.Token, nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status = api.call(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email: "admin@example.com", Password: "incorrecta",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAPI_ProductosSoloAdminPuedeCrearYEditar(t *testing.T) {
	api := newTestAPI(t)

	var errBody dto.ErrorResponse
	status := api.call(t, http.MethodPost, "/api/products", api.staff, fiber.Map{
		"sku": "PAN-001", "name": "Pan", "quantity": 1000, "reorder_level": 5, "price": "900.00",
	}, &errBody)
	assert.Equal(t, http.StatusForbidden, status)

	p := api.createProduct(t, "PAN-002", 10)
	status = api.call(t, http.MethodPut, "/api/products/"+p.ID, api.staff, fiber.Map{
		"name": "Pan integral", "reorder_level": 5, "price": "950.00",
	}, &errBody)
	assert.Equal(t, http.StatusForbidden, status)

	var list dto.ProductListResponse
	status = api.call(t, http.MethodGet, "/api/products", api.staff, nil, &list)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "PAN-002", list.Items[0].SKU)
}

func TestAPI_StaffSoloAdmin(t *testing.T) {
	api := newTestAPI(t)

	status := api.call(t, http.MethodGet, "/api/staff", api.staff, nil, nil)
	assert.Equal(t, http.StatusForbidden, status)

	var created dto.StaffResponse
	status = api.call(t, http.MethodPost, "/api/staff", api.admin, dto.CreateStaffRequest{
		StaffCode: "BOD01", FirstName: "Ana", LastName: "Ruiz", Password: "clave-segura",
	}, &created)
	require.Equal(t, http.StatusCreated, status)

	var raw map[string]any
	status = api.call(t, http.MethodGet, "/api/staff/"+created.ID, api.admin, nil, &raw)
	require.Equal(t, http.StatusOK, status)
	assert.NotContains(t, raw, "password_hash")
	assert.NotContains(t, raw, "password")
}

func TestAPI_ConsultarAdministrador(t *testing.T) {
	api := newTestAPI(t)
	seeded, err := api.authUC.SeedAdmin(context.Background(), "jefe@example.com", "clave-segura", "Jefa")
	require.NoError(t, err)

	var raw map[string]any
	status := api.call(t, http.MethodGet, "/api/users/"+seeded.ID, api.admin, nil, &raw)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "jefe@example.com", raw["email"])
	assert.NotContains(t, raw, "password_hash")

	status = api.call(t, http.MethodGet, "/api/users/"+seeded.ID, api.staff, nil, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status = api.call(t, http.MethodGet, "/api/users/"+uuid.New().String(), api.admin, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAPI_ActividadPropiaDelPersonal(t *testing.T) {
	api := newTestAPI(t)
	p := api.createProduct(t, "ARZ-001", 10)

	for _, m := range []struct {
		token string
		dir   string
		qty   int64
	}{
		{api.staff, "IN", 4}, {api.staff, "OUT", 3}, {api.staff, "OUT", 1}, {api.admin, "IN", 20},
	} {
		status := api.call(t, http.MethodPost, "/api/inventory/movements", m.token, dto.RegisterMovementRequest{
			ProductID: p.ID, Direction: m.dir, Quantity: m.qty,
		}, nil)
		require.Equal(t, http.StatusCreated, status)
	}

	var act dto.ActorActivityDTO
	status := api.call(t, http.MethodGet, "/api/dashboard/me", api.staff, nil, &act)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, act.MovementsIn)
	assert.Equal(t, 2, act.MovementsOut)
	assert.Equal(t, int64(4), act.UnitsIn)
	assert.Equal(t, int64(4), act.UnitsOut)
}

func TestAPI_Health(t *testing.T) {
	api := newTestAPI(t)
	var body map[string]any
	status := api.call(t, http.MethodGet, "/health", "", nil, &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}
