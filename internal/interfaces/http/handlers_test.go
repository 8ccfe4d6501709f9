package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/iamprathosh/BB-Inventory-APP/internal/application/analytics"
	"github.com/iamprathosh/BB-Inventory-APP/internal/application/auth"
	"github.com/iamprathosh/BB-Inventory-APP/internal/application/dto"
	"github.com/iamprathosh/BB-Inventory-APP/internal/application/inventory"
	"github.com/iamprathosh/BB-Inventory-APP/internal/application/purchasing"
	"github.com/iamprathosh/BB-Inventory-APP/internal/application/usecase"
	costing "github.com/iamprathosh/BB-Inventory-APP/internal/domain/inventory"
	"github.com/iamprathosh/BB-Inventory-APP/internal/infrastructure/pdf"
	"github.com/iamprathosh/BB-Inventory-APP/internal/infrastructure/sqlite"
	apphttp "github.com/iamprathosh/BB-Inventory-APP/internal/interfaces/http"
	"github.com/iamprathosh/BB-Inventory-APP/pkg/logger"
)

// newTestServer arma la API completa sobre SQLite en memoria.
func newTestServer(t *testing.T) *fiber.App {
	t.Helper()
	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logger.Nop()
	policy := costing.NewCostPolicy(decimal.Zero)

	userRepo := sqlite.NewUserRepository(db)
	productRepo := sqlite.NewProductRepository(db)
	txRepo := sqlite.NewInventoryTransactionRepository(db)
	categoryRepo := sqlite.NewCategoryRepository(db)
	unitRepo := sqlite.NewUnitRepository(db)
	vendorRepo := sqlite.NewVendorRepository(db)
	projectRepo := sqlite.NewProjectRepository(db)
	poRepo := sqlite.NewPurchaseOrderRepository(db)
	logRepo := sqlite.NewActivityLogRepository(db)
	txRunner := sqlite.NewTxRunner(db)

	movements := inventory.NewMovementUseCase(txRunner, logRepo, log)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:        auth.NewAuthUseCase(userRepo, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		ProductUC:     usecase.NewProductUseCase(productRepo, txRunner, movements, policy),
		Movements:     movements,
		Costing:       inventory.NewCostingUseCase(productRepo, txRepo, txRunner, policy),
		Replenishment: inventory.NewReplenishmentUseCase(productRepo, txRepo, vendorRepo, policy, 10),
		CatalogUC:     usecase.NewCatalogUseCase(categoryRepo, unitRepo),
		VendorUC:      usecase.NewVendorUseCase(vendorRepo, productRepo, logRepo, log),
		PurchaseOrders: purchasing.NewPurchaseOrderUseCase(purchasing.Deps{
			TxRunner:  txRunner,
			Orders:    poRepo,
			Products:  productRepo,
			Vendors:   vendorRepo,
			Projects:  projectRepo,
			Logs:      logRepo,
			Movements: movements,
			PDF:       pdf.NewMarotoPDFGenerator("B&B Test"),
			Log:       log,
		}),
		ProjectUC:     usecase.NewProjectUseCase(projectRepo, txRepo, userRepo),
		UserUC:        usecase.NewUserUseCase(userRepo),
		ActivityUC:    usecase.NewActivityUseCase(logRepo),
		DashboardUC:   appanalytics.NewDashboardUseCase(productRepo, txRepo, poRepo, categoryRepo, policy, 10),
		MaintenanceUC: usecase.NewMaintenanceUseCase(sqlite.NewMaintenanceRepository(db), log),
		JWTSecret:     testJWTSecret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(b, &v), string(b))
	return v
}

// signup registra y loguea un usuario; devuelve token e ID.
func signup(t *testing.T, app *fiber.App, email string) (string, string) {
	t.Helper()
	status, body := call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Email: email, Password: "secreto123", Name: email})
	require.Equal(t, http.StatusCreated, status, string(body))
	user := decode[dto.UserResponse](t, body)
	return login(t, app, email), user.ID
}

func login(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	status, body := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: "secreto123"})
	require.Equal(t, http.StatusOK, status, string(body))
	return decode[dto.LoginResponse](t, body).Token
}

// adminToken registra un usuario y lo promueve a primer admin.
func adminToken(t *testing.T, app *fiber.App) string {
	t.Helper()
	tok, id := signup(t, app, "jefe@bb.test")
	status, body := call(t, app, http.MethodPut, "/api/users/"+id+"/role", tok, dto.UpdateRoleRequest{Role: "admin"})
	require.Equal(t, http.StatusOK, status, string(body))
	return login(t, app, "jefe@bb.test")
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func createProduct(t *testing.T, app *fiber.App, token, sku string, qty int64, cost string) dto.ProductResponse {
	t.Helper()
	status, body := call(t, app, http.MethodPost, "/api/products", token, dto.CreateProductRequest{
		SKU: sku, Name: "Producto " + sku, Category: "Lumber", Price: d("20"),
		InitialQuantity: qty, InitialUnitCost: dp(cost),
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	return decode[dto.ProductResponse](t, body)
}

func TestAuth_RegistroDuplicadoYLoginFallido(t *testing.T) {
	app := newTestServer(t)
	signup(t, app, "ana@bb.test")

	status, body := call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Email: "ana@bb.test", Password: "secreto123"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, string(body), "EMAIL_EXISTS")

	status, _ = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "ana@bb.test", Password: "incorrecta1"})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Email: "corta@bb.test", Password: "123"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestUsers_PrimerAdminYLuegoSoloAdmin(t *testing.T) {
	app := newTestServer(t)
	admin := adminToken(t, app)

	worker, workerID := signup(t, app, "obrero@bb.test")
	status, body := call(t, app, http.MethodGet, "/api/users/me", worker, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "worker", decode[dto.UserResponse](t, body).Role)

	// Ya existe un admin: un worker no puede cambiar roles.
	status, _ = call(t, app, http.MethodPut, "/api/users/"+workerID+"/role", worker, dto.UpdateRoleRequest{Role: "admin"})
	assert.Equal(t, http.StatusForbidden, status)

	status, body = call(t, app, http.MethodPut, "/api/users/"+workerID+"/role", admin, dto.UpdateRoleRequest{Role: "supervisor"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "supervisor", decode[dto.UserResponse](t, body).Role)

	status, body = call(t, app, http.MethodGet, "/api/users", admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]dto.UserResponse](t, body), 2)
}

func TestInventory_FlujoDeMovimientos(t *testing.T) {
	app := newTestServer(t)
	admin := adminToken(t, app)

	p := createProduct(t, app, admin, "LUM-2X4", 100, "10")
	assert.Equal(t, int64(100), p.Quantity)
	assert.True(t, d("10").Equal(p.MovingAverageCost))
	assert.True(t, d("1000").Equal(p.TotalCostInStock))

	status, body := call(t, app, http.MethodPost, "/api/inventory/receive", admin, dto.MovementRequest{
		ProductID: p.ID, Quantity: 50, UnitCost: dp("16"), Reference: "DR-1",
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	mv := decode[dto.MovementResponse](t, body)
	assert.True(t, d("10").Equal(mv.PreviousMAUC))
	assert.True(t, d("12").Equal(mv.NewMAUC))
	assert.Equal(t, int64(150), mv.NewQuantity)

	status, body = call(t, app, http.MethodPost, "/api/inventory/pull", admin, dto.MovementRequest{ProductID: p.ID, Quantity: 30})
	require.Equal(t, http.StatusCreated, status, string(body))
	mv = decode[dto.MovementResponse](t, body)
	assert.Equal(t, int64(120), mv.NewQuantity)
	assert.True(t, d("12").Equal(mv.NewMAUC))
	assert.True(t, d("1440").Equal(mv.NewTotalCostInStock))

	status, body = call(t, app, http.MethodPost, "/api/inventory/pull", admin, dto.MovementRequest{ProductID: p.ID, Quantity: 1000})
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, string(body), "INSUFFICIENT_STOCK")

	status, body = call(t, app, http.MethodPost, "/api/inventory/movements", admin, dto.MovementRequest{ProductID: p.ID, Type: "transfer", Quantity: 1})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), "UNSUPPORTED_TRANSACTION_TYPE")

	status, body = call(t, app, http.MethodPost, "/api/inventory/movements", admin, dto.MovementRequest{ProductID: "no-existe", Type: "pull", Quantity: 1})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, string(body), "PRODUCT_NOT_FOUND")

	status, body = call(t, app, http.MethodGet, "/api/inventory/transactions?product_id="+p.ID, admin, nil)
	require.Equal(t, http.StatusOK, status)
	ledger := decode[[]dto.TransactionResponse](t, body)
	require.Len(t, ledger, 3)
	// Más reciente primero; cantidades con signo.
	assert.Equal(t, "pull", ledger[0].Type)
	assert.Equal(t, int64(-30), ledger[0].Quantity)
	assert.Equal(t, "receive", ledger[1].Type)
	assert.True(t, d("10").Equal(ledger[1].MAUCAtTimeOfTransaction))
	assert.True(t, d("12").Equal(ledger[1].NewMAUCAfterTransaction))

	status, body = call(t, app, http.MethodGet, "/api/products/"+p.ID+"/mauc-history", admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]dto.TransactionResponse](t, body), 2) // adjust de apertura + receive

	status, body = call(t, app, http.MethodGet, "/api/products/"+p.ID, admin, nil)
	require.Equal(t, http.StatusOK, status)
	got := decode[dto.ProductResponse](t, body)
	assert.Equal(t, int64(120), got.Quantity)
	require.NotNil(t, got.LastPurchasePrice)
	assert.True(t, d("16").Equal(*got.LastPurchasePrice))
}

func TestInventory_WorkerNoAdministraCatalogo(t *testing.T) {
	app := newTestServer(t)
	admin := adminToken(t, app)
	worker, _ := signup(t, app, "obrero@bb.test")
	p := createProduct(t, app, admin, "CEM-50", 10, "8")

	status, body := call(t, app, http.MethodPost, "/api/products", worker, dto.CreateProductRequest{SKU: "X-1", Name: "X", Price: d("1")})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Contains(t, string(body), "FORBIDDEN")

	status, _ = call(t, app, http.MethodPost, "/api/inventory/adjust", worker, dto.MovementRequest{ProductID: p.ID, Quantity: -1})
	assert.Equal(t, http.StatusForbidden, status)

	// Pull sí está permitido.
	status, body = call(t, app, http.MethodPost, "/api/inventory/pull", worker, dto.MovementRequest{ProductID: p.ID, Quantity: 2})
	assert.Equal(t, http.StatusCreated, status, string(body))

	status, _ = call(t, app, http.MethodPost, "/api/admin/clear-all", worker, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestProducts_SKUDuplicado(t *testing.T) {
	app := newTestServer(t)
	admin := adminToken(t, app)
	createProduct(t, app, admin, "PLY-4X8", 0, "0")

	status, body := call(t, app, http.MethodPost, "/api/products", admin, dto.CreateProductRequest{SKU: "PLY-4X8", Name: "Otro", Price: d("5")})
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, string(body), "DUPLICATE")
}

func TestPurchaseOrders_CrearRecibirYCancelar(t *testing.T) {
	app := newTestServer(t)
	admin := adminToken(t, app)
	a := createProduct(t, app, admin, "NAIL-16D", 10, "2")
	b := createProduct(t, app, admin, "SCREW-3", 0, "0")

	status, body := call(t, app, http.MethodPost, "/api/vendors", admin, dto.VendorRequest{Name: "Ferretería Norte", Email: "ventas@norte.test"})
	require.Equal(t, http.StatusCreated, status, string(body))
	vendor := decode[dto.VendorDetailResponse](t, body)

	status, body = call(t, app, http.MethodPost, "/api/purchase-orders", admin, dto.CreatePurchaseOrderRequest{
		VendorID: vendor.ID,
		Items: []dto.PurchaseOrderItemDTO{
			{ProductID: a.ID, Quantity: 10, UnitPrice: d("4")},
			{ProductID: b.ID, Quantity: 5, UnitPrice: d("1.5")},
		},
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	po := decode[dto.PurchaseOrderResponse](t, body)
	assert.Equal(t, "pending", po.Status)
	assert.Equal(t, "Ferretería Norte", po.Supplier)
	assert.True(t, d("47.5").Equal(po.TotalAmount))

	status, body = call(t, app, http.MethodPost, "/api/purchase-orders/"+po.ID+"/receive", admin, dto.ReceivePurchaseOrderRequest{DeliveryReceiptNumber: "REM-77"})
	require.Equal(t, http.StatusOK, status, string(body))
	rec := decode[dto.ReceivePurchaseOrderResponse](t, body)
	assert.Equal(t, "received", rec.PurchaseOrder.Status)
	require.Len(t, rec.Movements, 2)
	// 10@2 + 10@4 = 60 / 20 = 3
	assert.True(t, d("3").Equal(rec.Movements[0].NewMAUC))

	// Una orden recibida no se recibe ni se cancela otra vez.
	status, _ = call(t, app, http.MethodPost, "/api/purchase-orders/"+po.ID+"/receive", admin, nil)
	assert.Equal(t, http.StatusConflict, status)
	status, _ = call(t, app, http.MethodPost, "/api/purchase-orders/"+po.ID+"/cancel", admin, nil)
	assert.Equal(t, http.StatusConflict, status)

	status, body = call(t, app, http.MethodGet, "/api/inventory/transactions?type=receive&vendor_id="+vendor.ID, admin, nil)
	require.Equal(t, http.StatusOK, status)
	ledger := decode[[]dto.TransactionResponse](t, body)
	require.Len(t, ledger, 2)
	for _, tr := range ledger {
		assert.Equal(t, po.PONumber, tr.Reference)
		assert.Equal(t, "REM-77", tr.DeliveryReceiptNumber)
	}

	status, body = call(t, app, http.MethodPost, "/api/purchase-orders", admin, dto.CreatePurchaseOrderRequest{
		Supplier: "Mostrador",
		Items:    []dto.PurchaseOrderItemDTO{{ProductID: a.ID, Quantity: 1, UnitPrice: d("4")}},
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	second := decode[dto.PurchaseOrderResponse](t, body)
	status, body = call(t, app, http.MethodPost, "/api/purchase-orders/"+second.ID+"/cancel", admin, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, "cancelled", decode[dto.PurchaseOrderResponse](t, body).Status)

	status, body = call(t, app, http.MethodGet, "/api/purchase-orders?status=pending", admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[[]dto.PurchaseOrderResponse](t, body))
}

func TestPurchaseOrders_PDF(t *testing.T) {
	app := newTestServer(t)
	admin := adminToken(t, app)
	p := createProduct(t, app, admin, "REBAR-4", 0, "0")

	status, body := call(t, app, http.MethodPost, "/api/purchase-orders", admin, dto.CreatePurchaseOrderRequest{
		PONumber: "PO-TEST-1",
		Supplier: "Aceros del Sur",
		Items:    []dto.PurchaseOrderItemDTO{{ProductID: p.ID, Quantity: 12, UnitPrice: d("9.75")}},
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	po := decode[dto.PurchaseOrderResponse](t, body)

	req := httptest.NewRequest(http.MethodGet, "/api/purchase-orders/"+po.ID+"/pdf", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "PO-TEST-1.pdf")
	raw, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestDashboard_Y_ClearAll(t *testing.T) {
	app := newTestServer(t)
	admin := adminToken(t, app)
	createProduct(t, app, admin, "LOW-1", 3, "5")
	createProduct(t, app, admin, "HIGH-1", 80, "5")

	status, body := call(t, app, http.MethodGet, "/api/dashboard", admin, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	dash := decode[dto.DashboardResponse](t, body)
	assert.Equal(t, 2, dash.KPIs.TotalProducts)
	assert.Equal(t, 1, dash.KPIs.StockAlerts)
	assert.True(t, d("415").Equal(dash.KPIs.TotalCostValue))
	assert.Len(t, dash.MonthlySales, 6)

	status, body = call(t, app, http.MethodGet, "/api/inventory/replenishment-list", admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "LOW-1")

	status, body = call(t, app, http.MethodPost, "/api/admin/clear-all", admin, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Contains(t, string(body), `"products":2`)

	status, body = call(t, app, http.MethodGet, "/api/products", admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[dto.ProductListResponse](t, body).Items)

	// Los usuarios sobreviven al borrado.
	status, _ = call(t, app, http.MethodGet, "/api/users/me", admin, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestProjects_CRUDYAnalitica(t *testing.T) {
	app := newTestServer(t)
	admin := adminToken(t, app)
	p := createProduct(t, app, admin, "DRY-1", 20, "7")

	status, body := call(t, app, http.MethodPost, "/api/projects", admin, dto.ProjectRequest{Name: "Casa Pérez"})
	require.Equal(t, http.StatusCreated, status, string(body))
	project := decode[dto.ProjectResponse](t, body)
	assert.Equal(t, "active", project.Status)

	status, body = call(t, app, http.MethodPost, "/api/inventory/pull", admin, dto.MovementRequest{ProductID: p.ID, Quantity: 4, ProjectID: project.ID})
	require.Equal(t, http.StatusCreated, status, string(body))

	status, body = call(t, app, http.MethodGet, "/api/projects/"+project.ID+"/analytics", admin, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	an := decode[dto.ProjectAnalyticsResponse](t, body)
	assert.Equal(t, 1, an.TotalTransactions)
	assert.True(t, d("28").Equal(an.TotalInventoryCost))

	status, _ = call(t, app, http.MethodGet, "/api/projects?status=bogus", admin, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = call(t, app, http.MethodDelete, "/api/projects/"+project.ID, admin, nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = call(t, app, http.MethodGet, "/api/projects/"+project.ID, admin, nil)
	assert.Equal(t, http.StatusNotFound, status)
}
