package purchasing_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamprathosh/BB-Inventory-APP/internal/application/dto"
	"github.com/iamprathosh/BB-Inventory-APP/internal/application/inventory"
	"github.com/iamprathosh/BB-Inventory-APP/internal/application/purchasing"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/repository"
	"github.com/iamprathosh/BB-Inventory-APP/internal/infrastructure/sqlite"
	"github.com/iamprathosh/BB-Inventory-APP/pkg/logger"
)

type fakePDF struct{ got purchasing.DocumentData }

func (f *fakePDF) GeneratePurchaseOrder(data purchasing.DocumentData) ([]byte, error) {
	f.got = data
	return []byte("%PDF-fake"), nil
}

type env struct {
	uc       *purchasing.PurchaseOrderUseCase
	products repository.ProductRepository
	vendors  repository.VendorRepository
	ledger   repository.InventoryTransactionRepository
	projects repository.ProjectRepository
	pdf      *fakePDF
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	tx := sqlite.NewTxRunner(db)
	logs := sqlite.NewActivityLogRepository(db)
	e := &env{
		products: sqlite.NewProductRepository(db),
		vendors:  sqlite.NewVendorRepository(db),
		ledger:   sqlite.NewInventoryTransactionRepository(db),
		projects: sqlite.NewProjectRepository(db),
		pdf:      &fakePDF{},
	}
	e.uc = purchasing.NewPurchaseOrderUseCase(purchasing.Deps{
		TxRunner:  tx,
		Orders:    sqlite.NewPurchaseOrderRepository(db),
		Products:  e.products,
		Vendors:   e.vendors,
		Projects:  sqlite.NewProjectRepository(db),
		Logs:      logs,
		Movements: inventory.NewMovementUseCase(tx, logs, logger.Nop()),
		PDF:       e.pdf,
		Log:       logger.Nop(),
	})
	return e
}

func (e *env) product(t *testing.T, sku string) *entity.Product {
	t.Helper()
	now := time.Now().UTC()
	p := &entity.Product{ID: uuid.New().String(), SKU: sku, Name: sku, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, e.products.Create(context.Background(), p))
	return p
}

func (e *env) vendor(t *testing.T, name string) *entity.Vendor {
	t.Helper()
	v := &entity.Vendor{ID: uuid.New().String(), Name: name, VendorType: "supplier", IsActive: true, CreatedAt: time.Now().UTC()}
	require.NoError(t, e.vendors.Create(context.Background(), v))
	return v
}

func line(productID string, qty int64, price string) dto.PurchaseOrderItemDTO {
	return dto.PurchaseOrderItemDTO{ProductID: productID, Quantity: qty, UnitPrice: decimal.RequireFromString(price)}
}

func TestCreate_CalculaTotalYUsaNombreDelProveedor(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a, b := e.product(t, "A"), e.product(t, "B")
	v := e.vendor(t, "Acme Lumber")

	po, err := e.uc.Create(ctx, "u1", dto.CreatePurchaseOrderRequest{
		VendorID: v.ID,
		Items:    []dto.PurchaseOrderItemDTO{line(a.ID, 10, "2.50"), line(b.ID, 3, "7.50")},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusPending, po.Status)
	assert.Equal(t, "Acme Lumber", po.Supplier)
	assert.True(t, po.TotalAmount.Equal(decimal.RequireFromString("47.5")))
	assert.Regexp(t, `^PO-\d{8}-`, po.PONumber)

	_, err = e.uc.Create(ctx, "u1", dto.CreatePurchaseOrderRequest{PONumber: po.PONumber, Supplier: "Otro", Items: []dto.PurchaseOrderItemDTO{line(a.ID, 1, "1")}})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreate_Validaciones(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.product(t, "A")

	_, err := e.uc.Create(ctx, "u1", dto.CreatePurchaseOrderRequest{Supplier: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.uc.Create(ctx, "u1", dto.CreatePurchaseOrderRequest{Items: []dto.PurchaseOrderItemDTO{line(a.ID, 1, "1")}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin proveedor")

	_, err = e.uc.Create(ctx, "u1", dto.CreatePurchaseOrderRequest{Supplier: "X", Items: []dto.PurchaseOrderItemDTO{line(a.ID, 0, "1")}})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = e.uc.Create(ctx, "u1", dto.CreatePurchaseOrderRequest{Supplier: "X", Items: []dto.PurchaseOrderItemDTO{line(uuid.New().String(), 1, "1")}})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = e.uc.Create(ctx, "u1", dto.CreatePurchaseOrderRequest{VendorID: uuid.New().String(), Items: []dto.PurchaseOrderItemDTO{line(a.ID, 1, "1")}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReceive_AplicaCadaLineaAlPrecioDeLaOrden(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.product(t, "A")
	v := e.vendor(t, "Acme")

	po, err := e.uc.Create(ctx, "u1", dto.CreatePurchaseOrderRequest{VendorID: v.ID, Items: []dto.PurchaseOrderItemDTO{line(a.ID, 10, "3")}})
	require.NoError(t, err)

	out, err := e.uc.Receive(ctx, "u1", po.ID, dto.ReceivePurchaseOrderRequest{DeliveryReceiptNumber: "DR-77"})
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusReceived, out.PurchaseOrder.Status)
	require.NotNil(t, out.PurchaseOrder.ReceivedAt)
	require.Len(t, out.Movements, 1)
	assert.Equal(t, "3", out.Movements[0].NewMAUC.String())

	entries, err := e.ledger.List(ctx, entity.TransactionFilter{ProductID: a.ID})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, po.PONumber, entries[0].Reference)
	assert.Equal(t, "DR-77", entries[0].DeliveryReceiptNumber)
	require.NotNil(t, entries[0].VendorID)
	assert.Equal(t, v.ID, *entries[0].VendorID)

	_, err = e.uc.Receive(ctx, "u1", po.ID, dto.ReceivePurchaseOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrConflict)
	_, err = e.uc.Cancel(ctx, "u1", po.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestReceive_LedgerConservaElProyecto(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.product(t, "A")
	proj := &entity.Project{ID: uuid.New().String(), Name: "Torre Norte", Status: entity.ProjectStatusActive, StartDate: time.Now().UTC(), CreatedAt: time.Now().UTC()}
	require.NoError(t, e.projects.Create(ctx, proj))

	po, err := e.uc.Create(ctx, "u1", dto.CreatePurchaseOrderRequest{Supplier: "Acme", ProjectID: proj.ID, Items: []dto.PurchaseOrderItemDTO{line(a.ID, 4, "2")}})
	require.NoError(t, err)
	_, err = e.uc.Receive(ctx, "u1", po.ID, dto.ReceivePurchaseOrderRequest{})
	require.NoError(t, err)

	entries, err := e.ledger.List(ctx, entity.TransactionFilter{ProjectID: proj.ID})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].ProjectID)
	assert.Equal(t, proj.ID, *entries[0].ProjectID)
}

// Una línea que falla revierte toda la recepción.
func TestReceive_LineaFallida_RevierteTodo(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a, gone := e.product(t, "A"), e.product(t, "GONE")

	po, err := e.uc.Create(ctx, "u1", dto.CreatePurchaseOrderRequest{
		Supplier: "Acme",
		Items:    []dto.PurchaseOrderItemDTO{line(a.ID, 5, "2"), line(gone.ID, 1, "9")},
	})
	require.NoError(t, err)
	require.NoError(t, e.products.Delete(ctx, gone.ID))

	_, err = e.uc.Receive(ctx, "u1", po.ID, dto.ReceivePurchaseOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	got, err := e.products.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Quantity)
	assert.True(t, got.MovingAverageCost.IsZero())
	assert.Nil(t, got.LastPurchasePrice)

	entries, err := e.ledger.List(ctx, entity.TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)

	still, err := e.uc.Get(ctx, po.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusPending, still.Status)
}

func TestCancelYList(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.product(t, "A")

	po, err := e.uc.Create(ctx, "u1", dto.CreatePurchaseOrderRequest{Supplier: "Acme", Items: []dto.PurchaseOrderItemDTO{line(a.ID, 1, "1")}})
	require.NoError(t, err)

	cancelled, err := e.uc.Cancel(ctx, "u1", po.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusCancelled, cancelled.Status)

	pending, err := e.uc.List(ctx, entity.POStatusPending)
	require.NoError(t, err)
	assert.Empty(t, pending)
	all, err := e.uc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = e.uc.List(ctx, "shipped")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.uc.Cancel(ctx, "u1", uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocument_ReuneDatosDeLaOrden(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.product(t, "A")
	v := e.vendor(t, "Acme")

	po, err := e.uc.Create(ctx, "u1", dto.CreatePurchaseOrderRequest{VendorID: v.ID, Items: []dto.PurchaseOrderItemDTO{line(a.ID, 2, "5")}})
	require.NoError(t, err)

	content, name, err := e.uc.Document(ctx, po.ID)
	require.NoError(t, err)
	assert.Equal(t, po.PONumber+".pdf", name)
	assert.Equal(t, "%PDF-fake", string(content))
	require.NotNil(t, e.pdf.got.Vendor)
	assert.Equal(t, "Acme", e.pdf.got.Vendor.Name)
	assert.Nil(t, e.pdf.got.Project)
	assert.Contains(t, e.pdf.got.Products, a.ID)
}
