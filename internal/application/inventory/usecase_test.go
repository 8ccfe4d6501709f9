package inventory_test

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamprathosh/BB-Inventory-APP/internal/application/dto"
	"github.com/iamprathosh/BB-Inventory-APP/internal/application/inventory"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
	costing "github.com/iamprathosh/BB-Inventory-APP/internal/domain/inventory"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/repository"
	"github.com/iamprathosh/BB-Inventory-APP/internal/infrastructure/sqlite"
	"github.com/iamprathosh/BB-Inventory-APP/pkg/logger"
)

type fixture struct {
	db       *sqlx.DB
	products repository.ProductRepository
	ledger   repository.InventoryTransactionRepository
	logs     repository.ActivityLogRepository
	uc       *inventory.MovementUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logs := sqlite.NewActivityLogRepository(db)
	return &fixture{
		db:       db,
		products: sqlite.NewProductRepository(db),
		ledger:   sqlite.NewInventoryTransactionRepository(db),
		logs:     logs,
		uc:       inventory.NewMovementUseCase(sqlite.NewTxRunner(db), logs, logger.Nop()),
	}
}

func (f *fixture) product(t *testing.T, sku string) *entity.Product {
	t.Helper()
	now := time.Now().UTC()
	p := &entity.Product{
		ID:            uuid.New().String(),
		SKU:           sku,
		Name:          "Material " + sku,
		UnitOfMeasure: "pcs",
		Price:         decimal.NewFromInt(20),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, f.products.Create(context.Background(), p))
	return p
}

func (f *fixture) reload(t *testing.T, id string) *entity.Product {
	t.Helper()
	p, err := f.products.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p
}

func (f *fixture) ledgerFor(t *testing.T, productID string) []*entity.InventoryTransaction {
	t.Helper()
	list, err := f.ledger.List(context.Background(), entity.TransactionFilter{ProductID: productID})
	require.NoError(t, err)
	return list
}

func cost(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func TestMovimientos_RecalculanMAUC(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "REB-12")

	res, err := f.uc.Receive(ctx, inventory.MovementInput{ProductID: p.ID, Quantity: 100, UnitCost: cost("10")})
	require.NoError(t, err)
	assert.True(t, res.PreviousMAUC.IsZero())
	assert.Equal(t, "10", res.NewMAUC.String())

	res, err = f.uc.Receive(ctx, inventory.MovementInput{ProductID: p.ID, Quantity: 50, UnitCost: cost("16"), Reference: "PO-1"})
	require.NoError(t, err)
	assert.Equal(t, "12", res.NewMAUC.String())
	assert.Equal(t, int64(150), res.NewQuantity)

	res, err = f.uc.Pull(ctx, inventory.MovementInput{ProductID: p.ID, Quantity: 30})
	require.NoError(t, err)
	assert.Equal(t, "12", res.NewMAUC.String(), "una salida no cambia el MAUC")
	assert.Equal(t, int64(120), res.NewQuantity)
	assert.Equal(t, "1440", res.NewTotalCostInStock.String())

	got := f.reload(t, p.ID)
	assert.Equal(t, int64(120), got.Quantity)
	assert.True(t, got.TotalCostInStock.Equal(decimal.NewFromInt(1440)))
	assert.True(t, got.MovingAverageCost.Equal(decimal.NewFromInt(12)))
	require.NotNil(t, got.LastPurchasePrice)
	assert.True(t, got.LastPurchasePrice.Equal(decimal.NewFromInt(16)))

	entries := f.ledgerFor(t, p.ID)
	require.Len(t, entries, 3)
	pull := entries[0]
	assert.Equal(t, "pull", pull.Type)
	assert.Equal(t, int64(-30), pull.Quantity)
	assert.True(t, pull.UnitPrice.Equal(decimal.NewFromInt(12)))
	assert.True(t, pull.TotalCostImpact.Equal(decimal.NewFromInt(-360)))
	assert.Equal(t, "PO-1", entries[1].Reference)
}

func TestPull_StockInsuficiente_NoModificaNada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "CEM-50")

	_, err := f.uc.Receive(ctx, inventory.MovementInput{ProductID: p.ID, Quantity: 5, UnitCost: cost("8.50")})
	require.NoError(t, err)

	_, err = f.uc.Pull(ctx, inventory.MovementInput{ProductID: p.ID, Quantity: 6})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got := f.reload(t, p.ID)
	assert.Equal(t, int64(5), got.Quantity)
	assert.True(t, got.TotalCostInStock.Equal(decimal.RequireFromString("42.5")))
	assert.Len(t, f.ledgerFor(t, p.ID), 1)
}

func TestMovimiento_Errores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "PLY-34")

	_, err := f.uc.ApplyInventoryMovement(ctx, inventory.MovementInput{ProductID: uuid.New().String(), Type: "receive", Quantity: 1, UnitCost: cost("1")})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = f.uc.ApplyInventoryMovement(ctx, inventory.MovementInput{ProductID: p.ID, Type: "transfer", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrUnsupportedTransactionType)

	_, err = f.uc.ApplyInventoryMovement(ctx, inventory.MovementInput{ProductID: p.ID, Type: "receive", Quantity: 0, UnitCost: cost("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.uc.ApplyInventoryMovement(ctx, inventory.MovementInput{Type: "pull", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, f.ledgerFor(t, p.ID))
}

func TestMovimiento_CantidadesExtremasNoBorranStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "NAIL-3")

	_, err := f.uc.Receive(ctx, inventory.MovementInput{ProductID: p.ID, Quantity: 5, UnitCost: cost("4")})
	require.NoError(t, err)

	_, err = f.uc.ApplyInventoryMovement(ctx, inventory.MovementInput{ProductID: p.ID, Type: "receive", Quantity: math.MaxInt64, UnitCost: cost("4")})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	_, err = f.uc.ApplyInventoryMovement(ctx, inventory.MovementInput{ProductID: p.ID, Type: "adjust", Quantity: math.MinInt64})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	got := f.reload(t, p.ID)
	assert.Equal(t, int64(5), got.Quantity)
	assert.True(t, got.TotalCostInStock.Equal(decimal.NewFromInt(20)))
	assert.Len(t, f.ledgerFor(t, p.ID), 1)
}

func TestMovimiento_RegistraActividad(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "PIPE-2")
	projectID := uuid.New().String()
	userID := uuid.New().String()

	_, err := f.uc.Receive(ctx, inventory.MovementInput{ProductID: p.ID, Quantity: 10, UnitCost: cost("4"), UserID: userID})
	require.NoError(t, err)
	_, err = f.uc.Pull(ctx, inventory.MovementInput{ProductID: p.ID, Quantity: 3, UserID: userID, ProjectID: projectID})
	require.NoError(t, err)

	logs, err := f.logs.List(ctx, repository.LogFilter{ProjectID: projectID})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "Inventory Pulled", logs[0].Action)
	assert.Equal(t, "Pulled 3 units of Material PIPE-2. MAUC changed from $4.00 to $4.00", logs[0].Details)

	// Sin usuario no se registra actividad.
	_, err = f.uc.Pull(ctx, inventory.MovementInput{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)
	all, err := f.logs.List(ctx, repository.LogFilter{UserID: userID})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestPull_Concurrente_NoSobregira(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "BOLT-8")

	_, err := f.uc.Receive(ctx, inventory.MovementInput{ProductID: p.ID, Quantity: 10, UnitCost: cost("2")})
	require.NoError(t, err)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok, fail int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Pull(ctx, inventory.MovementInput{ProductID: p.ID, Quantity: 1})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else {
				assert.ErrorIs(t, err, domain.ErrInsufficientStock)
				fail++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, ok)
	assert.Equal(t, 10, fail)
	got := f.reload(t, p.ID)
	assert.Equal(t, int64(0), got.Quantity)
	assert.True(t, got.TotalCostInStock.IsZero())
	assert.Len(t, f.ledgerFor(t, p.ID), 11)
}

func TestParseDateEnd(t *testing.T) {
	end, err := inventory.ParseDateEnd("2024-01-31")
	require.NoError(t, err)
	assert.True(t, end.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))

	at := time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC)
	end, err = inventory.ParseDateEnd(at.Format(time.RFC3339))
	require.NoError(t, err)
	assert.True(t, end.After(at))
	assert.True(t, end.Before(at.Add(time.Millisecond)))

	none, err := inventory.ParseDateEnd("")
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = inventory.ParseDateEnd("31/01/2024")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListTransactions_HastaFechaIncluyeElDia(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "WIRE-12")

	for _, at := range []time.Time{
		time.Date(2024, 1, 30, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC),
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	} {
		require.NoError(t, f.ledger.Create(ctx, &entity.InventoryTransaction{
			ID: uuid.New().String(), ProductID: p.ID, Type: "receive", Quantity: 1, UnitPrice: decimal.NewFromInt(1), Date: at,
		}))
	}

	uc := inventory.NewCostingUseCase(f.products, f.ledger, sqlite.NewTxRunner(f.db), costing.NewCostPolicy(decimal.Zero))
	list, err := uc.ListTransactions(ctx, dto.TransactionQuery{ProductID: p.ID, From: "2024-01-31", To: "2024-01-31"})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = uc.ListTransactions(ctx, dto.TransactionQuery{ProductID: p.ID, To: "2024-01-31T23:59:59Z"})
	require.NoError(t, err)
	assert.Len(t, list, 3)
}
