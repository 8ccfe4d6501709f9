package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamprathosh/BB-Inventory-APP/internal/domain"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/repository"
	"github.com/iamprathosh/BB-Inventory-APP/internal/infrastructure/sqlite"
)

func openDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newProduct(t *testing.T, repo repository.ProductRepository, sku string) *entity.Product {
	t.Helper()
	now := time.Now()
	p := &entity.Product{ID: uuid.New().String(), SKU: sku, Name: sku, Price: decimal.RequireFromString("19.99"), CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestProductRepo_CostingYBusquedas(t *testing.T) {
	db := openDB(t)
	repo := sqlite.NewProductRepository(db)
	ctx := context.Background()
	p := newProduct(t, repo, "SKU-1")

	missing, err := repo.GetByID(ctx, uuid.New().String())
	require.NoError(t, err)
	assert.Nil(t, missing)

	dup := *p
	dup.ID = uuid.New().String()
	assert.ErrorIs(t, repo.Create(ctx, &dup), domain.ErrDuplicate)

	bought := time.Date(2026, 2, 3, 4, 5, 6, 7, time.UTC)
	price := decimal.RequireFromString("12.3456")
	require.NoError(t, repo.UpdateCosting(ctx, p.ID, repository.CostingUpdate{
		Quantity:          7,
		TotalCostInStock:  decimal.RequireFromString("86.4192"),
		MovingAverageCost: price,
		LastPurchasePrice: &price,
		LastPurchaseDate:  &bought,
		UpdatedAt:         bought,
	}))

	got, err := repo.GetBySKU(ctx, "SKU-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(7), got.Quantity)
	assert.True(t, got.MovingAverageCost.Equal(price))
	assert.True(t, got.Price.Equal(decimal.RequireFromString("19.99")))
	require.NotNil(t, got.LastPurchaseDate)
	assert.True(t, got.LastPurchaseDate.Equal(bought))

	// Update de catálogo no pisa los totales.
	got.Name = "Renamed"
	require.NoError(t, repo.Update(ctx, got))
	again, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", again.Name)
	assert.Equal(t, int64(7), again.Quantity)

	err = repo.UpdateCosting(ctx, uuid.New().String(), repository.CostingUpdate{UpdatedAt: bought})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductRepo_CantidadNegativaRechazada(t *testing.T) {
	db := openDB(t)
	repo := sqlite.NewProductRepository(db)
	p := newProduct(t, repo, "NEG")

	err := repo.UpdateCosting(context.Background(), p.ID, repository.CostingUpdate{Quantity: -1, UpdatedAt: time.Now()})
	assert.Error(t, err)
}

func TestLedger_SobreviveAlBorradoDelProducto(t *testing.T) {
	db := openDB(t)
	products := sqlite.NewProductRepository(db)
	ledger := sqlite.NewInventoryTransactionRepository(db)
	ctx := context.Background()
	p := newProduct(t, products, "GONE")

	base := time.Now().UTC()
	for i, typ := range []string{"receive", "pull", "return"} {
		require.NoError(t, ledger.Create(ctx, &entity.InventoryTransaction{
			ID:        uuid.New().String(),
			ProductID: p.ID,
			Type:      typ,
			Quantity:  int64(i + 1),
			UnitPrice: decimal.NewFromInt(3),
			Date:      base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, products.Delete(ctx, p.ID))

	all, err := ledger.List(ctx, entity.TransactionFilter{ProductID: p.ID})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "return", all[0].Type, "más reciente primero")

	from := base.Add(30 * time.Second)
	ins, err := ledger.List(ctx, entity.TransactionFilter{ProductID: p.ID, Types: []string{"pull", "return"}, From: &from, Limit: 1})
	require.NoError(t, err)
	require.Len(t, ins, 1)
	assert.Equal(t, "return", ins[0].Type)
}

func TestVendorRepo_OfertasPreferidoPrimero(t *testing.T) {
	db := openDB(t)
	vendors := sqlite.NewVendorRepository(db)
	p := newProduct(t, sqlite.NewProductRepository(db), "PIPE")
	ctx := context.Background()

	mk := func(name string, active bool) *entity.Vendor {
		v := &entity.Vendor{ID: uuid.New().String(), Name: name, VendorType: "supplier", Specialties: []string{"Plumbing"}, IsActive: active, CreatedAt: time.Now()}
		require.NoError(t, vendors.Create(ctx, v))
		return v
	}
	cheap, preferred, inactive := mk("Cheap", true), mk("Preferred", true), mk("Closed", false)

	offer := func(v *entity.Vendor, price string, pref bool) {
		require.NoError(t, vendors.UpsertProduct(ctx, &entity.VendorProduct{
			ID: uuid.New().String(), VendorID: v.ID, ProductID: p.ID,
			Price: decimal.RequireFromString(price), IsPreferredVendor: pref,
		}))
	}
	offer(cheap, "4.10", false)
	offer(preferred, "5.00", true)
	offer(inactive, "1.00", false)
	// El upsert reemplaza el precio anterior.
	offer(cheap, "3.90", false)

	offers, err := vendors.ListOffersForProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, offers, 2)
	assert.Equal(t, "Preferred", offers[0].Vendor.Name)
	assert.Equal(t, "Cheap", offers[1].Vendor.Name)
	assert.True(t, offers[1].Product.Price.Equal(decimal.RequireFromString("3.90")))
	assert.Equal(t, []string{"Plumbing"}, offers[1].Vendor.Specialties)

	active, err := vendors.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, active, 2)
}

func TestMaintenance_ClearAllConservaUsuarios(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	users := sqlite.NewUserRepository(db)
	products := sqlite.NewProductRepository(db)
	now := time.Now()

	require.NoError(t, users.Create(ctx, &entity.User{ID: uuid.New().String(), Email: "a@b.c", PasswordHash: "x", Name: "A", Role: entity.RoleAdmin, IsActive: true, CreatedAt: now, UpdatedAt: now}))
	newProduct(t, products, "P1")
	newProduct(t, products, "P2")

	counts, err := sqlite.NewMaintenanceRepository(db).ClearAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts.Products)
	assert.Equal(t, int64(0), counts.Transactions)

	list, err := products.List(ctx, repository.ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
	n, err := users.CountByRole(ctx, entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
