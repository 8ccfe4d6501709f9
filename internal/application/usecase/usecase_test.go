package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamprathosh/BB-Inventory-APP/internal/application/dto"
	"github.com/iamprathosh/BB-Inventory-APP/internal/application/inventory"
	"github.com/iamprathosh/BB-Inventory-APP/internal/application/usecase"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
	costing "github.com/iamprathosh/BB-Inventory-APP/internal/domain/inventory"
	"github.com/iamprathosh/BB-Inventory-APP/internal/infrastructure/sqlite"
	"github.com/iamprathosh/BB-Inventory-APP/pkg/logger"
)

func openDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newProductUC(db *sqlx.DB) *usecase.ProductUseCase {
	tx := sqlite.NewTxRunner(db)
	movements := inventory.NewMovementUseCase(tx, sqlite.NewActivityLogRepository(db), logger.Nop())
	return usecase.NewProductUseCase(sqlite.NewProductRepository(db), tx, movements, costing.NewCostPolicy(decimal.Zero))
}

func dec(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_SaldoInicial(t *testing.T) {
	db := openDB(t)
	uc := newProductUC(db)
	ctx := context.Background()

	cases := []struct {
		name     string
		in       dto.CreateProductRequest
		wantMAUC string
	}{
		{"costo explícito", dto.CreateProductRequest{SKU: "A", Name: "A", Price: decimal.NewFromInt(20), InitialQuantity: 10, InitialUnitCost: dec("7")}, "7"},
		{"costo declarado", dto.CreateProductRequest{SKU: "B", Name: "B", Price: decimal.NewFromInt(20), CostPrice: dec("9"), InitialQuantity: 10}, "9"},
		{"ratio sobre precio", dto.CreateProductRequest{SKU: "C", Name: "C", Price: decimal.NewFromInt(20), InitialQuantity: 10}, "12"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := uc.Create(ctx, "u1", tc.in)
			require.NoError(t, err)
			assert.Equal(t, int64(10), p.Quantity)
			assert.True(t, p.MovingAverageCost.Equal(decimal.RequireFromString(tc.wantMAUC)), p.MovingAverageCost.String())
			assert.True(t, p.TotalCostInStock.Equal(p.MovingAverageCost.Mul(decimal.NewFromInt(10))))
		})
	}

	entries, err := sqlite.NewInventoryTransactionRepository(db).List(ctx, entity.TransactionFilter{Types: []string{"adjust"}})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.Equal(t, "opening-balance", e.Reference)
		assert.Equal(t, int64(10), e.Quantity)
	}
}

func TestProductCreate_SinSaldoNoAsientaLedger(t *testing.T) {
	db := openDB(t)
	uc := newProductUC(db)
	ctx := context.Background()

	p, err := uc.Create(ctx, "u1", dto.CreateProductRequest{SKU: "LUM-2X4", Name: "Lumber 2x4", Price: decimal.NewFromInt(5)})
	require.NoError(t, err)
	assert.Equal(t, int64(0), p.Quantity)
	assert.Equal(t, "pcs", p.UnitOfMeasure)

	entries, err := sqlite.NewInventoryTransactionRepository(db).List(ctx, entity.TransactionFilter{ProductID: p.ID})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestProductCreate_Validaciones(t *testing.T) {
	uc := newProductUC(openDB(t))
	ctx := context.Background()

	_, err := uc.Create(ctx, "u1", dto.CreateProductRequest{SKU: " ", Name: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, "u1", dto.CreateProductRequest{SKU: "X", Name: "x", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, "u1", dto.CreateProductRequest{SKU: "X", Name: "x", InitialQuantity: -5})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, "u1", dto.CreateProductRequest{SKU: "X", Name: "x"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, "u1", dto.CreateProductRequest{SKU: "X", Name: "otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductUpdate_NoTocaCostos(t *testing.T) {
	uc := newProductUC(openDB(t))
	ctx := context.Background()

	p, err := uc.Create(ctx, "u1", dto.CreateProductRequest{SKU: "S", Name: "Steel", Price: decimal.NewFromInt(10), InitialQuantity: 4, InitialUnitCost: dec("5")})
	require.NoError(t, err)

	name := "Steel beam"
	level := int64(2)
	upd, err := uc.Update(ctx, p.ID, dto.UpdateProductRequest{Name: &name, ReorderLevel: &level, Price: dec("11")})
	require.NoError(t, err)
	assert.Equal(t, "Steel beam", upd.Name)

	got, err := uc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.Quantity)
	assert.True(t, got.MovingAverageCost.Equal(decimal.NewFromInt(5)))
	require.NotNil(t, got.ReorderLevel)
	assert.Equal(t, int64(2), *got.ReorderLevel)

	empty := "  "
	_, err = uc.Update(ctx, p.ID, dto.UpdateProductRequest{Name: &empty})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, uc.Delete(ctx, p.ID))
	_, err = uc.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, p.ID), domain.ErrProductNotFound)
}

func TestProductList_BuscaPorNombreOSKU(t *testing.T) {
	uc := newProductUC(openDB(t))
	ctx := context.Background()
	for _, in := range []dto.CreateProductRequest{
		{SKU: "CON-01", Name: "Ready mix concrete", Category: "Concrete"},
		{SKU: "LUM-01", Name: "Pine board", Category: "Lumber"},
	} {
		_, err := uc.Create(ctx, "u1", in)
		require.NoError(t, err)
	}

	res, err := uc.List(ctx, dto.ProductQuery{Search: "concrete"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "CON-01", res.Items[0].SKU)
	assert.Equal(t, 20, res.Page.Limit)

	res, err = uc.List(ctx, dto.ProductQuery{Search: "lum-"})
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)

	res, err = uc.List(ctx, dto.ProductQuery{Category: "Lumber"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Pine board", res.Items[0].Name)
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestCatalog_CategoriasYUnidades(t *testing.T) {
	db := openDB(t)
	uc := usecase.NewCatalogUseCase(sqlite.NewCategoryRepository(db), sqlite.NewUnitRepository(db))
	ctx := context.Background()

	c, err := uc.CreateCategory(ctx, "u1", dto.CategoryRequest{Name: "Concrete"})
	require.NoError(t, err)
	assert.True(t, c.IsActive)
	_, err = uc.CreateCategory(ctx, "u1", dto.CategoryRequest{Name: "concrete"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	inactive := false
	_, err = uc.UpdateCategory(ctx, c.ID, dto.CategoryRequest{IsActive: &inactive})
	require.NoError(t, err)
	active, err := uc.ListCategories(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)

	first, err := uc.InitializeDefaultUnits(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 11, first.Created)
	again, err := uc.InitializeDefaultUnits(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, again.Created)

	weights, err := uc.ListUnits(ctx, true, entity.UnitTypeWeight)
	require.NoError(t, err)
	assert.Len(t, weights, 3)

	_, err = uc.CreateUnit(ctx, "u1", dto.UnitRequest{Name: "Furlong", Abbreviation: "fur", Type: "distance"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestUserRoles_PrimerAdminYLuegoSoloAdmins(t *testing.T) {
	db := openDB(t)
	repo := sqlite.NewUserRepository(db)
	uc := usecase.NewUserUseCase(repo)
	ctx := context.Background()

	mk := func(email string) *entity.User {
		now := time.Now()
		u := &entity.User{ID: uuid.New().String(), Email: email, PasswordHash: "x", Name: email, Role: entity.RoleWorker, IsActive: true, CreatedAt: now, UpdatedAt: now}
		require.NoError(t, repo.Create(ctx, u))
		return u
	}
	ana, beto := mk("ana@obra.com"), mk("beto@obra.com")

	// Sin admins cualquiera puede promover al primero.
	up, err := uc.UpdateRole(ctx, ana.ID, ana.ID, entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, up.Role)

	_, err = uc.UpdateRole(ctx, beto.ID, beto.ID, entity.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.List(ctx, beto.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.UpdateRole(ctx, ana.ID, beto.ID, "owner")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	up, err = uc.UpdateRole(ctx, ana.ID, beto.ID, entity.RoleSupervisor)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSupervisor, up.Role)

	list, err := uc.List(ctx, ana.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = uc.UpdateRole(ctx, ana.ID, uuid.New().String(), entity.RoleWorker)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
