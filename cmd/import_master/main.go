// import_master carga la lista maestra de materiales de obra: categorías, unidades
// y productos con su stock inicial. Cada saldo inicial entra al ledger como ajuste
// al costo declarado, de modo que el MAUC arranca en ese costo.
//
// Es idempotente: categorías, unidades y SKU existentes se omiten.
//
// Uso:
//
//	go run ./cmd/import_master                 # usa DB_DRIVER y .env
//	go run ./cmd/import_master -user <user-id> # registra la carga a nombre de ese usuario
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/iamprathosh/BB-Inventory-APP/internal/application/inventory"
	"github.com/iamprathosh/BB-Inventory-APP/internal/application/usecase"
	costing "github.com/iamprathosh/BB-Inventory-APP/internal/domain/inventory"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/repository"
	"github.com/iamprathosh/BB-Inventory-APP/internal/infrastructure/postgres"
	"github.com/iamprathosh/BB-Inventory-APP/internal/infrastructure/sqlite"
	"github.com/iamprathosh/BB-Inventory-APP/pkg/config"
	"github.com/iamprathosh/BB-Inventory-APP/pkg/logger"
)

func main() {
	userID := flag.String("user", "", "usuario que figura como autor de la carga (vacío = sistema)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("import_master")
	ctx := context.Background()

	s, closeDB, err := openSeeder(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conectar base: %v\n", err)
		os.Exit(1)
	}
	defer closeDB()

	res, err := s.run(ctx, *userID)
	if err != nil {
		log.Error().Err(err).Msg("carga de lista maestra")
		closeDB()
		os.Exit(1)
	}
	log.Info().
		Int("categories", res.Categories).
		Int("units", res.Units).
		Int("products", res.Products).
		Int("skipped", res.Skipped).
		Str("driver", cfg.DB.Driver).
		Msg("lista maestra importada")
}

func openSeeder(ctx context.Context, cfg *config.Config, log *logger.Logger) (seeder, func(), error) {
	var (
		products   repository.ProductRepository
		categories repository.CategoryRepository
		units      repository.UnitRepository
		logs       repository.ActivityLogRepository
		tx         inventory.TxRunner
		closeDB    func()
	)
	if cfg.DB.Driver == config.DriverSQLite {
		db, err := sqlite.Open(ctx, cfg.DB.SQLitePath)
		if err != nil {
			return seeder{}, nil, err
		}
		products, categories, units = sqlite.NewProductRepository(db), sqlite.NewCategoryRepository(db), sqlite.NewUnitRepository(db)
		logs, tx = sqlite.NewActivityLogRepository(db), sqlite.NewTxRunner(db)
		closeDB = func() { db.Close() }
	} else {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return seeder{}, nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return seeder{}, nil, err
		}
		products, categories, units = postgres.NewProductRepository(pool), postgres.NewCategoryRepository(pool), postgres.NewUnitRepository(pool)
		logs, tx = postgres.NewActivityLogRepository(pool), postgres.NewTxRunner(pool)
		closeDB = pool.Close
	}

	movements := inventory.NewMovementUseCase(tx, logs, log)
	return seeder{
		catalog:  usecase.NewCatalogUseCase(categories, units),
		products: usecase.NewProductUseCase(products, tx, movements, costing.NewCostPolicy(cfg.Costing.DefaultCostRatio)),
	}, closeDB, nil
}
