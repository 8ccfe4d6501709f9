package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	appanalytics "github.com/iamprathosh/BB-Inventory-APP/internal/application/analytics"
	"github.com/iamprathosh/BB-Inventory-APP/internal/application/auth"
	"github.com/iamprathosh/BB-Inventory-APP/internal/application/inventory"
	"github.com/iamprathosh/BB-Inventory-APP/internal/application/purchasing"
	"github.com/iamprathosh/BB-Inventory-APP/internal/application/usecase"
	costing "github.com/iamprathosh/BB-Inventory-APP/internal/domain/inventory"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/repository"
	infrapdf "github.com/iamprathosh/BB-Inventory-APP/internal/infrastructure/pdf"
	"github.com/iamprathosh/BB-Inventory-APP/internal/infrastructure/postgres"
	"github.com/iamprathosh/BB-Inventory-APP/internal/infrastructure/sqlite"
	httpRouter "github.com/iamprathosh/BB-Inventory-APP/internal/interfaces/http"
	"github.com/iamprathosh/BB-Inventory-APP/pkg/config"
	"github.com/iamprathosh/BB-Inventory-APP/pkg/logger"
)

// txRunner lo implementan postgres.TxRunner y sqlite.TxRunner.
type txRunner interface {
	inventory.TxRunner
	purchasing.TxRunner
}

// stores agrupa los repositorios del driver elegido.
type stores struct {
	users        repository.UserRepository
	products     repository.ProductRepository
	transactions repository.InventoryTransactionRepository
	categories   repository.CategoryRepository
	units        repository.UnitRepository
	vendors      repository.VendorRepository
	projects     repository.ProjectRepository
	orders       repository.PurchaseOrderRepository
	logs         repository.ActivityLogRepository
	maintenance  repository.MaintenanceRepository
	tx           txRunner
	close        func()
}

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
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStores(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("conexión a la base de datos")
	}
	defer st.close()

	policy := costing.NewCostPolicy(cfg.Costing.DefaultCostRatio)
	reorder := cfg.Costing.DefaultReorderLevel

	movements := inventory.NewMovementUseCase(st.tx, st.logs, log)
	authUC := auth.NewAuthUseCase(st.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	poUC := purchasing.NewPurchaseOrderUseCase(purchasing.Deps{
		TxRunner:  st.tx,
		Orders:    st.orders,
		Products:  st.products,
		Vendors:   st.vendors,
		Projects:  st.projects,
		Logs:      st.logs,
		Movements: movements,
		PDF:       infrapdf.NewMarotoPDFGenerator(cfg.App.Name),
		Log:       log,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "B&B Inventory API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "db": cfg.DB.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ProductUC:      usecase.NewProductUseCase(st.products, st.tx, movements, policy),
		Movements:      movements,
		Costing:        inventory.NewCostingUseCase(st.products, st.transactions, st.tx, policy),
		Replenishment:  inventory.NewReplenishmentUseCase(st.products, st.transactions, st.vendors, policy, reorder),
		CatalogUC:      usecase.NewCatalogUseCase(st.categories, st.units),
		VendorUC:       usecase.NewVendorUseCase(st.vendors, st.products, st.logs, log),
		PurchaseOrders: poUC,
		ProjectUC:      usecase.NewProjectUseCase(st.projects, st.transactions, st.users),
		UserUC:         usecase.NewUserUseCase(st.users),
		ActivityUC:     usecase.NewActivityUseCase(st.logs),
		DashboardUC:    appanalytics.NewDashboardUseCase(st.products, st.transactions, st.orders, st.categories, policy, reorder),
		MaintenanceUC:  usecase.NewMaintenanceUseCase(st.maintenance, log),
		JWTSecret:      cfg.JWT.Secret,
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

// openStores abre el driver configurado y aplica el esquema.
func openStores(ctx context.Context, cfg config.DBConfig) (*stores, error) {
	if cfg.Driver == config.DriverSQLite {
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &stores{
			users:        sqlite.NewUserRepository(db),
			products:     sqlite.NewProductRepository(db),
			transactions: sqlite.NewInventoryTransactionRepository(db),
			categories:   sqlite.NewCategoryRepository(db),
			units:        sqlite.NewUnitRepository(db),
			vendors:      sqlite.NewVendorRepository(db),
			projects:     sqlite.NewProjectRepository(db),
			orders:       sqlite.NewPurchaseOrderRepository(db),
			logs:         sqlite.NewActivityLogRepository(db),
			maintenance:  sqlite.NewMaintenanceRepository(db),
			tx:           sqlite.NewTxRunner(db),
			close:        func() { db.Close() },
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &stores{
		users:        postgres.NewUserRepository(pool),
		products:     postgres.NewProductRepository(pool),
		transactions: postgres.NewInventoryTransactionRepository(pool),
		categories:   postgres.NewCategoryRepository(pool),
		units:        postgres.NewUnitRepository(pool),
		vendors:      postgres.NewVendorRepository(pool),
		projects:     postgres.NewProjectRepository(pool),
		orders:       postgres.NewPurchaseOrderRepository(pool),
		logs:         postgres.NewActivityLogRepository(pool),
		maintenance:  postgres.NewMaintenanceRepository(pool),
		tx:           postgres.NewTxRunner(pool),
		close:        pool.Close,
	}, nil
}
