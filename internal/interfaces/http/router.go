package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/iamprathosh/BB-Inventory-APP/internal/application/analytics"
	"github.com/iamprathosh/BB-Inventory-APP/internal/application/auth"
	"github.com/iamprathosh/BB-Inventory-APP/internal/application/inventory"
	"github.com/iamprathosh/BB-Inventory-APP/internal/application/purchasing"
	"github.com/iamprathosh/BB-Inventory-APP/internal/application/usecase"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	ProductUC      *usecase.ProductUseCase
	Movements      *inventory.MovementUseCase
	Costing        *inventory.CostingUseCase
	Replenishment  *inventory.ReplenishmentUseCase
	CatalogUC      *usecase.CatalogUseCase
	VendorUC       *usecase.VendorUseCase
	PurchaseOrders *purchasing.PurchaseOrderUseCase
	ProjectUC      *usecase.ProjectUseCase
	UserUC         *usecase.UserUseCase
	ActivityUC     *usecase.ActivityUseCase
	DashboardUC    *appanalytics.DashboardUseCase
	MaintenanceUC  *usecase.MaintenanceUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
//
// Roles: worker registra movimientos y consulta; supervisor y admin además
// administran catálogo, proveedores, órdenes y proyectos; clear-all es solo admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	managers := RequireRole(entity.RoleSupervisor, entity.RoleAdmin)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	inventoryHandler := NewInventoryHandler(deps.Movements, deps.Costing, deps.Replenishment)
	vendorHandler := NewVendorHandler(deps.VendorUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/mauc-history", inventoryHandler.MAUCHistory)
	products.Get("/:id/cost-analytics", inventoryHandler.CostAnalytics)
	products.Get("/:id/vendors", vendorHandler.ForProduct)
	products.Post("/", managers, productHandler.Create)
	products.Put("/:id", managers, productHandler.Update)
	products.Delete("/:id", managers, productHandler.Delete)
	products.Post("/:id/initialize-mauc", managers, inventoryHandler.InitializeMAUC)

	// Inventory movements y ledger
	invGroup := protected.Group("/inventory")
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Post("/receive", inventoryHandler.Receive)
	invGroup.Post("/pull", inventoryHandler.Pull)
	invGroup.Post("/return", inventoryHandler.Return)
	invGroup.Post("/adjust", managers, inventoryHandler.Adjust)
	invGroup.Get("/transactions", inventoryHandler.ListTransactions)
	invGroup.Get("/replenishment-list", inventoryHandler.GetReplenishmentList)

	// Catálogo
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	categories := protected.Group("/categories")
	categories.Get("/", catalogHandler.ListCategories)
	categories.Post("/", managers, catalogHandler.CreateCategory)
	categories.Put("/:id", managers, catalogHandler.UpdateCategory)
	categories.Delete("/:id", managers, catalogHandler.DeleteCategory)
	units := protected.Group("/units")
	units.Get("/", catalogHandler.ListUnits)
	units.Post("/initialize", managers, catalogHandler.InitializeUnits)
	units.Post("/", managers, catalogHandler.CreateUnit)
	units.Put("/:id", managers, catalogHandler.UpdateUnit)
	units.Delete("/:id", managers, catalogHandler.DeleteUnit)

	// Vendors
	vendors := protected.Group("/vendors")
	vendors.Get("/", vendorHandler.List)
	vendors.Post("/purchase-requests", vendorHandler.RequestPurchase)
	vendors.Get("/:id", vendorHandler.Get)
	vendors.Post("/", managers, vendorHandler.Create)
	vendors.Put("/:id", managers, vendorHandler.Update)

	// Purchase orders
	poHandler := NewPurchaseOrderHandler(deps.PurchaseOrders)
	pos := protected.Group("/purchase-orders")
	pos.Get("/", poHandler.List)
	pos.Get("/:id", poHandler.Get)
	pos.Get("/:id/pdf", poHandler.Document)
	pos.Post("/", managers, poHandler.Create)
	pos.Post("/:id/cancel", managers, poHandler.Cancel)
	pos.Post("/:id/receive", managers, poHandler.Receive)

	// Projects
	projectHandler := NewProjectHandler(deps.ProjectUC)
	projects := protected.Group("/projects")
	projects.Get("/", projectHandler.List)
	projects.Get("/:id", projectHandler.Get)
	projects.Get("/:id/analytics", projectHandler.Analytics)
	projects.Post("/", managers, projectHandler.Create)
	projects.Put("/:id", managers, projectHandler.Update)
	projects.Delete("/:id", managers, projectHandler.Delete)

	// Users
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users")
	users.Get("/me", userHandler.Me)
	users.Get("/", userHandler.List)
	users.Put("/:id/role", userHandler.UpdateRole)

	// Activity log
	activityHandler := NewActivityHandler(deps.ActivityUC)
	logs := protected.Group("/activity-logs")
	logs.Get("/", activityHandler.List)
	logs.Post("/", activityHandler.Add)

	// Dashboard y mantenimiento
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.MaintenanceUC)
	protected.Get("/dashboard", dashboardHandler.GetDashboard)
	protected.Post("/admin/clear-all", RequireRole(entity.RoleAdmin), dashboardHandler.ClearAll)
}
