package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/iamprathosh/BB-Inventory-APP/internal/application/dto"
	"github.com/iamprathosh/BB-Inventory-APP/internal/application/inventory"
	costing "github.com/iamprathosh/BB-Inventory-APP/internal/domain/inventory"
)

// InventoryHandler maneja movimientos de stock, ledger y consultas de costeo (protegido).
type InventoryHandler struct {
	movements     *inventory.MovementUseCase
	costing       *inventory.CostingUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	movements *inventory.MovementUseCase,
	costingUC *inventory.CostingUseCase,
	replenishment *inventory.ReplenishmentUseCase,
) *InventoryHandler {
	return &InventoryHandler{movements: movements, costing: costingUC, replenishment: replenishment}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  Aplica receive, pull, return, adjust o sale con recálculo de MAUC en una transacción.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "product_id, type, quantity, unit_cost (receive)"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	return h.apply(c, "")
}

// Receive POST /api/inventory/receive: entrada de proveedor.
func (h *InventoryHandler) Receive(c *fiber.Ctx) error {
	return h.apply(c, costing.KindReceive)
}

// Pull POST /api/inventory/pull: salida a obra.
func (h *InventoryHandler) Pull(c *fiber.Ctx) error {
	return h.apply(c, costing.KindPull)
}

// Return POST /api/inventory/return: devolución al almacén.
func (h *InventoryHandler) Return(c *fiber.Ctx) error {
	return h.apply(c, costing.KindReturn)
}

// Adjust POST /api/inventory/adjust: corrección con signo.
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	return h.apply(c, costing.KindAdjust)
}

// apply parsea el request y fija el tipo cuando la ruta lo determina.
func (h *InventoryHandler) apply(c *fiber.Ctx, kind costing.Kind) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if kind != "" {
		in.Type = string(kind)
	}
	if in.ProductID == "" || in.Type == "" {
		return validation(c, "product_id y type son requeridos")
	}
	out, err := h.movements.ApplyFromRequest(c.Context(), userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListTransactions godoc
// @Summary      Consultar el ledger de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Producto"
// @Param        project_id  query  string  false  "Proyecto"
// @Param        vendor_id   query  string  false  "Proveedor"
// @Param        type        query  string  false  "receive, pull, return, adjust, sale, purchase"
// @Param        from        query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        to          query  string  false  "Hasta (RFC3339 o YYYY-MM-DD)"
// @Success      200  {array}   dto.TransactionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/transactions [get]
func (h *InventoryHandler) ListTransactions(c *fiber.Ctx) error {
	q := dto.TransactionQuery{
		ProductID:   c.Query("product_id"),
		ProjectID:   c.Query("project_id"),
		VendorID:    c.Query("vendor_id"),
		Type:        c.Query("type"),
		From:        c.Query("from"),
		To:          c.Query("to"),
		PageRequest: pageFromQuery(c),
	}
	list, err := h.costing.ListTransactions(c.Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// MAUCHistory godoc
// @Summary      Historial de MAUC de un producto
// @Tags         costing
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID del producto"
// @Param        limit  query  int     false  "Límite"  default(10)
// @Success      200  {array}   dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/mauc-history [get]
func (h *InventoryHandler) MAUCHistory(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	list, err := h.costing.MAUCHistory(c.Context(), id, c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// CostAnalytics godoc
// @Summary      Análisis de costos de un producto
// @Tags         costing
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.CostAnalyticsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/cost-analytics [get]
func (h *InventoryHandler) CostAnalytics(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.costing.ProductCostAnalytics(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// InitializeMAUC godoc
// @Summary      Inicializar MAUC de un producto sin historial
// @Tags         costing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true   "ID del producto"
// @Param        body  body  dto.InitializeMAUCRequest  false  "initial_unit_cost opcional"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/initialize-mauc [post]
func (h *InventoryHandler) InitializeMAUC(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.InitializeMAUCRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.costing.InitializeMAUC(c.Context(), id, in.InitialUnitCost)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  Productos en o bajo su punto de reorden con cantidad sugerida, costo estimado
//
//	al MAUC y proveedor preferido, ordenados por prioridad.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/replenishment-list [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":          len(list),
		"replenishments": list,
	})
}
