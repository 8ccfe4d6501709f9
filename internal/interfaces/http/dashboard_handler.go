package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/iamprathosh/BB-Inventory-APP/internal/application/analytics"
	"github.com/iamprathosh/BB-Inventory-APP/internal/application/usecase"
)

// DashboardHandler maneja el tablero y las operaciones de mantenimiento (admin).
type DashboardHandler struct {
	uc          *appanalytics.DashboardUseCase
	maintenance *usecase.MaintenanceUseCase
}

// NewDashboardHandler construye el handler. maintenance puede ser nil.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, maintenance *usecase.MaintenanceUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc, maintenance: maintenance}
}

// GetDashboard devuelve KPIs, desglose por categoría, tendencia de ventas de seis meses,
// top de productos, alertas de stock, órdenes abiertas y distribución de stock.
// GET /api/dashboard
//
// No requiere parámetros; las ventanas de tiempo se calculan en el servidor.
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	out, err := h.uc.GetDashboard(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ClearAll godoc
// @Summary      Borrar todos los datos operativos
// @Description  Elimina ledger, órdenes, productos, proveedores, proyectos, catálogos y registros.
//
//	Los usuarios se conservan. Solo admin.
//
// @Tags         maintenance
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  repository.ClearCounts
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/clear-all [post]
func (h *DashboardHandler) ClearAll(c *fiber.Ctx) error {
	if h.maintenance == nil {
		return c.SendStatus(fiber.StatusNotImplemented)
	}
	counts, err := h.maintenance.ClearAll(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": counts})
}
