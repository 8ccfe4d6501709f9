package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/iamprathosh/BB-Inventory-APP/internal/application/dto"
	"github.com/iamprathosh/BB-Inventory-APP/internal/application/usecase"
)

// ActivityHandler registro de actividad.
type ActivityHandler struct {
	uc *usecase.ActivityUseCase
}

// NewActivityHandler construye el handler.
func NewActivityHandler(uc *usecase.ActivityUseCase) *ActivityHandler {
	return &ActivityHandler{uc: uc}
}

// Add godoc
// @Summary      Agregar entrada de actividad
// @Tags         activity
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ActivityLogRequest  true  "action, details, project_id"
// @Success      201   {object}  dto.ActivityLogResponse
// @Router       /api/activity-logs [post]
func (h *ActivityHandler) Add(c *fiber.Ctx) error {
	var in dto.ActivityLogRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Add(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Actividad reciente
// @Tags         activity
// @Security     Bearer
// @Produce      json
// @Param        user_id     query  string  false  "Usuario"
// @Param        project_id  query  string  false  "Proyecto"
// @Param        limit       query  int     false  "Límite"  default(100)
// @Success      200  {array}  dto.ActivityLogResponse
// @Router       /api/activity-logs [get]
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Query("user_id"), c.Query("project_id"), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
