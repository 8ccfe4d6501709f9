package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/iamprathosh/BB-Inventory-APP/internal/application/dto"
	"github.com/iamprathosh/BB-Inventory-APP/internal/application/usecase"
)

// CatalogHandler categorías y unidades de medida.
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ListCategories godoc
// @Summary      Listar categorías
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        all  query  bool  false  "Incluir inactivas"
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	out, err := h.uc.ListCategories(c.Context(), !c.QueryBool("all", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateCategory godoc
// @Summary      Crear categoría
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CategoryRequest  true  "Categoría"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if strings.TrimSpace(in.Name) == "" {
		return validation(c, "name es requerido")
	}
	out, err := h.uc.CreateCategory(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateCategory PUT /api/categories/:id
func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateCategory(c.Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteCategory DELETE /api/categories/:id
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.uc.DeleteCategory(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListUnits godoc
// @Summary      Listar unidades de medida
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        type  query  string  false  "weight, volume, length, count, area"
// @Param        all   query  bool    false  "Incluir inactivas"
// @Success      200   {array}  dto.UnitResponse
// @Router       /api/units [get]
func (h *CatalogHandler) ListUnits(c *fiber.Ctx) error {
	out, err := h.uc.ListUnits(c.Context(), !c.QueryBool("all", false), c.Query("type"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateUnit POST /api/units
func (h *CatalogHandler) CreateUnit(c *fiber.Ctx) error {
	var in dto.UnitRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Abbreviation) == "" {
		return validation(c, "name y abbreviation son requeridos")
	}
	out, err := h.uc.CreateUnit(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateUnit PUT /api/units/:id
func (h *CatalogHandler) UpdateUnit(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.UnitRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateUnit(c.Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteUnit DELETE /api/units/:id
func (h *CatalogHandler) DeleteUnit(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.uc.DeleteUnit(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// InitializeUnits godoc
// @Summary      Cargar unidades por defecto
// @Description  Idempotente: solo crea las unidades si la tabla está vacía.
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InitializeUnitsResponse
// @Router       /api/units/initialize [post]
func (h *CatalogHandler) InitializeUnits(c *fiber.Ctx) error {
	out, err := h.uc.InitializeDefaultUnits(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
