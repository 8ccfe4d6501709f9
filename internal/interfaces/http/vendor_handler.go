package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/iamprathosh/BB-Inventory-APP/internal/application/dto"
	"github.com/iamprathosh/BB-Inventory-APP/internal/application/usecase"
)

// VendorHandler proveedores, listas de precio y solicitudes de compra.
type VendorHandler struct {
	uc *usecase.VendorUseCase
}

// NewVendorHandler construye el handler.
func NewVendorHandler(uc *usecase.VendorUseCase) *VendorHandler {
	return &VendorHandler{uc: uc}
}

// Create godoc
// @Summary      Crear proveedor
// @Tags         vendors
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VendorRequest  true  "Proveedor con lista de precios opcional"
// @Success      201   {object}  dto.VendorDetailResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/vendors [post]
func (h *VendorHandler) Create(c *fiber.Ctx) error {
	var in dto.VendorRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar proveedores
// @Tags         vendors
// @Security     Bearer
// @Produce      json
// @Param        all  query  bool  false  "Incluir inactivos"
// @Success      200  {array}  dto.VendorResponse
// @Router       /api/vendors [get]
func (h *VendorHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), !c.QueryBool("all", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get GET /api/vendors/:id
func (h *VendorHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/vendors/:id
func (h *VendorHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.VendorRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ForProduct godoc
// @Summary      Proveedores que ofrecen un producto
// @Tags         vendors
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {array}   dto.VendorOfferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/vendors [get]
func (h *VendorHandler) ForProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.uc.VendorsForProduct(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RequestPurchase godoc
// @Summary      Enviar solicitud de compra a los proveedores de un producto
// @Tags         vendors
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PurchaseRequestRequest  true  "product_id, quantity"
// @Success      200   {object}  dto.PurchaseRequestResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/vendors/purchase-requests [post]
func (h *VendorHandler) RequestPurchase(c *fiber.Ctx) error {
	var in dto.PurchaseRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.ProductID == "" {
		return validation(c, "product_id es requerido")
	}
	out, err := h.uc.RequestPurchase(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
