package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-bodegas/internal/application/dto"
	"github.com/jhoicas/gestion-bodegas/internal/infrastructure/memdb"
)

// ProductHandler maneja las peticiones HTTP para productos (protegido).
type ProductHandler struct {
	db *memdb.DB
}

// NewProductHandler construye el handler.
func NewProductHandler(db *memdb.DB) *ProductHandler {
	return &ProductHandler{db: db}
}

// Create godoc
// @Summary      Crear producto
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductoRequest  true  "Datos del producto"
// @Success      200   {object}  entity.Producto
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/productos [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductoRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.db.CreateProducto(GetUsername(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos con stock disponible
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Producto
// @Router       /api/productos [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.db.Productos())
}

// GetByID obtiene un producto (incluye agotados).
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	out, err := h.db.Producto(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update reemplaza los datos del producto.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	var in dto.ProductoRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.db.UpdateProducto(GetUsername(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina el producto; 204 sin cuerpo.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	if err := h.db.DeleteProducto(GetUsername(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// StockBajo godoc
// @Summary      Productos con stock menor al umbral
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        cantidad  path  int  true  "Umbral"
// @Success      200  {array}  entity.Producto
// @Router       /api/productos/stock-bajo/{cantidad} [get]
func (h *ProductHandler) StockBajo(c *fiber.Ctx) error {
	umbral, err := c.ParamsInt("cantidad")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAM", Message: "cantidad inválida"})
	}
	return c.JSON(h.db.StockBajo(umbral))
}
