package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-bodegas/internal/application/dto"
	"github.com/jhoicas/gestion-bodegas/internal/infrastructure/memdb"
)

// WarehouseHandler maneja las peticiones HTTP para bodegas (protegido).
type WarehouseHandler struct {
	db *memdb.DB
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(db *memdb.DB) *WarehouseHandler {
	return &WarehouseHandler{db: db}
}

// Create godoc
// @Summary      Crear bodega
// @Tags         bodegas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BodegaRequest  true  "Datos de la bodega"
// @Success      200   {object}  entity.Bodega
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/bodegas [post]
func (h *WarehouseHandler) Create(c *fiber.Ctx) error {
	var in dto.BodegaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.db.CreateBodega(GetUsername(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener bodega por ID
// @Tags         bodegas
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la bodega"
// @Success      200  {object}  entity.Bodega
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bodegas/{id} [get]
func (h *WarehouseHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	out, err := h.db.Bodega(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar bodegas
// @Tags         bodegas
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Bodega
// @Router       /api/bodegas [get]
func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.db.Bodegas())
}

// Update reemplaza los datos de la bodega.
func (h *WarehouseHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	var in dto.BodegaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.db.UpdateBodega(GetUsername(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina la bodega; 204 sin cuerpo.
func (h *WarehouseHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	if err := h.db.DeleteBodega(GetUsername(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
