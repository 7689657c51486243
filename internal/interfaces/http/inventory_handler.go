package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-bodegas/internal/application/dto"
	"github.com/jhoicas/gestion-bodegas/internal/domain/entity"
	"github.com/jhoicas/gestion-bodegas/internal/infrastructure/memdb"
)

// InventoryHandler maneja movimientos de inventario y sus detalles (protegido).
type InventoryHandler struct {
	db *memdb.DB
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(db *memdb.DB) *InventoryHandler {
	return &InventoryHandler{db: db}
}

// RegisterMovement godoc
// @Summary      Registrar cabecera de movimiento
// @Tags         movimientos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovimientoRequest  true  "tipo, usuario, bodegaOrigen, bodegaDestino"
// @Success      200   {object}  entity.Movimiento
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/movimientos [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.MovimientoRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.db.CreateMovimiento(GetUsername(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RegisterDetail godoc
// @Summary      Registrar detalle y aplicar el movimiento sobre el stock
// @Tags         movimientos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DetalleMovimientoRequest  true  "movimiento, producto, cantidad"
// @Success      200   {object}  entity.DetalleMovimiento
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/detalle-movimientos [post]
func (h *InventoryHandler) RegisterDetail(c *fiber.Ctx) error {
	var in dto.DetalleMovimientoRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.db.CreateDetalle(GetUsername(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List lista todos los movimientos.
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.db.Movimientos())
}

// ListDetails lista todos los detalles.
func (h *InventoryHandler) ListDetails(c *fiber.Ctx) error {
	return c.JSON(h.db.Detalles())
}

// GetByID obtiene un movimiento.
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	out, err := h.db.Movimiento(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByUser movimientos de un usuario. Un operador solo puede consultar los propios.
func (h *InventoryHandler) ListByUser(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	if GetRol(c) == entity.RolOperador {
		me, err := h.db.UsuarioByUsername(GetUsername(c))
		if err != nil || me.ID != id {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "Acceso Denegado: solo puedes ver tus propios movimientos"})
		}
	}
	return c.JSON(h.db.MovimientosByUsuario(id))
}
