package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-bodegas/internal/application/dto"
	"github.com/jhoicas/gestion-bodegas/internal/infrastructure/memdb"
)

// UserHandler maneja la administración de usuarios (protegido).
type UserHandler struct {
	db *memdb.DB
}

// NewUserHandler construye el handler.
func NewUserHandler(db *memdb.DB) *UserHandler {
	return &UserHandler{db: db}
}

// List lista todos los usuarios.
func (h *UserHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.db.Usuarios())
}

// GetByID obtiene un usuario.
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	out, err := h.db.Usuario(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByUsername godoc
// @Summary      Buscar usuario por username
// @Tags         usuarios
// @Security     Bearer
// @Produce      json
// @Param        username  path  string  true  "Username"
// @Success      200  {object}  entity.Usuario
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/usuarios/username/{username} [get]
func (h *UserHandler) GetByUsername(c *fiber.Ctx) error {
	out, err := h.db.UsuarioByUsername(c.Params("username"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Encargables usuarios asignables como encargado de bodega (sin administradores).
func (h *UserHandler) Encargables(c *fiber.Ctx) error {
	return c.JSON(h.db.Encargables())
}

// Create crea un usuario; la contraseña es obligatoria.
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.UsuarioRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.db.CreateUsuario(GetUsername(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update actualiza un usuario; sin contraseña conserva la actual.
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	var in dto.UsuarioRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.db.UpdateUsuario(GetUsername(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina un usuario; 204 sin cuerpo.
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}
	if err := h.db.DeleteUsuario(GetUsername(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
