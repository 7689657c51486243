package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-bodegas/internal/application/access"
)

// RequireAction autoriza la ruta a los roles que la tabla de capacidades habilita para la acción.
// Debe usarse DESPUÉS de AuthMiddleware.
func RequireAction(action access.Action) fiber.Handler {
	return RequireRole(access.RolesFor(action)...)
}

// RequireSection autoriza la lectura a los roles que pueden ver la sección.
func RequireSection(section access.Section) fiber.Handler {
	return RequireRole(access.ViewersOf(section)...)
}
