package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-bodegas/internal/application/dto"
	"github.com/jhoicas/gestion-bodegas/internal/domain"
	"github.com/jhoicas/gestion-bodegas/internal/infrastructure/memdb"
	"github.com/jhoicas/gestion-bodegas/pkg/jwt"
	"github.com/jhoicas/gestion-bodegas/pkg/logger"
)

// TokenConfig parámetros de emisión de JWT.
type TokenConfig struct {
	Secret     string
	Issuer     string
	ExpMinutes int
}

// AuthHandler maneja login, registro y verificación de username (rutas públicas).
type AuthHandler struct {
	db     *memdb.DB
	tokens TokenConfig
	log    *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(db *memdb.DB, tokens TokenConfig, log *logger.Logger) *AuthHandler {
	return &AuthHandler{db: db, tokens: tokens, log: log}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	user, err := h.db.Authenticate(in.Username, in.Password)
	if err != nil {
		h.log.Info().Str("username", in.Username).Msg("login rechazado")
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "Usuario o contraseña inválidos"})
	}
	token, err := jwt.Generate(h.tokens.Secret, user.Username, user.Rol.String(), h.tokens.Issuer, h.tokens.ExpMinutes)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	h.log.Info().Str("username", user.Username).Str("rol", user.Rol.String()).Msg("login exitoso")
	return c.JSON(dto.LoginResponse{Token: token})
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      plain
// @Param        body  body  dto.RegisterRequest  true  "username, password, nombreCompleto, rol"
// @Success      200   {string}  string
// @Failure      400   {string}  string
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Cuerpo inválido")
	}
	in.Username = strings.TrimSpace(in.Username)
	if _, err := h.db.Register(in); err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.Is(err, domain.ErrUsernameTaken):
			return c.Status(fiber.StatusBadRequest).SendString("El username ya existe")
		case errors.As(err, &verr):
			return c.Status(fiber.StatusBadRequest).SendString(verr.Message)
		default:
			return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
		}
	}
	h.log.Info().Str("username", in.Username).Str("rol", in.Rol.String()).Msg("usuario registrado")
	return c.SendString("Usuario registrado con éxito")
}

// Exists responde true/false según el username esté tomado.
func (h *AuthHandler) Exists(c *fiber.Ctx) error {
	return c.JSON(h.db.UsernameExists(c.Params("username")))
}
