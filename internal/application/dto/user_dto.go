package dto

import "github.com/jhoicas/gestion-bodegas/internal/domain/entity"

// LoginRequest cuerpo de POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse salida del login: solo el token; el rol viaja dentro de sus claims.
type LoginResponse struct {
	Token string `json:"token"`
}

// RegisterRequest cuerpo de POST /auth/register.
type RegisterRequest struct {
	Username       string     `json:"username"`
	Password       string     `json:"password"`
	NombreCompleto string     `json:"nombreCompleto"`
	Rol            entity.Rol `json:"rol"`
}

// RegisterInput datos del formulario de registro (incluye la confirmación, que no viaja al backend).
type RegisterInput struct {
	Username        string
	NombreCompleto  string
	Password        string
	ConfirmPassword string
	Rol             string
}

// UsuarioRequest cuerpo de POST/PUT /usuarios. Password vacío en PUT conserva la actual.
type UsuarioRequest struct {
	Username       string     `json:"username"`
	NombreCompleto string     `json:"nombreCompleto"`
	Rol            entity.Rol `json:"rol"`
	Password       string     `json:"password,omitempty"`
}
