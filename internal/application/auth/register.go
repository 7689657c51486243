package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/gestion-bodegas/internal/application/dto"
	"github.com/jhoicas/gestion-bodegas/internal/application/ports"
	"github.com/jhoicas/gestion-bodegas/internal/domain"
	"github.com/jhoicas/gestion-bodegas/internal/domain/entity"
	"github.com/jhoicas/gestion-bodegas/pkg/logger"
)

const (
	registerPath       = "/auth/register"
	existsPathPrefix   = "/usuarios/existe/"
	minUsernameLen     = 3
	minNombreLen       = 3
	minPasswordLen     = 6
	defaultRegisterErr = "Error al registrar usuario"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Registrar caso de uso de registro de usuarios. No crea sesión: tras registrarse, el usuario inicia sesión.
type Registrar struct {
	doer ports.HTTPDoer
	log  *logger.Logger
}

// NewRegistrar construye el caso de uso.
func NewRegistrar(doer ports.HTTPDoer, log *logger.Logger) *Registrar {
	if log == nil {
		log = logger.Nop()
	}
	return &Registrar{doer: doer, log: log}
}

// ValidateRegistration aplica las reglas del formulario y devuelve el cuerpo a enviar.
func ValidateRegistration(in dto.RegisterInput) (*dto.RegisterRequest, error) {
	username := strings.TrimSpace(in.Username)
	nombre := norm.NFC.String(strings.TrimSpace(in.NombreCompleto))

	if username == "" || nombre == "" || in.Password == "" || in.ConfirmPassword == "" || strings.TrimSpace(in.Rol) == "" {
		return nil, &domain.ValidationError{Field: "form", Message: missingFieldsMessage}
	}
	if utf8.RuneCountInString(username) < minUsernameLen {
		return nil, &domain.ValidationError{Field: "username", Message: "El usuario debe tener al menos 3 caracteres"}
	}
	if utf8.RuneCountInString(nombre) < minNombreLen {
		return nil, &domain.ValidationError{Field: "nombreCompleto", Message: "El nombre completo debe tener al menos 3 caracteres"}
	}
	if utf8.RuneCountInString(in.Password) < minPasswordLen {
		return nil, &domain.ValidationError{Field: "password", Message: "La contraseña debe tener al menos 6 caracteres"}
	}
	if in.Password != in.ConfirmPassword {
		return nil, &domain.ValidationError{Field: "confirmPassword", Message: "Las contraseñas no coinciden"}
	}
	if !usernamePattern.MatchString(username) {
		return nil, &domain.ValidationError{Field: "username", Message: "El usuario solo puede contener letras, números, guiones y guiones bajos"}
	}
	rol, ok := entity.ParseRol(in.Rol)
	if !ok {
		return nil, &domain.ValidationError{Field: "rol", Message: "Rol inválido: " + in.Rol}
	}
	return &dto.RegisterRequest{
		Username:       username,
		Password:       in.Password,
		NombreCompleto: nombre,
		Rol:            rol,
	}, nil
}

// Register valida, comprueba que el username esté libre y registra. Devuelve el texto de
// confirmación del servidor.
func (r *Registrar) Register(ctx context.Context, in dto.RegisterInput) (string, error) {
	req, err := ValidateRegistration(in)
	if err != nil {
		return "", err
	}

	taken, err := r.UsernameExists(ctx, req.Username)
	if err != nil {
		return "", err
	}
	if taken {
		return "", domain.ErrUsernameTaken
	}

	resp, err := r.doer.Do(ctx, ports.HTTPRequest{Method: http.MethodPost, Path: registerPath, Body: req})
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(string(resp.Body))
	if !isSuccess(resp.Status) {
		if text == "" {
			text = defaultRegisterErr
		}
		return "", &domain.HTTPError{Status: resp.Status, Body: text}
	}
	r.log.Info().Str("username", req.Username).Str("rol", req.Rol.String()).Msg("usuario registrado")
	return text, nil
}

// UsernameExists consulta GET /usuarios/existe/{username} (público). Una respuesta no-2xx
// no bloquea el registro: el backend rechaza duplicados de todas formas.
func (r *Registrar) UsernameExists(ctx context.Context, username string) (bool, error) {
	resp, err := r.doer.Do(ctx, ports.HTTPRequest{Method: http.MethodGet, Path: existsPathPrefix + url.PathEscape(username)})
	if err != nil {
		return false, err
	}
	if !isSuccess(resp.Status) {
		r.log.Warn().Int("status", resp.Status).Msg("no se pudo verificar el username")
		return false, nil
	}
	var exists bool
	if err := json.Unmarshal(resp.Body, &exists); err != nil {
		return false, &domain.MalformedResponseError{Path: existsPathPrefix, Body: truncate(resp.Body), Err: err}
	}
	return exists, nil
}
