package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrUsernameTaken    = errors.New("este nombre de usuario ya está en uso")
	ErrNoToken          = errors.New("no hay token disponible")
	ErrSessionExpired   = errors.New("token expirado")
	ErrNotAuthenticated = errors.New("no hay sesión activa")
	ErrAccessDenied     = errors.New("acceso denegado")
	ErrMalformed        = errors.New("respuesta malformada")
	ErrTransport        = errors.New("error al conectar con el servidor")
	ErrHTTP             = errors.New("error HTTP")
	ErrAuthentication   = errors.New("autenticación fallida")
)

// ValidationError describe un dato de entrada rechazado antes de llamar al backend.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// AuthError credenciales rechazadas por el backend en el login.
// Message es el texto del servidor, sin modificar.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string { return e.Message }

func (e *AuthError) Is(target error) bool { return target == ErrAuthentication }

// HTTPError respuesta no-2xx (distinta de 401) con el código y el cuerpo del servidor.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string { return fmt.Sprintf("Error %d: %s", e.Status, e.Body) }

func (e *HTTPError) Is(target error) bool { return target == ErrHTTP }

// TransportError la petición no llegó al servidor (DNS, conexión rechazada, timeout).
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %s: %v", e.Method, e.Path, ErrTransport.Error(), e.Err)
}

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedResponseError respuesta 2xx cuyo cuerpo no se puede interpretar.
type MalformedResponseError struct {
	Path string
	Body string
	Err  error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("respuesta malformada de %s: %v", e.Path, e.Err)
}

func (e *MalformedResponseError) Is(target error) bool { return target == ErrMalformed }

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// AccessDeniedError sesión válida pero con un rol que no corresponde a la vista pedida.
// Redirect es la ruta del dashboard del rol almacenado (o el login si el rol es desconocido).
type AccessDeniedError struct {
	Rol      string
	Required string
	Redirect string
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("acceso denegado: se requiere %s (rol actual: %q)", e.Required, e.Rol)
}

func (e *AccessDeniedError) Is(target error) bool { return target == ErrAccessDenied }
