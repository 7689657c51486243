package auth

import (
	"github.com/jhoicas/gestion-bodegas/internal/domain"
	"github.com/jhoicas/gestion-bodegas/internal/domain/entity"
)

// Decision resultado de la verificación de rol de una vista.
type Decision int

const (
	DecisionProceed       Decision = iota // rol correcto: cargar la vista
	DecisionRedirectLogin                 // sin sesión
	DecisionDenied                        // sesión con otro rol: mostrar mensaje y redirigir a su vista
)

func (d Decision) String() string {
	switch d {
	case DecisionProceed:
		return "PROCEED"
	case DecisionRedirectLogin:
		return "REDIRECT_LOGIN"
	case DecisionDenied:
		return "DENIED"
	default:
		return "UNKNOWN"
	}
}

// Outcome decisión de acceso a una vista.
type Outcome struct {
	Decision Decision
	Redirect string // vacío cuando Decision == DecisionProceed
	Message  string // mensaje de denegación visible
	Rol      entity.Rol
	Required entity.Rol
}

// Allowed indica si la vista puede cargar sus datos.
func (o Outcome) Allowed() bool { return o.Decision == DecisionProceed }

// Err convierte el resultado en error: nil, domain.ErrNotAuthenticated o *domain.AccessDeniedError.
func (o Outcome) Err() error {
	switch o.Decision {
	case DecisionProceed:
		return nil
	case DecisionRedirectLogin:
		return domain.ErrNotAuthenticated
	default:
		return &domain.AccessDeniedError{Rol: o.Rol.String(), Required: o.Required.String(), Redirect: o.Redirect}
	}
}

// RequireRole decide el acceso a la vista del rol esperado. Debe ejecutarse antes de
// cargar cualquier dato de la vista.
func (g *Guard) RequireRole(expected entity.Rol) Outcome {
	session := g.Session()
	if !session.Authenticated() {
		return Outcome{Decision: DecisionRedirectLogin, Redirect: entity.RouteLogin, Required: expected}
	}
	if session.Rol != expected {
		g.log.Warn().
			Str("username", session.Username).
			Str("rol", session.Rol.String()).
			Str("required", expected.String()).
			Msg("acceso denegado")
		return Outcome{
			Decision: DecisionDenied,
			Redirect: entity.DashboardRoute(session.Rol),
			Message:  deniedMessage(expected),
			Rol:      session.Rol,
			Required: expected,
		}
	}
	return Outcome{Decision: DecisionProceed, Rol: session.Rol, Required: expected}
}

func deniedMessage(expected entity.Rol) string {
	switch expected {
	case entity.RolAdmin:
		return "Acceso Denegado: Solo los administradores pueden acceder a esta página"
	case entity.RolEncargado:
		return "Acceso Denegado: Esta página es solo para encargados"
	case entity.RolOperador:
		return "Acceso Denegado: Esta página es solo para operadores"
	default:
		return "Acceso Denegado"
	}
}
