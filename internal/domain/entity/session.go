package entity

// Rutas de entrada de cada vista. El login es el destino por defecto.
const (
	RouteLogin              = "/html/login.html"
	RouteDashboardAdmin     = "/html/dashboard_admin.html"
	RouteDashboardEncargado = "/html/dashboard_encargado.html"
	RouteDashboardOperador  = "/html/dashboard_operador.html"
)

// DashboardRoute devuelve la vista que corresponde al rol; login si el rol es desconocido.
func DashboardRoute(r Rol) string {
	switch r {
	case RolAdmin:
		return RouteDashboardAdmin
	case RolEncargado:
		return RouteDashboardEncargado
	case RolOperador:
		return RouteDashboardOperador
	default:
		return RouteLogin
	}
}

// Session credencial activa del cliente: token bearer más los claims denormalizados.
// Rol es una pista de presentación decodificada sin verificar la firma; puede venir vacío.
type Session struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Rol      Rol    `json:"rol"`
}

// Authenticated indica si hay token.
func (s Session) Authenticated() bool { return s.Token != "" }
