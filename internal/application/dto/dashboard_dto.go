package dto

// DashboardSummary contadores de la vista principal. Un contador que no aplica al rol queda en nil.
type DashboardSummary struct {
	Rol             string   `json:"rol"`
	Username        string   `json:"username"`
	TotalProductos  *int     `json:"total_productos,omitempty"`
	TotalBodegas    *int     `json:"total_bodegas,omitempty"`
	UsuariosActivos *int     `json:"usuarios_activos,omitempty"`
	Movimientos     *int     `json:"movimientos,omitempty"` // del operador: solo los propios
	StockBajo       *int     `json:"stock_bajo,omitempty"`
	Secciones       []string `json:"secciones"`
	DateLabel       string   `json:"date_label"` // ej: "Octubre 2026"
}
