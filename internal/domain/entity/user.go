package entity

import "strings"

// Rol nivel de acceso de un usuario; define el dashboard y las operaciones permitidas.
type Rol string

// Roles válidos para Usuario.
const (
	RolAdmin     Rol = "ADMIN"
	RolEncargado Rol = "ENCARGADO" // supervisor de bodega
	RolOperador  Rol = "OPERADOR"
)

// Roles devuelve el conjunto cerrado de roles en orden de privilegio.
func Roles() []Rol {
	return []Rol{RolAdmin, RolEncargado, RolOperador}
}

// ParseRol convierte un texto (sin distinguir mayúsculas) en Rol. ok=false si no pertenece al enum.
func ParseRol(s string) (Rol, bool) {
	r := Rol(strings.ToUpper(strings.TrimSpace(s)))
	return r, r.Valid()
}

// Valid indica si el rol pertenece al enum.
func (r Rol) Valid() bool {
	switch r {
	case RolAdmin, RolEncargado, RolOperador:
		return true
	}
	return false
}

func (r Rol) String() string { return string(r) }

// Usuario representa un usuario del sistema tal como lo expone el backend (sin password).
type Usuario struct {
	ID             int    `json:"id"`
	Username       string `json:"username"`
	NombreCompleto string `json:"nombreCompleto"`
	Rol            Rol    `json:"rol"`
	Auditable
}

// Ref referencia mínima {"id": n} que usa el backend para relaciones.
type Ref struct {
	ID int `json:"id"`
}

// Auditable campos de trazabilidad que el backend agrega a cada entidad.
// Las fechas se conservan como texto: el backend las serializa sin zona horaria.
type Auditable struct {
	FechaCreacion     string `json:"fechaCreacion,omitempty"`
	FechaModificacion string `json:"fechaModificacion,omitempty"`
	CreadoPor         string `json:"creadoPor,omitempty"`
	ModificadoPor     string `json:"modificadoPor,omitempty"`
}
