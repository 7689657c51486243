// Package access es la tabla de capacidades por rol: qué secciones ve cada rol y qué
// acciones puede ejecutar. Es el único punto que conoce esa matriz; el cliente la usa para
// mostrar y despachar, y el sandbox para autorizar. El backend real sigue siendo quien decide.
package access

import "github.com/jhoicas/gestion-bodegas/internal/domain/entity"

// Section vista de datos dentro del dashboard.
type Section string

const (
	SectionBodegas        Section = "bodegas"
	SectionProductos      Section = "productos"
	SectionMovimientos    Section = "movimientos"
	SectionMisMovimientos Section = "mis-movimientos"
	SectionUsuarios       Section = "usuarios"
	SectionAuditoria      Section = "auditoria"
	SectionReportes       Section = "reportes"
)

// Action operación de escritura o exportación.
type Action string

const (
	ActionBodegaCrear         Action = "bodega:crear"
	ActionBodegaEditar        Action = "bodega:editar"
	ActionBodegaEliminar      Action = "bodega:eliminar"
	ActionProductoCrear       Action = "producto:crear"
	ActionProductoEditar      Action = "producto:editar"
	ActionProductoEliminar    Action = "producto:eliminar"
	ActionMovimientoRegistrar Action = "movimiento:registrar"
	ActionUsuarioCrear        Action = "usuario:crear"
	ActionUsuarioEditar       Action = "usuario:editar"
	ActionUsuarioEliminar     Action = "usuario:eliminar"
	ActionReporteStock        Action = "reporte:stock"
)

// AllSections devuelve todas las secciones en orden de menú.
func AllSections() []Section {
	return []Section{
		SectionBodegas, SectionProductos, SectionMovimientos, SectionMisMovimientos,
		SectionUsuarios, SectionAuditoria, SectionReportes,
	}
}

// AllActions devuelve todas las acciones conocidas.
func AllActions() []Action {
	return []Action{
		ActionBodegaCrear, ActionBodegaEditar, ActionBodegaEliminar,
		ActionProductoCrear, ActionProductoEditar, ActionProductoEliminar,
		ActionMovimientoRegistrar,
		ActionUsuarioCrear, ActionUsuarioEditar, ActionUsuarioEliminar,
		ActionReporteStock,
	}
}

type capabilities struct {
	sections []Section
	actions  map[Action]bool
}

var table = map[entity.Rol]capabilities{
	entity.RolAdmin: {
		sections: []Section{
			SectionBodegas, SectionProductos, SectionMovimientos,
			SectionUsuarios, SectionAuditoria, SectionReportes,
		},
		actions: allowAll(AllActions()),
	},
	entity.RolEncargado: {
		sections: []Section{
			SectionBodegas, SectionProductos, SectionMovimientos,
			SectionAuditoria, SectionReportes,
		},
		actions: allowAll([]Action{
			ActionProductoCrear, ActionProductoEditar, ActionProductoEliminar,
			ActionMovimientoRegistrar, ActionReporteStock,
		}),
	},
	// solo lectura
	entity.RolOperador: {
		sections: []Section{SectionProductos, SectionMisMovimientos},
	},
}

func allowAll(actions []Action) map[Action]bool {
	m := make(map[Action]bool, len(actions))
	for _, a := range actions {
		m[a] = true
	}
	return m
}

// Can indica si el rol puede ejecutar la acción. Un rol desconocido no puede nada.
func Can(rol entity.Rol, action Action) bool {
	return table[rol].actions[action]
}

// CanView indica si el rol puede ver la sección.
func CanView(rol entity.Rol, section Section) bool {
	for _, s := range table[rol].sections {
		if s == section {
			return true
		}
	}
	return false
}

// Sections secciones visibles para el rol, en orden de menú. Nil si el rol es desconocido.
func Sections(rol entity.Rol) []Section {
	caps, ok := table[rol]
	if !ok {
		return nil
	}
	out := make([]Section, len(caps.sections))
	copy(out, caps.sections)
	return out
}

// ParseSection valida el nombre de una sección.
func ParseSection(s string) (Section, bool) {
	for _, sec := range AllSections() {
		if string(sec) == s {
			return sec, true
		}
	}
	return "", false
}

// RolesFor roles que pueden ejecutar la acción (lo usa el sandbox para autorizar rutas).
func RolesFor(action Action) []entity.Rol {
	var out []entity.Rol
	for _, r := range entity.Roles() {
		if Can(r, action) {
			out = append(out, r)
		}
	}
	return out
}

// ViewersOf roles que pueden ver la sección.
func ViewersOf(section Section) []entity.Rol {
	var out []entity.Rol
	for _, r := range entity.Roles() {
		if CanView(r, section) {
			out = append(out, r)
		}
	}
	return out
}
