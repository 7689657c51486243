package entity

// Bodega representa una bodega con su encargado y capacidad.
type Bodega struct {
	ID        int      `json:"id"`
	Nombre    string   `json:"nombre"`
	Ubicacion string   `json:"ubicacion"`
	Capacidad int      `json:"capacidad"`
	Encargado *Usuario `json:"encargado,omitempty"`
	Auditable
}
