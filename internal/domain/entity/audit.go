package entity

// TipoOperacion operación registrada en auditoría.
type TipoOperacion string

const (
	OperacionInsert TipoOperacion = "INSERT"
	OperacionUpdate TipoOperacion = "UPDATE"
	OperacionDelete TipoOperacion = "DELETE"
)

// Auditoria registro de un cambio sobre una entidad. Los valores se guardan como JSON en texto.
type Auditoria struct {
	ID              int           `json:"id"`
	FechaHora       string        `json:"fechaHora"`
	TipoOperacion   TipoOperacion `json:"tipoOperacion"`
	Usuario         *Usuario      `json:"usuario,omitempty"`
	EntidadAfectada string        `json:"entidadAfectada"`
	ValorAnterior   string        `json:"valorAnterior,omitempty"`
	ValorNuevo      string        `json:"valorNuevo,omitempty"`
}
