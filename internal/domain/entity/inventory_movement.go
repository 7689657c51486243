package entity

// TipoMovimiento tipos de movimiento de inventario.
type TipoMovimiento string

const (
	MovimientoEntrada       TipoMovimiento = "ENTRADA"       // requiere bodega destino
	MovimientoSalida        TipoMovimiento = "SALIDA"        // requiere bodega origen
	MovimientoTransferencia TipoMovimiento = "TRANSFERENCIA" // requiere origen y destino
)

// Valid indica si el tipo pertenece al enum.
func (t TipoMovimiento) Valid() bool {
	switch t {
	case MovimientoEntrada, MovimientoSalida, MovimientoTransferencia:
		return true
	}
	return false
}

// Movimiento cabecera de un movimiento de inventario.
type Movimiento struct {
	ID            int            `json:"id"`
	Fecha         string         `json:"fecha,omitempty"`
	Tipo          TipoMovimiento `json:"tipo"`
	Usuario       *Usuario       `json:"usuario,omitempty"`
	BodegaOrigen  *Bodega        `json:"bodegaOrigen,omitempty"`
	BodegaDestino *Bodega        `json:"bodegaDestino,omitempty"`
	Auditable
}

// DetalleMovimiento línea de un movimiento: producto y cantidad.
type DetalleMovimiento struct {
	ID         int         `json:"id"`
	Movimiento *Movimiento `json:"movimiento,omitempty"`
	Producto   *Producto   `json:"producto,omitempty"`
	Cantidad   int         `json:"cantidad"`
	Auditable
}
