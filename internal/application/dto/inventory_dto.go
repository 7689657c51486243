package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-bodegas/internal/domain/entity"
)

// MovimientoRequest cuerpo de POST /movimientos.
type MovimientoRequest struct {
	Tipo          entity.TipoMovimiento `json:"tipo"`
	Usuario       entity.Ref            `json:"usuario"`
	BodegaOrigen  *entity.Ref           `json:"bodegaOrigen"`
	BodegaDestino *entity.Ref           `json:"bodegaDestino"`
}

// DetalleMovimientoRequest cuerpo de POST /detalle-movimientos.
type DetalleMovimientoRequest struct {
	Movimiento entity.Ref `json:"movimiento"`
	Producto   entity.Ref `json:"producto"`
	Cantidad   int        `json:"cantidad"`
}

// RegistrarMovimientoInput datos del formulario de movimiento. Los IDs en cero significan "no seleccionado".
type RegistrarMovimientoInput struct {
	Tipo            string
	BodegaOrigenID  int
	BodegaDestinoID int
	ProductoID      int
	Cantidad        int
}

// MovimientoRegistrado resultado de registrar un movimiento con su detalle.
type MovimientoRegistrado struct {
	Movimiento entity.Movimiento        `json:"movimiento"`
	Detalle    entity.DetalleMovimiento `json:"detalle"`
}

// ReplenishmentSuggestion sugerencia de reposición de un producto con stock bajo.
type ReplenishmentSuggestion struct {
	ProductoID       int             `json:"producto_id"`
	Nombre           string          `json:"nombre"`
	Bodega           string          `json:"bodega,omitempty"`
	Stock            int             `json:"stock"`
	Umbral           int             `json:"umbral"`
	StockIdeal       int             `json:"stock_ideal"`
	CantidadSugerida int             `json:"cantidad_sugerida"`
	ValorEstimado    decimal.Decimal `json:"valor_estimado"`
	Prioridad        int             `json:"prioridad"` // 1 = más urgente
}
