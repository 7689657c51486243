package entity

import "github.com/shopspring/decimal"

// Producto representa un producto almacenado en una bodega.
type Producto struct {
	ID        int             `json:"id"`
	Nombre    string          `json:"nombre"`
	Categoria string          `json:"categoria"`
	Stock     int             `json:"stock"`
	Precio    decimal.Decimal `json:"precio"`
	Bodega    *Bodega         `json:"bodega,omitempty"`
	Auditable
}

// ValorInventario devuelve precio * stock.
func (p Producto) ValorInventario() decimal.Decimal {
	return p.Precio.Mul(decimal.NewFromInt(int64(p.Stock)))
}
