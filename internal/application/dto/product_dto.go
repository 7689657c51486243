package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-bodegas/internal/domain/entity"
)

// ProductoRequest cuerpo de POST/PUT /productos.
type ProductoRequest struct {
	Nombre    string          `json:"nombre"`
	Categoria string          `json:"categoria"`
	Stock     int             `json:"stock"`
	Precio    decimal.Decimal `json:"precio"`
	Bodega    entity.Ref      `json:"bodega"`
}
