package dto

import "github.com/jhoicas/gestion-bodegas/internal/domain/entity"

// BodegaRequest cuerpo de POST/PUT /bodegas.
type BodegaRequest struct {
	Nombre    string      `json:"nombre"`
	Ubicacion string      `json:"ubicacion"`
	Capacidad int         `json:"capacidad"`
	Encargado *entity.Ref `json:"encargado,omitempty"`
}
