package repository

import (
	"context"

	"github.com/jhoicas/gestion-bodegas/internal/application/dto"
	"github.com/jhoicas/gestion-bodegas/internal/domain/entity"
)

// WarehouseRepository define el puerto de acceso a bodegas (implementado sobre la API REST).
type WarehouseRepository interface {
	List(ctx context.Context) ([]entity.Bodega, error)
	GetByID(ctx context.Context, id int) (*entity.Bodega, error)
	Create(ctx context.Context, in dto.BodegaRequest) (*entity.Bodega, error)
	Update(ctx context.Context, id int, in dto.BodegaRequest) (*entity.Bodega, error)
	Delete(ctx context.Context, id int) error
}
