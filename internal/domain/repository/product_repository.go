package repository

import (
	"context"

	"github.com/jhoicas/gestion-bodegas/internal/application/dto"
	"github.com/jhoicas/gestion-bodegas/internal/domain/entity"
)

// ProductRepository define el puerto de acceso a productos.
type ProductRepository interface {
	List(ctx context.Context) ([]entity.Producto, error)
	GetByID(ctx context.Context, id int) (*entity.Producto, error)
	Create(ctx context.Context, in dto.ProductoRequest) (*entity.Producto, error)
	Update(ctx context.Context, id int, in dto.ProductoRequest) (*entity.Producto, error)
	Delete(ctx context.Context, id int) error
	ListStockBajo(ctx context.Context, umbral int) ([]entity.Producto, error)
}
