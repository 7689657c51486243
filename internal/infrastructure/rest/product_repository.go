package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jhoicas/gestion-bodegas/internal/application/dto"
	"github.com/jhoicas/gestion-bodegas/internal/application/ports"
	"github.com/jhoicas/gestion-bodegas/internal/domain/entity"
	"github.com/jhoicas/gestion-bodegas/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre /productos.
type ProductRepo struct {
	api ports.APICaller
}

// NewProductRepository construye el adaptador para productos.
func NewProductRepository(api ports.APICaller) *ProductRepo {
	return &ProductRepo{api: api}
}

func (r *ProductRepo) List(ctx context.Context) ([]entity.Producto, error) {
	return list[entity.Producto](ctx, r.api, "/productos")
}

func (r *ProductRepo) GetByID(ctx context.Context, id int) (*entity.Producto, error) {
	var p entity.Producto
	if err := call(ctx, r.api, http.MethodGet, fmt.Sprintf("/productos/%d", id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) Create(ctx context.Context, in dto.ProductoRequest) (*entity.Producto, error) {
	var p entity.Producto
	if err := call(ctx, r.api, http.MethodPost, "/productos", in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) Update(ctx context.Context, id int, in dto.ProductoRequest) (*entity.Producto, error) {
	var p entity.Producto
	if err := call(ctx, r.api, http.MethodPut, fmt.Sprintf("/productos/%d", id), in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) Delete(ctx context.Context, id int) error {
	return call(ctx, r.api, http.MethodDelete, fmt.Sprintf("/productos/%d", id), nil, nil)
}

// ListStockBajo productos con stock estrictamente menor al umbral.
func (r *ProductRepo) ListStockBajo(ctx context.Context, umbral int) ([]entity.Producto, error) {
	return list[entity.Producto](ctx, r.api, fmt.Sprintf("/productos/stock-bajo/%d", umbral))
}
