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

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación del puerto WarehouseRepository sobre /bodegas.
type WarehouseRepo struct {
	api ports.APICaller
}

// NewWarehouseRepository construye el adaptador para bodegas.
func NewWarehouseRepository(api ports.APICaller) *WarehouseRepo {
	return &WarehouseRepo{api: api}
}

// List lista todas las bodegas.
func (r *WarehouseRepo) List(ctx context.Context) ([]entity.Bodega, error) {
	return list[entity.Bodega](ctx, r.api, "/bodegas")
}

// GetByID obtiene una bodega por ID.
func (r *WarehouseRepo) GetByID(ctx context.Context, id int) (*entity.Bodega, error) {
	var b entity.Bodega
	if err := call(ctx, r.api, http.MethodGet, fmt.Sprintf("/bodegas/%d", id), nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Create registra una bodega nueva.
func (r *WarehouseRepo) Create(ctx context.Context, in dto.BodegaRequest) (*entity.Bodega, error) {
	var b entity.Bodega
	if err := call(ctx, r.api, http.MethodPost, "/bodegas", in, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Update reemplaza los datos de una bodega.
func (r *WarehouseRepo) Update(ctx context.Context, id int, in dto.BodegaRequest) (*entity.Bodega, error) {
	var b entity.Bodega
	if err := call(ctx, r.api, http.MethodPut, fmt.Sprintf("/bodegas/%d", id), in, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Delete elimina una bodega.
func (r *WarehouseRepo) Delete(ctx context.Context, id int) error {
	return call(ctx, r.api, http.MethodDelete, fmt.Sprintf("/bodegas/%d", id), nil, nil)
}
