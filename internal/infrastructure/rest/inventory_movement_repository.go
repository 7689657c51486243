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

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación sobre /movimientos y /detalle-movimientos.
type InventoryMovementRepo struct {
	api ports.APICaller
}

// NewInventoryMovementRepository construye el adaptador de movimientos.
func NewInventoryMovementRepository(api ports.APICaller) *InventoryMovementRepo {
	return &InventoryMovementRepo{api: api}
}

func (r *InventoryMovementRepo) List(ctx context.Context) ([]entity.Movimiento, error) {
	return list[entity.Movimiento](ctx, r.api, "/movimientos")
}

func (r *InventoryMovementRepo) GetByID(ctx context.Context, id int) (*entity.Movimiento, error) {
	var m entity.Movimiento
	if err := call(ctx, r.api, http.MethodGet, fmt.Sprintf("/movimientos/%d", id), nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// ListByUsuario movimientos registrados por un usuario (por ID numérico).
func (r *InventoryMovementRepo) ListByUsuario(ctx context.Context, usuarioID int) ([]entity.Movimiento, error) {
	return list[entity.Movimiento](ctx, r.api, fmt.Sprintf("/movimientos/usuario/%d", usuarioID))
}

// Create registra la cabecera del movimiento.
func (r *InventoryMovementRepo) Create(ctx context.Context, in dto.MovimientoRequest) (*entity.Movimiento, error) {
	var m entity.Movimiento
	if err := call(ctx, r.api, http.MethodPost, "/movimientos", in, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateDetalle registra la línea del movimiento; el backend ajusta el stock al recibirla.
func (r *InventoryMovementRepo) CreateDetalle(ctx context.Context, in dto.DetalleMovimientoRequest) (*entity.DetalleMovimiento, error) {
	var d entity.DetalleMovimiento
	if err := call(ctx, r.api, http.MethodPost, "/detalle-movimientos", in, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
