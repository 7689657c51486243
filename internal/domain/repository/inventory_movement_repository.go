package repository

import (
	"context"

	"github.com/jhoicas/gestion-bodegas/internal/application/dto"
	"github.com/jhoicas/gestion-bodegas/internal/domain/entity"
)

// InventoryMovementRepository define el puerto de acceso a movimientos y sus detalles.
type InventoryMovementRepository interface {
	List(ctx context.Context) ([]entity.Movimiento, error)
	GetByID(ctx context.Context, id int) (*entity.Movimiento, error)
	ListByUsuario(ctx context.Context, usuarioID int) ([]entity.Movimiento, error)
	Create(ctx context.Context, in dto.MovimientoRequest) (*entity.Movimiento, error)
	CreateDetalle(ctx context.Context, in dto.DetalleMovimientoRequest) (*entity.DetalleMovimiento, error)
}
