// Package inventory agrupa los casos de uso de movimientos de inventario: registro
// (cabecera + detalle), consulta y sugerencias de reposición para productos con stock bajo.
package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/gestion-bodegas/internal/application/dto"
	"github.com/jhoicas/gestion-bodegas/internal/domain"
	"github.com/jhoicas/gestion-bodegas/internal/domain/entity"
	"github.com/jhoicas/gestion-bodegas/internal/domain/repository"
	"github.com/jhoicas/gestion-bodegas/pkg/logger"
)

const (
	usuariosPath    = "/usuarios/username/"
	movimientosPath = "/movimientos"
	detallesPath    = "/detalle-movimientos"
)

var (
	errMissingID = errors.New("la respuesta no trae id")
	errEmptyBody = errors.New("respuesta vacía")
)

// RegisterMovementUseCase registra movimientos de inventario en tres pasos estrictamente
// secuenciales: resolver el usuario de la sesión, crear la cabecera y crear el detalle con
// el ID recibido. El backend ajusta el stock al recibir el detalle.
type RegisterMovementUseCase struct {
	session  SessionReader
	userRepo repository.UserRepository
	movRepo  repository.InventoryMovementRepository
	log      *logger.Logger
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	session SessionReader,
	userRepo repository.UserRepository,
	movRepo repository.InventoryMovementRepository,
	log *logger.Logger,
) *RegisterMovementUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &RegisterMovementUseCase{
		session:  session,
		userRepo: userRepo,
		movRepo:  movRepo,
		log:      log,
	}
}

// RegisterMovement valida y registra. Un fallo en cualquier paso detiene la cadena; si falla
// el detalle, la cabecera ya creada queda en el backend y se informa en el error.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, in dto.RegistrarMovimientoInput) (*dto.MovimientoRegistrado, error) {
	tipo, err := ValidateMovement(in)
	if err != nil {
		return nil, err
	}

	username := uc.session.Username()
	if username == "" {
		return nil, domain.ErrNotAuthenticated
	}
	usuario, err := uc.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	mov, err := uc.movRepo.Create(ctx, dto.MovimientoRequest{
		Tipo:          tipo,
		Usuario:       entity.Ref{ID: usuario.ID},
		BodegaOrigen:  optionalRef(in.BodegaOrigenID),
		BodegaDestino: optionalRef(in.BodegaDestinoID),
	})
	if err != nil {
		return nil, err
	}
	if mov == nil || mov.ID <= 0 {
		return nil, &domain.MalformedResponseError{Path: movimientosPath, Err: errMissingID}
	}

	detalle, err := uc.movRepo.CreateDetalle(ctx, dto.DetalleMovimientoRequest{
		Movimiento: entity.Ref{ID: mov.ID},
		Producto:   entity.Ref{ID: in.ProductoID},
		Cantidad:   in.Cantidad,
	})
	if err != nil {
		uc.log.Error().Err(err).Int("movimiento_id", mov.ID).Msg("movimiento creado sin detalle")
		return nil, fmt.Errorf("movimiento %d creado sin detalle: %w", mov.ID, err)
	}
	if detalle == nil {
		return nil, fmt.Errorf("movimiento %d creado sin detalle: %w", mov.ID,
			&domain.MalformedResponseError{Path: detallesPath, Err: errEmptyBody})
	}

	uc.log.Info().
		Int("movimiento_id", mov.ID).
		Str("tipo", string(tipo)).
		Int("producto_id", in.ProductoID).
		Int("cantidad", in.Cantidad).
		Str("username", username).
		Msg("movimiento registrado")
	return &dto.MovimientoRegistrado{Movimiento: *mov, Detalle: *detalle}, nil
}

// List lista todos los movimientos.
func (uc *RegisterMovementUseCase) List(ctx context.Context) ([]entity.Movimiento, error) {
	return uc.movRepo.List(ctx)
}

// GetByID obtiene un movimiento.
func (uc *RegisterMovementUseCase) GetByID(ctx context.Context, id int) (*entity.Movimiento, error) {
	return uc.movRepo.GetByID(ctx, id)
}

// ListMine movimientos del usuario de la sesión (vista del operador).
func (uc *RegisterMovementUseCase) ListMine(ctx context.Context) ([]entity.Movimiento, error) {
	username := uc.session.Username()
	if username == "" {
		return nil, domain.ErrNotAuthenticated
	}
	usuario, err := uc.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}
	return uc.movRepo.ListByUsuario(ctx, usuario.ID)
}

// resolveUser busca el usuario de la sesión; una respuesta sin ID detiene la cadena.
func (uc *RegisterMovementUseCase) resolveUser(ctx context.Context, username string) (*entity.Usuario, error) {
	usuario, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if usuario == nil || usuario.ID <= 0 {
		return nil, &domain.MalformedResponseError{Path: usuariosPath + username, Err: errMissingID}
	}
	return usuario, nil
}
