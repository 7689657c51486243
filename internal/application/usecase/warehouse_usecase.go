package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/gestion-bodegas/internal/application/dto"
	"github.com/jhoicas/gestion-bodegas/internal/domain"
	"github.com/jhoicas/gestion-bodegas/internal/domain/entity"
	"github.com/jhoicas/gestion-bodegas/internal/domain/repository"
)

// WarehouseUseCase casos de uso CRUD para bodegas.
type WarehouseUseCase struct {
	repo     repository.WarehouseRepository
	userRepo repository.UserRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository, userRepo repository.UserRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo, userRepo: userRepo}
}

// Create crea una nueva bodega.
func (uc *WarehouseUseCase) Create(ctx context.Context, in dto.BodegaRequest) (*entity.Bodega, error) {
	in, err := normalizeBodega(in)
	if err != nil {
		return nil, err
	}
	return uc.repo.Create(ctx, in)
}

// GetByID obtiene una bodega por ID.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, id int) (*entity.Bodega, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.repo.GetByID(ctx, id)
}

// Update reemplaza los datos de una bodega.
func (uc *WarehouseUseCase) Update(ctx context.Context, id int, in dto.BodegaRequest) (*entity.Bodega, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	in, err := normalizeBodega(in)
	if err != nil {
		return nil, err
	}
	return uc.repo.Update(ctx, id, in)
}

// List lista todas las bodegas.
func (uc *WarehouseUseCase) List(ctx context.Context) ([]entity.Bodega, error) {
	return uc.repo.List(ctx)
}

// Delete elimina una bodega por ID.
func (uc *WarehouseUseCase) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return domain.ErrInvalidInput
	}
	return uc.repo.Delete(ctx, id)
}

// ListEncargables usuarios que pueden quedar a cargo de una bodega (selector del formulario).
func (uc *WarehouseUseCase) ListEncargables(ctx context.Context) ([]entity.Usuario, error) {
	return uc.userRepo.ListEncargables(ctx)
}

func normalizeBodega(in dto.BodegaRequest) (dto.BodegaRequest, error) {
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Ubicacion = strings.TrimSpace(in.Ubicacion)
	switch {
	case in.Nombre == "":
		return in, &domain.ValidationError{Field: "nombre", Message: "El nombre no puede estar vacío"}
	case utf8.RuneCountInString(in.Nombre) > 100:
		return in, &domain.ValidationError{Field: "nombre", Message: "El nombre no puede tener más de 100 caracteres"}
	case in.Ubicacion == "":
		return in, &domain.ValidationError{Field: "ubicacion", Message: "La ubicación no puede estar vacía"}
	case utf8.RuneCountInString(in.Ubicacion) > 150:
		return in, &domain.ValidationError{Field: "ubicacion", Message: "La ubicación no puede tener más de 150 caracteres"}
	case in.Capacidad < 1:
		return in, &domain.ValidationError{Field: "capacidad", Message: "La capacidad debe ser mayor a 0"}
	}
	if in.Encargado != nil && in.Encargado.ID <= 0 {
		in.Encargado = nil
	}
	return in, nil
}
