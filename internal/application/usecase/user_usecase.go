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

// UserUseCase aplica reglas de negocio para la administración de usuarios.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de acceso.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List lista todos los usuarios.
func (uc *UserUseCase) List(ctx context.Context) ([]entity.Usuario, error) {
	return uc.repo.List(ctx)
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id int) (*entity.Usuario, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.repo.GetByID(ctx, id)
}

// GetByUsername obtiene un usuario por username.
func (uc *UserUseCase) GetByUsername(ctx context.Context, username string) (*entity.Usuario, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.repo.GetByUsername(ctx, username)
}

// Create crea un usuario. La contraseña es obligatoria.
func (uc *UserUseCase) Create(ctx context.Context, in dto.UsuarioRequest) (*entity.Usuario, error) {
	if in.Password == "" {
		return nil, &domain.ValidationError{Field: "password", Message: "La contraseña es requerida"}
	}
	in, err := normalizeUsuario(in)
	if err != nil {
		return nil, err
	}
	return uc.repo.Create(ctx, in)
}

// Update actualiza un usuario. Sin contraseña se conserva la actual.
func (uc *UserUseCase) Update(ctx context.Context, id int, in dto.UsuarioRequest) (*entity.Usuario, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	in, err := normalizeUsuario(in)
	if err != nil {
		return nil, err
	}
	return uc.repo.Update(ctx, id, in)
}

// Delete elimina un usuario.
func (uc *UserUseCase) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return domain.ErrInvalidInput
	}
	return uc.repo.Delete(ctx, id)
}

func normalizeUsuario(in dto.UsuarioRequest) (dto.UsuarioRequest, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.NombreCompleto = strings.TrimSpace(in.NombreCompleto)
	if in.Username == "" || in.NombreCompleto == "" {
		return in, &domain.ValidationError{Field: "form", Message: "Por favor completa todos los campos"}
	}
	if in.Password != "" && utf8.RuneCountInString(in.Password) < 6 {
		return in, &domain.ValidationError{Field: "password", Message: "La contraseña debe tener al menos 6 caracteres"}
	}
	rol, ok := entity.ParseRol(string(in.Rol))
	if !ok {
		return in, &domain.ValidationError{Field: "rol", Message: "Rol inválido: " + string(in.Rol)}
	}
	in.Rol = rol
	return in, nil
}
