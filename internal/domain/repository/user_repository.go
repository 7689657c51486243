package repository

import (
	"context"

	"github.com/jhoicas/gestion-bodegas/internal/application/dto"
	"github.com/jhoicas/gestion-bodegas/internal/domain/entity"
)

// UserRepository define el puerto de acceso a usuarios.
type UserRepository interface {
	List(ctx context.Context) ([]entity.Usuario, error)
	GetByID(ctx context.Context, id int) (*entity.Usuario, error)
	GetByUsername(ctx context.Context, username string) (*entity.Usuario, error)
	ListEncargables(ctx context.Context) ([]entity.Usuario, error)
	Create(ctx context.Context, in dto.UsuarioRequest) (*entity.Usuario, error)
	Update(ctx context.Context, id int, in dto.UsuarioRequest) (*entity.Usuario, error)
	Delete(ctx context.Context, id int) error
}
