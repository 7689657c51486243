package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jhoicas/gestion-bodegas/internal/application/dto"
	"github.com/jhoicas/gestion-bodegas/internal/application/ports"
	"github.com/jhoicas/gestion-bodegas/internal/domain/entity"
	"github.com/jhoicas/gestion-bodegas/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre /usuarios.
type UserRepo struct {
	api ports.APICaller
}

// NewUserRepository construye el adaptador para usuarios.
func NewUserRepository(api ports.APICaller) *UserRepo {
	return &UserRepo{api: api}
}

func (r *UserRepo) List(ctx context.Context) ([]entity.Usuario, error) {
	return list[entity.Usuario](ctx, r.api, "/usuarios")
}

func (r *UserRepo) GetByID(ctx context.Context, id int) (*entity.Usuario, error) {
	var u entity.Usuario
	if err := call(ctx, r.api, http.MethodGet, fmt.Sprintf("/usuarios/%d", id), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByUsername resuelve el usuario (y su ID numérico) a partir del username de la sesión.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.Usuario, error) {
	var u entity.Usuario
	if err := call(ctx, r.api, http.MethodGet, "/usuarios/username/"+url.PathEscape(username), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListEncargables usuarios que pueden quedar a cargo de una bodega.
func (r *UserRepo) ListEncargables(ctx context.Context) ([]entity.Usuario, error) {
	return list[entity.Usuario](ctx, r.api, "/usuarios/encargables")
}

func (r *UserRepo) Create(ctx context.Context, in dto.UsuarioRequest) (*entity.Usuario, error) {
	var u entity.Usuario
	if err := call(ctx, r.api, http.MethodPost, "/usuarios", in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Update(ctx context.Context, id int, in dto.UsuarioRequest) (*entity.Usuario, error) {
	var u entity.Usuario
	if err := call(ctx, r.api, http.MethodPut, fmt.Sprintf("/usuarios/%d", id), in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Delete(ctx context.Context, id int) error {
	return call(ctx, r.api, http.MethodDelete, fmt.Sprintf("/usuarios/%d", id), nil, nil)
}
