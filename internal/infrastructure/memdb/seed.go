package memdb

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-bodegas/internal/application/dto"
	"github.com/jhoicas/gestion-bodegas/internal/domain/entity"
)

const seedActor = "sistema"

// SeedUser usuario inicial del sandbox.
type SeedUser struct {
	Username       string
	NombreCompleto string
	Password       string
	Rol            entity.Rol
}

// DemoUsers un usuario por rol, todos con la misma contraseña.
func DemoUsers(password string) []SeedUser {
	return []SeedUser{
		{Username: "ana", NombreCompleto: "Ana Torres", Password: password, Rol: entity.RolAdmin},
		{Username: "carlos", NombreCompleto: "Carlos Ruiz", Password: password, Rol: entity.RolEncargado},
		{Username: "olga", NombreCompleto: "Olga Méndez", Password: password, Rol: entity.RolOperador},
	}
}

// SeedUsers crea los usuarios indicados.
func (db *DB) SeedUsers(users []SeedUser) error {
	for _, u := range users {
		if _, err := db.CreateUsuario(seedActor, dto.UsuarioRequest{
			Username:       u.Username,
			NombreCompleto: u.NombreCompleto,
			Rol:            u.Rol,
			Password:       u.Password,
		}); err != nil {
			return fmt.Errorf("seed usuario %s: %w", u.Username, err)
		}
	}
	return nil
}

// SeedDemo carga usuarios, dos bodegas y algunos productos (uno con stock bajo).
func (db *DB) SeedDemo(password string) error {
	if err := db.SeedUsers(DemoUsers(password)); err != nil {
		return err
	}
	encargado, err := db.UsuarioByUsername("carlos")
	if err != nil {
		return err
	}
	central, err := db.CreateBodega(seedActor, dto.BodegaRequest{
		Nombre: "Bodega Central", Ubicacion: "Calle 10 # 5-20", Capacidad: 500,
		Encargado: &entity.Ref{ID: encargado.ID},
	})
	if err != nil {
		return fmt.Errorf("seed bodega: %w", err)
	}
	norte, err := db.CreateBodega(seedActor, dto.BodegaRequest{
		Nombre: "Bodega Norte", Ubicacion: "Av. Norte 45", Capacidad: 200,
	})
	if err != nil {
		return fmt.Errorf("seed bodega: %w", err)
	}
	productos := []dto.ProductoRequest{
		{Nombre: "Tornillo 1/4", Categoria: "Ferretería", Stock: 120, Precio: decimal.RequireFromString("150.50"), Bodega: entity.Ref{ID: central.ID}},
		{Nombre: "Taladro", Categoria: "Herramientas", Stock: 4, Precio: decimal.RequireFromString("289900"), Bodega: entity.Ref{ID: central.ID}},
		{Nombre: "Casco", Categoria: "Seguridad", Stock: 40, Precio: decimal.RequireFromString("35000"), Bodega: entity.Ref{ID: norte.ID}},
	}
	for _, p := range productos {
		if _, err := db.CreateProducto(seedActor, p); err != nil {
			return fmt.Errorf("seed producto %s: %w", p.Nombre, err)
		}
	}
	return nil
}
