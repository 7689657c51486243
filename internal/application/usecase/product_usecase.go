package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-bodegas/internal/application/dto"
	"github.com/jhoicas/gestion-bodegas/internal/domain"
	"github.com/jhoicas/gestion-bodegas/internal/domain/entity"
	"github.com/jhoicas/gestion-bodegas/internal/domain/repository"
)

// maxPrecio límite de la columna precio (10 dígitos, 2 decimales).
var maxPrecio = decimal.RequireFromString("99999999.99")

// ProductUseCase casos de uso CRUD para productos. El stock también cambia vía movimientos.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductoRequest) (*entity.Producto, error) {
	in, err := normalizeProducto(in)
	if err != nil {
		return nil, err
	}
	return uc.repo.Create(ctx, in)
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int) (*entity.Producto, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.repo.GetByID(ctx, id)
}

// Update reemplaza los datos de un producto.
func (uc *ProductUseCase) Update(ctx context.Context, id int, in dto.ProductoRequest) (*entity.Producto, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	in, err := normalizeProducto(in)
	if err != nil {
		return nil, err
	}
	return uc.repo.Update(ctx, id, in)
}

// List lista los productos disponibles.
func (uc *ProductUseCase) List(ctx context.Context) ([]entity.Producto, error) {
	return uc.repo.List(ctx)
}

// Delete elimina un producto.
func (uc *ProductUseCase) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return domain.ErrInvalidInput
	}
	return uc.repo.Delete(ctx, id)
}

// StockBajo productos con stock menor al umbral.
func (uc *ProductUseCase) StockBajo(ctx context.Context, umbral int) ([]entity.Producto, error) {
	if umbral <= 0 {
		return nil, &domain.ValidationError{Field: "umbral", Message: "El umbral debe ser mayor que cero"}
	}
	return uc.repo.ListStockBajo(ctx, umbral)
}

func normalizeProducto(in dto.ProductoRequest) (dto.ProductoRequest, error) {
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Categoria = strings.TrimSpace(in.Categoria)
	switch {
	case in.Nombre == "" || utf8.RuneCountInString(in.Nombre) > 100:
		return in, &domain.ValidationError{Field: "nombre", Message: "El nombre es obligatorio (máximo 100 caracteres)"}
	case in.Categoria == "" || utf8.RuneCountInString(in.Categoria) > 100:
		return in, &domain.ValidationError{Field: "categoria", Message: "La categoría es obligatoria (máximo 100 caracteres)"}
	case in.Stock < 0:
		return in, &domain.ValidationError{Field: "stock", Message: "El stock no puede ser negativo"}
	case in.Precio.IsNegative():
		return in, &domain.ValidationError{Field: "precio", Message: "El precio no puede ser negativo"}
	case in.Precio.GreaterThan(maxPrecio):
		return in, &domain.ValidationError{Field: "precio", Message: "El precio excede el máximo permitido"}
	case in.Bodega.ID <= 0:
		return in, &domain.ValidationError{Field: "bodega", Message: "Selecciona una bodega"}
	}
	in.Precio = in.Precio.Round(2)
	return in, nil
}
