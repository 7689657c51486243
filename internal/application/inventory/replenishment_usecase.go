package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-bodegas/internal/application/dto"
	"github.com/jhoicas/gestion-bodegas/internal/domain"
	"github.com/jhoicas/gestion-bodegas/internal/domain/repository"
)

// DefaultStockThreshold umbral de stock bajo del dashboard del encargado.
const DefaultStockThreshold = 10

// ReplenishmentUseCase sugiere reposición para los productos bajo el umbral.
type ReplenishmentUseCase struct {
	productRepo repository.ProductRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(productRepo repository.ProductRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{productRepo: productRepo}
}

// GenerateReplenishmentList devuelve los productos con stock menor al umbral, con la cantidad
// sugerida para llegar a 1.5 veces el umbral y el valor estimado a precio de venta.
// Orden: mayor déficit primero; a igual déficit, mayor valor.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context, umbral int) ([]dto.ReplenishmentSuggestion, error) {
	if umbral <= 0 {
		return nil, &domain.ValidationError{Field: "umbral", Message: "El umbral debe ser mayor que cero"}
	}
	items, err := uc.productRepo.ListStockBajo(ctx, umbral)
	if err != nil {
		return nil, err
	}

	ideal := decimal.NewFromInt(int64(umbral)).Mul(decimal.NewFromFloat(1.5)).Ceil().IntPart()
	suggestions := make([]dto.ReplenishmentSuggestion, 0, len(items))
	for _, p := range items {
		qty := int(ideal) - p.Stock
		if qty < 0 {
			qty = 0
		}
		s := dto.ReplenishmentSuggestion{
			ProductoID:       p.ID,
			Nombre:           p.Nombre,
			Stock:            p.Stock,
			Umbral:           umbral,
			StockIdeal:       int(ideal),
			CantidadSugerida: qty,
			ValorEstimado:    p.Precio.Mul(decimal.NewFromInt(int64(qty))),
		}
		if p.Bodega != nil {
			s.Bodega = p.Bodega.Nombre
		}
		suggestions = append(suggestions, s)
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.CantidadSugerida != b.CantidadSugerida {
			return a.CantidadSugerida > b.CantidadSugerida
		}
		return a.ValorEstimado.GreaterThan(b.ValorEstimado)
	})
	for i := range suggestions {
		suggestions[i].Prioridad = i + 1
	}
	return suggestions, nil
}
