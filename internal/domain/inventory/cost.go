// Package inventory reglas de dominio sobre existencias.
package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost precio unitario después de recibir unidades a otro precio.
// Nuevo = ((stock * precio) + (cantidad * precioEntrada)) / (stock + cantidad), a dos decimales.
func WeightedAverageCost(stock int, precio decimal.Decimal, cantidad int, precioEntrada decimal.Decimal) decimal.Decimal {
	total := stock + cantidad
	if total <= 0 {
		return decimal.Zero
	}
	if stock <= 0 {
		return precioEntrada
	}
	num := decimal.NewFromInt(int64(stock)).Mul(precio).
		Add(decimal.NewFromInt(int64(cantidad)).Mul(precioEntrada))
	return num.Div(decimal.NewFromInt(int64(total))).Round(2)
}
