// Package inventory contiene reglas de dominio del inventario sin dependencias de infraestructura.
package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost costo promedio ponderado después de una entrada:
//
//	nuevo = (stock*costo + cantidad*costoEntrada) / (stock + cantidad)
//
// Se redondea a centavos. Un stock resultante <= 0 devuelve el costo de la entrada.
func WeightedAverageCost(stock int, cost decimal.Decimal, qty int, unitCost decimal.Decimal) decimal.Decimal {
	if stock < 0 {
		stock = 0
	}
	total := stock + qty
	if total <= 0 {
		return unitCost.Round(2)
	}
	num := decimal.NewFromInt(int64(stock)).Mul(cost).
		Add(decimal.NewFromInt(int64(qty)).Mul(unitCost))
	return num.Div(decimal.NewFromInt(int64(total))).Round(2)
}
