package inventory

import "github.com/shopspring/decimal"

// BlendAverageCost implementa la lógica de costo promedio ponderado del libro
// de inventario (servicio de dominio):
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
// Con stock actual cero (o divisor no positivo) el promedio es directamente el
// costo de entrada, nunca NaN/∞.
func BlendAverageCost(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) || stockActual.LessThanOrEqual(decimal.Zero) {
		return costoEntrada
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum)
}
