package costing

import "github.com/shopspring/decimal"

// SupplyLine es una línea de la ficha técnica con el costo promedio vigente
// del insumo, ya resuelto por el caller.
type SupplyLine struct {
	SupplyID string
	Quantity decimal.Decimal
	UnitCost decimal.Decimal
}

// Snapshot es la foto del grafo de composición de UN producto: sus insumos con
// costos resueltos y sus costos fijos. Es la entrada de la función pura de
// recomputación, aislada de toda E/S.
type Snapshot struct {
	Supplies   []SupplyLine
	FixedCosts []decimal.Decimal
}

// HasInputs indica si el producto tiene insumos o costos fijos. Sin ninguno de
// los dos, su costo promedio es manual o derivado del libro y no se toca.
func (s Snapshot) HasInputs() bool {
	return len(s.Supplies) > 0 || len(s.FixedCosts) > 0
}

// ComputeCost recalcula el costo unitario desde el snapshot:
// Σ(cantidad * costo del insumo) + Σ(costos fijos). Aritmética decimal exacta.
func ComputeCost(s Snapshot) decimal.Decimal {
	cost := decimal.Zero
	for _, line := range s.Supplies {
		cost = cost.Add(line.Quantity.Mul(line.UnitCost))
	}
	for _, fc := range s.FixedCosts {
		cost = cost.Add(fc)
	}
	return cost
}

// ComputeComboCost recalcula el costo de un COMBO: suma simple de
// cantidad * costo del compuesto. No cascadea (los combos son hoja del grafo).
func ComputeComboCost(lines []SupplyLine) decimal.Decimal {
	cost := decimal.Zero
	for _, line := range lines {
		cost = cost.Add(line.Quantity.Mul(line.UnitCost))
	}
	return cost
}
