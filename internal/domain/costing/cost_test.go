package costing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Costeo-api/internal/domain/costing"
)

// Escenario de referencia: A (STOCK, costo 10) es insumo de B (MANUFACTURED)
// con cantidad 2; B tiene un costo fijo de 5. Costo de B = 2*10 + 5 = 25.
func TestComputeCost_Escenario(t *testing.T) {
	snap := costing.Snapshot{
		Supplies: []costing.SupplyLine{
			{SupplyID: "A", Quantity: decimal.NewFromInt(2), UnitCost: decimal.NewFromInt(10)},
		},
		FixedCosts: []decimal.Decimal{decimal.NewFromInt(5)},
	}
	assert.True(t, costing.ComputeCost(snap).Equal(decimal.NewFromInt(25)))

	// Tras la cascada por el cambio de A a 12: 2*12 + 5 = 29.
	snap.Supplies[0].UnitCost = decimal.NewFromInt(12)
	assert.True(t, costing.ComputeCost(snap).Equal(decimal.NewFromInt(29)))
}

func TestComputeCost_SoloCostosFijos(t *testing.T) {
	snap := costing.Snapshot{
		FixedCosts: []decimal.Decimal{decimal.RequireFromString("1.25"), decimal.RequireFromString("0.75")},
	}
	assert.True(t, costing.ComputeCost(snap).Equal(decimal.NewFromInt(2)))
}

func TestComputeCost_DecimalExacto(t *testing.T) {
	// 0.1 * 3 + 0.2 = 0.5 exacto, sin error binario.
	snap := costing.Snapshot{
		Supplies: []costing.SupplyLine{
			{SupplyID: "A", Quantity: decimal.NewFromInt(3), UnitCost: decimal.RequireFromString("0.1")},
		},
		FixedCosts: []decimal.Decimal{decimal.RequireFromString("0.2")},
	}
	assert.Equal(t, "0.5", costing.ComputeCost(snap).String())
}

func TestSnapshot_HasInputs(t *testing.T) {
	assert.False(t, costing.Snapshot{}.HasInputs())
	assert.True(t, costing.Snapshot{FixedCosts: []decimal.Decimal{decimal.Zero}}.HasInputs())
	assert.True(t, costing.Snapshot{Supplies: []costing.SupplyLine{{}}}.HasInputs())
}

func TestComputeComboCost(t *testing.T) {
	lines := []costing.SupplyLine{
		{SupplyID: "pizza", Quantity: decimal.NewFromInt(2), UnitCost: decimal.RequireFromString("3.40")},
		{SupplyID: "refresco", Quantity: decimal.NewFromInt(1), UnitCost: decimal.RequireFromString("0.80")},
	}
	assert.Equal(t, "7.6", costing.ComputeComboCost(lines).String())
}
