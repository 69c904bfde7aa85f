package costing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Costeo-api/internal/domain/costing"
)

// listerFrom construye un SupplyLister sobre un grafo en memoria
// (producto -> ids de sus insumos).
func listerFrom(adj map[string][]string) costing.SupplyLister {
	return func(_ context.Context, id string) ([]string, error) {
		return adj[id], nil
	}
}

func TestHasCircularDependency_Autorreferencia(t *testing.T) {
	cycle, err := costing.HasCircularDependency(context.Background(), listerFrom(nil), "A", "A")
	require.NoError(t, err)
	assert.True(t, cycle)
}

func TestHasCircularDependency_CicloTransitivo(t *testing.T) {
	// B consume C, C consume A. Agregar A -> B cerraría A -> B -> C -> A.
	adj := map[string][]string{
		"B": {"C"},
		"C": {"A"},
	}
	cycle, err := costing.HasCircularDependency(context.Background(), listerFrom(adj), "B", "A")
	require.NoError(t, err)
	assert.True(t, cycle)
}

func TestHasCircularDependency_GrafoLimpio(t *testing.T) {
	adj := map[string][]string{
		"B": {"C", "D"},
		"C": {"D"},
	}
	cycle, err := costing.HasCircularDependency(context.Background(), listerFrom(adj), "B", "A")
	require.NoError(t, err)
	assert.False(t, cycle)
}

func TestHasCircularDependency_DiamanteSinCiclo(t *testing.T) {
	// Compartir insumos no es un ciclo.
	adj := map[string][]string{
		"B": {"D"},
		"C": {"D"},
	}
	for _, candidate := range []string{"B", "C", "D"} {
		cycle, err := costing.HasCircularDependency(context.Background(), listerFrom(adj), candidate, "A")
		require.NoError(t, err)
		assert.False(t, cycle, "candidato %s", candidate)
	}
}

func TestDiffEdges(t *testing.T) {
	q := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	current := map[string]decimal.Decimal{
		"keep":   q("2"),
		"update": q("1"),
		"remove": q("3"),
	}
	requested := map[string]decimal.Decimal{
		"keep":   q("2"),
		"update": q("1.5"),
		"new":    q("4"),
	}
	changes := costing.DiffEdges(current, requested)
	require.Len(t, changes, 3)

	// Orden determinista por SupplyID.
	assert.Equal(t, "new", changes[0].SupplyID)
	assert.Equal(t, costing.EdgeAdded, changes[0].Kind)
	assert.True(t, changes[0].NewQty.Equal(q("4")))

	assert.Equal(t, "remove", changes[1].SupplyID)
	assert.Equal(t, costing.EdgeRemoved, changes[1].Kind)
	assert.True(t, changes[1].OldQty.Equal(q("3")))

	assert.Equal(t, "update", changes[2].SupplyID)
	assert.Equal(t, costing.EdgeUpdated, changes[2].Kind)
	assert.True(t, changes[2].OldQty.Equal(q("1")))
	assert.True(t, changes[2].NewQty.Equal(q("1.5")))
}

func TestDiffEdges_SinCambios(t *testing.T) {
	current := map[string]decimal.Decimal{"a": decimal.NewFromInt(1)}
	requested := map[string]decimal.Decimal{"a": decimal.NewFromInt(1)}
	assert.Empty(t, costing.DiffEdges(current, requested))
}
