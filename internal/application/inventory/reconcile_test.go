package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Costeo-api/internal/application/inventory"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

func TestReconcile_ReparaDeriva(t *testing.T) {
	s := newMemState()
	s.products["p1"] = &entity.Product{
		ID: "p1", BusinessID: bizID, Name: "Harina", Type: entity.ProductTypeStock,
		StockLimit: true, TotalQuantity: d("99"), // total derivado desincronizado
	}
	s.stocks[stockKey(areaA, "p1", nil)] = &entity.Stock{AreaID: areaA, ProductID: "p1", Quantity: d("6")}
	s.stocks[stockKey(areaB, "p1", nil)] = &entity.Stock{AreaID: areaB, ProductID: "p1", Quantity: d("4")}

	uc := inventory.NewReconcileTotalsUseCase(&memTx{s})
	repaired, err := uc.Reconcile(context.Background(), bizID)
	require.NoError(t, err)

	assert.Equal(t, 1, repaired)
	assert.Equal(t, "10", s.products["p1"].TotalQuantity.String())
	require.Len(t, s.records, 1)
	assert.Equal(t, entity.RecordTotalsReconciled, s.records[0].Action)
}

func TestReconcile_SinDerivaEsSilencioso(t *testing.T) {
	s := newMemState()
	s.products["p1"] = &entity.Product{
		ID: "p1", BusinessID: bizID, Type: entity.ProductTypeStock,
		StockLimit: true, TotalQuantity: decimal.Zero,
	}
	uc := inventory.NewReconcileTotalsUseCase(&memTx{s})
	repaired, err := uc.Reconcile(context.Background(), bizID)
	require.NoError(t, err)
	assert.Zero(t, repaired)
	assert.Empty(t, s.records)
}
