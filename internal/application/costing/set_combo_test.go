package costing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Costeo-api/internal/application/costing"
	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

func comboFixture() (*graphState, *costing.SetComboUseCase) {
	s := newGraphState()
	s.products["combo"] = product("combo", "Combo familiar", entity.ProductTypeCombo, "0")
	s.products["pizza"] = product("pizza", "Pizza", entity.ProductTypeMenu, "3.40")
	s.products["refresco"] = product("refresco", "Refresco", entity.ProductTypeStock, "0.80")
	uc := costing.NewSetComboUseCase(&gTx{s}, &gCurrencies{
		business: &entity.Business{ID: bizID, CostCurrency: "CUP", Precision: 2},
	})
	return s, uc
}

func TestSetComposition_CalculaCostoInline(t *testing.T) {
	s, uc := comboFixture()

	err := uc.SetComposition(context.Background(), bizID, userID, "combo", []costing.ComboEdgeInput{
		{ComposedID: "pizza", Quantity: d("2")},
		{ComposedID: "refresco", Quantity: d("1")},
	})
	require.NoError(t, err)

	// 2*3.40 + 1*0.80 = 7.60; el costo del combo se reemplaza inline.
	assert.Equal(t, "7.6", s.products["combo"].AverageCost.String())

	// Dos altas + la propagación del costo.
	require.Len(t, s.records, 3)
	assert.Equal(t, entity.RecordCostPropagated, s.records[2].Action)
}

func TestSetComposition_RechazaComboDentroDeCombo(t *testing.T) {
	s, uc := comboFixture()
	s.products["otro"] = product("otro", "Otro combo", entity.ProductTypeCombo, "0")

	err := uc.SetComposition(context.Background(), bizID, userID, "combo", []costing.ComboEdgeInput{
		{ComposedID: "otro", Quantity: d("1")},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidSupplyType)
}

func TestSetComposition_RechazaAutorreferencia(t *testing.T) {
	_, uc := comboFixture()
	err := uc.SetComposition(context.Background(), bizID, userID, "combo", []costing.ComboEdgeInput{
		{ComposedID: "combo", Quantity: d("1")},
	})
	assert.ErrorIs(t, err, domain.ErrSelfReference)
}

func TestSetComposition_RechazaBaseNoCombo(t *testing.T) {
	_, uc := comboFixture()
	err := uc.SetComposition(context.Background(), bizID, userID, "pizza", []costing.ComboEdgeInput{
		{ComposedID: "refresco", Quantity: d("1")},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidProductType)
}
