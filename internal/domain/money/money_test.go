package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/money"
)

func testRateTable(t *testing.T) money.RateTable {
	t.Helper()
	// CUP principal; 1 USD = 120 CUP, 1 EUR = 125 CUP.
	table, err := money.NewRateTable("CUP", map[string]decimal.Decimal{
		"CUP": decimal.NewFromInt(1),
		"USD": decimal.NewFromInt(120),
		"EUR": decimal.NewFromInt(125),
	})
	require.NoError(t, err)
	return table
}

func TestConvert_Identidad(t *testing.T) {
	table := testRateTable(t)
	p := money.Money{Amount: decimal.NewFromInt(50), CodeCurrency: "USD"}
	got, err := money.Convert(p, "USD", table)
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(p.Amount))
	assert.Equal(t, "USD", got.CodeCurrency)
}

func TestConvert_HaciaPrincipal(t *testing.T) {
	table := testRateTable(t)
	p := money.Money{Amount: decimal.NewFromInt(10), CodeCurrency: "USD"}
	got, err := money.Convert(p, "CUP", table)
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(1200)), "10 USD * 120 = 1200 CUP, obtenido %s", got.Amount)
}

func TestConvert_DosPasos(t *testing.T) {
	table := testRateTable(t)
	// 25 USD -> 3000 CUP -> 24 EUR
	p := money.Money{Amount: decimal.NewFromInt(25), CodeCurrency: "USD"}
	got, err := money.Convert(p, "EUR", table)
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(24)), "obtenido %s", got.Amount)
}

func TestConvert_IdaYVuelta(t *testing.T) {
	table := testRateTable(t)
	p := money.Money{Amount: decimal.RequireFromString("37.52"), CodeCurrency: "EUR"}
	toUSD, err := money.Convert(p, "USD", table)
	require.NoError(t, err)
	back, err := money.Convert(toUSD, "EUR", table)
	require.NoError(t, err)
	// La ida y vuelta debe reproducir el monto dentro de una unidad de redondeo.
	diff := back.Amount.Sub(p.Amount).Abs()
	assert.True(t, diff.LessThanOrEqual(decimal.RequireFromString("0.01")),
		"round-trip EUR->USD->EUR se desvió %s", diff)
}

func TestConvert_MonedaDesconocida(t *testing.T) {
	table := testRateTable(t)
	_, err := money.Convert(money.Money{Amount: decimal.NewFromInt(1), CodeCurrency: "MXN"}, "CUP", table)
	assert.ErrorIs(t, err, domain.ErrUnknownCurrency)

	_, err = money.Convert(money.Money{Amount: decimal.NewFromInt(1), CodeCurrency: "USD"}, "MXN", table)
	assert.ErrorIs(t, err, domain.ErrUnknownCurrency)
}

func TestNewRateTable_SinPrincipal(t *testing.T) {
	_, err := money.NewRateTable("CUP", map[string]decimal.Decimal{
		"USD": decimal.NewFromInt(120),
	})
	assert.ErrorIs(t, err, domain.ErrMissingMainCurrency)
}

func TestNewRateTable_CodigoInvalido(t *testing.T) {
	_, err := money.NewRateTable("CUP", map[string]decimal.Decimal{
		"CUP": decimal.NewFromInt(1),
		"ZZZZ": decimal.NewFromInt(2),
	})
	assert.ErrorIs(t, err, domain.ErrUnknownCurrency)
}
