package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Costeo-api/internal/domain/money"
)

// ──────────────────────────────────────────────────────────────────────────────
// TestRoundToNearestEnding es el "canario en la mina" del motor de precios:
// el algoritmo de terminaciones es contrato bit-exacto con los precios ya
// persistidos. Si alguien cambia la normalización de terminaciones, la
// búsqueda hacia arriba/abajo o la regla de desempate (gana el MENOR), estos
// vectores fallan de inmediato.
// ──────────────────────────────────────────────────────────────────────────────

func TestRoundToNearestEnding_Vectores(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		endings []string
		want    int64
	}{
		{"ya es terminacion", "20", []string{"0", "5"}, 20},
		{"mas cerca hacia abajo", "17", []string{"0", "5"}, 15},
		{"mas cerca hacia arriba", "17", []string{"0"}, 20},
		{"ceil antes de buscar", "14.01", []string{"0", "5"}, 15},
		{"empate gana el menor", "12.5", []string{"0", "6"}, 10}, // ceil=13: 10 y 16 a distancia 3
		{"terminaciones de dos digitos", "130", []string{"00", "50"}, 150},
		{"longitudes mixtas se normalizan a la mas corta", "17", []string{"0", "5", "00", "50"}, 15},
		{"monto grande", "12344", []string{"00", "50"}, 12350},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := decimal.RequireFromString(tc.in)
			got, err := money.RoundToNearestEnding(d, tc.endings)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.NewFromInt(tc.want)),
				"RoundToNearestEnding(%s, %v) = %s, esperado %d", tc.in, tc.endings, got, tc.want)
		})
	}
}

func TestRoundToNearestEnding_SinTerminaciones(t *testing.T) {
	got, err := money.RoundToNearestEnding(decimal.RequireFromString("17.3"), nil)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(18)), "sin terminaciones solo aplica ceil")
}

func TestRoundToNearestEnding_TerminacionNoNumerica(t *testing.T) {
	_, err := money.RoundToNearestEnding(decimal.NewFromInt(17), []string{"x5"})
	require.Error(t, err)
}

func TestRoundDecimal(t *testing.T) {
	assert.True(t, money.RoundDecimal(decimal.RequireFromString("10.255"), 2).Equal(decimal.RequireFromString("10.26")))
	assert.True(t, money.RoundDecimal(decimal.RequireFromString("10.254"), 2).Equal(decimal.RequireFromString("10.25")))
}

func TestTruncate(t *testing.T) {
	assert.True(t, money.Truncate(decimal.RequireFromString("10.259"), 2).Equal(decimal.RequireFromString("10.25")))
}
