package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Costeo-api/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestBlendAverageCost(t *testing.T) {
	// (10*8 + 5*12) / 15 = 9.333...
	got := inventory.BlendAverageCost(d("10"), d("8"), d("5"), d("12"))
	assert.Equal(t, "9.33", got.Round(2).String())
}

func TestBlendAverageCost_StockCero(t *testing.T) {
	// Sin stock previo el promedio es el costo de entrada, nunca NaN/∞.
	got := inventory.BlendAverageCost(decimal.Zero, d("99"), d("4"), d("7.50"))
	assert.True(t, got.Equal(d("7.50")))
}

func TestBlendAverageCost_EntradaCero(t *testing.T) {
	// Una entrada de cantidad cero no altera el promedio.
	got := inventory.BlendAverageCost(d("10"), d("8"), decimal.Zero, d("99"))
	assert.True(t, got.Equal(d("8")))
}

func TestBlendAverageCost_StockNegativo(t *testing.T) {
	// Libro corrupto o política de stock negativo: se toma el costo de entrada.
	got := inventory.BlendAverageCost(d("-3"), d("8"), d("5"), d("12"))
	assert.True(t, got.Equal(d("12")))
}
