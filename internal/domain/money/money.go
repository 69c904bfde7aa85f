package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/jhoicas/Costeo-api/internal/domain"
)

// Money es un monto con su moneda. Toda la aritmética es decimal-exacta
// (shopspring/decimal); nunca float64 para dinero persistido.
type Money struct {
	Amount       decimal.Decimal
	CodeCurrency string
}

// RateTable es un snapshot read-only de las tasas de cambio del negocio,
// construido al inicio de cada operación. La tasa expresa cuántas unidades de
// la moneda principal vale una unidad de la moneda dada (la principal vale 1).
type RateTable struct {
	main  string
	rates map[string]decimal.Decimal
}

// NewRateTable construye el snapshot de tasas. Valida los códigos ISO 4217 y
// exige que la moneda principal esté presente en la tabla.
func NewRateTable(main string, rates map[string]decimal.Decimal) (RateTable, error) {
	if main == "" {
		return RateTable{}, domain.ErrMissingMainCurrency
	}
	cp := make(map[string]decimal.Decimal, len(rates))
	for code, rate := range rates {
		if _, err := currency.ParseISO(code); err != nil {
			return RateTable{}, domain.ErrUnknownCurrency
		}
		cp[code] = rate
	}
	if _, ok := cp[main]; !ok {
		return RateTable{}, domain.ErrMissingMainCurrency
	}
	return RateTable{main: main, rates: cp}, nil
}

// Main devuelve el código de la moneda principal del negocio.
func (t RateTable) Main() string {
	return t.main
}

// Rate devuelve la tasa de cambio de una moneda, si está registrada.
func (t RateTable) Rate(code string) (decimal.Decimal, bool) {
	r, ok := t.rates[code]
	return r, ok
}

// Convert convierte un monto a la moneda destino. Si origen y destino
// coinciden es identidad. En otro caso pasa primero a la moneda principal
// (multiplicando por la tasa de origen) y luego a la destino (dividiendo por
// la tasa de destino), salvo que el destino sea ya la principal.
func Convert(p Money, target string, t RateTable) (Money, error) {
	if p.CodeCurrency == target {
		return p, nil
	}
	srcRate, ok := t.rates[p.CodeCurrency]
	if !ok {
		return Money{}, domain.ErrUnknownCurrency
	}
	inMain := p.Amount.Mul(srcRate)
	if target == t.main {
		return Money{Amount: inMain, CodeCurrency: target}, nil
	}
	dstRate, ok := t.rates[target]
	if !ok {
		return Money{}, domain.ErrUnknownCurrency
	}
	return Money{Amount: inMain.Div(dstRate), CodeCurrency: target}, nil
}
