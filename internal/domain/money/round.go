package money

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costeo-api/internal/domain"
)

// Modos de ajuste para transformaciones de precio.
const (
	AdjustDecimal = "decimal" // redondeo a N dígitos decimales
	AdjustInteger = "integer" // entero con terminación más cercana
)

// RoundDecimal redondea a precision dígitos decimales (half-up).
func RoundDecimal(d decimal.Decimal, precision int32) decimal.Decimal {
	return d.Round(precision)
}

// Truncate corta a precision dígitos decimales sin redondear. Se mantiene para
// los puntos de presentación de precio que truncan en lugar de redondear.
func Truncate(d decimal.Decimal, precision int32) decimal.Decimal {
	return d.Truncate(precision)
}

// RoundToNearestEnding lleva el monto al entero cuyo final (últimos dígitos)
// pertenece al conjunto de terminaciones dado. El algoritmo es contrato
// bit-exacto con los precios ya persistidos:
//
//  1. ceil del monto a entero;
//  2. las terminaciones se normalizan a la longitud de dígitos más corta
//     presente (ej. {0,5,00,50} -> longitud 1 -> {0,5});
//  3. se busca el entero más cercano hacia arriba y hacia abajo cuyo valor
//     módulo 10^len esté en el conjunto;
//  4. a igual distancia gana el candidato MENOR.
func RoundToNearestEnding(d decimal.Decimal, endings []string) (decimal.Decimal, error) {
	x := d.Ceil().IntPart()
	if len(endings) == 0 {
		return decimal.NewFromInt(x), nil
	}

	minLen := 0
	for _, e := range endings {
		if e == "" {
			continue
		}
		if minLen == 0 || len(e) < minLen {
			minLen = len(e)
		}
	}
	if minLen == 0 {
		return decimal.NewFromInt(x), nil
	}

	mod := int64(1)
	for i := 0; i < minLen; i++ {
		mod *= 10
	}

	// Conjunto de restos admitidos: sufijo de cada terminación a la longitud normalizada.
	allowed := make(map[int64]struct{}, len(endings))
	for _, e := range endings {
		if e == "" {
			continue
		}
		suffix := e
		if len(suffix) > minLen {
			suffix = suffix[len(suffix)-minLen:]
		}
		v := int64(0)
		for _, c := range suffix {
			if c < '0' || c > '9' {
				return decimal.Decimal{}, domain.ErrInvalidInput
			}
			v = v*10 + int64(c-'0')
		}
		allowed[v] = struct{}{}
	}

	rem := ((x % mod) + mod) % mod
	if _, ok := allowed[rem]; ok {
		return decimal.NewFromInt(x), nil
	}

	// Distancia mínima hacia arriba y hacia abajo dentro del conjunto.
	upStep, downStep := int64(-1), int64(-1)
	for v := range allowed {
		up := (v - rem + mod) % mod
		down := (rem - v + mod) % mod
		if upStep < 0 || up < upStep {
			upStep = up
		}
		if downStep < 0 || down < downStep {
			downStep = down
		}
	}

	// Empate exacto: gana el candidato menor (comportamiento observado).
	if downStep <= upStep {
		return decimal.NewFromInt(x - downStep), nil
	}
	return decimal.NewFromInt(x + upStep), nil
}
