package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComboEdge representa una línea de composición de un COMBO: un paquete fijo
// de productos vendibles. Aporta Quantity * composed.AverageCost al costo del
// combo. Solo se valida la autorreferencia; los combos no se anidan.
type ComboEdge struct {
	ComboBaseProductID string
	ComposedID         string
	Quantity           decimal.Decimal
	VariationID        *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
