package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// FixedCost es un costo fijo aditivo al costo unitario de un producto,
// independiente de la ficha técnica (ej. mano de obra, empaque).
type FixedCost struct {
	ID          string
	ProductID   string
	CostAmount  decimal.Decimal
	Description string
	CreatedAt   time.Time
}
