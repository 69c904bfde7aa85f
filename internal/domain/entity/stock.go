package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa la fila del libro de inventario por (área, producto, variación):
// cantidad actual y costo promedio ponderado. AverageCost solo cambia con
// entradas (ENTRY); las salidas consumen al promedio vigente sin alterarlo.
type Stock struct {
	AreaID      string
	ProductID   string
	VariationID *string
	Quantity    decimal.Decimal
	AverageCost decimal.Decimal
	UpdatedAt   time.Time
}
