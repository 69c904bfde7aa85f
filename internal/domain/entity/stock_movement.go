package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Operaciones de movimiento de stock.
const (
	OperationEntry    = "ENTRY"    // entrada
	OperationExit     = "EXIT"     // salida
	OperationTransfer = "TRANSFER" // traslado entre áreas (dos patas enlazadas por ParentID)
	OperationSell     = "SELL"     // salida por venta
	OperationLoss     = "LOSS"     // salida por merma/pérdida
)

// Price es un monto monetario con su moneda. Nunca se suma ni compara entre
// monedas distintas sin pasar por el módulo money.
type Price struct {
	Amount       decimal.Decimal
	CodeCurrency string
}

// StockMovement es el registro inmutable (append-only) de cada movimiento.
// Es a la vez pista de auditoría y única entrada para recomputar el libro.
type StockMovement struct {
	ID                  string
	ProductID           string
	AreaID              string
	VariationID         *string
	Operation           string
	Quantity            decimal.Decimal // positivo en entradas, negativo en salidas
	CostBeforeOperation decimal.Decimal // costo promedio vigente antes de aplicar
	Price               Price           // costo unitario del movimiento en moneda de costo
	MovedByID           string
	EconomicCycleID     string
	ParentID            *string // enlaza las dos patas de un TRANSFER
	CreatedAt           time.Time
}
