package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplyEdge representa una línea de la ficha técnica: el producto base consume
// Quantity unidades del insumo por cada unidad producida.
// Invariante: el grafo de insumos es acíclico (validado al editar, nunca después).
type SupplyEdge struct {
	BaseProductID string
	SupplyID      string
	Quantity      decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
