package dto

import "github.com/shopspring/decimal"

// MovementRequest body para POST /api/stock/movements.
// unit_cost solo aplica a entradas; code_currency indica la moneda del costo
// unitario cuando no es la de costo del negocio; to_area_id solo a TRANSFER.
type MovementRequest struct {
	BusinessID      string           `json:"business_id" validate:"required"`
	ProductID       string           `json:"product_id" validate:"required"`
	AreaID          string           `json:"area_id" validate:"required"`
	ToAreaID        string           `json:"to_area_id,omitempty"`
	VariationID     *string          `json:"variation_id,omitempty"`
	Operation       string           `json:"operation" validate:"required,oneof=ENTRY EXIT TRANSFER SELL LOSS"`
	Quantity        decimal.Decimal  `json:"quantity" validate:"required"`
	UnitCost        *decimal.Decimal `json:"unit_cost,omitempty"`
	CodeCurrency    string           `json:"code_currency,omitempty" validate:"omitempty,len=3"`
	EconomicCycleID string           `json:"economic_cycle_id,omitempty"`
}

// BulkEntryLineRequest es una línea de entrada masiva.
type BulkEntryLineRequest struct {
	ProductID   string           `json:"product_id" validate:"required"`
	Quantity    decimal.Decimal  `json:"quantity" validate:"required"`
	UnitCost    *decimal.Decimal `json:"unit_cost,omitempty"`
	VariationID *string          `json:"variation_id,omitempty"`
}

// BulkEntryRequest body para POST /api/stock/bulk-entry. Todo el lote entra en
// una sola transacción: o entra completo o no entra nada.
type BulkEntryRequest struct {
	BusinessID      string                 `json:"business_id" validate:"required"`
	AreaID          string                 `json:"area_id" validate:"required"`
	EconomicCycleID string                 `json:"economic_cycle_id,omitempty"`
	Lines           []BulkEntryLineRequest `json:"lines" validate:"required,min=1,dive"`
}
