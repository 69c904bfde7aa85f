package dto

import "github.com/shopspring/decimal"

// AdjustPercentRequest body para POST /api/prices/adjust-percent.
type AdjustPercentRequest struct {
	BusinessID    string          `json:"business_id" validate:"required"`
	CodeCurrency  string          `json:"code_currency" validate:"required"`
	PriceSystemID string          `json:"price_system_id" validate:"required"`
	Percent       decimal.Decimal `json:"percent" validate:"required"`
	Mode          string          `json:"mode" validate:"required,oneof=increment decrement"`
	AdjustType    string          `json:"adjust_type" validate:"required,oneof=decimal integer"`
	Endings       []string        `json:"endings,omitempty"`
}

// RebaseRequest body para POST /api/prices/rebase.
type RebaseRequest struct {
	BusinessID          string          `json:"business_id" validate:"required"`
	BaseCurrency        string          `json:"base_currency" validate:"required"`
	BasePriceSystemID   string          `json:"base_price_system_id" validate:"required"`
	TargetCurrency      string          `json:"target_currency" validate:"required"`
	TargetPriceSystemID string          `json:"target_price_system_id" validate:"required"`
	ExchangeRate        decimal.Decimal `json:"exchange_rate" validate:"required"`
	AdjustType          string          `json:"adjust_type" validate:"required,oneof=decimal integer"`
	Endings             []string        `json:"endings,omitempty"`
}
