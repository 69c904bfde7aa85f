package entity

import "github.com/shopspring/decimal"

// Business agrupa la configuración de costeo del negocio: moneda de costo y
// precisión decimal. Se lee como snapshot al inicio de cada operación; no hay
// caches globales mutables.
type Business struct {
	ID           string
	Name         string
	CostCurrency string
	Precision    int32 // dígitos decimales para redondeo de costos y precios
}

// AvailableCurrency es una moneda habilitada en el negocio con su tasa de
// cambio respecto a la moneda principal. IsMain marca la moneda principal
// (tasa 1).
type AvailableCurrency struct {
	BusinessID   string
	Code         string
	ExchangeRate decimal.Decimal
	IsMain       bool
}
