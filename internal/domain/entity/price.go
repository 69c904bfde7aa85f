package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceSystem es un sistema de precios del negocio (ej. "Salón", "Domicilio").
type PriceSystem struct {
	ID         string
	BusinessID string
	Name       string
	IsMain     bool
}

// ProductPrice es el precio de venta de un producto dentro de un sistema de
// precios, en una moneda concreta. Único por (producto, sistema, moneda).
type ProductPrice struct {
	ID            string
	ProductID     string
	PriceSystemID string
	Amount        decimal.Decimal
	CodeCurrency  string
	UpdatedAt     time.Time
}
