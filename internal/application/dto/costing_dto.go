package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplyEdgeRequest es una línea de ficha técnica en el body.
type SupplyEdgeRequest struct {
	SupplyID string          `json:"supply_id" validate:"required"`
	Quantity decimal.Decimal `json:"quantity" validate:"required"`
}

// SetSuppliesRequest body para POST /api/products/:id/supplies.
// El conjunto enviado reemplaza la ficha técnica completa; vacío la borra.
type SetSuppliesRequest struct {
	BusinessID string              `json:"business_id" validate:"required"`
	Supplies   []SupplyEdgeRequest `json:"supplies" validate:"dive"`
}

// ComboEdgeRequest es una línea de composición de combo en el body.
type ComboEdgeRequest struct {
	ComposedID  string          `json:"composed_id" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	VariationID *string         `json:"variation_id,omitempty"`
}

// SetComboRequest body para POST /api/products/:id/combo.
type SetComboRequest struct {
	BusinessID string             `json:"business_id" validate:"required"`
	Components []ComboEdgeRequest `json:"components" validate:"dive"`
}

// RecomputeTaskRequest body que recibe el worker para recomputar un costo.
type RecomputeTaskRequest struct {
	Task       string `json:"task" validate:"required"`
	ProductID  string `json:"productId" validate:"required"`
	BusinessID string `json:"businessId" validate:"required"`
}

// ProductRecordDTO registro de auditoría en respuestas.
type ProductRecordDTO struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	ProductID string    `json:"product_id"`
	MadeByID  string    `json:"made_by_id"`
	OldValue  string    `json:"old_value,omitempty"`
	NewValue  string    `json:"new_value,omitempty"`
	Details   string    `json:"details,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
