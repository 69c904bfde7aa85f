package entity

import "time"

// Acciones registradas en la pista de auditoría de productos.
const (
	RecordSupplyAdded       = "SUPPLY_ADDED"
	RecordSupplyUpdated     = "SUPPLY_UPDATED"
	RecordSupplyRemoved     = "SUPPLY_REMOVED"
	RecordComboAdded        = "COMBO_COMPONENT_ADDED"
	RecordComboUpdated      = "COMBO_COMPONENT_UPDATED"
	RecordComboRemoved      = "COMBO_COMPONENT_REMOVED"
	RecordCostPropagated    = "COST_PROPAGATED"
	RecordMovementApplied   = "MOVEMENT_APPLIED"
	RecordPriceAdjusted     = "PRICE_ADJUSTED"
	RecordTotalsReconciled  = "TOTALS_RECONCILED"
)

// ProductRecord es un registro append-only de auditoría: cada operación que
// muta estado del motor deja uno. El UI y los reportes lo consumen read-only.
type ProductRecord struct {
	ID        string
	Action    string
	ProductID string
	MadeByID  string
	OldValue  string
	NewValue  string
	Details   string // descripción legible del cambio (nombre, cantidad, unidad)
	CreatedAt time.Time
}
