package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de producto (conjunto cerrado).
const (
	ProductTypeStock        = "STOCK"
	ProductTypeRaw          = "RAW"
	ProductTypeManufactured = "MANUFACTURED"
	ProductTypeWaste        = "WASTE"
	ProductTypeAsset        = "ASSET"
	ProductTypeMenu         = "MENU"
	ProductTypeCombo        = "COMBO"
	ProductTypeService      = "SERVICE"
	ProductTypeVariation    = "VARIATION"
	ProductTypeAddon        = "ADDON"
)

// Product representa un producto del negocio. El motor de costeo es dueño
// exclusivo de AverageCost y TotalQuantity una vez que el producto entra a
// inventario; los campos de identidad los administra el CRUD externo.
type Product struct {
	ID            string
	BusinessID    string
	Name          string
	Type          string
	Measure       string // unidad de medida (UNIT, KG, LT, ...)
	AverageCost   decimal.Decimal // costo unitario en la moneda de costo del negocio
	IsCostDefined bool            // true = costo fijado manualmente; la propagación no lo toca
	TotalQuantity decimal.Decimal // suma denormalizada de stock por área (solo con StockLimit)
	StockLimit    bool            // true = el stock no puede quedar negativo
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time // soft delete del CRUD externo; el motor rechaza operar sobre eliminados
}

// IsDeleted indica si el producto fue eliminado (soft delete).
func (p *Product) IsDeleted() bool {
	return p.DeletedAt != nil
}

// CanHaveSupplies indica si el tipo de producto admite ficha técnica (insumos).
func (p *Product) CanHaveSupplies() bool {
	switch p.Type {
	case ProductTypeCombo, ProductTypeVariation, ProductTypeWaste, ProductTypeAsset:
		return false
	}
	return true
}

// CanBeSupply indica si el producto puede usarse como insumo de otro.
func (p *Product) CanBeSupply() bool {
	switch p.Type {
	case ProductTypeStock, ProductTypeRaw, ProductTypeManufactured, ProductTypeWaste:
		return true
	}
	return false
}
