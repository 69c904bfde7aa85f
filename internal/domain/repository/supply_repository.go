package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// SupplyRepository acceso a las aristas de la ficha técnica.
type SupplyRepository interface {
	ListByBase(baseProductID string) ([]*entity.SupplyEdge, error)
	// ListSupplyIDs devuelve solo los ids de insumo de un producto; es el
	// acceso que usa el recorrido de detección de ciclos.
	ListSupplyIDs(baseProductID string) ([]string, error)
	// ListBasesOf devuelve los productos que usan supplyID como insumo
	// (dependientes directos, destino de la cascada de costos).
	ListBasesOf(supplyID string) ([]string, error)
	Insert(edge *entity.SupplyEdge) error
	UpdateQuantity(baseProductID, supplyID string, qty decimal.Decimal) error
	Delete(baseProductID, supplyID string) error
}

// ComboRepository acceso a las líneas de composición de combos.
type ComboRepository interface {
	ListByCombo(comboID string) ([]*entity.ComboEdge, error)
	// ListCombosOf devuelve los combos que incluyen al producto compuesto.
	ListCombosOf(composedID string) ([]string, error)
	Insert(edge *entity.ComboEdge) error
	UpdateQuantity(comboID, composedID string, qty decimal.Decimal) error
	Delete(comboID, composedID string) error
}

// FixedCostRepository acceso a los costos fijos de un producto.
type FixedCostRepository interface {
	ListByProduct(productID string) ([]*entity.FixedCost, error)
}
