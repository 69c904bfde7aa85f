package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// ProductRepository acceso a productos. El motor solo escribe AverageCost y
// TotalQuantity; la identidad del producto es del CRUD externo.
type ProductRepository interface {
	GetByID(id string) (*entity.Product, error)
	GetByIDs(ids []string) ([]*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) para las
	// actualizaciones de costo promedio y total bajo escritores concurrentes.
	GetForUpdate(id string) (*entity.Product, error)
	UpdateAverageCost(id string, cost decimal.Decimal) error
	UpdateTotalQuantity(id string, qty decimal.Decimal) error
	// ListStockLimitIDs devuelve los productos con control de stock de un
	// negocio, para la reconciliación periódica de totales.
	ListStockLimitIDs(businessID string) ([]string, error)
}
