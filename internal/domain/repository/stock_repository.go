package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// StockRepository acceso al libro de inventario por (área, producto, variación).
type StockRepository interface {
	Get(areaID, productID string, variationID *string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) durante el ciclo
	// leer-calcular-escribir del promedio ponderado.
	GetForUpdate(areaID, productID string, variationID *string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	// SumQuantityByProduct suma las cantidades del producto en todas las áreas
	// (reconciliación de TotalQuantity).
	SumQuantityByProduct(productID string) (decimal.Decimal, error)
}

// StockMovementRepository persiste los movimientos inmutables.
// No hay Update ni Delete: el registro es append-only.
type StockMovementRepository interface {
	Create(mov *entity.StockMovement) error
	ListByProduct(productID string, limit int) ([]*entity.StockMovement, error)
}
