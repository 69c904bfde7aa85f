package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
// La clave lógica es (área, producto, variación); variación NULL se compara con
// IS NOT DISTINCT FROM.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

func (r *StockRepo) get(areaID, productID string, variationID *string, forUpdate bool) (*entity.Stock, error) {
	query := `
		SELECT area_id, product_id, variation_id, quantity, average_cost, updated_at
		FROM stocks WHERE area_id = $1 AND product_id = $2 AND variation_id IS NOT DISTINCT FROM $3`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, areaID, productID, variationID).Scan(
		&s.AreaID, &s.ProductID, &s.VariationID, &s.Quantity, &s.AverageCost, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Fila inexistente equivale a stock cero con costo cero.
			return &entity.Stock{
				AreaID: areaID, ProductID: productID, VariationID: variationID,
				Quantity: decimal.Zero, AverageCost: decimal.Zero,
			}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// Get obtiene la fila de stock; si no existe devuelve una fila cero.
func (r *StockRepo) Get(areaID, productID string, variationID *string) (*entity.Stock, error) {
	return r.get(areaID, productID, variationID, false)
}

// GetForUpdate obtiene la fila de stock y la bloquea (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(areaID, productID string, variationID *string) (*entity.Stock, error) {
	return r.get(areaID, productID, variationID, true)
}

// Upsert inserta o actualiza cantidad y costo promedio de la fila.
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO stocks (area_id, product_id, variation_id, quantity, average_cost, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (area_id, product_id, COALESCE(variation_id, ''))
		DO UPDATE SET quantity = EXCLUDED.quantity, average_cost = EXCLUDED.average_cost, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		stock.AreaID, stock.ProductID, stock.VariationID, stock.Quantity, stock.AverageCost)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// SumQuantityByProduct suma las cantidades del producto en todas las áreas.
func (r *StockRepo) SumQuantityByProduct(productID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(quantity), 0) FROM stocks WHERE product_id = $1`, productID,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum stock by product: %w", err)
	}
	return sum, nil
}
