package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo persiste los movimientos inmutables de stock (usable con pool o tx).
// Solo Insert y lecturas: el registro es append-only.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador de movimientos. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento de stock.
func (r *StockMovementRepo) Create(mov *entity.StockMovement) error {
	if mov.ID == "" {
		mov.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, product_id, area_id, variation_id, operation, quantity,
			cost_before_operation, price_amount, price_code_currency, moved_by_id, economic_cycle_id, parent_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		mov.ID, mov.ProductID, mov.AreaID, mov.VariationID, mov.Operation, mov.Quantity,
		mov.CostBeforeOperation, mov.Price.Amount, mov.Price.CodeCurrency,
		mov.MovedByID, mov.EconomicCycleID, mov.ParentID, mov.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// ListByProduct lista los movimientos más recientes de un producto.
func (r *StockMovementRepo) ListByProduct(productID string, limit int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, product_id, area_id, variation_id, operation, quantity,
			cost_before_operation, price_amount, price_code_currency, moved_by_id, economic_cycle_id, parent_id, created_at
		FROM stock_movements WHERE product_id = $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.AreaID, &m.VariationID, &m.Operation, &m.Quantity,
			&m.CostBeforeOperation, &m.Price.Amount, &m.Price.CodeCurrency,
			&m.MovedByID, &m.EconomicCycleID, &m.ParentID, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
