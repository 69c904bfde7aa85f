package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

var _ repository.SupplyRepository = (*SupplyRepo)(nil)

// SupplyRepo acceso a las aristas de ficha técnica sobre PostgreSQL (usable con pool o tx).
type SupplyRepo struct {
	q Querier
}

// NewSupplyRepository construye el adaptador de insumos. Pasar pool o tx (Querier).
func NewSupplyRepository(q Querier) *SupplyRepo {
	return &SupplyRepo{q: q}
}

// ListByBase lista la ficha técnica completa de un producto.
func (r *SupplyRepo) ListByBase(baseProductID string) ([]*entity.SupplyEdge, error) {
	query := `
		SELECT base_product_id, supply_id, quantity, created_at, updated_at
		FROM product_supplies WHERE base_product_id = $1 ORDER BY supply_id`
	rows, err := r.q.Query(context.Background(), query, baseProductID)
	if err != nil {
		return nil, fmt.Errorf("list supplies: %w", err)
	}
	defer rows.Close()
	var list []*entity.SupplyEdge
	for rows.Next() {
		var e entity.SupplyEdge
		if err := rows.Scan(&e.BaseProductID, &e.SupplyID, &e.Quantity, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supply edge: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// ListSupplyIDs devuelve solo los ids de insumo (recorrido de detección de ciclos).
func (r *SupplyRepo) ListSupplyIDs(baseProductID string) ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT supply_id FROM product_supplies WHERE base_product_id = $1`, baseProductID)
	if err != nil {
		return nil, fmt.Errorf("list supply ids: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan supply id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListBasesOf devuelve los productos que usan supplyID como insumo (dependientes directos).
func (r *SupplyRepo) ListBasesOf(supplyID string) ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT base_product_id FROM product_supplies WHERE supply_id = $1`, supplyID)
	if err != nil {
		return nil, fmt.Errorf("list bases of supply: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan base id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Insert persiste una arista nueva de la ficha técnica.
func (r *SupplyRepo) Insert(edge *entity.SupplyEdge) error {
	query := `
		INSERT INTO product_supplies (base_product_id, supply_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())`
	_, err := r.q.Exec(context.Background(), query, edge.BaseProductID, edge.SupplyID, edge.Quantity)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert supply edge: %w", err)
	}
	return nil
}

// UpdateQuantity cambia la cantidad de una arista existente.
func (r *SupplyRepo) UpdateQuantity(baseProductID, supplyID string, qty decimal.Decimal) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE product_supplies SET quantity = $3, updated_at = now() WHERE base_product_id = $1 AND supply_id = $2`,
		baseProductID, supplyID, qty,
	)
	if err != nil {
		return fmt.Errorf("update supply quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una arista de la ficha técnica.
func (r *SupplyRepo) Delete(baseProductID, supplyID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM product_supplies WHERE base_product_id = $1 AND supply_id = $2`,
		baseProductID, supplyID,
	)
	if err != nil {
		return fmt.Errorf("delete supply edge: %w", err)
	}
	return nil
}

var _ repository.FixedCostRepository = (*FixedCostRepo)(nil)

// FixedCostRepo acceso read-only a los costos fijos de producto.
type FixedCostRepo struct {
	q Querier
}

// NewFixedCostRepository construye el adaptador de costos fijos. Pasar pool o tx (Querier).
func NewFixedCostRepository(q Querier) *FixedCostRepo {
	return &FixedCostRepo{q: q}
}

// ListByProduct lista los costos fijos de un producto.
func (r *FixedCostRepo) ListByProduct(productID string) ([]*entity.FixedCost, error) {
	query := `
		SELECT id, product_id, cost_amount, description, created_at
		FROM product_fixed_costs WHERE product_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list fixed costs: %w", err)
	}
	defer rows.Close()
	var list []*entity.FixedCost
	for rows.Next() {
		var fc entity.FixedCost
		if err := rows.Scan(&fc.ID, &fc.ProductID, &fc.CostAmount, &fc.Description, &fc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan fixed cost: %w", err)
		}
		list = append(list, &fc)
	}
	return list, rows.Err()
}
