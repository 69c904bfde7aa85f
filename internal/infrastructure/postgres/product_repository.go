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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, business_id, name, type, measure, average_cost, is_cost_defined, total_quantity, stock_limit, created_at, updated_at, deleted_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.BusinessID, &p.Name, &p.Type, &p.Measure, &p.AverageCost,
		&p.IsCostDefined, &p.TotalQuantity, &p.StockLimit, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID obtiene un producto por ID. Devuelve nil si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByIDs obtiene varios productos de una vez (validación de insumos en lote).
func (r *ProductRepo) GetByIDs(ids []string) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1)`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return nil, fmt.Errorf("get products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product for update: %w", err)
	}
	return p, nil
}

// UpdateAverageCost actualiza solo el costo promedio (escritura exclusiva del motor).
func (r *ProductRepo) UpdateAverageCost(id string, cost decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET average_cost = $2, updated_at = now() WHERE id = $1`,
		id, cost,
	)
	if err != nil {
		return fmt.Errorf("update average cost: %w", err)
	}
	return nil
}

// UpdateTotalQuantity actualiza el total denormalizado de stock.
func (r *ProductRepo) UpdateTotalQuantity(id string, qty decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET total_quantity = $2, updated_at = now() WHERE id = $1`,
		id, qty,
	)
	if err != nil {
		return fmt.Errorf("update total quantity: %w", err)
	}
	return nil
}

// ListStockLimitIDs devuelve los ids de productos con control de stock de un negocio.
func (r *ProductRepo) ListStockLimitIDs(businessID string) ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id FROM products WHERE business_id = $1 AND stock_limit AND deleted_at IS NULL ORDER BY id`,
		businessID,
	)
	if err != nil {
		return nil, fmt.Errorf("list stock limit products: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan product id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
