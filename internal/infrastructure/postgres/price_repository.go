package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

var _ repository.PriceRepository = (*PriceRepo)(nil)

// PriceRepo acceso a sistemas de precios y precios de producto (usable con pool o tx).
type PriceRepo struct {
	q Querier
}

// NewPriceRepository construye el adaptador de precios. Pasar pool o tx (Querier).
func NewPriceRepository(q Querier) *PriceRepo {
	return &PriceRepo{q: q}
}

// SystemExists verifica que el sistema de precios exista.
func (r *PriceRepo) SystemExists(priceSystemID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM price_systems WHERE id = $1)`, priceSystemID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check price system: %w", err)
	}
	return exists, nil
}

// ListBySystemAndCurrency lista todos los precios de un (sistema, moneda).
func (r *PriceRepo) ListBySystemAndCurrency(priceSystemID, codeCurrency string) ([]*entity.ProductPrice, error) {
	query := `
		SELECT id, product_id, price_system_id, amount, code_currency, updated_at
		FROM product_prices WHERE price_system_id = $1 AND code_currency = $2 ORDER BY product_id`
	rows, err := r.q.Query(context.Background(), query, priceSystemID, codeCurrency)
	if err != nil {
		return nil, fmt.Errorf("list prices: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductPrice
	for rows.Next() {
		var p entity.ProductPrice
		if err := rows.Scan(&p.ID, &p.ProductID, &p.PriceSystemID, &p.Amount, &p.CodeCurrency, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan price: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Get obtiene el precio de un producto en (sistema, moneda). Devuelve nil si no existe.
func (r *PriceRepo) Get(productID, priceSystemID, codeCurrency string) (*entity.ProductPrice, error) {
	query := `
		SELECT id, product_id, price_system_id, amount, code_currency, updated_at
		FROM product_prices WHERE product_id = $1 AND price_system_id = $2 AND code_currency = $3`
	var p entity.ProductPrice
	err := r.q.QueryRow(context.Background(), query, productID, priceSystemID, codeCurrency).Scan(
		&p.ID, &p.ProductID, &p.PriceSystemID, &p.Amount, &p.CodeCurrency, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get price: %w", err)
	}
	return &p, nil
}

// Update actualiza el monto de un precio existente.
func (r *PriceRepo) Update(price *entity.ProductPrice) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE product_prices SET amount = $2, updated_at = now() WHERE id = $1`,
		price.ID, price.Amount,
	)
	if err != nil {
		return fmt.Errorf("update price: %w", err)
	}
	return nil
}

// Upsert inserta o actualiza el precio de (producto, sistema, moneda).
func (r *PriceRepo) Upsert(price *entity.ProductPrice) error {
	if price.ID == "" {
		price.ID = uuid.New().String()
	}
	query := `
		INSERT INTO product_prices (id, product_id, price_system_id, amount, code_currency, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (product_id, price_system_id, code_currency)
		DO UPDATE SET amount = EXCLUDED.amount, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		price.ID, price.ProductID, price.PriceSystemID, price.Amount, price.CodeCurrency)
	if err != nil {
		return fmt.Errorf("upsert price: %w", err)
	}
	return nil
}
