package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

var _ repository.CurrencyRepository = (*CurrencyRepo)(nil)

// CurrencyRepo lectura de la configuración monetaria del negocio (usable con pool o tx).
type CurrencyRepo struct {
	q Querier
}

// NewCurrencyRepository construye el adaptador de monedas. Pasar pool o tx (Querier).
func NewCurrencyRepository(q Querier) *CurrencyRepo {
	return &CurrencyRepo{q: q}
}

// GetBusiness obtiene la configuración de costeo del negocio. Devuelve nil si no existe.
func (r *CurrencyRepo) GetBusiness(businessID string) (*entity.Business, error) {
	query := `SELECT id, name, cost_currency, precision FROM businesses WHERE id = $1`
	var b entity.Business
	err := r.q.QueryRow(context.Background(), query, businessID).Scan(
		&b.ID, &b.Name, &b.CostCurrency, &b.Precision,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get business: %w", err)
	}
	return &b, nil
}

// ListByBusiness lista las monedas habilitadas del negocio con sus tasas.
func (r *CurrencyRepo) ListByBusiness(businessID string) ([]*entity.AvailableCurrency, error) {
	query := `
		SELECT business_id, code, exchange_rate, is_main
		FROM available_currencies WHERE business_id = $1 ORDER BY code`
	rows, err := r.q.Query(context.Background(), query, businessID)
	if err != nil {
		return nil, fmt.Errorf("list currencies: %w", err)
	}
	defer rows.Close()
	var list []*entity.AvailableCurrency
	for rows.Next() {
		var c entity.AvailableCurrency
		if err := rows.Scan(&c.BusinessID, &c.Code, &c.ExchangeRate, &c.IsMain); err != nil {
			return nil, fmt.Errorf("scan currency: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
