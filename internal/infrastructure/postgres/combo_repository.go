package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

var _ repository.ComboRepository = (*ComboRepo)(nil)

// ComboRepo acceso a las líneas de composición de combos sobre PostgreSQL (usable con pool o tx).
type ComboRepo struct {
	q Querier
}

// NewComboRepository construye el adaptador de combos. Pasar pool o tx (Querier).
func NewComboRepository(q Querier) *ComboRepo {
	return &ComboRepo{q: q}
}

// ListByCombo lista la composición completa de un combo.
func (r *ComboRepo) ListByCombo(comboID string) ([]*entity.ComboEdge, error) {
	query := `
		SELECT combo_base_product_id, composed_id, quantity, variation_id, created_at, updated_at
		FROM combo_components WHERE combo_base_product_id = $1 ORDER BY composed_id`
	rows, err := r.q.Query(context.Background(), query, comboID)
	if err != nil {
		return nil, fmt.Errorf("list combo components: %w", err)
	}
	defer rows.Close()
	var list []*entity.ComboEdge
	for rows.Next() {
		var e entity.ComboEdge
		if err := rows.Scan(&e.ComboBaseProductID, &e.ComposedID, &e.Quantity, &e.VariationID, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan combo edge: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// ListCombosOf devuelve los combos que incluyen al producto compuesto.
func (r *ComboRepo) ListCombosOf(composedID string) ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT DISTINCT combo_base_product_id FROM combo_components WHERE composed_id = $1`, composedID)
	if err != nil {
		return nil, fmt.Errorf("list combos of product: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan combo id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Insert persiste una línea nueva de combo.
func (r *ComboRepo) Insert(edge *entity.ComboEdge) error {
	query := `
		INSERT INTO combo_components (combo_base_product_id, composed_id, quantity, variation_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		edge.ComboBaseProductID, edge.ComposedID, edge.Quantity, edge.VariationID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert combo edge: %w", err)
	}
	return nil
}

// UpdateQuantity cambia la cantidad de una línea existente.
func (r *ComboRepo) UpdateQuantity(comboID, composedID string, qty decimal.Decimal) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE combo_components SET quantity = $3, updated_at = now() WHERE combo_base_product_id = $1 AND composed_id = $2`,
		comboID, composedID, qty,
	)
	if err != nil {
		return fmt.Errorf("update combo quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una línea de combo.
func (r *ComboRepo) Delete(comboID, composedID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM combo_components WHERE combo_base_product_id = $1 AND composed_id = $2`,
		comboID, composedID,
	)
	if err != nil {
		return fmt.Errorf("delete combo edge: %w", err)
	}
	return nil
}
