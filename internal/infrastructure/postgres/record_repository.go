package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

var _ repository.RecordRepository = (*RecordRepo)(nil)

// RecordRepo persiste la pista de auditoría de productos (usable con pool o tx).
type RecordRepo struct {
	q Querier
}

// NewRecordRepository construye el adaptador de auditoría. Pasar pool o tx (Querier).
func NewRecordRepository(q Querier) *RecordRepo {
	return &RecordRepo{q: q}
}

// Create persiste un registro de auditoría.
func (r *RecordRepo) Create(rec *entity.ProductRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	query := `
		INSERT INTO product_records (id, action, product_id, made_by_id, old_value, new_value, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		rec.ID, rec.Action, rec.ProductID, rec.MadeByID, rec.OldValue, rec.NewValue, rec.Details, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create product record: %w", err)
	}
	return nil
}

// ListByProduct lista los registros más recientes de un producto.
func (r *RecordRepo) ListByProduct(productID string, limit int) ([]*entity.ProductRecord, error) {
	query := `
		SELECT id, action, product_id, made_by_id, old_value, new_value, details, created_at
		FROM product_records WHERE product_id = $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("list product records: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductRecord
	for rows.Next() {
		var rec entity.ProductRecord
		if err := rows.Scan(&rec.ID, &rec.Action, &rec.ProductID, &rec.MadeByID,
			&rec.OldValue, &rec.NewValue, &rec.Details, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product record: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}
