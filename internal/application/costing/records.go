package costing

import (
	"context"

	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

// RecordQuery expone la pista de auditoría read-only para el UI y reportes.
type RecordQuery struct {
	records repository.RecordRepository
}

// NewRecordQuery construye la consulta.
func NewRecordQuery(records repository.RecordRepository) *RecordQuery {
	return &RecordQuery{records: records}
}

// ListByProduct devuelve los registros más recientes de un producto.
func (q *RecordQuery) ListByProduct(_ context.Context, productID string, limit int) ([]*entity.ProductRecord, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return q.records.ListByProduct(productID, limit)
}
