package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

// ReconcileTotalsUseCase repara la deriva de TotalQuantity: recalcula el total
// de cada producto con control de stock como la suma de sus áreas. Corre
// periódicamente desde el worker (cron); silencioso salvo que encuentre
// diferencias, que quedan auditadas.
type ReconcileTotalsUseCase struct {
	tx TxRunner
}

// NewReconcileTotalsUseCase construye el caso de uso.
func NewReconcileTotalsUseCase(tx TxRunner) *ReconcileTotalsUseCase {
	return &ReconcileTotalsUseCase{tx: tx}
}

// Reconcile devuelve cuántos productos requirieron reparación.
func (uc *ReconcileTotalsUseCase) Reconcile(ctx context.Context, businessID string) (int, error) {
	repaired := 0
	err := uc.tx.Run(ctx, func(
		stocks repository.StockRepository,
		movements repository.StockMovementRepository,
		products repository.ProductRepository,
		records repository.RecordRepository,
	) error {
		ids, err := products.ListStockLimitIDs(businessID)
		if err != nil {
			return err
		}
		now := time.Now()
		for _, id := range ids {
			product, err := products.GetForUpdate(id)
			if err != nil {
				return err
			}
			if product == nil || product.IsDeleted() {
				continue
			}
			sum, err := stocks.SumQuantityByProduct(id)
			if err != nil {
				return err
			}
			if sum.Equal(product.TotalQuantity) {
				continue
			}
			if err := products.UpdateTotalQuantity(id, sum); err != nil {
				return err
			}
			if err := records.Create(&entity.ProductRecord{
				ID:        uuid.New().String(),
				Action:    entity.RecordTotalsReconciled,
				ProductID: id,
				MadeByID:  "system",
				OldValue:  product.TotalQuantity.String(),
				NewValue:  sum.String(),
				Details:   fmt.Sprintf("Total de %s reconciliado contra el libro: %s -> %s", product.Name, product.TotalQuantity, sum),
				CreatedAt: now,
			}); err != nil {
				return err
			}
			repaired++
		}
		return nil
	})
	return repaired, err
}
