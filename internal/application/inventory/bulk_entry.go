package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appcosting "github.com/jhoicas/Costeo-api/internal/application/costing"
	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

// BulkEntryLine es una línea de entrada masiva (ej. importación de compra).
type BulkEntryLine struct {
	ProductID   string
	Quantity    decimal.Decimal
	UnitCost    *decimal.Decimal
	VariationID *string
}

// BulkEntryUseCase aplica muchas entradas a un área en UNA transacción:
// o entran todas las líneas o no entra ninguna. Los productos se bloquean como
// conjunto en orden determinista (ids ordenados) para que dos lotes
// concurrentes con productos en común no se interbloqueen.
type BulkEntryUseCase struct {
	tx           TxRunner
	queue        appcosting.Queue
	currencyRepo repository.CurrencyRepository
}

// NewBulkEntryUseCase construye el caso de uso.
func NewBulkEntryUseCase(tx TxRunner, queue appcosting.Queue, currencyRepo repository.CurrencyRepository) *BulkEntryUseCase {
	return &BulkEntryUseCase{tx: tx, queue: queue, currencyRepo: currencyRepo}
}

// BulkEntry valida el lote, ordena por producto, pre-bloquea y aplica cada
// línea como una entrada normal. Cualquier línea inválida revierte el lote.
func (uc *BulkEntryUseCase) BulkEntry(ctx context.Context, businessID, madeByID, areaID, economicCycleID string, lines []BulkEntryLine) error {
	if areaID == "" || len(lines) == 0 {
		return domain.ErrInvalidInput
	}
	for _, l := range lines {
		if l.ProductID == "" || l.Quantity.LessThanOrEqual(decimal.Zero) {
			return domain.ErrInvalidInput
		}
		if l.UnitCost != nil && l.UnitCost.LessThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	}

	business, err := uc.currencyRepo.GetBusiness(businessID)
	if err != nil {
		return err
	}
	if business == nil {
		return domain.ErrNotFound
	}

	// Orden determinista por producto: evita deadlocks entre lotes que se solapan.
	sorted := make([]BulkEntryLine, len(lines))
	copy(sorted, lines)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ProductID < sorted[j].ProductID })

	now := time.Now()
	err = uc.tx.Run(ctx, func(
		stocks repository.StockRepository,
		movements repository.StockMovementRepository,
		products repository.ProductRepository,
		records repository.RecordRepository,
	) error {
		for _, line := range sorted {
			product, err := products.GetForUpdate(line.ProductID)
			if err != nil {
				return err
			}
			if product == nil || product.BusinessID != businessID {
				return domain.ErrNotFound
			}
			if product.IsDeleted() {
				return domain.ErrProductDeleted
			}
			in := MovementInput{
				BusinessID:      businessID,
				MovedByID:       madeByID,
				ProductID:       line.ProductID,
				AreaID:          areaID,
				VariationID:     line.VariationID,
				Quantity:        line.Quantity,
				UnitCost:        line.UnitCost,
				EconomicCycleID: economicCycleID,
			}
			costBefore := product.AverageCost
			if _, err := applyEntry(stocks, movements, products, business, product, in, now, nil); err != nil {
				return err
			}
			// Cada línea deja su rastro, igual que una entrada individual.
			if err := records.Create(&entity.ProductRecord{
				ID:        uuid.New().String(),
				Action:    entity.RecordMovementApplied,
				ProductID: line.ProductID,
				MadeByID:  madeByID,
				OldValue:  costBefore.String(),
				NewValue:  product.AverageCost.String(),
				Details:   movementDetails(entity.OperationEntry, product, line.Quantity, areaID),
				CreatedAt: now,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, line := range sorted {
		if err := uc.queue.Enqueue(ctx, appcosting.Task{
			Kind:       appcosting.TaskRecomputeCost,
			ProductID:  line.ProductID,
			BusinessID: businessID,
		}); err != nil {
			return err
		}
	}
	return nil
}
