package costing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costeo-api/internal/domain"
	domaincosting "github.com/jhoicas/Costeo-api/internal/domain/costing"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/money"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

// systemUserID identifica al worker en los registros de auditoría.
const systemUserID = "system"

// PropagateCostUseCase es el servicio de propagación de costos: recalcula el
// costo promedio de un producto desde su ficha técnica y costos fijos, y
// encola la recomputación de sus dependientes. El algoritmo puro vive en
// domain/costing; aquí solo hay persistencia y encolado.
//
// Es idempotente: recomputar dos veces con los mismos insumos produce el mismo
// costo (y la segunda pasada ni escribe ni audita), así que la entrega
// at-least-once de la cola es segura.
type PropagateCostUseCase struct {
	tx           TxRunner
	queue        Queue
	currencyRepo repository.CurrencyRepository
}

// NewPropagateCostUseCase construye el servicio.
func NewPropagateCostUseCase(tx TxRunner, queue Queue, currencyRepo repository.CurrencyRepository) *PropagateCostUseCase {
	return &PropagateCostUseCase{tx: tx, queue: queue, currencyRepo: currencyRepo}
}

// RecomputeCost recalcula el costo del producto y, si cambió, encola a los
// productos que lo listan como insumo y actualiza inline los combos que lo
// incluyen (los combos son hoja: no se encolan).
func (uc *PropagateCostUseCase) RecomputeCost(ctx context.Context, businessID, productID string) error {
	business, err := uc.currencyRepo.GetBusiness(businessID)
	if err != nil {
		return err
	}
	if business == nil {
		return domain.ErrNotFound
	}

	var dependents []string
	err = uc.tx.RunCosting(ctx, func(
		products repository.ProductRepository,
		supplies repository.SupplyRepository,
		combos repository.ComboRepository,
		fixedCosts repository.FixedCostRepository,
		records repository.RecordRepository,
	) error {
		product, err := products.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil || product.BusinessID != businessID {
			return domain.ErrNotFound
		}
		if product.IsDeleted() {
			// El CRUD externo lo eliminó entre el encolado y el consumo: nada que hacer.
			return nil
		}
		// Costo fijado manualmente: la propagación no lo toca.
		if product.IsCostDefined {
			return nil
		}

		snap, err := buildSnapshot(products, supplies, fixedCosts, productID)
		if err != nil {
			return err
		}
		// Sin insumos ni costos fijos el costo manual o derivado del libro manda.
		if !snap.HasInputs() {
			return nil
		}

		newCost := money.RoundDecimal(domaincosting.ComputeCost(snap), business.Precision)
		if newCost.Equal(product.AverageCost) {
			return nil
		}

		if err := products.UpdateAverageCost(productID, newCost); err != nil {
			return err
		}
		if err := records.Create(&entity.ProductRecord{
			ID:        uuid.New().String(),
			Action:    entity.RecordCostPropagated,
			ProductID: productID,
			MadeByID:  systemUserID,
			OldValue:  product.AverageCost.String(),
			NewValue:  newCost.String(),
			Details:   fmt.Sprintf("Costo de %s recalculado desde la ficha técnica: %s -> %s", product.Name, product.AverageCost, newCost),
			CreatedAt: time.Now(),
		}); err != nil {
			return err
		}
		product.AverageCost = newCost

		// Dependientes directos: productos que usan a este como insumo.
		dependents, err = supplies.ListBasesOf(productID)
		if err != nil {
			return err
		}

		// Combos que incluyen este producto: actualización inline, sin encolar.
		comboIDs, err := combos.ListCombosOf(productID)
		if err != nil {
			return err
		}
		for _, comboID := range comboIDs {
			combo, err := products.GetByID(comboID)
			if err != nil {
				return err
			}
			if combo == nil || combo.IsDeleted() || combo.IsCostDefined {
				continue
			}
			if err := recomputeComboCost(products, combos, records, combo, systemUserID, business.Precision); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, dep := range dependents {
		if err := uc.queue.Enqueue(ctx, Task{
			Kind:       TaskRecomputeCost,
			ProductID:  dep,
			BusinessID: businessID,
		}); err != nil {
			return err
		}
	}
	return nil
}

// buildSnapshot arma la foto del grafo de UN producto con los costos de sus
// insumos ya resueltos.
func buildSnapshot(
	products repository.ProductRepository,
	supplies repository.SupplyRepository,
	fixedCosts repository.FixedCostRepository,
	productID string,
) (domaincosting.Snapshot, error) {
	edges, err := supplies.ListByBase(productID)
	if err != nil {
		return domaincosting.Snapshot{}, err
	}
	fcs, err := fixedCosts.ListByProduct(productID)
	if err != nil {
		return domaincosting.Snapshot{}, err
	}

	snap := domaincosting.Snapshot{}
	if len(edges) > 0 {
		ids := make([]string, 0, len(edges))
		for _, e := range edges {
			ids = append(ids, e.SupplyID)
		}
		supplyProducts, err := products.GetByIDs(ids)
		if err != nil {
			return domaincosting.Snapshot{}, err
		}
		costByID := make(map[string]decimal.Decimal, len(supplyProducts))
		for _, p := range supplyProducts {
			costByID[p.ID] = p.AverageCost
		}
		for _, e := range edges {
			snap.Supplies = append(snap.Supplies, domaincosting.SupplyLine{
				SupplyID: e.SupplyID,
				Quantity: e.Quantity,
				UnitCost: costByID[e.SupplyID],
			})
		}
	}
	for _, fc := range fcs {
		snap.FixedCosts = append(snap.FixedCosts, fc.CostAmount)
	}
	return snap, nil
}
