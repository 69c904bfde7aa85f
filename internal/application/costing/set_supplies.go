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
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

// SetSuppliesUseCase administra la ficha técnica de un producto: valida tipos,
// autorreferencias y ciclos, aplica el diff contra las aristas persistidas y
// encola la propagación de costos. Toda la edición ocurre en una transacción.
type SetSuppliesUseCase struct {
	tx    TxRunner
	queue Queue
}

// NewSetSuppliesUseCase construye el caso de uso.
func NewSetSuppliesUseCase(tx TxRunner, queue Queue) *SetSuppliesUseCase {
	return &SetSuppliesUseCase{tx: tx, queue: queue}
}

// SupplyEdgeInput es una línea solicitada de la ficha técnica.
type SupplyEdgeInput struct {
	SupplyID string
	Quantity decimal.Decimal
}

// SetSupplies reemplaza la ficha técnica del producto base por el conjunto
// solicitado. La validación de aciclicidad corre sobre las aristas EXISTENTES
// antes de insertar; cualquier fallo revierte la transacción completa.
// La recomputación de costos NO es inline: se encola al worker para no
// provocar tormentas de recálculo en ediciones masivas.
func (uc *SetSuppliesUseCase) SetSupplies(ctx context.Context, businessID, madeByID, baseProductID string, edges []SupplyEdgeInput) error {
	if baseProductID == "" {
		return domain.ErrInvalidInput
	}
	requested := make(map[string]decimal.Decimal, len(edges))
	for _, e := range edges {
		if e.SupplyID == "" || e.Quantity.LessThanOrEqual(decimal.Zero) {
			return domain.ErrInvalidInput
		}
		if e.SupplyID == baseProductID {
			return domain.ErrSelfReference
		}
		requested[e.SupplyID] = e.Quantity
	}

	err := uc.tx.RunCosting(ctx, func(
		products repository.ProductRepository,
		supplies repository.SupplyRepository,
		combos repository.ComboRepository,
		fixedCosts repository.FixedCostRepository,
		records repository.RecordRepository,
	) error {
		base, err := products.GetByID(baseProductID)
		if err != nil {
			return err
		}
		if base == nil || base.BusinessID != businessID {
			return domain.ErrNotFound
		}
		if base.IsDeleted() {
			return domain.ErrProductDeleted
		}
		if !base.CanHaveSupplies() {
			return domain.ErrInvalidProductType
		}

		current, err := supplies.ListByBase(baseProductID)
		if err != nil {
			return err
		}
		currentMap := make(map[string]decimal.Decimal, len(current))
		for _, e := range current {
			currentMap[e.SupplyID] = e.Quantity
		}

		// Nombres y tipos de todos los insumos involucrados (nuevos y actuales).
		ids := make([]string, 0, len(requested)+len(currentMap))
		for id := range requested {
			ids = append(ids, id)
		}
		for id := range currentMap {
			if _, ok := requested[id]; !ok {
				ids = append(ids, id)
			}
		}
		supplyProducts, err := products.GetByIDs(ids)
		if err != nil {
			return err
		}
		byID := make(map[string]*entity.Product, len(supplyProducts))
		for _, p := range supplyProducts {
			byID[p.ID] = p
		}

		lister := func(ctx context.Context, id string) ([]string, error) {
			return supplies.ListSupplyIDs(id)
		}
		for id := range requested {
			sp, ok := byID[id]
			if !ok {
				return domain.ErrNotFound
			}
			if sp.IsDeleted() {
				return domain.ErrProductDeleted
			}
			if !sp.CanBeSupply() {
				return domain.ErrInvalidSupplyType
			}
			// Solo las aristas nuevas pueden cerrar un ciclo.
			if _, exists := currentMap[id]; exists {
				continue
			}
			cycle, err := domaincosting.HasCircularDependency(ctx, lister, id, baseProductID)
			if err != nil {
				return err
			}
			if cycle {
				return &domain.CircularDependencyError{ProductID: sp.ID, ProductName: sp.Name}
			}
		}

		now := time.Now()
		for _, change := range domaincosting.DiffEdges(currentMap, requested) {
			sp := byID[change.SupplyID]
			if sp == nil {
				// Arista vieja hacia un producto ya purgado: solo puede ser un removed.
				sp = &entity.Product{ID: change.SupplyID, Name: change.SupplyID}
			}
			var action, details string
			switch change.Kind {
			case domaincosting.EdgeAdded:
				if err := supplies.Insert(&entity.SupplyEdge{
					BaseProductID: baseProductID,
					SupplyID:      change.SupplyID,
					Quantity:      change.NewQty,
					CreatedAt:     now,
					UpdatedAt:     now,
				}); err != nil {
					return err
				}
				action = entity.RecordSupplyAdded
				details = fmt.Sprintf("Se agregó %s a la ficha técnica de %s: %s %s por unidad",
					sp.Name, base.Name, change.NewQty, sp.Measure)
			case domaincosting.EdgeUpdated:
				if err := supplies.UpdateQuantity(baseProductID, change.SupplyID, change.NewQty); err != nil {
					return err
				}
				action = entity.RecordSupplyUpdated
				details = fmt.Sprintf("Se cambió la cantidad de %s en la ficha técnica de %s: %s -> %s %s",
					sp.Name, base.Name, change.OldQty, change.NewQty, sp.Measure)
			case domaincosting.EdgeRemoved:
				if err := supplies.Delete(baseProductID, change.SupplyID); err != nil {
					return err
				}
				action = entity.RecordSupplyRemoved
				details = fmt.Sprintf("Se eliminó %s de la ficha técnica de %s (antes %s %s)",
					sp.Name, base.Name, change.OldQty, sp.Measure)
			}
			if err := records.Create(&entity.ProductRecord{
				ID:        uuid.New().String(),
				Action:    action,
				ProductID: baseProductID,
				MadeByID:  madeByID,
				OldValue:  change.OldQty.String(),
				NewValue:  change.NewQty.String(),
				Details:   details,
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

	// La tx ya confirmó; el recálculo va diferido al worker.
	return uc.queue.Enqueue(ctx, Task{
		Kind:       TaskRecomputeCost,
		ProductID:  baseProductID,
		BusinessID: businessID,
	})
}
