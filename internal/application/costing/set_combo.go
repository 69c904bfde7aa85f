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

// SetComboUseCase administra la composición de un COMBO. A diferencia de la
// ficha técnica, aquí solo se valida la autorreferencia (los combos no se
// anidan, comportamiento vigente) y el costo se recalcula inline: el combo es
// hoja del grafo y no dispara cascada.
type SetComboUseCase struct {
	tx           TxRunner
	currencyRepo repository.CurrencyRepository
}

// NewSetComboUseCase construye el caso de uso.
func NewSetComboUseCase(tx TxRunner, currencyRepo repository.CurrencyRepository) *SetComboUseCase {
	return &SetComboUseCase{tx: tx, currencyRepo: currencyRepo}
}

// ComboEdgeInput es una línea solicitada de la composición del combo.
type ComboEdgeInput struct {
	ComposedID  string
	Quantity    decimal.Decimal
	VariationID *string
}

// SetComposition reemplaza la composición del combo y actualiza su costo
// promedio con la suma Σ(cantidad * costo del compuesto).
func (uc *SetComboUseCase) SetComposition(ctx context.Context, businessID, madeByID, comboID string, edges []ComboEdgeInput) error {
	if comboID == "" {
		return domain.ErrInvalidInput
	}
	requested := make(map[string]decimal.Decimal, len(edges))
	variations := make(map[string]*string, len(edges))
	for _, e := range edges {
		if e.ComposedID == "" || e.Quantity.LessThanOrEqual(decimal.Zero) {
			return domain.ErrInvalidInput
		}
		if e.ComposedID == comboID {
			return domain.ErrSelfReference
		}
		requested[e.ComposedID] = e.Quantity
		variations[e.ComposedID] = e.VariationID
	}

	business, err := uc.currencyRepo.GetBusiness(businessID)
	if err != nil {
		return err
	}
	if business == nil {
		return domain.ErrNotFound
	}

	return uc.tx.RunCosting(ctx, func(
		products repository.ProductRepository,
		supplies repository.SupplyRepository,
		combos repository.ComboRepository,
		fixedCosts repository.FixedCostRepository,
		records repository.RecordRepository,
	) error {
		combo, err := products.GetByID(comboID)
		if err != nil {
			return err
		}
		if combo == nil || combo.BusinessID != businessID {
			return domain.ErrNotFound
		}
		if combo.IsDeleted() {
			return domain.ErrProductDeleted
		}
		if combo.Type != entity.ProductTypeCombo {
			return domain.ErrInvalidProductType
		}

		current, err := combos.ListByCombo(comboID)
		if err != nil {
			return err
		}
		currentMap := make(map[string]decimal.Decimal, len(current))
		for _, e := range current {
			currentMap[e.ComposedID] = e.Quantity
		}

		ids := make([]string, 0, len(requested)+len(currentMap))
		for id := range requested {
			ids = append(ids, id)
		}
		for id := range currentMap {
			if _, ok := requested[id]; !ok {
				ids = append(ids, id)
			}
		}
		composedProducts, err := products.GetByIDs(ids)
		if err != nil {
			return err
		}
		byID := make(map[string]*entity.Product, len(composedProducts))
		for _, p := range composedProducts {
			byID[p.ID] = p
		}
		for id := range requested {
			cp, ok := byID[id]
			if !ok {
				return domain.ErrNotFound
			}
			if cp.IsDeleted() {
				return domain.ErrProductDeleted
			}
			// Un combo no puede componerse de otro combo.
			if cp.Type == entity.ProductTypeCombo {
				return domain.ErrInvalidSupplyType
			}
		}

		now := time.Now()
		for _, change := range domaincosting.DiffEdges(currentMap, requested) {
			cp := byID[change.SupplyID]
			if cp == nil {
				cp = &entity.Product{ID: change.SupplyID, Name: change.SupplyID}
			}
			var action, details string
			switch change.Kind {
			case domaincosting.EdgeAdded:
				if err := combos.Insert(&entity.ComboEdge{
					ComboBaseProductID: comboID,
					ComposedID:         change.SupplyID,
					Quantity:           change.NewQty,
					VariationID:        variations[change.SupplyID],
					CreatedAt:          now,
					UpdatedAt:          now,
				}); err != nil {
					return err
				}
				action = entity.RecordComboAdded
				details = fmt.Sprintf("Se agregó %s al combo %s: %s %s",
					cp.Name, combo.Name, change.NewQty, cp.Measure)
			case domaincosting.EdgeUpdated:
				if err := combos.UpdateQuantity(comboID, change.SupplyID, change.NewQty); err != nil {
					return err
				}
				action = entity.RecordComboUpdated
				details = fmt.Sprintf("Se cambió la cantidad de %s en el combo %s: %s -> %s",
					cp.Name, combo.Name, change.OldQty, change.NewQty)
			case domaincosting.EdgeRemoved:
				if err := combos.Delete(comboID, change.SupplyID); err != nil {
					return err
				}
				action = entity.RecordComboRemoved
				details = fmt.Sprintf("Se eliminó %s del combo %s (antes %s)",
					cp.Name, combo.Name, change.OldQty)
			}
			if err := records.Create(&entity.ProductRecord{
				ID:        uuid.New().String(),
				Action:    action,
				ProductID: comboID,
				MadeByID:  madeByID,
				OldValue:  change.OldQty.String(),
				NewValue:  change.NewQty.String(),
				Details:   details,
				CreatedAt: now,
			}); err != nil {
				return err
			}
		}

		return recomputeComboCost(products, combos, records, combo, madeByID, business.Precision)
	})
}

// recomputeComboCost recalcula inline el costo de un combo con la composición
// ya persistida. Lo comparte SetComposition y la cascada de propagación.
func recomputeComboCost(
	products repository.ProductRepository,
	combos repository.ComboRepository,
	records repository.RecordRepository,
	combo *entity.Product,
	madeByID string,
	precision int32,
) error {
	edges, err := combos.ListByCombo(combo.ID)
	if err != nil {
		return err
	}
	if len(edges) == 0 {
		return nil
	}
	ids := make([]string, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, e.ComposedID)
	}
	composed, err := products.GetByIDs(ids)
	if err != nil {
		return err
	}
	costByID := make(map[string]decimal.Decimal, len(composed))
	for _, p := range composed {
		costByID[p.ID] = p.AverageCost
	}
	lines := make([]domaincosting.SupplyLine, 0, len(edges))
	for _, e := range edges {
		lines = append(lines, domaincosting.SupplyLine{
			SupplyID: e.ComposedID,
			Quantity: e.Quantity,
			UnitCost: costByID[e.ComposedID],
		})
	}
	newCost := money.RoundDecimal(domaincosting.ComputeComboCost(lines), precision)
	if newCost.Equal(combo.AverageCost) {
		return nil
	}
	if err := products.UpdateAverageCost(combo.ID, newCost); err != nil {
		return err
	}
	if err := records.Create(&entity.ProductRecord{
		ID:        uuid.New().String(),
		Action:    entity.RecordCostPropagated,
		ProductID: combo.ID,
		MadeByID:  madeByID,
		OldValue:  combo.AverageCost.String(),
		NewValue:  newCost.String(),
		Details:   fmt.Sprintf("Costo del combo %s recalculado: %s -> %s", combo.Name, combo.AverageCost, newCost),
		CreatedAt: time.Now(),
	}); err != nil {
		return err
	}
	combo.AverageCost = newCost
	return nil
}
