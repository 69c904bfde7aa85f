package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appcosting "github.com/jhoicas/Costeo-api/internal/application/costing"
	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Costeo-api/internal/domain/inventory"
	"github.com/jhoicas/Costeo-api/internal/domain/money"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

// ApplyMovementUseCase aplica movimientos al libro de inventario de forma
// transaccional (ENTRY, EXIT, SELL, LOSS, TRANSFER) con bloqueo de fila
// (SELECT FOR UPDATE) y Commit/Rollback. Cada movimiento exitoso agrega el
// registro inmutable y encola la propagación de costos del producto.
type ApplyMovementUseCase struct {
	tx           TxRunner
	queue        appcosting.Queue
	currencyRepo repository.CurrencyRepository
}

// NewApplyMovementUseCase construye el caso de uso.
func NewApplyMovementUseCase(tx TxRunner, queue appcosting.Queue, currencyRepo repository.CurrencyRepository) *ApplyMovementUseCase {
	return &ApplyMovementUseCase{tx: tx, queue: queue, currencyRepo: currencyRepo}
}

// MovementInput entrada para aplicar un movimiento.
// Para ENTRY/EXIT/SELL/LOSS: ProductID, AreaID, Operation, Quantity;
// UnitCost opcional en ENTRY (default: costo promedio del producto), con
// CodeCurrency opcional si viene en una moneda distinta a la de costo del
// negocio (se convierte con las tasas registradas).
// Para TRANSFER: ProductID, AreaID (origen), ToAreaID (destino), Quantity.
type MovementInput struct {
	BusinessID      string
	MovedByID       string
	ProductID       string
	AreaID          string
	ToAreaID        string
	VariationID     *string
	Operation       string
	Quantity        decimal.Decimal
	UnitCost        *decimal.Decimal
	CodeCurrency    string
	EconomicCycleID string
}

// ApplyMovement valida la entrada, abre la transacción, bloquea las filas
// involucradas y aplica la operación. Cualquier fallo de validación revierte
// sin efectos visibles.
func (uc *ApplyMovementUseCase) ApplyMovement(ctx context.Context, in MovementInput) error {
	switch in.Operation {
	case entity.OperationEntry, entity.OperationExit, entity.OperationSell, entity.OperationLoss:
		if in.ProductID == "" || in.AreaID == "" {
			return domain.ErrInvalidInput
		}
		if in.Quantity.LessThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
		if in.UnitCost != nil && in.UnitCost.LessThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	case entity.OperationTransfer:
		if in.ProductID == "" || in.AreaID == "" || in.ToAreaID == "" {
			return domain.ErrInvalidInput
		}
		if in.AreaID == in.ToAreaID || !in.Quantity.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}

	business, err := uc.currencyRepo.GetBusiness(in.BusinessID)
	if err != nil {
		return err
	}
	if business == nil {
		return domain.ErrNotFound
	}

	// El costo unitario puede venir en otra moneda habilitada del negocio;
	// el libro siempre se lleva en la moneda de costo.
	if in.UnitCost != nil && in.CodeCurrency != "" && in.CodeCurrency != business.CostCurrency {
		currencies, err := uc.currencyRepo.ListByBusiness(in.BusinessID)
		if err != nil {
			return err
		}
		table, err := rateTable(currencies)
		if err != nil {
			return err
		}
		converted, err := money.Convert(money.Money{Amount: *in.UnitCost, CodeCurrency: in.CodeCurrency}, business.CostCurrency, table)
		if err != nil {
			return err
		}
		cost := converted.Amount
		in.UnitCost = &cost
	}

	now := time.Now()
	applied := true
	err = uc.tx.Run(ctx, func(
		stocks repository.StockRepository,
		movements repository.StockMovementRepository,
		products repository.ProductRepository,
		records repository.RecordRepository,
	) error {
		// Bloquea el producto: su costo promedio y total pueden cambiar.
		product, err := products.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil || product.BusinessID != in.BusinessID {
			return domain.ErrNotFound
		}
		if product.IsDeleted() {
			return domain.ErrProductDeleted
		}

		costBefore := product.AverageCost
		switch in.Operation {
		case entity.OperationEntry:
			movID, err := applyEntry(stocks, movements, products, business, product, in, now, nil)
			if err != nil {
				return err
			}
			if movID == "" {
				// Entrada de cantidad cero: sin efectos en el libro,
				// tampoco registro ni recompute.
				applied = false
				return nil
			}
		case entity.OperationExit, entity.OperationSell, entity.OperationLoss:
			if _, err := applyExit(stocks, movements, products, business, product, in.Operation, in.AreaID, in, now, nil); err != nil {
				return err
			}
		case entity.OperationTransfer:
			// Dos patas, misma transacción: salida en origen, entrada en destino.
			outID, err := applyExit(stocks, movements, products, business, product, entity.OperationTransfer, in.AreaID, in, now, nil)
			if err != nil {
				return err
			}
			entryLeg := in
			entryLeg.AreaID = in.ToAreaID
			// La pata de entrada entra al costo promedio vigente: la fila
			// destino mezcla, el promedio del producto no se toca.
			cost := product.AverageCost
			entryLeg.UnitCost = &cost
			if _, err := applyEntry(stocks, movements, products, business, product, entryLeg, now, &outID); err != nil {
				return err
			}
		}
		return records.Create(&entity.ProductRecord{
			ID:        uuid.New().String(),
			Action:    entity.RecordMovementApplied,
			ProductID: in.ProductID,
			MadeByID:  in.MovedByID,
			OldValue:  costBefore.String(),
			NewValue:  product.AverageCost.String(),
			Details:   movementDetails(in.Operation, product, in.Quantity, in.AreaID),
			CreatedAt: now,
		})
	})
	if err != nil {
		return err
	}
	if !applied {
		return nil
	}

	// El costo promedio pudo cambiar y el producto puede ser insumo de otros.
	return uc.queue.Enqueue(ctx, appcosting.Task{
		Kind:       appcosting.TaskRecomputeCost,
		ProductID:  in.ProductID,
		BusinessID: in.BusinessID,
	})
}

// applyEntry bloquea la fila del libro, mezcla el costo promedio ponderado,
// suma la cantidad y agrega el movimiento inmutable. parentID enlaza la pata
// de entrada de un TRANSFER con su salida.
func applyEntry(
	stocks repository.StockRepository,
	movements repository.StockMovementRepository,
	products repository.ProductRepository,
	business *entity.Business,
	product *entity.Product,
	in MovementInput,
	now time.Time,
	parentID *string,
) (string, error) {
	// Entrada de cantidad cero: no altera promedio ni cantidad.
	if in.Quantity.IsZero() {
		return "", nil
	}
	stock, err := stocks.GetForUpdate(in.AreaID, in.ProductID, in.VariationID)
	if err != nil {
		return "", err
	}
	costBefore := stock.AverageCost

	unitCost := product.AverageCost
	if in.UnitCost != nil {
		unitCost = *in.UnitCost
	}

	// Con costo fijado manualmente el promedio queda anclado; solo se mueve la cantidad.
	if !product.IsCostDefined {
		blended := domaininv.BlendAverageCost(stock.Quantity, stock.AverageCost, in.Quantity, unitCost)
		newAvg := money.RoundDecimal(blended, business.Precision)
		stock.AverageCost = newAvg
		// El promedio del producto solo lo mueve una ENTRY real; la pata de
		// entrada de un traslado mezcla la fila destino sin tocarlo.
		if parentID == nil {
			if err := products.UpdateAverageCost(product.ID, newAvg); err != nil {
				return "", err
			}
			product.AverageCost = newAvg
		}
	}

	stock.Quantity = stock.Quantity.Add(in.Quantity)
	stock.UpdatedAt = now
	if err := stocks.Upsert(stock); err != nil {
		return "", err
	}

	if product.StockLimit {
		product.TotalQuantity = product.TotalQuantity.Add(in.Quantity)
		if err := products.UpdateTotalQuantity(product.ID, product.TotalQuantity); err != nil {
			return "", err
		}
	}

	mov := &entity.StockMovement{
		ID:                  uuid.New().String(),
		ProductID:           in.ProductID,
		AreaID:              in.AreaID,
		VariationID:         in.VariationID,
		Operation:           entity.OperationEntry,
		Quantity:            in.Quantity,
		CostBeforeOperation: costBefore,
		Price:               entity.Price{Amount: unitCost, CodeCurrency: business.CostCurrency},
		MovedByID:           in.MovedByID,
		EconomicCycleID:     in.EconomicCycleID,
		ParentID:            parentID,
		CreatedAt:           now,
	}
	if parentID != nil {
		mov.Operation = entity.OperationTransfer
	}
	return mov.ID, movements.Create(mov)
}

// applyExit bloquea la fila del libro, verifica el stock disponible cuando el
// producto tiene StockLimit y resta la cantidad. El costo promedio no cambia
// en salidas: se consume al promedio vigente.
func applyExit(
	stocks repository.StockRepository,
	movements repository.StockMovementRepository,
	products repository.ProductRepository,
	business *entity.Business,
	product *entity.Product,
	operation, areaID string,
	in MovementInput,
	now time.Time,
	parentID *string,
) (string, error) {
	stock, err := stocks.GetForUpdate(areaID, in.ProductID, in.VariationID)
	if err != nil {
		return "", err
	}
	if product.StockLimit && stock.Quantity.LessThan(in.Quantity) {
		return "", domain.ErrInsufficientStock
	}

	stock.Quantity = stock.Quantity.Sub(in.Quantity)
	stock.UpdatedAt = now
	if err := stocks.Upsert(stock); err != nil {
		return "", err
	}

	if product.StockLimit {
		product.TotalQuantity = product.TotalQuantity.Sub(in.Quantity)
		if err := products.UpdateTotalQuantity(product.ID, product.TotalQuantity); err != nil {
			return "", err
		}
	}

	mov := &entity.StockMovement{
		ID:                  uuid.New().String(),
		ProductID:           in.ProductID,
		AreaID:              areaID,
		VariationID:         in.VariationID,
		Operation:           operation,
		Quantity:            in.Quantity.Neg(),
		CostBeforeOperation: stock.AverageCost,
		Price:               entity.Price{Amount: product.AverageCost, CodeCurrency: business.CostCurrency},
		MovedByID:           in.MovedByID,
		EconomicCycleID:     in.EconomicCycleID,
		ParentID:            parentID,
		CreatedAt:           now,
	}
	return mov.ID, movements.Create(mov)
}

// rateTable arma el snapshot de tasas a partir de las monedas habilitadas
// del negocio. La principal (IsMain) entra con tasa 1.
func rateTable(currencies []*entity.AvailableCurrency) (money.RateTable, error) {
	var main string
	rates := make(map[string]decimal.Decimal, len(currencies))
	for _, c := range currencies {
		if c.IsMain {
			main = c.Code
			rates[c.Code] = decimal.NewFromInt(1)
			continue
		}
		rates[c.Code] = c.ExchangeRate
	}
	return money.NewRateTable(main, rates)
}

// movementDetails arma la descripción legible del movimiento para auditoría.
func movementDetails(op string, product *entity.Product, qty decimal.Decimal, areaID string) string {
	return fmt.Sprintf("%s de %s %s de %s en el área %s", op, qty, product.Measure, product.Name, areaID)
}
