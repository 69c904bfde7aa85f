package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/money"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

// Modos del ajuste porcentual.
const (
	ModeIncrement = "increment"
	ModeDecrement = "decrement"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de precios y auditoría atados a esa tx.
type TxRunner interface {
	RunPricing(ctx context.Context, fn func(
		prices repository.PriceRepository,
		records repository.RecordRepository,
	) error) error
}

// PriceTransformationUseCase aplica transformaciones masivas de precio:
// ajuste porcentual y rebase referencial entre sistemas/monedas. Todo el lote
// corre en una transacción; cada precio cambiado deja auditoría y los que no
// cambian no se tocan ni auditan.
type PriceTransformationUseCase struct {
	tx           TxRunner
	currencyRepo repository.CurrencyRepository
}

// NewPriceTransformationUseCase construye el caso de uso.
func NewPriceTransformationUseCase(tx TxRunner, currencyRepo repository.CurrencyRepository) *PriceTransformationUseCase {
	return &PriceTransformationUseCase{tx: tx, currencyRepo: currencyRepo}
}

// AdjustByPercentInput parámetros del ajuste porcentual.
type AdjustByPercentInput struct {
	BusinessID    string
	MadeByID      string
	CodeCurrency  string
	PriceSystemID string
	Percent       decimal.Decimal
	Mode          string // increment | decrement
	AdjustType    string // decimal | integer
	Endings       []string
}

// AdjustByPercent aplica newPrice = oldPrice ± oldPrice*percent/100 a cada
// precio de (moneda, sistema), con la regla de redondeo solicitada.
func (uc *PriceTransformationUseCase) AdjustByPercent(ctx context.Context, in AdjustByPercentInput) error {
	if in.CodeCurrency == "" || in.PriceSystemID == "" || in.Percent.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if in.Mode != ModeIncrement && in.Mode != ModeDecrement {
		return domain.ErrInvalidInput
	}
	if in.AdjustType != money.AdjustDecimal && in.AdjustType != money.AdjustInteger {
		return domain.ErrInvalidInput
	}

	business, err := uc.currencyRepo.GetBusiness(in.BusinessID)
	if err != nil {
		return err
	}
	if business == nil {
		return domain.ErrNotFound
	}

	return uc.tx.RunPricing(ctx, func(
		prices repository.PriceRepository,
		records repository.RecordRepository,
	) error {
		exists, err := prices.SystemExists(in.PriceSystemID)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrMissingPriceSystem
		}
		list, err := prices.ListBySystemAndCurrency(in.PriceSystemID, in.CodeCurrency)
		if err != nil {
			return err
		}
		now := time.Now()
		for _, p := range list {
			delta := p.Amount.Mul(in.Percent).Div(decimal.NewFromInt(100))
			newAmount := p.Amount.Add(delta)
			if in.Mode == ModeDecrement {
				newAmount = p.Amount.Sub(delta)
			}
			rounded, err := roundPrice(newAmount, in.AdjustType, in.Endings, business.Precision)
			if err != nil {
				return err
			}
			// Sin cambio efectivo: ni escritura ni auditoría.
			if rounded.Equal(p.Amount) {
				continue
			}
			old := p.Amount
			p.Amount = rounded
			p.UpdatedAt = now
			if err := prices.Update(p); err != nil {
				return err
			}
			if err := records.Create(&entity.ProductRecord{
				ID:        uuid.New().String(),
				Action:    entity.RecordPriceAdjusted,
				ProductID: p.ProductID,
				MadeByID:  in.MadeByID,
				OldValue:  old.String(),
				NewValue:  rounded.String(),
				Details: fmt.Sprintf("Ajuste %s del %s%% en %s: %s -> %s",
					in.Mode, in.Percent, in.CodeCurrency, old, rounded),
				CreatedAt: now,
			}); err != nil {
				return err
			}
		}
		return nil
	})
}

// RebaseInput parámetros del rebase referencial entre sistemas/monedas.
type RebaseInput struct {
	BusinessID          string
	MadeByID            string
	BaseCurrency        string
	BasePriceSystemID   string
	TargetCurrency      string
	TargetPriceSystemID string
	ExchangeRate        decimal.Decimal
	AdjustType          string
	Endings             []string
}

// Rebase calcula newPrice = basePrice * exchangeRate por cada producto con
// precio en (sistema base, moneda base) y lo materializa en (sistema destino,
// moneda destino), creándolo si no existe. Los productos sin precio base se
// omiten en silencio; solo los errores estructurales abortan la llamada.
func (uc *PriceTransformationUseCase) Rebase(ctx context.Context, in RebaseInput) error {
	if in.BaseCurrency == "" || in.TargetCurrency == "" ||
		in.BasePriceSystemID == "" || in.TargetPriceSystemID == "" ||
		in.ExchangeRate.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if in.AdjustType != money.AdjustDecimal && in.AdjustType != money.AdjustInteger {
		return domain.ErrInvalidInput
	}

	business, err := uc.currencyRepo.GetBusiness(in.BusinessID)
	if err != nil {
		return err
	}
	if business == nil {
		return domain.ErrNotFound
	}

	return uc.tx.RunPricing(ctx, func(
		prices repository.PriceRepository,
		records repository.RecordRepository,
	) error {
		for _, systemID := range []string{in.BasePriceSystemID, in.TargetPriceSystemID} {
			exists, err := prices.SystemExists(systemID)
			if err != nil {
				return err
			}
			if !exists {
				return domain.ErrMissingPriceSystem
			}
		}

		basePrices, err := prices.ListBySystemAndCurrency(in.BasePriceSystemID, in.BaseCurrency)
		if err != nil {
			return err
		}
		now := time.Now()
		for _, bp := range basePrices {
			newAmount, err := roundPrice(bp.Amount.Mul(in.ExchangeRate), in.AdjustType, in.Endings, business.Precision)
			if err != nil {
				return err
			}
			existing, err := prices.Get(bp.ProductID, in.TargetPriceSystemID, in.TargetCurrency)
			if err != nil {
				return err
			}
			oldValue := "-"
			if existing != nil {
				if existing.Amount.Equal(newAmount) {
					continue
				}
				oldValue = existing.Amount.String()
			}
			if err := prices.Upsert(&entity.ProductPrice{
				ID:            uuid.New().String(),
				ProductID:     bp.ProductID,
				PriceSystemID: in.TargetPriceSystemID,
				Amount:        newAmount,
				CodeCurrency:  in.TargetCurrency,
				UpdatedAt:     now,
			}); err != nil {
				return err
			}
			if err := records.Create(&entity.ProductRecord{
				ID:        uuid.New().String(),
				Action:    entity.RecordPriceAdjusted,
				ProductID: bp.ProductID,
				MadeByID:  in.MadeByID,
				OldValue:  oldValue,
				NewValue:  newAmount.String(),
				Details: fmt.Sprintf("Rebase referencial %s@%s -> %s@%s con tasa %s",
					in.BaseCurrency, in.BasePriceSystemID, in.TargetCurrency, in.TargetPriceSystemID, in.ExchangeRate),
				CreatedAt: now,
			}); err != nil {
				return err
			}
		}
		return nil
	})
}

// roundPrice aplica la regla de redondeo del módulo money según el tipo de ajuste.
func roundPrice(amount decimal.Decimal, adjustType string, endings []string, precision int32) (decimal.Decimal, error) {
	if adjustType == money.AdjustInteger {
		return money.RoundToNearestEnding(amount, endings)
	}
	return money.RoundDecimal(amount, precision), nil
}
