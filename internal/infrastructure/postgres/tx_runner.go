package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Costeo-api/internal/application/costing"
	"github.com/jhoicas/Costeo-api/internal/application/inventory"
	"github.com/jhoicas/Costeo-api/internal/application/pricing"
	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ costing.TxRunner = (*TxRunner)(nil)
var _ pricing.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Los errores
// por contención de bloqueos (deadlock, serialización) se traducen a
// ErrConcurrentModification para que el caller reintente.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) inTx(ctx context.Context, fn func(tx Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		if isLockConflict(err) {
			return fmt.Errorf("%w: %v", domain.ErrConcurrentModification, err)
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isLockConflict(err) {
			return fmt.Errorf("%w: %v", domain.ErrConcurrentModification, err)
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Run inicia una transacción con los repos del libro de inventario.
func (r *TxRunner) Run(ctx context.Context, fn func(
	stocks repository.StockRepository,
	movements repository.StockMovementRepository,
	products repository.ProductRepository,
	records repository.RecordRepository,
) error) error {
	return r.inTx(ctx, func(tx Querier) error {
		return fn(
			NewStockRepository(tx),
			NewStockMovementRepository(tx),
			NewProductRepository(tx),
			NewRecordRepository(tx),
		)
	})
}

// RunCosting inicia una transacción con los repos de composición y costeo.
func (r *TxRunner) RunCosting(ctx context.Context, fn func(
	products repository.ProductRepository,
	supplies repository.SupplyRepository,
	combos repository.ComboRepository,
	fixedCosts repository.FixedCostRepository,
	records repository.RecordRepository,
) error) error {
	return r.inTx(ctx, func(tx Querier) error {
		return fn(
			NewProductRepository(tx),
			NewSupplyRepository(tx),
			NewComboRepository(tx),
			NewFixedCostRepository(tx),
			NewRecordRepository(tx),
		)
	})
}

// RunPricing inicia una transacción con los repos de precios.
func (r *TxRunner) RunPricing(ctx context.Context, fn func(
	prices repository.PriceRepository,
	records repository.RecordRepository,
) error) error {
	return r.inTx(ctx, func(tx Querier) error {
		return fn(
			NewPriceRepository(tx),
			NewRecordRepository(tx),
		)
	})
}
