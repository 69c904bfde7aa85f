package inventory

import (
	"context"

	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad del libro de inventario:
// un TRANSFER confirma sus dos patas o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stocks repository.StockRepository,
		movements repository.StockMovementRepository,
		products repository.ProductRepository,
		records repository.RecordRepository,
	) error) error
}
