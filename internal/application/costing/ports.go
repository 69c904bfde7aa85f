package costing

import (
	"context"

	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

// Tareas que el motor encola hacia el worker asíncrono.
const TaskRecomputeCost = "RECOMPUTE_COST"

// Task es el mensaje de encolado hacia el worker de cascada.
type Task struct {
	Kind       string `json:"task"`
	ProductID  string `json:"productId"`
	BusinessID string `json:"businessId"`
}

// Queue es el colaborador externo de propagación asíncrona: la transacción
// que dispara una cascada solo confirma su cambio directo más el mensaje.
// La entrega es at-least-once; la recomputación es idempotente.
type Queue interface {
	Enqueue(ctx context.Context, task Task) error
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad del motor de costeo.
type TxRunner interface {
	RunCosting(ctx context.Context, fn func(
		products repository.ProductRepository,
		supplies repository.SupplyRepository,
		combos repository.ComboRepository,
		fixedCosts repository.FixedCostRepository,
		records repository.RecordRepository,
	) error) error
}
