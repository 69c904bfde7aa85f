package queue

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/Costeo-api/internal/application/costing"
	"github.com/jhoicas/Costeo-api/pkg/logger"
)

// Handler procesa una tarea del worker. La implementación debe ser
// idempotente: la entrega es at-least-once y el worker reintenta.
type Handler func(ctx context.Context, task costing.Task) error

var _ costing.Queue = (*Worker)(nil)

// Worker es la cola en proceso: un canal con buffer y un consumidor que
// procesa tareas de recomputación en serie. Cada tarea se intenta hasta
// maxAttempts veces; el fallo definitivo se loguea y se descarta (la
// reconciliación periódica y la idempotencia del recompute absorben la pérdida).
//
// Enqueue nunca se bloquea: el handler corre dentro del consumidor y encola
// a los dependientes del producto, así que un envío bloqueante sobre la
// propia cola llena sería un deadlock. Lo que no cabe en el canal pasa a
// una lista de desborde que el consumidor drena en el mismo ciclo.
type Worker struct {
	tasks       chan costing.Task
	handler     Handler
	log         *logger.Logger
	maxAttempts int

	// mu serializa los envíos al canal, la lista de desborde y el cierre.
	mu       sync.Mutex
	overflow []costing.Task
	closed   bool

	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewWorker construye el worker. size es el buffer del canal; attempts el
// máximo de intentos por tarea (mínimo 1).
func NewWorker(handler Handler, log *logger.Logger, size, attempts int) *Worker {
	if size <= 0 {
		size = 256
	}
	if attempts <= 0 {
		attempts = 1
	}
	return &Worker{
		tasks:       make(chan costing.Task, size),
		handler:     handler,
		log:         log,
		maxAttempts: attempts,
	}
}

// Enqueue encola una tarea sin bloquearse nunca: si el canal está lleno, o ya
// se cerró durante el apagado, la tarea va al desborde. Es seguro llamarlo
// desde el propio handler.
func (w *Worker) Enqueue(ctx context.Context, task costing.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.closed {
		select {
		case w.tasks <- task:
			return nil
		default:
		}
	}
	w.overflow = append(w.overflow, task)
	return nil
}

// Start arranca el consumidor en una goroutine.
func (w *Worker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for task := range w.tasks {
			w.drain(ctx, task)
		}
		// Lo que quedó en el desborde tras cerrar el canal.
		for task, ok := w.popOverflow(); ok; task, ok = w.popOverflow() {
			w.drain(ctx, task)
		}
	}()
}

// drain procesa un ciclo completo: la tarea recibida y todo lo que el handler
// encoló en cadena, hasta vaciar desborde y canal. Dentro de un ciclo cada
// producto se procesa una sola vez; un grafo de insumos corrupto con ciclos
// reencolaría el mismo recompute sin fin y el set de visitados lo corta.
func (w *Worker) drain(ctx context.Context, first costing.Task) {
	seen := make(map[string]bool)
	for task, ok := first, true; ok; task, ok = w.next() {
		key := task.Kind + "|" + task.BusinessID + "|" + task.ProductID
		if seen[key] {
			w.log.Warn().
				Str("task", task.Kind).
				Str("productId", task.ProductID).
				Msg("tarea repetida dentro del ciclo, se omite")
			continue
		}
		seen[key] = true
		w.process(ctx, task)
	}
}

// next retira la siguiente tarea pendiente del ciclo: primero el desborde,
// después el canal sin bloquearse. Devuelve false cuando el ciclo terminó.
func (w *Worker) next() (costing.Task, bool) {
	if task, ok := w.popOverflow(); ok {
		return task, true
	}
	select {
	case task, ok := <-w.tasks:
		if !ok {
			return costing.Task{}, false
		}
		return task, true
	default:
		return costing.Task{}, false
	}
}

func (w *Worker) popOverflow() (costing.Task, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.overflow) == 0 {
		return costing.Task{}, false
	}
	task := w.overflow[0]
	w.overflow = w.overflow[1:]
	return task, true
}

func (w *Worker) process(ctx context.Context, task costing.Task) {
	var err error
	for attempt := 1; attempt <= w.maxAttempts; attempt++ {
		err = w.handler(ctx, task)
		if err == nil {
			return
		}
		if errors.Is(err, context.Canceled) {
			return
		}
		w.log.Warn().
			Str("task", task.Kind).
			Str("productId", task.ProductID).
			Int("attempt", attempt).
			Err(err).
			Msg("fallo procesando tarea, reintentando")
	}
	w.log.Error().
		Str("task", task.Kind).
		Str("productId", task.ProductID).
		Str("businessId", task.BusinessID).
		Err(err).
		Msg("tarea descartada tras agotar reintentos")
}

// Shutdown cierra la cola y espera a que el consumidor drene las tareas pendientes.
func (w *Worker) Shutdown() {
	w.stopOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		close(w.tasks)
		w.mu.Unlock()
	})
	w.wg.Wait()
}
