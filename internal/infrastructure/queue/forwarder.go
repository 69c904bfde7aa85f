package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jhoicas/Costeo-api/internal/application/costing"
)

var _ costing.Queue = (*Forwarder)(nil)

// Forwarder publica las tareas vía HTTP hacia un worker externo (WORKER_URL).
// Se usa cuando el API y el worker corren como procesos separados; si el
// worker corre en proceso se usa Worker directamente.
type Forwarder struct {
	client *resty.Client
	url    string
}

// NewForwarder construye el publicador HTTP de tareas.
func NewForwarder(workerURL string) *Forwarder {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)
	return &Forwarder{client: client, url: workerURL}
}

// Enqueue publica la tarea como JSON al endpoint del worker.
func (f *Forwarder) Enqueue(ctx context.Context, task costing.Task) error {
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(task).
		Post(f.url)
	if err != nil {
		return fmt.Errorf("publicar tarea: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("publicar tarea: worker respondió %d", resp.StatusCode())
	}
	return nil
}
