package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	appcosting "github.com/jhoicas/Costeo-api/internal/application/costing"
	"github.com/jhoicas/Costeo-api/internal/application/dto"
)

// WorkerHandler recibe tareas publicadas por el API (modo worker separado) y
// las encola en la cola en proceso del worker.
type WorkerHandler struct {
	queue    appcosting.Queue
	validate *validator.Validate
}

// NewWorkerHandler construye el receptor de tareas.
func NewWorkerHandler(queue appcosting.Queue) *WorkerHandler {
	return &WorkerHandler{queue: queue, validate: validator.New()}
}

// ReceiveTask acepta una tarea y la encola. La respuesta 202 no implica
// procesamiento: la entrega es at-least-once y el recompute es idempotente.
// POST /tasks
func (h *WorkerHandler) ReceiveTask(c *fiber.Ctx) error {
	var in dto.RecomputeTaskRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if in.Task != appcosting.TaskRecomputeCost {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNKNOWN_TASK", Message: "tarea desconocida: " + in.Task})
	}
	task := appcosting.Task{Kind: in.Task, ProductID: in.ProductID, BusinessID: in.BusinessID}
	if err := h.queue.Enqueue(c.Context(), task); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "QUEUE_FULL", Message: err.Error()})
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"message": "tarea encolada"})
}
