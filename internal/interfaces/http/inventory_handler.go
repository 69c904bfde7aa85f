package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Costeo-api/internal/application/dto"
	appinv "github.com/jhoicas/Costeo-api/internal/application/inventory"
)

// InventoryHandler maneja las peticiones de movimientos de stock.
type InventoryHandler struct {
	movements *appinv.ApplyMovementUseCase
	bulk      *appinv.BulkEntryUseCase
	validate  *validator.Validate
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	movements *appinv.ApplyMovementUseCase,
	bulk *appinv.BulkEntryUseCase,
	validate *validator.Validate,
) *InventoryHandler {
	return &InventoryHandler{movements: movements, bulk: bulk, validate: validate}
}

// ApplyMovement registra un movimiento de stock (ENTRY, EXIT, TRANSFER, SELL, LOSS).
// POST /api/stock/movements
func (h *InventoryHandler) ApplyMovement(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	err := h.movements.ApplyMovement(c.Context(), appinv.MovementInput{
		BusinessID:      in.BusinessID,
		MovedByID:       userID(c),
		ProductID:       in.ProductID,
		AreaID:          in.AreaID,
		ToAreaID:        in.ToAreaID,
		VariationID:     in.VariationID,
		Operation:       in.Operation,
		Quantity:        in.Quantity,
		UnitCost:        in.UnitCost,
		CodeCurrency:    in.CodeCurrency,
		EconomicCycleID: in.EconomicCycleID,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "movimiento registrado"})
}

// BulkEntry registra un lote de entradas en una sola transacción.
// POST /api/stock/bulk-entry
func (h *InventoryHandler) BulkEntry(c *fiber.Ctx) error {
	var in dto.BulkEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	lines := make([]appinv.BulkEntryLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, appinv.BulkEntryLine{
			ProductID: l.ProductID, Quantity: l.Quantity, UnitCost: l.UnitCost, VariationID: l.VariationID,
		})
	}
	if err := h.bulk.BulkEntry(c.Context(), in.BusinessID, userID(c), in.AreaID, in.EconomicCycleID, lines); err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "entrada masiva registrada", "lines": len(lines)})
}
