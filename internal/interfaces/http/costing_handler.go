package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	appcosting "github.com/jhoicas/Costeo-api/internal/application/costing"
	"github.com/jhoicas/Costeo-api/internal/application/dto"
)

// CostingHandler maneja las peticiones de composición (ficha técnica y combos)
// y la consulta de auditoría.
type CostingHandler struct {
	supplies *appcosting.SetSuppliesUseCase
	combos   *appcosting.SetComboUseCase
	records  *appcosting.RecordQuery
	validate *validator.Validate
}

// NewCostingHandler construye el handler.
func NewCostingHandler(
	supplies *appcosting.SetSuppliesUseCase,
	combos *appcosting.SetComboUseCase,
	records *appcosting.RecordQuery,
	validate *validator.Validate,
) *CostingHandler {
	return &CostingHandler{supplies: supplies, combos: combos, records: records, validate: validate}
}

// SetSupplies reemplaza la ficha técnica de un producto.
// POST /api/products/:id/supplies
func (h *CostingHandler) SetSupplies(c *fiber.Ctx) error {
	var in dto.SetSuppliesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	edges := make([]appcosting.SupplyEdgeInput, 0, len(in.Supplies))
	for _, s := range in.Supplies {
		edges = append(edges, appcosting.SupplyEdgeInput{SupplyID: s.SupplyID, Quantity: s.Quantity})
	}
	if err := h.supplies.SetSupplies(c.Context(), in.BusinessID, userID(c), c.Params("id"), edges); err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "ficha técnica actualizada"})
}

// SetCombo reemplaza la composición de un combo.
// POST /api/products/:id/combo
func (h *CostingHandler) SetCombo(c *fiber.Ctx) error {
	var in dto.SetComboRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	edges := make([]appcosting.ComboEdgeInput, 0, len(in.Components))
	for _, comp := range in.Components {
		edges = append(edges, appcosting.ComboEdgeInput{
			ComposedID: comp.ComposedID, Quantity: comp.Quantity, VariationID: comp.VariationID,
		})
	}
	if err := h.combos.SetComposition(c.Context(), in.BusinessID, userID(c), c.Params("id"), edges); err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "composición del combo actualizada"})
}

// GetRecords lista la auditoría de un producto.
// GET /api/products/:id/records?limit=N
func (h *CostingHandler) GetRecords(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)
	list, err := h.records.ListByProduct(c.Context(), c.Params("id"), limit)
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]dto.ProductRecordDTO, 0, len(list))
	for _, rec := range list {
		out = append(out, dto.ProductRecordDTO{
			ID: rec.ID, Action: rec.Action, ProductID: rec.ProductID, MadeByID: rec.MadeByID,
			OldValue: rec.OldValue, NewValue: rec.NewValue, Details: rec.Details, CreatedAt: rec.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "records": out})
}

// userID identifica al operador de la petición. La autenticación vive en el
// gateway; aquí solo se propaga la identidad para auditoría.
func userID(c *fiber.Ctx) string {
	if id := c.Get("X-User-Id"); id != "" {
		return id
	}
	return "anonymous"
}
