package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Costeo-api/internal/application/dto"
	apppricing "github.com/jhoicas/Costeo-api/internal/application/pricing"
)

// PricingHandler maneja las transformaciones masivas de precio.
type PricingHandler struct {
	uc       *apppricing.PriceTransformationUseCase
	validate *validator.Validate
}

// NewPricingHandler construye el handler.
func NewPricingHandler(uc *apppricing.PriceTransformationUseCase, validate *validator.Validate) *PricingHandler {
	return &PricingHandler{uc: uc, validate: validate}
}

// AdjustPercent aplica un ajuste porcentual a todos los precios de (moneda, sistema).
// POST /api/prices/adjust-percent
func (h *PricingHandler) AdjustPercent(c *fiber.Ctx) error {
	var in dto.AdjustPercentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	err := h.uc.AdjustByPercent(c.Context(), apppricing.AdjustByPercentInput{
		BusinessID:    in.BusinessID,
		MadeByID:      userID(c),
		CodeCurrency:  in.CodeCurrency,
		PriceSystemID: in.PriceSystemID,
		Percent:       in.Percent,
		Mode:          in.Mode,
		AdjustType:    in.AdjustType,
		Endings:       in.Endings,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "precios ajustados"})
}

// Rebase materializa precios en un (sistema, moneda) destino desde una base con tasa.
// POST /api/prices/rebase
func (h *PricingHandler) Rebase(c *fiber.Ctx) error {
	var in dto.RebaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	err := h.uc.Rebase(c.Context(), apppricing.RebaseInput{
		BusinessID:          in.BusinessID,
		MadeByID:            userID(c),
		BaseCurrency:        in.BaseCurrency,
		BasePriceSystemID:   in.BasePriceSystemID,
		TargetCurrency:      in.TargetCurrency,
		TargetPriceSystemID: in.TargetPriceSystemID,
		ExchangeRate:        in.ExchangeRate,
		AdjustType:          in.AdjustType,
		Endings:             in.Endings,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "precios rebasados"})
}
