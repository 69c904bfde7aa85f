package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Costeo-api/internal/application/dto"
	"github.com/jhoicas/Costeo-api/internal/domain"
)

// writeDomainError traduce errores de dominio a respuestas HTTP.
func writeDomainError(c *fiber.Ctx, err error) error {
	var cycleErr *domain.CircularDependencyError
	if errors.As(err, &cycleErr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code:    "CIRCULAR_DEPENDENCY",
			Message: cycleErr.Error(),
		})
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrProductDeleted):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidProductType),
		errors.Is(err, domain.ErrInvalidSupplyType),
		errors.Is(err, domain.ErrSelfReference),
		errors.Is(err, domain.ErrUnknownCurrency),
		errors.Is(err, domain.ErrMissingMainCurrency),
		errors.Is(err, domain.ErrMissingPriceSystem):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "UNPROCESSABLE", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrConcurrentModification):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONCURRENT_MODIFICATION", Message: "conflicto de concurrencia, reintente"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
