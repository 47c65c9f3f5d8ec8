package middlewares

import (
	"errors"

	"facturacion-backend/billing"
	"facturacion-backend/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler centralizes error responses and keeps messages sanitized.
// Taxonomy: not-found 404, lifecycle policy violations 409, input validation
// 422, empty-result invoicing 400, anything unexpected 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	// 1) Fiber errors (use their status code + message)
	if fe, ok := err.(*fiber.Error); ok {
		return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
	}

	// 2) Validation errors (422 + per-field info)
	if ve, ok := err.(validator.ValidationErrors); ok {
		out := make(map[string]string, len(ve))
		for _, fe := range ve {
			out[fe.Field()] = fe.Tag()
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "validation failed",
			"errors":  out,
		})
	}

	// 3) Billing engine errors
	var nf *billing.NotFoundError
	if errors.As(err, &nf) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": nf.Error()})
	}
	var it *billing.InvalidTransitionError
	if errors.As(err, &it) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": it.Error()})
	}
	if errors.Is(err, billing.ErrEmptyBatch) ||
		errors.Is(err, billing.ErrAmbiguousLineSelection) ||
		errors.Is(err, billing.ErrInvalidQuantity) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": err.Error()})
	}
	if errors.Is(err, billing.ErrNothingToInvoice) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	var of *billing.OperationFailedError
	if errors.As(err, &of) {
		logger.L().Error("operation failed", zap.String("op", of.Op), zap.Error(of.Cause))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "internal server error",
		})
	}

	// 4) Unknown errors (500)
	logger.L().Error("internal error", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "internal server error",
	})
}
