package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/slatecms/backend/internal/apperrors"
	"github.com/slatecms/backend/internal/http/dto"
	"go.uber.org/zap"
)

// respondError translates service errors into HTTP status codes. Anything
// not in the error taxonomy is logged and masked as a 500.
func respondError(c *fiber.Ctx, log *zap.Logger, err error) error {
	switch {
	case apperrors.IsNotFound(err):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
	case apperrors.IsConflict(err):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: err.Error()})
	case apperrors.IsValidation(err):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	default:
		log.Error("request failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
}
