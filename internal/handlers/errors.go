package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/pdf2ai/internal/models"
	"alfredoptarigan/pdf2ai/internal/services"
)

// StatusFor maps a service error onto the HTTP status returned to clients.
func StatusFor(err error) int {
	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.Is(err, services.ErrInputMissing), errors.Is(err, services.ErrUnsupportedFile):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler renders every unhandled error as an ErrorResponse.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := StatusFor(err)

	return c.Status(code).JSON(models.ErrorResponse{
		Error: err.Error(),
		Code:  code,
	})
}

func respondError(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(models.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
