package handlers

import (
	"github.com/gofiber/fiber/v2"

	"erp-service/internal/apperr"
)

// statusOf maps the service error taxonomy to HTTP status codes.
func statusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return fiber.StatusNotFound
	case apperr.KindConflict:
		return fiber.StatusConflict
	case apperr.KindInvalidState:
		return fiber.StatusConflict
	case apperr.KindForbidden:
		return fiber.StatusForbidden
	case apperr.KindStoreFailure:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusInternalServerError
	}
}

func errorJSON(c *fiber.Ctx, err error) error {
	return c.Status(statusOf(err)).JSON(fiber.Map{
		"error":   true,
		"code":    apperr.KindOf(err).String(),
		"message": err.Error(),
	})
}

func badRequest(c *fiber.Ctx, message string, err error) error {
	resp := fiber.Map{
		"error":   true,
		"message": message,
	}
	if err != nil {
		resp["details"] = err.Error()
	}
	return c.Status(fiber.StatusBadRequest).JSON(resp)
}
