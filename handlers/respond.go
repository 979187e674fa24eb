package handlers

import (
	"errors"

	"task-quest-system/services"

	"github.com/gofiber/fiber/v2"
)

// statusForError maps the service error taxonomy to HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrInvalidPeriod):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrUserNotFound), errors.Is(err, services.ErrTaskNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrAlreadyCompleted), errors.Is(err, services.ErrTaskInactive):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func fail(c *fiber.Ctx, err error, msg string) error {
	return c.Status(statusForError(err)).JSON(fiber.Map{
		"error": msg,
		"cause": err.Error(),
	})
}
