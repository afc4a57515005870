package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/contentplanner/internal/models"
)

func GetUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals("user_id").(string)
	return userID
}

// sendError maps service errors onto HTTP responses.
func sendError(c *fiber.Ctx, err error) error {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": verr.Message,
			"field": verr.Field,
		})
	case errors.Is(err, models.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, models.ErrAlreadyResolved):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "this post was already reviewed",
		})
	case errors.Is(err, models.ErrInvalidState):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	slog.Error(err.Error(), "path", c.Path())
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":     "something went wrong, please try again",
		"retryable": true,
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": msg,
	})
}
