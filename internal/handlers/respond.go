package handlers

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: msg,
	})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Error: true, Message: msg,
	})
}

func conflict(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
		Error: true, Message: msg,
	})
}

// internalError logs err with the request id and hides it from the client.
func internalError(c *fiber.Ctx, op string, err error) error {
	rid, _ := c.Locals("requestid").(string)
	slog.Error(op+" failed",
		"request_id", rid,
		"method", c.Method(),
		"path", c.Path(),
		"error", err,
	)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}

// idParam returns the :id route parameter when it is a well-formed UUID.
func idParam(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}
