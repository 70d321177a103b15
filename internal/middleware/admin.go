package middleware

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// RequireAdmin must run after Authenticate. It looks the caller up by email
// and lets the request through only when the stored role is admin.
func RequireAdmin(users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := CurrentEmail(c)
		if email == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: services.ErrMissingToken.Error(),
			})
		}

		user, err := users.FindByEmail(c.UserContext(), email)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			slog.Error("admin lookup failed", "email", email, "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Internal server error",
			})
		}
		if !user.IsAdmin() {
			return forbidden(c)
		}

		return c.Next()
	}
}
