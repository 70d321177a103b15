package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	tokens *services.TokenService
}

func NewAuthHandler(tokens *services.TokenService) *AuthHandler {
	return &AuthHandler{tokens: tokens}
}

// Token issues an access token for ?email= when that user exists.
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	token, err := h.tokens.Issue(c.UserContext(), c.Query("email"))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusForbidden).JSON(dto.TokenResponse{AccessToken: ""})
		}
		return internalError(c, "issue token", err)
	}
	return c.JSON(dto.TokenResponse{AccessToken: token})
}
