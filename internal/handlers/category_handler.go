package handlers

import (
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/repository"
	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	categories repository.CategoryRepository
}

func NewCategoryHandler(categories repository.CategoryRepository) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	categories, err := h.categories.List(c.UserContext())
	if err != nil {
		return internalError(c, "list categories", err)
	}
	return c.JSON(categories)
}
