package handlers

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/repository"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	store *repository.Store
}

func NewHealthHandler(store *repository.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.SendString("LapSell Corner server is running")
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	storeStatus := "ok"
	if err := h.store.Ping(c.UserContext()); err != nil {
		storeStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Store:     storeStatus,
	})
}
