package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	payments *services.PaymentService
}

func NewPaymentHandler(payments *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

func (h *PaymentHandler) CreateIntent(c *fiber.Ctx) error {
	var req dto.PaymentIntentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	intent, err := h.payments.CreateIntent(c.UserContext(), req.Price)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPrice):
			return badRequest(c, err.Error())
		case errors.Is(err, services.ErrPaymentProvider):
			rid, _ := c.Locals("requestid").(string)
			slog.Error("payment intent failed", "request_id", rid, "error", err)
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
				Error: true, Message: "Payment provider unavailable",
			})
		}
		return internalError(c, "create payment intent", err)
	}
	return c.JSON(intent)
}

// Record stores a completed payment and settles its booking and product.
func (h *PaymentHandler) Record(c *fiber.Ctx) error {
	var payment models.Payment
	if err := c.BodyParser(&payment); err != nil {
		return badRequest(c, "Invalid request body")
	}
	payment.ID = ""

	res, err := h.payments.RecordPayment(c.UserContext(), &payment)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPayment) {
			return badRequest(c, err.Error())
		}
		return internalError(c, "record payment", err)
	}
	return c.JSON(res)
}

func (h *PaymentHandler) List(c *fiber.Ctx) error {
	payments, err := h.payments.ListPayments(c.UserContext())
	if err != nil {
		return internalError(c, "list payments", err)
	}
	return c.JSON(payments)
}
