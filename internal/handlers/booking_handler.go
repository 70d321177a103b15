package handlers

import (
	"errors"
	"strings"

	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/repository"
	"github.com/gofiber/fiber/v2"
)

type BookingHandler struct {
	bookings repository.BookingRepository
}

func NewBookingHandler(bookings repository.BookingRepository) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// List returns the bookings of ?email=, or every booking.
func (h *BookingHandler) List(c *fiber.Ctx) error {
	bookings, err := h.bookings.List(c.UserContext(), repository.BookingFilter{
		Email: c.Query("email"),
	})
	if err != nil {
		return internalError(c, "list bookings", err)
	}
	return c.JSON(bookings)
}

func (h *BookingHandler) Get(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "Invalid booking id")
	}

	booking, err := h.bookings.FindByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "Booking not found")
		}
		return internalError(c, "get booking", err)
	}
	return c.JSON(booking)
}

func (h *BookingHandler) Create(c *fiber.Ctx) error {
	var booking models.BookingProduct
	if err := c.BodyParser(&booking); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(booking.Email) == "" || strings.TrimSpace(booking.ProductID) == "" {
		return badRequest(c, "email and productId are required")
	}

	// Payment state is set by the payment flow only.
	booking.ID = ""
	booking.Paid = false
	booking.TransactionID = ""

	res, err := h.bookings.Insert(c.UserContext(), &booking)
	if err != nil {
		return internalError(c, "create booking", err)
	}
	return c.JSON(res)
}
