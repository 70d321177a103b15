package handlers

import (
	"errors"
	"strings"

	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	users   repository.UserRepository
	sellers *services.SellerService
}

func NewUserHandler(users repository.UserRepository, sellers *services.SellerService) *UserHandler {
	return &UserHandler{users: users, sellers: sellers}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext(), repository.UserFilter{
		AccountType: c.Query("accountType"),
	})
	if err != nil {
		return internalError(c, "list users", err)
	}
	return c.JSON(users)
}

func (h *UserHandler) AdminStatus(c *fiber.Ctx) error {
	user, err := h.lookup(c)
	if err != nil {
		return internalError(c, "admin status", err)
	}
	return c.JSON(dto.AdminStatusResponse{IsAdmin: user.IsAdmin()})
}

func (h *UserHandler) SellerStatus(c *fiber.Ctx) error {
	user, err := h.lookup(c)
	if err != nil {
		return internalError(c, "seller status", err)
	}
	return c.JSON(dto.SellerStatusResponse{IsSeller: user.IsSeller()})
}

// lookup finds the user named by :email. A missing user is not an error;
// the returned nil user answers false to every role question.
func (h *UserHandler) lookup(c *fiber.Ctx) (*models.User, error) {
	user, err := h.users.FindByEmail(c.UserContext(), c.Params("email"))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return user, err
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var user models.User
	if err := c.BodyParser(&user); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(user.Email) == "" {
		return badRequest(c, "email is required")
	}

	// Privileges are granted by admins only.
	user.ID = ""
	user.Role = ""
	user.Verify = false

	res, err := h.users.Insert(c.UserContext(), &user)
	if errors.Is(err, repository.ErrDuplicate) {
		return conflict(c, "user with this email already exists")
	}
	if err != nil {
		return internalError(c, "create user", err)
	}
	return c.JSON(res)
}

// Upsert registers or refreshes a profile keyed by email.
func (h *UserHandler) Upsert(c *fiber.Ctx) error {
	var user models.User
	if err := c.BodyParser(&user); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(user.Email) == "" {
		return badRequest(c, "email is required")
	}

	res, err := h.users.UpsertByEmail(c.UserContext(), &user)
	if err != nil {
		return internalError(c, "upsert user", err)
	}
	return c.JSON(res)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "Invalid user id")
	}

	res, err := h.users.Delete(c.UserContext(), id)
	if err != nil {
		return internalError(c, "delete user", err)
	}
	return c.JSON(res)
}

// VerifySeller flips the seller's verify flag and cascades it to the
// seller's products.
func (h *UserHandler) VerifySeller(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "Invalid user id")
	}

	var req dto.SellerVerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Email == "" {
		return badRequest(c, "email is required")
	}

	res, err := h.sellers.SetSellerVerification(c.UserContext(), id, req.Email, req.Verify)
	if err != nil {
		return internalError(c, "verify seller", err)
	}
	return c.JSON(res)
}

func (h *UserHandler) MakeAdmin(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "Invalid user id")
	}

	res, err := h.users.SetRole(c.UserContext(), id, models.RoleAdmin)
	if err != nil {
		return internalError(c, "make admin", err)
	}
	return c.JSON(res)
}
