package handlers

import (
	"errors"
	"strings"

	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/repository"
	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	products repository.ProductRepository
	users    repository.UserRepository
}

func NewProductHandler(products repository.ProductRepository, users repository.UserRepository) *ProductHandler {
	return &ProductHandler{products: products, users: users}
}

// List returns a seller's products for ?email=, or every product.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	return h.list(c, "list products", repository.ProductFilter{
		SellerEmail: c.Query("email"),
	})
}

// ByCategory lists the products of a category that are still for sale.
func (h *ProductHandler) ByCategory(c *fiber.Ctx) error {
	return h.list(c, "list category products", repository.ProductFilter{
		CategoryID:    c.Params("id"),
		AvailableOnly: true,
	})
}

func (h *ProductHandler) Advertised(c *fiber.Ctx) error {
	return h.list(c, "list advertised products", repository.ProductFilter{
		AdvertisedOnly: true,
		AvailableOnly:  true,
	})
}

func (h *ProductHandler) list(c *fiber.Ctx, op string, filter repository.ProductFilter) error {
	products, err := h.products.List(c.UserContext(), filter)
	if err != nil {
		return internalError(c, op, err)
	}
	return c.JSON(products)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "Invalid product id")
	}

	product, err := h.products.FindByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "Product not found")
		}
		return internalError(c, "get product", err)
	}
	return c.JSON(product)
}

// Create lists a new product. The product inherits the seller's current
// verification and always starts available and not advertised.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(product.Name) == "" || strings.TrimSpace(product.SellerEmail) == "" {
		return badRequest(c, "name and sellerEmail are required")
	}

	seller, err := h.users.FindByEmail(c.UserContext(), product.SellerEmail)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return internalError(c, "look up seller", err)
	}

	product.ID = ""
	product.Verify = seller != nil && seller.Verify
	product.Advertise = false
	product.SalesStatus = models.SalesAvailable

	res, err := h.products.Insert(c.UserContext(), &product)
	if err != nil {
		return internalError(c, "create product", err)
	}
	return c.JSON(res)
}

func (h *ProductHandler) Advertise(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "Invalid product id")
	}

	res, err := h.products.SetAdvertise(c.UserContext(), id, true)
	if err != nil {
		return internalError(c, "advertise product", err)
	}
	return c.JSON(res)
}

// Delete removes a product. Only its seller or an admin may do so.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "Invalid product id")
	}

	ctx := c.UserContext()
	product, err := h.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "Product not found")
		}
		return internalError(c, "get product", err)
	}

	email := middleware.CurrentEmail(c)
	if product.SellerEmail != email {
		caller, err := h.users.FindByEmail(ctx, email)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return internalError(c, "look up caller", err)
		}
		if !caller.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "forbidden access",
			})
		}
	}

	res, err := h.products.Delete(ctx, id)
	if err != nil {
		return internalError(c, "delete product", err)
	}
	return c.JSON(res)
}
