package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/uploads"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Health     *handlers.HealthHandler
	Users      *handlers.UserHandler
	Categories *handlers.CategoryHandler
	Products   *handlers.ProductHandler
	Reports    *handlers.ReportHandler
	Bookings   *handlers.BookingHandler
	Payments   *handlers.PaymentHandler
	Uploads    *handlers.UploadHandler
}

func NewHandlers(
	store *repository.Store,
	tokens *services.TokenService,
	processor services.PaymentProcessor,
	uploader uploads.Uploader,
) *Handlers {
	return &Handlers{
		Auth:       handlers.NewAuthHandler(tokens),
		Health:     handlers.NewHealthHandler(store),
		Users:      handlers.NewUserHandler(store.Users, services.NewSellerService(store)),
		Categories: handlers.NewCategoryHandler(store.Categories),
		Products:   handlers.NewProductHandler(store.Products, store.Users),
		Reports:    handlers.NewReportHandler(services.NewReportService(store.ReportedProducts)),
		Bookings:   handlers.NewBookingHandler(store.Bookings),
		Payments:   handlers.NewPaymentHandler(services.NewPaymentService(store, processor)),
		Uploads:    handlers.NewUploadHandler(uploader),
	}
}

func Setup(
	app *fiber.App,
	cfg *config.Config,
	store *repository.Store,
	tokens *services.TokenService,
	h *Handlers,
) {
	app.Get("/", h.Health.Root)
	app.Get("/health", h.Health.Check)

	// General rate limiter per IP
	app.Use(limiter.New(limiter.Config{
		Max:               cfg.RateLimitPerMinute,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	authenticate := middleware.Authenticate(tokens)
	admin := middleware.RequireAdmin(store.Users)

	// Token issuance: 10 req/min per IP (stricter)
	app.Get("/jwt", limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}), h.Auth.Token)

	// Users
	app.Get("/users", h.Users.List)
	app.Get("/users/admin/:email", h.Users.AdminStatus)
	app.Get("/users/seller/:email", h.Users.SellerStatus)
	app.Post("/users", h.Users.Create)
	app.Put("/users", h.Users.Upsert)
	app.Delete("/users/:id", authenticate, admin, h.Users.Delete)
	app.Put("/users/seller/:id", authenticate, admin, h.Users.VerifySeller)
	app.Put("/users/admin/:id", authenticate, admin, h.Users.MakeAdmin)

	// Catalog
	app.Get("/categories", h.Categories.List)
	app.Get("/categoryProducts/:id", h.Products.ByCategory)
	app.Get("/advertisedProducts", h.Products.Advertised)
	app.Get("/products", h.Products.List)
	app.Get("/products/:id", h.Products.Get)
	app.Post("/products", h.Products.Create)
	app.Put("/products/advertise/:id", h.Products.Advertise)
	app.Delete("/products/:id", authenticate, h.Products.Delete)
	app.Post("/uploads/product-image", authenticate, h.Uploads.ProductImage)

	// Reported products
	app.Get("/reportedProducts", h.Reports.List)
	app.Post("/reportedProducts", h.Reports.Create)
	app.Delete("/reportedProducts/:id", authenticate, admin, h.Reports.Delete)

	// Bookings (no delete route)
	app.Get("/bookingProducts", h.Bookings.List)
	app.Get("/bookingProducts/:id", h.Bookings.Get)
	app.Post("/bookingProducts", h.Bookings.Create)

	// Payments
	app.Post("/create-payment-intent", h.Payments.CreateIntent)
	app.Post("/payments", h.Payments.Record)
	app.Get("/payments", authenticate, admin, h.Payments.List)
}
