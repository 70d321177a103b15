package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/cache"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/payments"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/uploads"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func runServe() error {
	cfg := config.Load()

	// Structured logging (JSON to stdout)
	logging.Setup(cfg.AppEnv)

	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()

	// Store
	b, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	if err := b.migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	store := b.store

	// PostgreSQL log handler (ERROR+ async batch) and 30-day retention
	var pgLogHandler *logging.PGHandler
	cleanupDone := make(chan struct{})
	if b.pg != nil {
		pgLogHandler = logging.NewPGHandler(b.pg, 5*time.Second)
		slog.SetDefault(slog.New(logging.NewFanout(
			logging.NewJSONHandler(os.Stdout, cfg.AppEnv),
			pgLogHandler,
		)))
		logging.StartCleanup(b.pg, cleanupDone)
	}

	// Category cache (optional)
	rdb := database.ConnectRedis(ctx, cfg)
	store.Categories = cache.WrapCategories(store.Categories, rdb, cfg.CategoryCacheTTL)

	// Third-party adapters
	uploader, err := uploads.New(cfg.CloudinaryURL)
	if err != nil {
		return err
	}
	if cfg.StripeSecretKey == "" {
		slog.Warn("STRIPE_SECRET_KEY not set, payment intents will fail")
	}
	processor := payments.New(cfg.StripeSecretKey)

	// Services and handlers
	tokens := services.NewTokenService(store.Users, cfg)
	h := routes.NewHandlers(store, tokens, processor, uploader)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    8 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, store, tokens, h)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("LapSell Corner starting", "port", cfg.Port, "store", cfg.StoreDriver)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	close(cleanupDone)
	if pgLogHandler != nil {
		pgLogHandler.Stop()
	}
	sentry.Flush(2 * time.Second)

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			slog.Error("redis close error", "error", err)
		}
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Close(closeCtx); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
	return nil
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		rid, _ := c.Locals("requestid").(string)
		slog.Error("unhandled server error",
			"request_id", rid,
			"method", c.Method(),
			"path", c.Path(),
			"error", err.Error(),
		)
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
