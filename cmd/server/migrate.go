package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/models"
	"github.com/spf13/cobra"
)

var defaultCategories = []string{
	"Gaming Laptops",
	"Business Laptops",
	"Ultrabooks",
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create tables (postgres) or indexes (mongo) for STORE_DRIVER",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackend(func(ctx context.Context, b *backend) error {
				if err := b.migrate(ctx); err != nil {
					return fmt.Errorf("migration failed: %w", err)
				}
				slog.Info("migration completed")
				return nil
			})
		},
	}
}

func seedCategoriesCmd() *cobra.Command {
	var names []string

	cmd := &cobra.Command{
		Use:   "seed-categories",
		Short: "Insert the product categories (existing names are kept)",
		Long: `Upsert product categories by name.

Examples:
  lapsell seed-categories
  lapsell seed-categories --name "Chromebooks" --name "Workstations"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackend(func(ctx context.Context, b *backend) error {
				if err := b.migrate(ctx); err != nil {
					return fmt.Errorf("migration failed: %w", err)
				}
				for _, name := range names {
					res, err := b.store.Categories.UpsertByName(ctx, &models.Category{Name: name})
					if err != nil {
						return fmt.Errorf("failed to seed category %q: %w", name, err)
					}
					slog.Info("category seeded", "name", name, "created", res.UpsertedCount > 0)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringArrayVar(&names, "name", defaultCategories, "category name (repeatable)")
	return cmd
}

// withBackend opens the configured store for a one-shot command.
func withBackend(fn func(ctx context.Context, b *backend) error) error {
	cfg := config.Load()
	logging.Setup(cfg.AppEnv)
	if err := cfg.ValidateStore(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	b, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := b.store.Close(context.Background()); err != nil {
			slog.Error("store close error", "error", err)
		}
	}()

	return fn(ctx, b)
}
