package main

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/repository/memstore"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/repository/mongostore"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/repository/pgstore"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// backend is an opened store plus the driver handle it was built on.
// Exactly one of pg and mongo is set, or neither for the memory driver.
type backend struct {
	store *repository.Store
	pg    *gorm.DB
	mongo *mongo.Database
}

func openStore(ctx context.Context, cfg *config.Config) (*backend, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		db, err := database.Connect(cfg)
		if err != nil {
			return nil, err
		}
		return &backend{store: pgstore.New(db), pg: db}, nil
	case config.DriverMongo:
		db, err := database.ConnectMongo(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &backend{store: mongostore.New(db), mongo: db}, nil
	case config.DriverMemory:
		return &backend{store: memstore.New()}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

// migrate creates tables (Postgres) or indexes (Mongo) for the backend.
func (b *backend) migrate(ctx context.Context) error {
	switch {
	case b.pg != nil:
		return database.Migrate(b.pg)
	case b.mongo != nil:
		return mongostore.EnsureIndexes(ctx, b.mongo)
	}
	return nil
}
