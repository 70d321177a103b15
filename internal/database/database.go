package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/models"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the Postgres pool. The caller owns the handle and closes it
// at shutdown.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	slog.Info("database connected", "driver", config.DriverPostgres)
	return db, nil
}

// Migrate runs AutoMigrate for every marketplace table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.BookingProduct{},
		&models.ReportedProduct{},
		&models.Payment{},
		&models.SystemLog{},
	)
}

// ConnectMongo connects to MONGO_URI and returns the configured database.
// Disconnect through db.Client().
func ConnectMongo(ctx context.Context, cfg *config.Config) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	slog.Info("database connected", "driver", config.DriverMongo, "database", cfg.MongoDatabase)
	return client.Database(cfg.MongoDatabase), nil
}

// ConnectRedis returns nil without error when REDIS_URL is unset or the
// server is unreachable; the caller then runs without a cache.
func ConnectRedis(ctx context.Context, cfg *config.Config) *redis.Client {
	if cfg.RedisURL == "" {
		return nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		slog.Warn("failed to parse REDIS_URL, running without cache", "error", err)
		return nil
	}

	client := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("redis connection failed, running without cache", "error", err)
		_ = client.Close()
		return nil
	}

	slog.Info("redis connected")
	return client
}
