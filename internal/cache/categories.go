// Package cache holds read-through Redis decorators for repositories whose
// data changes rarely.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/repository"
	"github.com/redis/go-redis/v9"
)

const categoriesKey = "lapsell:categories"

// Categories serves List from Redis and falls back to the wrapped
// repository on a miss or any Redis error. Writes invalidate the entry.
type Categories struct {
	next repository.CategoryRepository
	rdb  *redis.Client
	ttl  time.Duration
}

// WrapCategories returns next unchanged when rdb is nil.
func WrapCategories(next repository.CategoryRepository, rdb *redis.Client, ttl time.Duration) repository.CategoryRepository {
	if rdb == nil {
		return next
	}
	return &Categories{next: next, rdb: rdb, ttl: ttl}
}

func (c *Categories) List(ctx context.Context) ([]models.Category, error) {
	if raw, err := c.rdb.Get(ctx, categoriesKey).Bytes(); err == nil {
		var categories []models.Category
		if err := json.Unmarshal(raw, &categories); err == nil {
			return categories, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		slog.Warn("category cache read failed", "error", err)
	}

	categories, err := c.next.List(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(categories); err == nil {
		if err := c.rdb.Set(ctx, categoriesKey, raw, c.ttl).Err(); err != nil {
			slog.Warn("category cache write failed", "error", err)
		}
	}
	return categories, nil
}

func (c *Categories) UpsertByName(ctx context.Context, category *models.Category) (*repository.UpdateResult, error) {
	res, err := c.next.UpsertByName(ctx, category)
	if err != nil {
		return nil, err
	}
	if err := c.rdb.Del(ctx, categoriesKey).Err(); err != nil {
		slog.Warn("category cache invalidation failed", "error", err)
	}
	return res, nil
}
