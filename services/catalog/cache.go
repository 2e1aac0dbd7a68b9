package catalog

import (
	"context"
	"encoding/json"
	"time"

	"doitto/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const categoriesCacheKey = "doitto:serviceCategories"

// RedisCache stores the category list as one JSON value.
type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
	Logger *zap.Logger
}

func NewRedisCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl, Logger: logger}
}

func (c *RedisCache) Load(ctx context.Context) ([]models.ServiceCategory, bool) {
	data, err := c.Client.Get(ctx, categoriesCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.Logger.Warn("Failed to read category cache", zap.Error(err))
		}
		return nil, false
	}
	var categories []models.ServiceCategory
	if err := json.Unmarshal(data, &categories); err != nil {
		c.Logger.Warn("Discarding malformed category cache", zap.Error(err))
		return nil, false
	}
	return categories, true
}

func (c *RedisCache) Save(ctx context.Context, categories []models.ServiceCategory) {
	data, err := json.Marshal(categories)
	if err != nil {
		return
	}
	if err := c.Client.Set(ctx, categoriesCacheKey, data, c.TTL).Err(); err != nil {
		c.Logger.Warn("Failed to write category cache", zap.Error(err))
	}
}

func (c *RedisCache) Invalidate(ctx context.Context) {
	if err := c.Client.Del(ctx, categoriesCacheKey).Err(); err != nil {
		c.Logger.Warn("Failed to invalidate category cache", zap.Error(err))
	}
}
