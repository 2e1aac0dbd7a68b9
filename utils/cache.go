package utils

import (
	"context"
	"time"

	"doitto/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CacheClient is the generic cache client.
var CacheClient *redis.Client

// InitCache initializes the Redis cache client. A failed ping leaves
// CacheClient nil so callers run uncached.
func InitCache() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		GetLogger().Warn("Redis unavailable, caching disabled",
			zap.String("addr", config.AppConfig.RedisAddr), zap.Error(err))
		_ = client.Close()
		return
	}
	CacheClient = client
}

// GetCacheClient returns the cache client, or nil when caching is off.
func GetCacheClient() *redis.Client {
	if CacheClient == nil && config.AppConfig.RedisAddr != "" && config.AppConfig.CategoryCacheTTL > 0 {
		InitCache()
	}
	return CacheClient
}
