// Package cache provides an optional Redis-backed response cache.
// This is part of the platform layer and contains no business logic.
//
// A nil *Cache is valid and behaves as a disabled cache, so callers never
// need to branch on whether caching is configured.
package cache

import (
	"context"
	"time"

	"addressbridge_backend/platform/logger"

	"github.com/redis/go-redis/v9"
)

// Cache wraps a Redis client with a fixed TTL for provider responses.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
	log *logger.Logger
}

// New connects to Redis at addr. Returns an error when the server is not
// reachable so the caller can decide to run without caching.
func New(ctx context.Context, addr string, ttl time.Duration, log *logger.Logger) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return &Cache{rdb: rdb, ttl: ttl, log: log}, nil
}

// Get returns the cached value for key, if present.
func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	if c == nil {
		return "", false
	}
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil && c.log != nil {
			c.log.Warn("cache get failed", "key", key, "error", err)
		}
		return "", false
	}
	return val, true
}

// Set stores value under key with the configured TTL. Failures are logged
// and otherwise ignored; caching is best-effort.
func (c *Cache) Set(ctx context.Context, key, value string) {
	if c == nil {
		return
	}
	if err := c.rdb.Set(ctx, key, value, c.ttl).Err(); err != nil && c.log != nil {
		c.log.Warn("cache set failed", "key", key, "error", err)
	}
}

// Close releases the underlying Redis connection.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
