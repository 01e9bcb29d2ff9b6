// Package cache is a small JSON cache over Redis. Every call degrades to a
// miss or a no-op while Redis is not connected, so callers never branch on
// availability.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sheshine/backoffice/config"
	"github.com/sheshine/backoffice/pkg/logger"
	"github.com/sheshine/backoffice/pkg/metrics"
)

const driver = "redis"

var RDB *redis.Client

// ErrNotConnected is returned by Ping when Redis is not configured.
var ErrNotConnected = errors.New("cache: redis not connected")

// Connect initialises the Redis client and verifies it with a ping. An
// empty REDIS_ADDR leaves the cache disabled without error.
func Connect(ctx context.Context) error {
	addr := config.RedisAddr()
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.RedisPassword(),
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("cache: redis ping: %w", err)
	}
	RDB = client
	return nil
}

// Ping reports whether Redis answers.
func Ping(ctx context.Context) error {
	if RDB == nil {
		return ErrNotConnected
	}
	return RDB.Ping(ctx).Err()
}

// Close releases the client.
func Close() error {
	if RDB == nil {
		return nil
	}
	err := RDB.Close()
	RDB = nil
	return err
}

// Get retrieves a cached value by key and unmarshals into dest.
// Returns true on a cache hit, false on miss or error.
func Get(ctx context.Context, key string, dest interface{}) bool {
	if RDB == nil {
		return false
	}

	val, err := RDB.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.WithCtx(ctx).Warn("cache: get failed", "key", key, "error", err)
		}
		metrics.CacheMisses.WithLabelValues(driver).Inc()
		return false
	}

	if err := json.Unmarshal(val, dest); err != nil {
		metrics.CacheMisses.WithLabelValues(driver).Inc()
		return false
	}

	metrics.CacheHits.WithLabelValues(driver).Inc()
	return true
}

// Set stores value under key for the given TTL.
func Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if RDB == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return RDB.Set(ctx, key, data, ttl).Err()
}

// Del removes one or more keys.
func Del(ctx context.Context, keys ...string) error {
	if RDB == nil || len(keys) == 0 {
		return nil
	}
	return RDB.Del(ctx, keys...).Err()
}

// Remember returns the cached value for key, or calls fn, caches its
// result for ttl and returns it. Cache write failures are logged only.
func Remember[T any](ctx context.Context, key string, ttl time.Duration, fn func() (T, error)) (T, error) {
	var cached T
	if Get(ctx, key, &cached) {
		return cached, nil
	}

	fresh, err := fn()
	if err != nil {
		return fresh, err
	}

	if err := Set(ctx, key, fresh, ttl); err != nil {
		logger.WithCtx(ctx).Warn("cache: set failed", "key", key, "error", err)
	}
	return fresh, nil
}
