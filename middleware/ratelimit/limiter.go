// Package ratelimit provides Redis-backed fixed-window rate limiting for
// the inbound webhook.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter counts requests per key in fixed windows backed by Redis.
type Limiter struct {
	client    *redis.Client
	keyPrefix string
	limit     int
	window    time.Duration
}

// NewLimiter connects to Redis and returns a limiter, or an error when the
// server is unreachable.
func NewLimiter(ctx context.Context, cfg Config) (*Limiter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.RedisAddr, err)
	}

	return &Limiter{
		client:    client,
		keyPrefix: cfg.KeyPrefix,
		limit:     cfg.Limit,
		window:    cfg.Window,
	}, nil
}

// Allow increments the counter for key's current window and reports whether
// the request is within the limit. INCR and EXPIRE run in one pipeline so
// the window always carries a TTL.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	bucket := time.Now().Unix() / int64(l.window.Seconds())
	redisKey := fmt.Sprintf("%s%s:%d", l.keyPrefix, key, bucket)

	pipe := l.client.TxPipeline()
	count := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("redis pipeline error: %w", err)
	}

	return count.Val() <= int64(l.limit), nil
}

// Close releases the Redis connection.
func (l *Limiter) Close() error {
	return l.client.Close()
}
