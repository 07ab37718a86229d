package ratelimit

import "time"

// Config holds rate limiter configuration.
type Config struct {
	// RedisAddr is the Redis server address. Empty disables the limiter.
	RedisAddr string

	// RedisPassword is the optional Redis password.
	RedisPassword string

	// RedisDB is the Redis database number.
	RedisDB int

	// Limit is the number of requests allowed per key per window.
	Limit int

	// Window is the fixed counting window.
	Window time.Duration

	// KeyPrefix namespaces limiter keys in Redis.
	KeyPrefix string
}

// DefaultConfig returns the default limiter configuration.
func DefaultConfig() Config {
	return Config{
		Limit:     30,
		Window:    time.Minute,
		KeyPrefix: "ratelimit:",
	}
}
