package ratelimit

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// New returns a Fiber handler that limits requests per key. keyFn extracts
// the limiting key from the request (the webhook uses the sender id). A nil
// limiter passes everything through; limiter errors fail open so a Redis
// outage does not take the webhook down with it.
func New(limiter *Limiter, keyFn func(c *fiber.Ctx) string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limiter == nil {
			return c.Next()
		}

		key := keyFn(c)
		if key == "" {
			return c.Next()
		}

		allowed, err := limiter.Allow(c.Context(), key)
		if err != nil {
			log.Printf("[ratelimit] Limiter error for %s, allowing request: %v", key, err)
			return c.Next()
		}
		if !allowed {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "rate limit exceeded",
			})
		}
		return c.Next()
	}
}
