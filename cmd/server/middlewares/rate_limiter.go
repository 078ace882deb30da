package middlewares

import (
	"time"

	"note-slides/cmd/server/handlers/httperr"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// BuildRateLimiter returns a Fiber handler that does *nothing* when max <= 0
// so callers don't need to wrap it in an if-statement.
//
//	max           requests per Expiration window
//	expiration    bucket window
//	skip          requests for which skip returns true bypass the limiter
func BuildRateLimiter(max int, expiration time.Duration, skip ...func(*fiber.Ctx) bool) fiber.Handler {
	if max <= 0 {
		// disabled -> just fall through
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	cfg := limiter.Config{
		Max:        max,
		Expiration: expiration,
		LimitReached: func(c *fiber.Ctx) error {
			return httperr.Fail(httperr.ErrTooManyRequests)
		},
	}

	if len(skip) > 0 {
		cfg.Next = func(c *fiber.Ctx) bool {
			for _, s := range skip {
				if s(c) {
					return true
				}
			}
			return false
		}
	}

	return limiter.New(cfg)
}

// SafeMethods skips read-only requests so only writes are limited.
func SafeMethods(c *fiber.Ctx) bool {
	switch c.Method() {
	case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
		return true
	}
	return false
}
