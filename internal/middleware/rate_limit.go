package middleware

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

// RateLimit admits about rpm requests per minute across all callers, with a
// burst of a sixth of that. A non-positive rpm disables limiting.
func RateLimit(rpm int) fiber.Handler {
	if rpm <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	limiter := rate.NewLimiter(rate.Limit(float64(rpm)/60.0), max(rpm/6, 1))

	return func(c *fiber.Ctx) error {
		if !limiter.Allow() {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "Rate limit exceeded",
			})
		}
		return c.Next()
	}
}
