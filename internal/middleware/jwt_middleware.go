package middleware

import (
	"strings"

	"rentdir/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	userIDKey   = "user_id"
	usernameKey = "username"
)

// AuthRequired is a Fiber middleware to check for a valid JWT token. The
// authenticated user id is stored as an int64 under "user_id".
func AuthRequired(authService *services.AuthService, logger *zap.SugaredLogger) fiber.Handler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		claims, err := authService.ValidateToken(parts[1])
		if err == nil {
			var userID int64
			userID, err = services.UserIDFromClaims(claims)
			if err == nil {
				c.Locals(userIDKey, userID)
				c.Locals(usernameKey, claims[usernameKey])
				return c.Next()
			}
		}

		logger.Debugw("JWT validation failed", "path", c.Path(), "error", err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid or expired token",
			"error":   err.Error(),
		})
	}
}

// UserID returns the id stored by AuthRequired.
func UserID(c *fiber.Ctx) (int64, bool) {
	id, ok := c.Locals(userIDKey).(int64)
	return id, ok
}
