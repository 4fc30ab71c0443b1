package fiber

import (
	"github.com/gofiber/fiber/v3"

	"github.com/gatehouse-dev/gatehouse/core"
)

// RequireSession creates a Fiber middleware that resolves the bearer token
// and stores the session in the context for downstream handlers.
func RequireSession(handler core.AuthHandler) fiber.Handler {
	return func(c fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": core.ErrMissingAuthHeader.Error(),
			})
		}

		session, err := handler.Resolve(c.Context(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		// Store the session in context for downstream handlers
		c.Locals("session", session)

		return c.Next()
	}
}
