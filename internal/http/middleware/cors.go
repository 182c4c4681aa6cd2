package middleware

import (
	"github.com/gofiber/fiber/v2"
)

const (
	corsAllowOrigin  = "*"
	corsAllowMethods = "GET, POST, DELETE, OPTIONS"
	corsAllowHeaders = "Content-Type, X-Requested-With"
)

// CORS attaches the permissive cross-origin policy to every response and
// answers preflight OPTIONS requests directly, before any route matching.
func CORS() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderAccessControlAllowOrigin, corsAllowOrigin)
		c.Set(fiber.HeaderAccessControlAllowMethods, corsAllowMethods)
		c.Set(fiber.HeaderAccessControlAllowHeaders, corsAllowHeaders)

		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}

		return c.Next()
	}
}
