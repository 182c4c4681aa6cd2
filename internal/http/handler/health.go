package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"sharebox/internal/storage"
)

// HealthCheck reports whether the storage backend is usable.
//
// @Summary Health check
// @Tags ops
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} errorPayload
// @Router /health [get]
func HealthCheck(store storage.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "storage unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "status": "healthy"})
	}
}

// LivenessProbe is the bare process-up probe.
//
// @Summary Liveness probe
// @Tags ops
// @Success 200
// @Router /healthz [get]
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
