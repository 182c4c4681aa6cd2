package handler

import (
	"github.com/gofiber/fiber/v2"

	"sharebox/internal/http/middleware"
)

// errorPayload is the standardized JSON failure body. Every JSON response in
// the API carries the success flag; failures add a human-readable message and
// the request ID for correlation.
type errorPayload struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// requestIDFromCtx extracts the request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON failure response without leaking
// internal error details.
func writeError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(errorPayload{
		Success:   false,
		Message:   message,
		RequestID: requestIDFromCtx(c),
	})
}

// ErrorHandler returns a Fiber global error handler that converts any error
// escaping the handler chain into the standard JSON failure shape.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "request body too large")
		default:
			return writeError(c, status, "internal server error")
		}
	}
}
