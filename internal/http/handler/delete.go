package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"sharebox/internal/service"
)

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DeleteFile removes a stored file by name. A missing file is a 404 JSON
// failure, distinguishable from other storage errors.
//
// @Summary Delete a file
// @Tags files
// @Produce json
// @Param name path string true "file name"
// @Success 200 {object} messageResponse
// @Failure 404 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /delete/{name} [delete]
func DeleteFile(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := pathParamName(c)

		if err := svc.Delete(c.UserContext(), name); err != nil {
			if errors.Is(err, service.ErrNotFound) || errors.Is(err, service.ErrNameRequired) {
				return writeError(c, fiber.StatusNotFound, "File not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "could not delete file")
		}

		return c.JSON(messageResponse{Success: true, Message: "File deleted successfully"})
	}
}
