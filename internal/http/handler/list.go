package handler

import (
	"github.com/gofiber/fiber/v2"

	"sharebox/internal/service"
)

type fileListResponse struct {
	Success bool     `json:"success"`
	Files   []string `json:"files"`
}

// ListFiles returns the names of all stored files.
//
// @Summary List stored files
// @Tags files
// @Produce json
// @Success 200 {object} fileListResponse
// @Failure 500 {object} errorPayload
// @Router /files [get]
func ListFiles(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		files, err := svc.List(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "could not list files")
		}

		// Always an array in JSON, never null.
		names := make([]string, 0, len(files))
		for _, f := range files {
			names = append(names, f.Name)
		}

		return c.JSON(fileListResponse{Success: true, Files: names})
	}
}
