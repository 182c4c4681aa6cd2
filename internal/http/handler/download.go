package handler

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"sharebox/internal/service"
)

// pathParamName returns the :name route parameter percent-decoded. Fiber hands
// params through still encoded; a value that fails decoding is used as-is.
func pathParamName(c *fiber.Ctx) string {
	raw := c.Params("name")
	name, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return name
}

// DownloadFile streams a stored file back as an attachment. Errors on this
// path are plain text, not JSON; once the body starts streaming the status
// can no longer change, so a mid-stream read failure truncates the response.
//
// @Summary Download a file
// @Tags files
// @Produce octet-stream
// @Param name path string true "file name"
// @Success 200 {file} binary
// @Failure 404 {string} string "File not found"
// @Router /download/{name} [get]
func DownloadFile(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := pathParamName(c)

		rc, f, err := svc.Download(c.UserContext(), name)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) || errors.Is(err, service.ErrNameRequired) {
				return c.Status(fiber.StatusNotFound).Type("txt", "utf-8").SendString("File not found")
			}
			return c.Status(fiber.StatusInternalServerError).Type("txt", "utf-8").SendString("Could not read file")
		}

		c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=\"%s\"", f.Name))
		// The runtime closes rc when the response finishes or the client goes away.
		return c.SendStream(rc, int(f.Size))
	}
}
