package handler

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

const notFoundPage = `<!DOCTYPE html>
<html><head><title>404 Not Found</title></head>
<body><h1>404 Not Found</h1><p>The requested resource does not exist.</p></body></html>`

const serverErrorPage = `<!DOCTYPE html>
<html><head><title>500 Internal Server Error</title></head>
<body><h1>500 Internal Server Error</h1><p>The server could not read the requested resource.</p></body></html>`

// StaticAssets serves the client page and its companion assets for any GET
// request no API route claimed. It must be registered after all routes.
// The root path maps to index.html; content types come from the file
// extension, falling back to application/octet-stream for unknown ones.
func StaticAssets(root string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodGet {
			return c.Next()
		}

		p, err := url.PathUnescape(c.Path())
		if err != nil {
			p = c.Path()
		}
		if p == "/" {
			p = "/index.html"
		}

		// Anything trying to climb out of the assets root does not exist.
		p = filepath.Clean(p)
		if strings.Contains(p, "..") {
			return sendNotFound(c)
		}

		full := filepath.Join(root, p)
		f, err := os.Open(full)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return sendNotFound(c)
			}
			return sendServerError(c)
		}

		st, err := f.Stat()
		if err != nil {
			f.Close()
			return sendServerError(c)
		}
		if st.IsDir() {
			f.Close()
			return sendNotFound(c)
		}

		mime := utils.GetMIME(filepath.Ext(full))
		if mime == "" {
			mime = fiber.MIMEOctetStream
		}
		c.Set(fiber.HeaderContentType, mime)

		return c.SendStream(f, int(st.Size()))
	}
}

func sendNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).Type("html", "utf-8").SendString(notFoundPage)
}

func sendServerError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).Type("html", "utf-8").SendString(serverErrorPage)
}
