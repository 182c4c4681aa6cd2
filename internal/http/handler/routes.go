package handler

import (
	"github.com/gofiber/fiber/v2"

	"sharebox/internal/service"
	"sharebox/internal/storage"
)

// RegisterRoutes attaches the API routes to the provided Fiber app.
// The static asset fallback is registered separately, after every other
// route, so unmatched GETs fall through to it.
func RegisterRoutes(app *fiber.App, store storage.Storage, fileSvc service.FileService) {
	app.Get("/health", HealthCheck(store))
	app.Get("/healthz", LivenessProbe())

	app.Post("/upload", UploadFile(fileSvc))
	app.Get("/files", ListFiles(fileSvc))
	app.Get("/download/:name", DownloadFile(fileSvc))
	app.Delete("/delete/:name", DeleteFile(fileSvc))
}
