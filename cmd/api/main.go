package main

import (
	"context"
	"log"
	"math"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sharebox/docs"
	"sharebox/internal/config"
	handlers "sharebox/internal/http/handler"
	"sharebox/internal/http/middleware"
	"sharebox/internal/otel"
	"sharebox/internal/service"
	"sharebox/internal/storage"
)

// @title Sharebox API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	// Initialize tracing before anything handles requests
	shutdownTracing, err := otel.Init(context.Background(), time.UTC)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}

	// Pick the file storage backend; local disk is the default
	store, err := newStorage(cfg)
	if err != nil {
		log.Fatalf("failed to initialize storage: %v", err)
	}

	fileSvc := service.NewFileService(store, cfg.Storage.MaxUploadBytes)

	// The HTTP body cap sits above the file size cap so oversize uploads are
	// rejected by the service with the JSON envelope, not cut off mid-stream.
	bodyLimit := math.MaxInt32
	if cfg.Storage.MaxUploadBytes > 0 {
		bodyLimit = int(cfg.Storage.MaxUploadBytes) + 1<<20
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:      handlers.ErrorHandler(),
		BodyLimit:         bodyLimit,
		StreamRequestBody: true,
	})

	// Prometheus registry with process and Go runtime collectors
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	promMW, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	// Span names and service identity come from the otel resource
	app.Use(otelfiber.Middleware())
	app.Use(promMW.Handler())
	app.Use(middleware.CORS())

	// Register HTTP routes with injected service
	handlers.RegisterRoutes(app, store, fileSvc)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	// Client page and assets for everything no route above claimed
	app.Use(handlers.StaticAssets(cfg.PublicDir))

	addr := cfg.AppHost + ":" + cfg.Port

	go func() {
		if err := app.Listen(addr); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	// Stop accepting connections, let in-flight requests finish, then flush spans
	drain := time.Duration(cfg.ShutdownTimeoutSeconds) * time.Second
	if err := app.ShutdownWithTimeout(drain); err != nil {
		log.Printf("server shutdown: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(ctx); err != nil {
		log.Printf("tracing shutdown: %v", err)
	}
}

// newStorage builds the Storage implementation named by STORAGE_BACKEND.
func newStorage(cfg *config.AppConfig) (storage.Storage, error) {
	switch cfg.Storage.Backend {
	case "minio":
		return storage.NewMinIO(cfg.MinIO)
	default:
		return storage.NewLocal(cfg.Storage.Dir)
	}
}
