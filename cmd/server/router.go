package main

import (
	"time"

	"note-slides/cmd/server/handlers"
	"note-slides/cmd/server/handlers/httperr"
	notesHandlers "note-slides/cmd/server/handlers/notes"
	"note-slides/cmd/server/middlewares"
	"note-slides/internal/config"
	"note-slides/internal/logger"
	notesServices "note-slides/internal/services/notes"
	util "note-slides/internal/utils"

	_ "note-slides/docs" // Load swagger docs

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
)

const (
	RateLimitExpiration = 1 * time.Minute
)

// setupRouter configures and returns a Fiber app with all routes
func setupRouter(cfg config.Config, store *backend) *fiber.App {
	v, err := util.NewValidator()
	if err != nil {
		logger.L().Error("failed to build validator", "err", err)
		panic(err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: httperr.Handler,
		Immutable:    true, // make Fiber copy all request-derived strings
	})

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.ClientURL,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Content-Type",
	}))

	if cfg.RouteMetricsEnabled {
		middlewares.AttachMetrics(app)
	}

	// Health check endpoint, outside the API group to appease scanners and to avoid logging
	app.Get("/healthz", handlers.Healthz(store.ping))
	app.Get("/", handlers.Root(cfg.RouteMetricsEnabled))

	app.Get("/docs/*", swagger.HandlerDefault)

	var api fiber.Router
	if cfg.RequestLoggingEnabled {
		api = app.Group("/api", fiberlogger.New())
		logger.L().Info("request logging enabled")
	} else {
		api = app.Group("/api")
		logger.L().Info("request logging disabled")
	}

	writeLimiter := middlewares.BuildRateLimiter(cfg.WriteRatePerMin, RateLimitExpiration, middlewares.SafeMethods)

	notesSvc := notesServices.NewService(store.repo, logger.L(),
		notesServices.WithDefaultGradient(cfg.DefaultGradient))
	notesH := notesHandlers.NewHandlers(notesSvc, v)

	notesGrp := api.Group("/notes", writeLimiter)
	notesGrp.Get("/", notesH.List)
	notesGrp.Get("/:id", notesH.Get)
	notesGrp.Post("/", notesH.Create)
	notesGrp.Put("/:id", notesH.Update)
	notesGrp.Delete("/:id", notesH.Delete)

	logger.L().Info("routes ready", "storage", store.driver, "write_rate_per_min", cfg.WriteRatePerMin)

	return app
}
