package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// Version is reported by the root banner and the swagger doc.
const Version = "1.0.0"

// Banner describes the service and where its endpoints live.
type Banner struct {
	Message   string            `json:"message" example:"Note Slides API"`
	Version   string            `json:"version" example:"1.0.0"`
	Endpoints map[string]string `json:"endpoints"`
}

// Root returns the service banner.
// @Summary Service banner
// @Tags health
// @Produce json
// @Success 200 {object} handlers.Banner
// @Router / [get]
func Root(metricsEnabled bool) fiber.Handler {
	banner := Banner{
		Message: "Note Slides API",
		Version: Version,
		Endpoints: map[string]string{
			"health": "/healthz",
			"notes":  "/api/notes",
			"docs":   "/docs/index.html",
		},
	}
	if metricsEnabled {
		banner.Endpoints["metrics"] = "/metrics"
	}

	return func(c *fiber.Ctx) error {
		return c.JSON(banner)
	}
}
