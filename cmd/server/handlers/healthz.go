package handlers

import (
	"context"
	"time"

	"note-slides/internal/logger"

	"github.com/gofiber/fiber/v2"
)

const HealthzTimeout = 5 * time.Second

// Fixed reasons reported by /healthz. Driver errors go to the log only.
const (
	ReasonNotInitialized = "storage not initialized"
	ReasonUnreachable    = "storage unreachable"
)

// PingFunc checks that the storage backend is reachable.
type PingFunc func(ctx context.Context) error

// Health is the /healthz reply.
type Health struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty"`
}

func down(c *fiber.Ctx, reason string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(Health{Status: "down", Error: reason})
}

// Healthz reports whether the storage answers a ping within HealthzTimeout.
// @Summary Health check
// @Description Check if the server and its storage are healthy
// @Tags health
// @Produce json
// @Success 200 {object} handlers.Health
// @Failure 500 {object} handlers.Health
func Healthz(ping PingFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ping == nil {
			return down(c, ReasonNotInitialized)
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), HealthzTimeout)
		defer cancel()

		if err := ping(ctx); err != nil {
			logger.L().Error("storage ping failed", "error", err)
			return down(c, ReasonUnreachable)
		}
		return c.JSON(Health{Status: "ok"})
	}
}
