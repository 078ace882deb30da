package middlewares

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NotesPrefix is the route prefix whose writes feed the mutation counter.
const NotesPrefix = "/api/notes"

// normalizeRoutePath returns the route template to prevent high cardinality
// in metrics labels. Returns the actual path for unmatched routes (404s).
func normalizeRoutePath(c *fiber.Ctx) string {
	if route := c.Route(); route != nil {
		return route.Path // already the template (e.g., "/api/notes/:id")
	}
	return c.Path() // fallback for 404 etc.
}

// normalizeStatus returns the status code as a string for Prometheus metrics
// 2xx -> "2xx", 4xx -> "4xx", 5xx -> "5xx"
func normalizeStatus(status int) string {
	if status >= 200 && status < 300 {
		return "2xx"
	} else if status >= 400 && status < 500 {
		return "4xx"
	} else if status >= 500 && status < 600 {
		return "5xx"
	}
	return strconv.Itoa(status)
}

// mutationOp names the note operation behind a write request, or "" when the
// request does not change notes.
func mutationOp(method, path string) string {
	if !strings.HasPrefix(path, NotesPrefix) {
		return ""
	}
	switch method {
	case http.MethodPost:
		return "create"
	case http.MethodPut:
		return "update"
	case http.MethodDelete:
		return "delete"
	}
	return ""
}

// mutationOutcome buckets a status into ok, rejected (client side) or error.
func mutationOutcome(status int) string {
	switch {
	case status < 400:
		return "ok"
	case status < 500:
		return "rejected"
	default:
		return "error"
	}
}

// AttachMetrics gives the supplied Fiber app its **own** Prometheus registry
// and wires a /metrics endpoint plus request-timing middleware.
func AttachMetrics(app *fiber.App) *prometheus.Registry {
	reg := prometheus.NewRegistry()

	// collectors
	reqDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	reqTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	mutations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notes_mutations_total",
			Help: "Note writes by operation and outcome",
		},
		[]string{"op", "outcome"},
	)

	reg.MustRegister(reqDuration, reqTotal, mutations)

	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()
		// Errors are rendered here so the recorded status is the one sent.
		if err := c.Next(); err != nil {
			if herr := app.Config().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		dur := time.Since(start).Seconds()

		method := c.Method()
		path := normalizeRoutePath(c)
		code := c.Response().StatusCode()
		status := normalizeStatus(code)

		reqDuration.WithLabelValues(method, path, status).Observe(dur)
		reqTotal.WithLabelValues(method, path, status).Inc()
		if op := mutationOp(method, path); op != "" {
			mutations.WithLabelValues(op, mutationOutcome(code)).Inc()
		}
		return nil
	})

	// /metrics handler (uses *this* registry)
	app.Get("/metrics", adaptor.HTTPHandler(
		promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
	)

	return reg
}
