// Command ping probes /healthz on the local server and exits non-zero when it
// is unhealthy. Intended for Docker HEALTHCHECK:
//
//	HEALTHCHECK CMD ["/ping"]
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"note-slides/internal/client"
)

const (
	defaultPort    = 8080
	requestTimeout = 1 * time.Second
)

// Exit codes, one per failure class.
const (
	codeRequestFailed     = 2
	codeBadHTTPStatus     = 3
	codeDecodeError       = 4
	codeReportedUnhealthy = 5
)

func main() {
	port := detectPort()
	code, msg := probe(fmt.Sprintf("http://localhost:%d", port))
	log.Print(msg)
	os.Exit(code)
}

func probe(baseURL string) (int, string) {
	c, err := client.New(baseURL, client.WithHTTPClient(&http.Client{Timeout: requestTimeout}))
	if err != nil {
		return codeRequestFailed, "bad url: " + err.Error()
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	return classify(c.Health(ctx))
}

// classify maps a Health error onto an exit code and a log line.
func classify(err error) (int, string) {
	var apiErr *client.APIError
	switch {
	case err == nil:
		return 0, "service healthy"
	case errors.As(err, &apiErr):
		return codeBadHTTPStatus, fmt.Sprintf("unexpected HTTP status %d", apiErr.Status)
	case errors.Is(err, client.ErrDecode):
		return codeDecodeError, "decode error: " + err.Error()
	case errors.Is(err, client.ErrUnhealthy):
		return codeReportedUnhealthy, "service reported unhealthy: " + err.Error()
	default:
		return codeRequestFailed, "request failed: " + err.Error()
	}
}

// detectPort reads APP_PORT, falling back to defaultPort.
func detectPort() int {
	if p, err := strconv.Atoi(os.Getenv("APP_PORT")); err == nil && p > 0 && p <= 65535 {
		return p
	}
	return defaultPort
}
