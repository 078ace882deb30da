package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"note-slides/cmd/server/handlers/httperr"
	"note-slides/internal/config"
	"note-slides/internal/logger"
	util "note-slides/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// CreateTestApp returns a Fiber app wired to the production error handler.
func CreateTestApp(t *testing.T) *fiber.App {
	t.Helper()
	_, err := logger.Init(config.Config{LogLevel: "debug", LogFormat: "text"})
	require.NoError(t, err)

	return fiber.New(fiber.Config{ErrorHandler: httperr.Handler})
}

// CreateTestValidator creates the same validator the server uses
func CreateTestValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v, err := util.NewValidator()
	require.NoError(t, err)
	return v
}

// CreateJSONRequest creates an HTTP request with JSON body
func CreateJSONRequest(method, url string, body any) *http.Request {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// CreateRawJSONRequest creates an HTTP request with a literal body, for
// payloads that json.Marshal cannot produce.
func CreateRawJSONRequest(method, url, body string) *http.Request {
	req := httptest.NewRequest(method, url, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// DecodeJSON reads resp.Body into out and closes it.
func DecodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, out), "body: %s", body)
}
