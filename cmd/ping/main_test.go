package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"note-slides/internal/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode int
	}{
		{name: "healthy", status: 200, body: `{"status":"ok"}`, wantCode: 0},
		{name: "empty body is healthy", status: 200, body: ``, wantCode: 0},
		{name: "storage down", status: 500, body: `{"status":"down"}`, wantCode: codeBadHTTPStatus},
		{name: "garbage body", status: 200, body: `{`, wantCode: codeDecodeError},
		{name: "reported unhealthy", status: 200, body: `{"status":"degraded"}`, wantCode: codeReportedUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c, err := client.New(srv.URL)
			require.NoError(t, err)

			code, _ := classify(c.Health(context.Background()))
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestClassifyConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := client.New(url)
	require.NoError(t, err)

	code, _ := classify(c.Health(context.Background()))
	assert.Equal(t, codeRequestFailed, code)
}

func TestDetectPort(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	assert.Equal(t, 9090, detectPort())

	t.Setenv("APP_PORT", "nope")
	assert.Equal(t, defaultPort, detectPort())
}

func TestProbe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	code, msg := probe(srv.URL)
	assert.Equal(t, 0, code)
	assert.Equal(t, "service healthy", msg)

	code, _ = probe("not a url")
	assert.Equal(t, codeRequestFailed, code)
}
