package logger

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"note-slides/internal/config"
)

func TestNewFormat(t *testing.T) {
	tests := []struct {
		format string
		json   bool
	}{
		{format: "json", json: true},
		{format: "text"},
		{format: "TEXT"},
		{format: "", json: true},
		{format: "logfmt", json: true},
	}

	for _, tt := range tests {
		t.Run("format="+tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			New(config.Config{LogFormat: tt.format}, &buf).Info("note created", "order", 3)

			out := buf.String()
			if tt.json {
				assert.Contains(t, out, `"msg":"note created"`)
				assert.Contains(t, out, `"order":3`)
				return
			}
			assert.Contains(t, out, "msg=\"note created\"")
			assert.Contains(t, out, "order=3")
		})
	}
}

func TestNewLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(config.Config{LogLevel: "warn", LogFormat: "json"}, &buf)

	log.Info("dropped")
	assert.Empty(t, buf.String())

	log.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"WARNING": slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	} {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestInitFirstCallWins(t *testing.T) {
	const goroutines = 10
	got := make([]*slog.Logger, goroutines)

	var wg sync.WaitGroup
	for i := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			format := "json"
			if i%2 == 1 {
				format = "text"
			}
			l, err := Init(config.Config{LogFormat: format})
			assert.NoError(t, err)
			got[i] = l
		}()
	}
	wg.Wait()

	require.NotNil(t, got[0])
	for _, l := range got[1:] {
		assert.Same(t, got[0], l)
	}
	assert.Same(t, got[0], L())
}
