package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"note-slides/internal/services/notes"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL + "/")
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNewRejectsRelativeURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:8080", "/api", "ftp://x"} {
		_, err := New(raw)
		assert.Error(t, err, raw)
	}

	c, err := New(" http://localhost:8080/ ")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", c.BaseURL())
}

func TestList(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/notes", r.URL.Path)
		writeJSON(w, http.StatusOK, []notes.Note{{ID: "a", Order: 0}, {ID: "b", Order: 1}})
	})

	got, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[1].ID)
}

func TestListNullBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, nil)
	})

	got, err := c.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCreateSendsWireNames(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "quote", body["type"])
		assert.Equal(t, "Stay hungry", body["quoteText"])
		assert.NotContains(t, body, "articleTitle")

		writeJSON(w, http.StatusCreated, notes.Note{ID: "n1", Variant: notes.VariantQuote, QuoteText: "Stay hungry", Order: 3})
	})

	got, err := c.Create(context.Background(), notes.CreateNoteRequest{Variant: "quote", QuoteText: "Stay hungry", QuoteAuthor: "Jobs"})
	require.NoError(t, err)
	assert.Equal(t, "n1", got.ID)
	assert.Equal(t, 3, got.Order)
}

func TestUpdateSendsOnlyPresentFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/notes/n1", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"quoteText":""}`, string(raw))
		writeJSON(w, http.StatusOK, notes.Note{ID: "n1"})
	})

	empty := ""
	_, err := c.Update(context.Background(), "n1", notes.UpdateNoteRequest{QuoteText: &empty})
	require.NoError(t, err)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantMsg string
	}{
		{name: "validation", status: 400, body: `{"error":"quote text and author are required"}`, wantErr: notes.ErrValidation, wantMsg: "quote text and author are required"},
		{name: "not found", status: 404, body: `{"error":"note not found"}`, wantErr: notes.ErrNoteNotFound, wantMsg: "note not found"},
		{name: "legacy message field", status: 404, body: `{"message":"Note not found"}`, wantErr: notes.ErrNoteNotFound, wantMsg: "Note not found"},
		{name: "conflict", status: 409, body: `{"error":"order already taken by another note"}`, wantErr: notes.ErrOrderConflict},
		{name: "server error", status: 500, body: `{"error":"failed to list notes: storage failure"}`, wantErr: notes.ErrStorage},
		{name: "rate limited", status: 429, body: `Too Many Requests`, wantErr: notes.ErrStorage, wantMsg: "Too Many Requests"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := c.Get(context.Background(), "x")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}

			if tt.status != 400 {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, tt.status, apiErr.Status)
			}
		})
	}
}

func TestDeleteEscapesID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/notes/a%2Fb", r.URL.EscapedPath())
		writeJSON(w, http.StatusOK, notes.DeleteNoteResponse{Message: "Note deleted successfully"})
	})

	assert.NoError(t, c.Delete(context.Background(), "a/b"))
}

func TestHealth(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/healthz", r.URL.Path)
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		assert.NoError(t, c.Health(context.Background()))
	})

	t.Run("down", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"status": "down"})
		})
		assert.Error(t, c.Health(context.Background()))
	})

	t.Run("degraded", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "degraded"})
		})
		assert.ErrorIs(t, c.Health(context.Background()), ErrUnhealthy)
	})
}

func TestContextCancelled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, []notes.Note{})
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
