// Package client talks to the note-slides HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"note-slides/internal/services/notes"
)

// DefaultTimeout applies when no http.Client is supplied.
const DefaultTimeout = 10 * time.Second

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// ErrUnhealthy is returned by Health when the server answers but reports a
// status other than "ok".
var ErrUnhealthy = errors.New("service reported unhealthy")

// ErrDecode is returned when a success response body cannot be decoded.
var ErrDecode = errors.New("decode response")

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: HTTP %d", e.Status)
	}
	return fmt.Sprintf("api error: HTTP %d: %s", e.Status, e.Message)
}

// Client is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New returns a client for the server at baseURL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be an absolute http(s) url", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalised server address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List returns every note in display order.
func (c *Client) List(ctx context.Context) ([]*notes.Note, error) {
	var out []*notes.Note
	if err := c.do(ctx, http.MethodGet, "/api/notes", nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []*notes.Note{}
	}
	return out, nil
}

// Get returns one note.
func (c *Client) Get(ctx context.Context, id string) (*notes.Note, error) {
	var out notes.Note
	if err := c.do(ctx, http.MethodGet, notePath(id), nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create stores a new note.
func (c *Client) Create(ctx context.Context, req notes.CreateNoteRequest) (*notes.Note, error) {
	var out notes.Note
	if err := c.do(ctx, http.MethodPost, "/api/notes", req, http.StatusCreated, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update overwrites the fields present in req.
func (c *Client) Update(ctx context.Context, id string, req notes.UpdateNoteRequest) (*notes.Note, error) {
	var out notes.Note
	if err := c.do(ctx, http.MethodPut, notePath(id), req, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes one note.
func (c *Client) Delete(ctx context.Context, id string) error {
	var out notes.DeleteNoteResponse
	return c.do(ctx, http.MethodDelete, notePath(id), nil, http.StatusOK, &out)
}

type healthResp struct {
	Status string `json:"status"`
}

// Health calls /healthz.
func (c *Client) Health(ctx context.Context) error {
	var h healthResp
	if err := c.do(ctx, http.MethodGet, "/healthz", nil, http.StatusOK, &h); err != nil {
		return err
	}
	if h.Status != "" && h.Status != "ok" {
		return fmt.Errorf("%w: %q", ErrUnhealthy, h.Status)
	}
	return nil
}

func notePath(id string) string {
	return "/api/notes/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, body any, want int, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != want {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return nil
}

// decodeError maps an error response back onto the domain errors the server
// started from.
func decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	msg := strings.TrimSpace(string(data))
	if json.Unmarshal(data, &payload) == nil {
		switch {
		case payload.Error != "":
			msg = payload.Error
		case payload.Message != "":
			msg = payload.Message
		}
	}
	apiErr := &APIError{Status: resp.StatusCode, Message: msg}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return &notes.ValidationError{Group: "request", Message: msg}
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", notes.ErrNoteNotFound, apiErr)
	case http.StatusConflict:
		return fmt.Errorf("%w: %w", notes.ErrOrderConflict, apiErr)
	default:
		return fmt.Errorf("%w: %w", notes.ErrStorage, apiErr)
	}
}
