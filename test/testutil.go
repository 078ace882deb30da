//go:build e2e

package test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// check inspects a decoded JSON reply.
type check func(t *testing.T, body any)

// step is one JSON request and what its reply must look like.
type step struct {
	name   string
	method string
	path   string
	body   any
	status int
	check  check
}

// run sends the step to env and returns the decoded reply.
func (s step) run(t *testing.T, env *Env) any {
	t.Helper()
	t.Logf("step: %s", s.name)

	method := s.method
	if method == "" {
		method = http.MethodGet
	}

	resp, err := doJSON(env.HTTP, method, env.BaseURL+s.path, s.body)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, s.status, resp.StatusCode, s.name)

	var got any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got), s.name)

	if s.check != nil {
		s.check(t, got)
	}
	return got
}

func runSteps(t *testing.T, env *Env, steps ...step) []any {
	t.Helper()
	out := make([]any, 0, len(steps))
	for _, s := range steps {
		out = append(out, s.run(t, env))
	}
	return out
}

func object(t *testing.T, body any) map[string]any {
	t.Helper()
	obj, ok := body.(map[string]any)
	require.True(t, ok, "expected a JSON object, got %T", body)
	return obj
}

// hasFields requires each field to be present and non-empty.
func hasFields(fields ...string) check {
	return func(t *testing.T, body any) {
		t.Helper()
		obj := object(t, body)
		for _, f := range fields {
			require.Contains(t, obj, f)
			require.NotEmpty(t, obj[f], "field %s", f)
		}
	}
}

func errorContains(sub string) check {
	return func(t *testing.T, body any) {
		t.Helper()
		msg, ok := object(t, body)["error"].(string)
		require.True(t, ok, "reply has no error string: %v", body)
		assert.Contains(t, msg, sub)
	}
}

func messageIs(want string) check {
	return func(t *testing.T, body any) {
		t.Helper()
		assert.Equal(t, want, object(t, body)["message"])
	}
}

func listLen(n int) check {
	return func(t *testing.T, body any) {
		t.Helper()
		list, ok := body.([]any)
		require.True(t, ok, "expected a JSON array, got %T", body)
		assert.Len(t, list, n)
	}
}
