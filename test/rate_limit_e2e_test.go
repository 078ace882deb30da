//go:build e2e

package test

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

// writesPerMinute is small so the limiter trips quickly.
const writesPerMinute = 3

var limitedQuote = map[string]string{
	"type":        "quote",
	"quoteText":   "Slow down",
	"quoteAuthor": "Limiter",
}

func TestRateLimitE2E(t *testing.T) {
	limits := map[string]string{"WRITE_RATE_PER_MIN": strconv.Itoa(writesPerMinute)}
	env := newMongoEnv(t, limits)

	t.Run("writes_limited", func(t *testing.T) {
		for range writesPerMinute {
			assert.Equal(t, http.StatusCreated, postNote(t, env, limitedQuote))
		}
		assert.Equal(t, http.StatusTooManyRequests, postNote(t, env, limitedQuote))
	})

	t.Run("reads_not_limited", func(t *testing.T) {
		for range writesPerMinute * 2 {
			step{name: "list", path: notesEndpoint, status: http.StatusOK, check: listLen(writesPerMinute)}.run(t, env)
		}
	})

	t.Run("fresh_server_fresh_quota", func(t *testing.T) {
		other := newSQLiteEnv(t, limits)
		assert.Equal(t, http.StatusCreated, postNote(t, other, limitedQuote))
	})
}
