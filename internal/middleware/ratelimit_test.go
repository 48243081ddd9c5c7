package middleware

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingLimiter struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func (l *countingLimiter) Hit(_ context.Context, key string, _ time.Duration) (int64, error) {
	if l.err != nil {
		return 0, l.err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.counts == nil {
		l.counts = map[string]int64{}
	}
	l.counts[key]++
	return l.counts[key], nil
}

func newRateLimitApp(limiter Limiter, max int) *fiber.App {
	app := newTestApp()
	app.Use(NewRateLimitMiddleware(limiter, RateLimitConfig{
		Max:    max,
		Window: time.Minute,
		Skip:   HealthSkipper,
	}).Handler())
	app.Get("/questions", func(c *fiber.Ctx) error { return c.SendString("[]") })
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("rejects requests over the limit", func(t *testing.T) {
		app := newRateLimitApp(&countingLimiter{}, 2)

		for i, wantRemaining := range []string{"1", "0"} {
			resp, err := app.Test(httptest.NewRequest("GET", "/questions", nil))
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode, "request %d", i)
			assert.Equal(t, "2", resp.Header.Get("X-RateLimit-Limit"))
			assert.Equal(t, wantRemaining, resp.Header.Get("X-RateLimit-Remaining"))
		}

		resp, err := app.Test(httptest.NewRequest("GET", "/questions", nil))
		require.NoError(t, err)
		assert.Equal(t, 429, resp.StatusCode)
		assert.Equal(t, "60", resp.Header.Get("Retry-After"))

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"error":"Rate limit exceeded"}`, string(body))
	})

	t.Run("skips health checks", func(t *testing.T) {
		limiter := &countingLimiter{}
		app := newRateLimitApp(limiter, 1)

		for i := 0; i < 3; i++ {
			resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)
		}
		assert.Empty(t, limiter.counts)
	})

	t.Run("fails open when the limiter errors", func(t *testing.T) {
		app := newRateLimitApp(&countingLimiter{err: errors.New("redis down")}, 1)

		for i := 0; i < 3; i++ {
			resp, err := app.Test(httptest.NewRequest("GET", "/questions", nil))
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)
			assert.Empty(t, resp.Header.Get("X-RateLimit-Limit"))
		}
	})
}

func TestNewRateLimitMiddlewareDefaults(t *testing.T) {
	m := NewRateLimitMiddleware(&countingLimiter{}, RateLimitConfig{})
	assert.Equal(t, 100, m.config.Max)
	assert.Equal(t, time.Minute, m.config.Window)
	assert.NotNil(t, m.config.KeyGenerator)
	assert.NotNil(t, m.config.Logger)
}
