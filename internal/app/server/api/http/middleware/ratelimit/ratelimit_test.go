package ratelimit

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/slog"
)

func TestLimiter_Allow(t *testing.T) {
	_, api := humatest.New(t)
	l := New(api, 2, slog.Default())
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("1.1.1.1"))
	assert.True(t, l.Allow("1.1.1.1"))
	assert.False(t, l.Allow("1.1.1.1"))

	// Separate bucket per key.
	assert.True(t, l.Allow("2.2.2.2"))

	now = now.Add(30 * time.Second)
	assert.True(t, l.Allow("1.1.1.1"))
	assert.False(t, l.Allow("1.1.1.1"))
}

func TestLimiter_SweepsIdleVisitors(t *testing.T) {
	_, api := humatest.New(t)
	l := New(api, 2, slog.Default())
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.Allow("1.1.1.1")
	now = now.Add(idleTTL + time.Minute)
	l.Allow("2.2.2.2")

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Len(t, l.visitors, 1)
	assert.Contains(t, l.visitors, "2.2.2.2")
}

func TestLimiter_Middleware(t *testing.T) {
	_, api := humatest.New(t)
	l := New(api, 1, slog.Default())

	huma.Register(api, huma.Operation{
		OperationID: "ping",
		Method:      http.MethodGet,
		Path:        "/ping",
		Middlewares: huma.Middlewares{l.Middleware()},
	}, func(context.Context, *struct{}) (*struct{}, error) {
		return nil, nil
	})

	assert.Equal(t, http.StatusNoContent, api.Get("/ping").Code)

	resp := api.Get("/ping")
	assert.Equal(t, http.StatusTooManyRequests, resp.Code)
	assert.NotEmpty(t, resp.Header().Get("Retry-After"))
}

func TestClientIP(t *testing.T) {
	assert.Equal(t, "10.0.0.1", clientIP("10.0.0.1:5555"))
	assert.Equal(t, "::1", clientIP("[::1]:80"))
	assert.Equal(t, "garbage", clientIP("garbage"))
}

func TestLimiter_MiddlewarePerRoute(t *testing.T) {
	_, api := humatest.New(t)
	l := New(api, 1, slog.Default(), PerRoute())
	mw := huma.Middlewares{l.Middleware()}

	for _, path := range []string{"/signup", "/signin"} {
		huma.Register(api, huma.Operation{
			OperationID: path[1:],
			Method:      http.MethodPost,
			Path:        path,
			Middlewares: mw,
		}, func(context.Context, *struct{}) (*struct{}, error) {
			return nil, nil
		})
	}

	assert.Equal(t, http.StatusNoContent, api.Post("/signup").Code)
	assert.Equal(t, http.StatusNoContent, api.Post("/signin").Code)

	assert.Equal(t, http.StatusTooManyRequests, api.Post("/signup").Code)
	assert.Equal(t, http.StatusTooManyRequests, api.Post("/signin").Code)
}
