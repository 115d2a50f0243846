package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/hotel-reservation/internal/config"
)

func limitedHandler(t *testing.T, cfg config.RateLimitConfig, rdb *redis.Client) func() *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	h := NewRateLimit(cfg, rdb)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/v1/rooms", nil)
		rec := httptest.NewRecorder()
		if err := h(e.NewContext(req, rec)); err != nil {
			t.Fatalf("middleware returned error: %v", err)
		}
		return rec
	}
}

func TestRateLimitEnforcesLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	cfg := config.RateLimitConfig{Enabled: true, Limit: 2, Window: time.Minute, Prefix: "rl"}
	do := limitedHandler(t, cfg, rdb)

	for i := 0; i < 2; i++ {
		if rec := do(); rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i+1, rec.Code)
		}
	}
	rec := do()
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("over-limit status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("429 response missing Retry-After")
	}
}

func TestRateLimitSubSecondWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	// Windows under one second must be served, not panic the bucket math.
	cfg := config.RateLimitConfig{Enabled: true, Limit: 1, Window: 500 * time.Millisecond, Prefix: "rl"}
	do := limitedHandler(t, cfg, rdb)

	if rec := do(); rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", rec.Code)
	}
	if rec := do(); rec.Code != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want 429", rec.Code)
	}
}

func TestRateLimitDisabledPassesThrough(t *testing.T) {
	do := limitedHandler(t, config.RateLimitConfig{Enabled: false}, nil)
	for i := 0; i < 5; i++ {
		if rec := do(); rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 with the limiter disabled", rec.Code)
		}
	}
}
