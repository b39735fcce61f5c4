package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllowExhaustsBudget(t *testing.T) {
	rl := NewRateLimiter(3, time.Hour)

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))
}

func TestRateLimiterIsPerIdentifier(t *testing.T) {
	rl := NewRateLimiter(1, time.Hour)

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))
	// A different caller has its own budget.
	assert.True(t, rl.Allow("10.0.0.2"))
}

func TestRateLimiterRefills(t *testing.T) {
	// 100ms window over 2 tokens: one token back every 50ms.
	rl := NewRateLimiter(2, 100*time.Millisecond)

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))

	time.Sleep(60 * time.Millisecond)
	assert.True(t, rl.Allow("10.0.0.1"))
}

func TestLoginRouteHasItsOwnBudget(t *testing.T) {
	app, _ := newTestApp(t)
	cfg := testConfig()
	cfg.LoginRateLimit = 2
	limited := NewApp(app.DB, cfg)

	r := gin.New()
	limited.SetupRoutes(r)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth/login", nil))
		codes = append(codes, w.Code)
	}

	// The first two fail credential validation, the third is throttled
	// before the handler runs at all.
	assert.Equal(t, []int{http.StatusBadRequest, http.StatusBadRequest, http.StatusTooManyRequests}, codes)
}

func TestRateLimitMiddlewareReturns429(t *testing.T) {
	rl := NewRateLimiter(2, time.Hour)

	r := gin.New()
	r.Use(rl.Middleware("Too many requests from this IP, please try again in 15 minutes."))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
