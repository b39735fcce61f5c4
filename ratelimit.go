package main

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter is a per-identifier token bucket. Each caller IP gets a
// bucket of maxTokens that refills one token per refill interval.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket

	maxTokens int
	refill    time.Duration
}

type bucket struct {
	tokens     int
	lastRefill time.Time
}

// NewRateLimiter allows maxTokens requests per window per identifier.
func NewRateLimiter(maxTokens int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		buckets:   make(map[string]*bucket),
		maxTokens: maxTokens,
		refill:    window / time.Duration(maxTokens),
	}
}

// Allow consumes one token for the identifier, reporting whether the
// request is within budget.
func (rl *RateLimiter) Allow(identifier string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[identifier]
	if !ok {
		rl.buckets[identifier] = &bucket{tokens: rl.maxTokens - 1, lastRefill: time.Now()}
		return true
	}

	elapsed := time.Since(b.lastRefill)
	if added := int(elapsed / rl.refill); added > 0 {
		b.tokens += added
		if b.tokens > rl.maxTokens {
			b.tokens = rl.maxTokens
		}
		b.lastRefill = time.Now()
	}

	if b.tokens > 0 {
		b.tokens--
		return true
	}
	return false
}

// Middleware applies the limiter per client IP. Exceeding the budget is
// a throttling response, not a domain error.
func (rl *RateLimiter) Middleware(message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			jsonError(c, http.StatusTooManyRequests, message)
			c.Abort()
			return
		}
		c.Next()
	}
}
