package core

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter implements a simple per-client rate limiting middleware. It is
// applied to the search endpoint, which is the only route that does work
// proportional to scraper traffic.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   int
	window  time.Duration
}

type client struct {
	requests []time.Time
	blocked  time.Time
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(requestsPerMinute int) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*client),
		limit:   requestsPerMinute,
		window:  time.Minute,
	}
}

// Middleware returns a Gin middleware function
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests",
			})
			return
		}

		c.Next()
	}
}

// Allow checks if a request should be allowed
func (rl *RateLimiter) Allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cl, exists := rl.clients[clientIP]
	if !exists {
		cl = &client{}
		rl.clients[clientIP] = cl
	}

	// Check if client is temporarily blocked
	if now.Before(cl.blocked) {
		return false
	}

	// Remove old requests outside the window
	cutoff := now.Add(-rl.window)
	valid := cl.requests[:0]
	for _, reqTime := range cl.requests {
		if reqTime.After(cutoff) {
			valid = append(valid, reqTime)
		}
	}
	cl.requests = valid

	// Check if limit exceeded
	if len(cl.requests) >= rl.limit {
		// Block for the remaining time window
		cl.blocked = now.Add(rl.window)
		return false
	}

	cl.requests = append(cl.requests, now)
	return true
}

// SecurityHeaders sets the usual response headers for a public site.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}
