// file: internal/server/middleware/ratelimit.go
// version: 2.0.0
// guid: 1331705a-85cb-4158-92f5-5ce203d8a0e7

// Package middleware holds gin middleware shared by the API routes.
package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter is a lightweight per-IP token bucket limiter.
type IPRateLimiter struct {
	mu             sync.Mutex
	entries        map[string]*limiterEntry
	requestsPerMin int
	burst          int
	idleTTL        time.Duration
	now            func() time.Time
}

// NewIPRateLimiter allows requestsPerMinute per client IP with the given burst.
func NewIPRateLimiter(requestsPerMinute int, burst int) *IPRateLimiter {
	if requestsPerMinute < 1 {
		requestsPerMinute = 1
	}
	if burst < 1 {
		burst = 1
	}
	return &IPRateLimiter{
		entries:        make(map[string]*limiterEntry),
		requestsPerMin: requestsPerMinute,
		burst:          burst,
		idleTTL:        15 * time.Minute,
		now:            time.Now,
	}
}

func (r *IPRateLimiter) limiterForIP(ip string, now time.Time) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, entry := range r.entries {
		if now.Sub(entry.lastSeen) > r.idleTTL {
			delete(r.entries, key)
		}
	}

	entry, ok := r.entries[ip]
	if !ok {
		perSecond := float64(r.requestsPerMin) / 60.0
		entry = &limiterEntry{limiter: rate.NewLimiter(rate.Limit(perSecond), r.burst)}
		r.entries[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// Len returns the number of tracked clients.
func (r *IPRateLimiter) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Middleware returns a Gin middleware that enforces the configured limit.
func (r *IPRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}
		now := r.now()
		limiter := r.limiterForIP(ip, now)
		if !limiter.AllowN(now, 1) {
			wait := time.Duration(float64(time.Second) / float64(limiter.Limit()))
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":  "rate limit exceeded",
				"code":   "RATE_LIMITED",
				"status": http.StatusTooManyRequests,
			})
			return
		}
		c.Next()
	}
}
