// file: internal/server/middleware/ratelimit_test.go
// version: 2.0.0
// guid: b31f3de0-b0bc-4cbf-8448-7309df38f7c0

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNewIPRateLimiter_Defaults(t *testing.T) {
	t.Parallel()

	limiter := NewIPRateLimiter(0, 0)
	assert.Equal(t, 1, limiter.requestsPerMin)
	assert.Equal(t, 1, limiter.burst)
}

func serve(router *gin.Engine, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/limited", nil)
	req.RemoteAddr = remote
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestIPRateLimiter_Middleware(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewIPRateLimiter(60, 1)
	limiter.now = func() time.Time { return now }

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(limiter.Middleware())
	router.GET("/limited", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	assert.Equal(t, http.StatusOK, serve(router, "192.0.2.1:1234").Code)

	resp := serve(router, "192.0.2.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, resp.Code)
	assert.Contains(t, resp.Body.String(), "RATE_LIMITED")
	assert.Equal(t, "1", resp.Header().Get("Retry-After"))

	// Different IP should have its own bucket.
	assert.Equal(t, http.StatusOK, serve(router, "198.51.100.3:4321").Code)

	// one request per second refills after a second
	now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, serve(router, "192.0.2.1:1234").Code)
}

func TestIPRateLimiter_EvictsIdleClients(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewIPRateLimiter(60, 1)
	limiter.now = func() time.Time { return now }

	limiter.limiterForIP("192.0.2.1", now)
	limiter.limiterForIP("192.0.2.2", now)
	assert.Equal(t, 2, limiter.Len())

	now = now.Add(time.Hour)
	limiter.limiterForIP("192.0.2.3", now)
	assert.Equal(t, 1, limiter.Len())
}
