// file: internal/server/middleware/request_size.go
// version: 2.0.0
// guid: f2129ae7-cf11-4888-bd4f-ab4b578f8f18

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func methodHasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	default:
		return false
	}
}

// override bodies carry whole stylesheets and HTML fragments
func selectBodyLimit(path string, jsonLimitBytes, overrideLimitBytes int64) int64 {
	if strings.Contains(path, "/overrides/") {
		return overrideLimitBytes
	}
	return jsonLimitBytes
}

// MaxRequestBodySize enforces request body limits by route class.
func MaxRequestBodySize(jsonLimitBytes, overrideLimitBytes int64) gin.HandlerFunc {
	if jsonLimitBytes < 1 {
		jsonLimitBytes = 1 << 16
	}
	if overrideLimitBytes < jsonLimitBytes {
		overrideLimitBytes = jsonLimitBytes
	}

	return func(c *gin.Context) {
		if !methodHasBody(c.Request.Method) {
			c.Next()
			return
		}

		limit := selectBodyLimit(c.Request.URL.Path, jsonLimitBytes, overrideLimitBytes)
		if c.Request.ContentLength > limit {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"error":  "request body too large",
				"code":   "BODY_TOO_LARGE",
				"status": http.StatusRequestEntityTooLarge,
			})
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
