// file: internal/server/middleware/request_size_test.go
// version: 2.0.0
// guid: 8f5ed221-2f04-49aa-86f7-f63fa1732b2d

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMethodHasBody(t *testing.T) {
	t.Parallel()

	assert.True(t, methodHasBody(http.MethodPost))
	assert.True(t, methodHasBody(http.MethodPut))
	assert.True(t, methodHasBody(http.MethodPatch))
	assert.False(t, methodHasBody(http.MethodGet))
	assert.False(t, methodHasBody(http.MethodDelete))
}

func TestSelectBodyLimit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(10), selectBodyLimit("/api/v1/sessions/abc/overrides/css", 1, 10))
	assert.Equal(t, int64(1), selectBodyLimit("/api/v1/sessions/abc/keys", 1, 10))
}

func TestMaxRequestBodySize_Middleware(t *testing.T) {
	t.Parallel()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(MaxRequestBodySize(8, 16))
	router.POST("/api/v1/sessions/:id/keys", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.PUT("/api/v1/sessions/:id/overrides/:field", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/api/v1/sessions/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	keyReq := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/a/keys", bytes.NewReader(bytes.Repeat([]byte("a"), 9)))
	keyResp := httptest.NewRecorder()
	router.ServeHTTP(keyResp, keyReq)
	assert.Equal(t, http.StatusRequestEntityTooLarge, keyResp.Code)
	assert.Contains(t, keyResp.Body.String(), "BODY_TOO_LARGE")

	overrideReq := httptest.NewRequest(http.MethodPut, "/api/v1/sessions/a/overrides/css", bytes.NewReader(bytes.Repeat([]byte("b"), 12)))
	overrideResp := httptest.NewRecorder()
	router.ServeHTTP(overrideResp, overrideReq)
	assert.Equal(t, http.StatusOK, overrideResp.Code)

	getResp := httptest.NewRecorder()
	router.ServeHTTP(getResp, httptest.NewRequest(http.MethodGet, "/api/v1/sessions/a", nil))
	assert.Equal(t, http.StatusOK, getResp.Code)
}

func TestMaxRequestBodySize_Defaults(t *testing.T) {
	t.Parallel()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(MaxRequestBodySize(0, 0))
	router.POST("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/x", bytes.NewReader(make([]byte, 1<<16+1))))
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.Code)
}
