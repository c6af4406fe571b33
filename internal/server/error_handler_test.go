// file: internal/server/error_handler_test.go
// version: 2.0.0
// guid: 6e7f8a9b-0c1d-2e3f-4a5b-6c7d8e9f0a1b

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdfalk/cover-preview/internal/preview"
	"github.com/jdfalk/cover-preview/internal/session"
)

func testContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestRespondWithDomainError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("path x: %w", preview.ErrNotFound), http.StatusNotFound, "COVER_NOT_FOUND"},
		{fmt.Errorf("abc: %w", session.ErrSessionNotFound), http.StatusNotFound, "SESSION_NOT_FOUND"},
		{preview.ErrUnknownKey, http.StatusBadRequest, "UNKNOWN_KEY"},
		{preview.ErrUnknownAction, http.StatusBadRequest, "UNKNOWN_ACTION"},
		{preview.ErrUnknownField, http.StatusBadRequest, "UNKNOWN_FIELD"},
		{preview.ErrIndexOutOfRange, http.StatusBadRequest, "INDEX_OUT_OF_RANGE"},
		{session.ErrInvalidID, http.StatusBadRequest, "BAD_REQUEST"},
		{session.ErrInvalidViewport, http.StatusBadRequest, "BAD_REQUEST"},
		{errors.New("disk on fire"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			c, w := testContext("/")
			RespondWithDomainError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Code)
			assert.Equal(t, tt.status, resp.Status)
			assert.Equal(t, tt.err.Error(), resp.Error)
			assert.True(t, c.IsAborted())
		})
	}
}

func TestRespondWithNotFound(t *testing.T) {
	c, w := testContext("/")
	RespondWithNotFound(c, "cover", "en/x")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "cover not found: en/x")
}

func TestHandleBindError(t *testing.T) {
	c, _ := testContext("/")
	assert.False(t, HandleBindError(c, nil))

	c, w := testContext("/")
	assert.True(t, HandleBindError(c, errors.New("Key: 'Key' Error:Field validation for 'Key' failed on the 'required' tag")))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")

	c, w = testContext("/")
	assert.True(t, HandleBindError(c, errors.New("unexpected EOF")))
	assert.Contains(t, w.Body.String(), "BAD_REQUEST")
}

func TestParseQueryInt(t *testing.T) {
	c, _ := testContext("/?limit=25&bad=x")
	assert.Equal(t, 25, ParseQueryInt(c, "limit", 50))
	assert.Equal(t, 50, ParseQueryInt(c, "bad", 50))
	assert.Equal(t, 7, ParseQueryInt(c, "missing", 7))
}
