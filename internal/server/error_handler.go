// file: internal/server/error_handler.go
// version: 2.0.0
// guid: 5d6e7f8a-9b0c-1d2e-3f4a-5b6c7d8e9f0a

package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jdfalk/cover-preview/internal/preview"
	"github.com/jdfalk/cover-preview/internal/session"
)

// ErrorResponse provides a consistent error response format
type ErrorResponse struct {
	Error  string `json:"error"`
	Code   string `json:"code,omitempty"`
	Status int    `json:"status"`
}

// RespondWithError sends a standardized error response and logs the error
func RespondWithError(c *gin.Context, statusCode int, message string, code string) {
	logErrorWithContext(c, statusCode, message)

	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Error:  message,
		Code:   code,
		Status: statusCode,
	})
}

// RespondWithBadRequest sends a 400 Bad Request error response
func RespondWithBadRequest(c *gin.Context, message string) {
	RespondWithError(c, http.StatusBadRequest, message, "BAD_REQUEST")
}

// RespondWithValidationError sends a 400 error for validation failures
func RespondWithValidationError(c *gin.Context, field string, reason string) {
	message := "validation error: " + field
	if reason != "" {
		message = message + " (" + reason + ")"
	}
	RespondWithError(c, http.StatusBadRequest, message, "VALIDATION_ERROR")
}

// RespondWithNotFound sends a 404 Not Found error response
func RespondWithNotFound(c *gin.Context, resourceType string, id string) {
	message := resourceType + " not found"
	if id != "" {
		message = message + ": " + id
	}
	RespondWithError(c, http.StatusNotFound, message, "NOT_FOUND")
}

// RespondWithInternalError sends a 500 Internal Server Error response
func RespondWithInternalError(c *gin.Context, message string) {
	RespondWithError(c, http.StatusInternalServerError, message, "INTERNAL_ERROR")
}

// RespondWithDomainError maps preview and session errors onto the envelope.
func RespondWithDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, preview.ErrNotFound):
		RespondWithError(c, http.StatusNotFound, err.Error(), "COVER_NOT_FOUND")
	case errors.Is(err, session.ErrSessionNotFound):
		RespondWithError(c, http.StatusNotFound, err.Error(), "SESSION_NOT_FOUND")
	case errors.Is(err, preview.ErrUnknownKey):
		RespondWithError(c, http.StatusBadRequest, err.Error(), "UNKNOWN_KEY")
	case errors.Is(err, preview.ErrUnknownAction):
		RespondWithError(c, http.StatusBadRequest, err.Error(), "UNKNOWN_ACTION")
	case errors.Is(err, preview.ErrUnknownField):
		RespondWithError(c, http.StatusBadRequest, err.Error(), "UNKNOWN_FIELD")
	case errors.Is(err, preview.ErrIndexOutOfRange):
		RespondWithError(c, http.StatusBadRequest, err.Error(), "INDEX_OUT_OF_RANGE")
	case errors.Is(err, session.ErrInvalidID), errors.Is(err, session.ErrInvalidViewport):
		RespondWithBadRequest(c, err.Error())
	default:
		RespondWithInternalError(c, err.Error())
	}
}

// RespondWithList sends a successful list response with pagination info
func RespondWithList(c *gin.Context, items any, count int, limit int, offset int) {
	c.JSON(http.StatusOK, gin.H{
		"items":  items,
		"count":  count,
		"limit":  limit,
		"offset": offset,
	})
}

// RespondWithNoContent sends a 204 No Content response
func RespondWithNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// logErrorWithContext logs an error with request context for debugging
func logErrorWithContext(c *gin.Context, statusCode int, message string) {
	fields := []zap.Field{
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", statusCode),
		zap.String("client", c.ClientIP()),
	}
	if statusCode >= http.StatusInternalServerError {
		zap.L().Error(message, fields...)
		return
	}
	zap.L().Warn(message, fields...)
}

// HandleBindError handles JSON binding errors with a consistent response
func HandleBindError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	errMsg := err.Error()
	if strings.Contains(errMsg, "required") || strings.Contains(errMsg, "binding") {
		RespondWithValidationError(c, "request body", errMsg)
	} else {
		RespondWithBadRequest(c, "invalid request: "+errMsg)
	}
	return true
}

// ParseQueryInt parses an integer query parameter with a default value
func ParseQueryInt(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.DefaultQuery(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
