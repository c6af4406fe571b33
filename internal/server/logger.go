// file: internal/server/logger.go
// version: 2.0.0
// guid: 1d2e3f4a-5b6c-7d8e-9f0a-1b2c3d4e5f6a

package server

import (
	"time"

	"github.com/gin-gonic/gin"
	ulid "github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// requestLogger tags each request with an ID and logs its outcome.
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = ulid.Make().String()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Int("bytes", c.Writer.Size()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client", c.ClientIP()),
			zap.String("request_id", id),
		}
		if c.Writer.Status() >= 500 {
			log.Error("request", fields...)
			return
		}
		log.Debug("request", fields...)
	}
}

// OperationLogger tracks the lifecycle of a handler operation
type OperationLogger struct {
	handler    string
	method     string
	path       string
	startTime  time.Time
	requestID  string
	resourceID string
	details    map[string]any
	log        *zap.Logger
}

// NewOperationLogger creates a new operation logger for the request in c.
func NewOperationLogger(handler string, c *gin.Context) *OperationLogger {
	return &OperationLogger{
		handler:   handler,
		method:    c.Request.Method,
		path:      c.FullPath(),
		startTime: time.Now(),
		requestID: c.GetString(requestIDKey),
		details:   make(map[string]any),
		log:       zap.L().Named("op"),
	}
}

// SetResourceID sets the resource ID being operated on
func (ol *OperationLogger) SetResourceID(id string) {
	ol.resourceID = id
}

// AddDetail adds a contextual detail to the operation log
func (ol *OperationLogger) AddDetail(key string, value any) {
	ol.details[key] = value
}

func (ol *OperationLogger) fields() []zap.Field {
	fields := []zap.Field{
		zap.String("handler", ol.handler),
		zap.String("method", ol.method),
		zap.String("path", ol.path),
		zap.Duration("duration", time.Since(ol.startTime)),
		zap.String("request_id", ol.requestID),
	}
	if ol.resourceID != "" {
		fields = append(fields, zap.String("resource", ol.resourceID))
	}
	if len(ol.details) > 0 {
		fields = append(fields, zap.Any("details", ol.details))
	}
	return fields
}

// LogSuccess logs the successful completion of the operation
func (ol *OperationLogger) LogSuccess(statusCode int) {
	ol.log.Debug("operation succeeded", append(ol.fields(), zap.Int("status", statusCode))...)
}

// LogError logs an error that occurred during the operation
func (ol *OperationLogger) LogError(err error) {
	ol.log.Info("operation failed", append(ol.fields(), zap.Error(err))...)
}
