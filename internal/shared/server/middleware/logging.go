package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"lexibridge-backend/internal/shared/telemetry"
)

const documentIDKey = "documentId"

// SetDocumentID records the document a handler acted on so the request log
// carries it. Empty IDs are ignored.
func SetDocumentID(c *gin.Context, documentID string) {
	if documentID == "" {
		return
	}
	c.Set(documentIDKey, documentID)
}

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()
		reqID := RequestIDFromContext(c)

		userID, _ := c.Get(userIDKey)
		documentID, _ := c.Get(documentIDKey)

		telemetry.Info("request.complete", map[string]any{
			"request_id":  reqID,
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      status,
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"user_id":     userID,
			"document_id": documentID,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		})
	}
}
