package respond

import (
	"github.com/gin-gonic/gin"

	"lexibridge-backend/internal/shared/telemetry"
)

// Error codes shared across handlers.
const (
	CodeValidation = "validation_error"
	CodeAuth       = "unauthorized"
	CodeNotFound   = "not_found"
	CodeConflict   = "conflict"
	CodeExtraction = "extraction_error"
	CodeAI         = "ai_error"
	CodeInternal   = "internal_error"
)

// ErrorResponse is the standardized error body. Detail carries the
// human-readable message clients display.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Detail  string `json:"detail"`
}

// Error sends a standardized error response and logs it.
func Error(c *gin.Context, status int, code, detail string) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"detail":     detail,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if userID := c.GetString("userId"); userID != "" {
		fields["user_id"] = userID
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, ErrorResponse{
		Success: false,
		Code:    code,
		Detail:  detail,
	})
}
