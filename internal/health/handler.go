package health

import (
	"time"

	"github.com/gin-gonic/gin"

	"lexibridge-backend/internal/shared/server/respond"
)

const apiVersion = "1.0.0"

// Handler reports liveness and the backing-service mode the process is
// running with.
type Handler struct {
	DatabaseConnected bool
	AIAvailable       bool
}

// NewHandler constructs a Handler.
func NewHandler(databaseConnected, aiAvailable bool) *Handler {
	return &Handler{DatabaseConnected: databaseConnected, AIAvailable: aiAvailable}
}

// RegisterRoutes attaches the health routes.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/", h.root)
	r.GET("/health", h.health)
}

func (h *Handler) root(c *gin.Context) {
	respond.OK(c, gin.H{
		"success":    true,
		"message":    "Lexibridge API is running",
		"status":     "active",
		"version":    apiVersion,
		"timestamp":  time.Now().UTC(),
		"database":   h.databaseMode(),
		"ai_service": h.aiMode(),
	})
}

func (h *Handler) health(c *gin.Context) {
	respond.OK(c, gin.H{
		"success":   true,
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"services": gin.H{
			"database":   h.databaseMode(),
			"ai_service": h.aiMode(),
		},
	})
}

func (h *Handler) databaseMode() string {
	if h.DatabaseConnected {
		return "connected"
	}
	return "in-memory"
}

func (h *Handler) aiMode() string {
	if h.AIAvailable {
		return "available"
	}
	return "mock"
}
