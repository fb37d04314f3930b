package server

import (
	"strings"

	"github.com/gin-gonic/gin"

	"lexibridge-backend/internal/analyses"
	"lexibridge-backend/internal/documents"
	"lexibridge-backend/internal/health"
	"lexibridge-backend/internal/shared/auth"
	"lexibridge-backend/internal/shared/config"
	"lexibridge-backend/internal/shared/server/middleware"
	"lexibridge-backend/internal/users"
)

// RouterDeps carries the handlers and shared collaborators the router
// needs. Bootstrap fills it in; tests can substitute pieces.
type RouterDeps struct {
	Config          config.Config
	Issuer          *auth.Issuer
	Identity        middleware.IdentityResolver
	HealthHandler   *health.Handler
	UserHandler     *users.Handler
	DocumentHandler *documents.Handler
	AnalysisHandler *analyses.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	deps.HealthHandler.RegisterRoutes(r)
	deps.UserHandler.RegisterPublicRoutes(r)

	protected := r.Group("/")
	protected.Use(middleware.Auth(deps.Issuer, deps.Identity))
	deps.UserHandler.RegisterProtectedRoutes(protected)
	deps.DocumentHandler.RegisterRoutes(protected)
	deps.AnalysisHandler.RegisterRoutes(protected)

	return r
}

// Addr normalizes a port value into a listen address.
func Addr(port string) string {
	port = strings.TrimSpace(port)
	if port == "" {
		port = "8000"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}
