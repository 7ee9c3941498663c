package routes

import (
	"github.com/crownweb/contact-relay/internal/api/handlers"
	"github.com/crownweb/contact-relay/internal/api/middleware"
	"github.com/crownweb/contact-relay/internal/config"
	"github.com/crownweb/contact-relay/internal/logging"

	"github.com/gin-gonic/gin"
)

// Handlers contains all the route handlers
type Handlers struct {
	Contact *handlers.ContactHandler
	Health  *handlers.HealthHandler
}

// Setup configures all routes
func Setup(router *gin.Engine, cfg *config.Config, h *Handlers) {
	SetupHealthRoutes(router, h.Health)
	SetupContactRoutes(router, h.Contact, cfg)
	SetupFallbackRoutes(router, cfg.StaticDir)

	logging.GetLogger().Info("All routes have been set up successfully")
}

// SetupGlobalMiddleware configures middleware that applies to all routes
func SetupGlobalMiddleware(router *gin.Engine, cfg *config.Config) {
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.GlobalRateLimitMiddleware(middleware.GlobalRateLimitConfig{
		RPS:   10,
		Burst: 20,
	}))
}
