package routes

import (
	"github.com/crownweb/contact-relay/internal/api/handlers"
	"github.com/crownweb/contact-relay/internal/api/middleware"
	"github.com/crownweb/contact-relay/internal/config"

	"github.com/gin-gonic/gin"
)

// SetupContactRoutes configures the contact form route.
// The per-client window policy applies only here; exceeding it answers
// before the validator or dispatcher run.
func SetupContactRoutes(router *gin.Engine, contact *handlers.ContactHandler, cfg *config.Config) {
	router.POST("/send-email",
		middleware.RateLimitMiddleware(middleware.RateLimitConfig{
			Max:    cfg.RateLimitMax,
			Window: cfg.RateLimitWindow,
		}),
		contact.Send,
	)
}
