package server

import (
	"io"

	"github.com/crownweb/contact-relay/internal/api/handlers"
	"github.com/crownweb/contact-relay/internal/api/validation"
	"github.com/crownweb/contact-relay/internal/config"
	"github.com/crownweb/contact-relay/internal/logging"
	"github.com/crownweb/contact-relay/internal/server/routes"
	"github.com/crownweb/contact-relay/internal/service"

	"github.com/gin-gonic/gin"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	cfg    *config.Config
}

// NewServer wires the configurable pipeline: validator -> rate limiter ->
// dispatcher, with the ambient middleware around it.
func NewServer(cfg *config.Config, sender service.Sender) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Disable Gin's default logger entirely because we're using our custom logger
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	// Create a new engine without default middleware
	router := gin.New()

	routes.SetupGlobalMiddleware(router, cfg)

	h := &routes.Handlers{
		Contact: handlers.NewContactHandler(validation.New(), sender, !cfg.IsProduction()),
		Health:  handlers.NewHealthHandler(),
	}
	routes.Setup(router, cfg, h)

	return &Server{
		router: router,
		cfg:    cfg,
	}
}

// Start starts the server
func (s *Server) Start() error {
	logger := logging.GetLogger()

	// The port stays out of production logs
	if s.cfg.IsProduction() {
		logger.Info("Server running in production mode")
	} else {
		logger.Info("Server running on port %s", s.cfg.Port)
	}

	return s.router.Run(":" + s.cfg.Port)
}
