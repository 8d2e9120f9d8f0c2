// Package httpapi is the Gin HTTP edge wrapping the reservation
// engine, staff directory, session issuer, and notification hub. It
// is the "HTTP framing layer" spec.md marks out of scope for the core
// but presupposes as a caller.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mpcs-reservation/internal/authn"
	"mpcs-reservation/internal/config"
	"mpcs-reservation/internal/engine"
	"mpcs-reservation/internal/notify"
	"mpcs-reservation/internal/staffdir"
)

// Server owns the gin.Engine and the underlying http.Server.
type Server struct {
	router     *gin.Engine
	logger     *slog.Logger
	config     *config.Config
	handlers   *Handlers
	issuer     *authn.Issuer
	authMW     gin.HandlerFunc
	httpServer *http.Server
}

// New builds a Server wiring eng, staff, issuer, and hub behind the
// route table in routes.go.
func New(cfg *config.Config, logger *slog.Logger, eng *engine.Engine, staff staffdir.Repository, issuer *authn.Issuer, hub *notify.Hub) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	s := &Server{
		router:   router,
		logger:   logger,
		config:   cfg,
		handlers: NewHandlers(eng, staff, issuer, hub, logger),
		issuer:   issuer,
		authMW:   authn.Middleware(issuer, logger),
		httpServer: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
	s.setupRoutes()
	return s
}

func (s *Server) authMiddleware(c *gin.Context) {
	s.authMW(c)
}

func (s *Server) requireRole(allowed ...staffdir.Role) gin.HandlerFunc {
	return authn.RequireRole(allowed...)
}

// Start runs the HTTP server until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("starting http server", "address", s.httpServer.Addr, "environment", s.config.Environment)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.httpServer.Shutdown(ctx)
}

// Router exposes the gin.Engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
