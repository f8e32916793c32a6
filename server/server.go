// Package server owns and coordinates all application components: the store,
// the filesystem watcher, the notification service, and the HTTP surface.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"claudeboard/api"
	"claudeboard/config"
	"claudeboard/log"
	"claudeboard/notifications"
	"claudeboard/store"
	"claudeboard/watcher"
)

// Server wires the components together. The watcher is the sole producer of
// notifications and the store is stateless, so there is no shared mutable
// state beyond the subscriber registry inside the notification service.
type Server struct {
	cfg *config.Config

	store   *store.Store
	notif   *notifications.Service
	watcher *watcher.Watcher

	router *gin.Engine
	http   *http.Server
}

// New creates a server with all components initialized but not yet started.
func New(cfg *config.Config) *Server {
	paths := cfg.Paths()

	s := &Server{cfg: cfg}
	s.store = store.New(paths)
	s.notif = notifications.NewService()
	s.watcher = watcher.New(paths, s.notif.Notify)
	s.setupRouter()

	log.Info().Str("claudeDir", cfg.ClaudeDir).Msg("server initialized")
	return s
}

// setupRouter creates and configures the Gin router
func (s *Server) setupRouter() {
	if !s.cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	s.router = gin.New()

	s.router.Use(gin.CustomRecovery(api.RecoveryHandler))
	s.router.Use(log.GinLogger())

	// CORS for development (UI dev server runs on its own port)
	if s.cfg.IsDevelopment() {
		s.router.Use(corsMiddleware())
	}

	// Gzip compression; the SSE endpoint needs unbuffered streaming
	s.router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{
		"/api/events",
	})))

	s.router.SetTrustedProxies(nil)

	api.SetupRoutes(s.router, api.NewHandlers(s.store, s.notif))
}

// corsMiddleware handles CORS for development environments
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Start starts the watcher and the HTTP server. Blocks until the HTTP server
// stops.
func (s *Server) Start() error {
	if err := s.watcher.Start(); err != nil {
		// The dashboard still serves reads without live updates
		log.Warn().Err(err).Msg("file watcher failed to start, live updates disabled")
	}

	s.http = &http.Server{
		Addr:     fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:  s.router,
		ErrorLog: log.StdErrorLogger(),
	}

	log.Info().
		Str("addr", s.http.Addr).
		Str("env", s.cfg.Env).
		Msg("HTTP server starting")

	return s.http.ListenAndServe()
}

// Shutdown gracefully shuts down the server: SSE clients are disconnected
// first so the HTTP server can drain, then the watcher stops.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("shutting down server")

	s.notif.Shutdown()

	if s.http != nil {
		if err := s.http.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("http server shutdown error")
		}
	}

	s.watcher.Stop()

	log.Info().Msg("server shutdown complete")
	return nil
}

// Component accessors for tests and the CLI layer
func (s *Server) Router() *gin.Engine                  { return s.router }
func (s *Server) Store() *store.Store                  { return s.store }
func (s *Server) Notifications() *notifications.Service { return s.notif }
