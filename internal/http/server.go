package http

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"

	"suviet_server/config"
	"suviet_server/internal/http/middleware"
	"suviet_server/pkg/colors"

	"github.com/gin-gonic/gin"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	cfg    *config.ServerConfig
	srv    *http.Server
}

// NewRouter builds the gin engine with middleware and routes
func NewRouter(cfg *config.ServerConfig, deps Dependencies) *gin.Engine {
	router := gin.New()

	// Only add logger middleware if LOG_HTTP is set to true
	if cfg.LogHTTP {
		router.Use(gin.Logger())
	}
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	SetupRoutes(router, deps)
	return router
}

// NewServer creates a new HTTP server instance
func NewServer(cfg *config.ServerConfig, deps Dependencies) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := NewRouter(cfg, deps)
	return &Server{
		router: router,
		cfg:    cfg,
		srv: &http.Server{
			Addr:    ":" + cfg.Port,
			Handler: router,
		},
	}
}

// Handler exposes the router
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called. A clean shutdown returns nil.
func (s *Server) Start() error {
	colors.PrintServer("🌐", "HTTP REST API Server starting on port %s", s.cfg.Port)

	var err error
	if s.cfg.HTTPSEnabled && s.tlsReady() {
		err = s.startHTTPS()
	} else {
		err = s.srv.ListenAndServe()
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// tlsReady checks the certificate settings, falling back to HTTP when incomplete
func (s *Server) tlsReady() bool {
	if s.cfg.CertFile == "" || s.cfg.KeyFile == "" {
		colors.PrintError("SSL_CERT_FILE and SSL_KEY_FILE environment variables must be set for HTTPS")
		colors.PrintWarning("Falling back to HTTP mode")
		return false
	}
	if _, err := os.Stat(s.cfg.CertFile); os.IsNotExist(err) {
		colors.PrintError("SSL certificate file not found: %s", s.cfg.CertFile)
		colors.PrintWarning("Falling back to HTTP mode")
		return false
	}
	if _, err := os.Stat(s.cfg.KeyFile); os.IsNotExist(err) {
		colors.PrintError("SSL key file not found: %s", s.cfg.KeyFile)
		colors.PrintWarning("Falling back to HTTP mode")
		return false
	}
	return true
}

// startHTTPS starts the server with HTTPS
func (s *Server) startHTTPS() error {
	s.srv.TLSConfig = &tls.Config{
		MinVersion: tls.VersionTLS12,
	}

	colors.PrintServer("🔒", "HTTPS server starting on port %s", s.cfg.Port)
	colors.PrintServer("📜", "Using SSL certificate: %s", s.cfg.CertFile)

	return s.srv.ListenAndServeTLS(s.cfg.CertFile, s.cfg.KeyFile)
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
