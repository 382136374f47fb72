package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/garasiku/garasiku-server/internal/config"
	"github.com/garasiku/garasiku-server/pkg/certificates"
)

const apiPrefix = "/api/v1"

// Server wraps the gin engine and the underlying http.Server. Mode "dev"
// listens on plain HTTP and serves the API only; mode "prod" enables TLS with
// a self-signed certificate and serves the UI bundle from StaticsFolder.
type Server struct {
	cfg  *config.Configuration
	srv  *http.Server
	log  *zap.SugaredLogger
	prod bool
}

// NewServer builds the router and registers the API handlers through the
// callback, which receives a group prefixed with /api/v1.
func NewServer(cfg *config.Configuration, registerHandlerFn func(*gin.RouterGroup)) (*Server, error) {
	log := zap.S().Named("server")
	prod := cfg.Server.ServerMode == "prod"

	if prod {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	httpLog := zap.L().Named("http")
	router.Use(ginzap.Ginzap(httpLog, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(httpLog, true))

	registerHandlerFn(router.Group(apiPrefix))

	s := &Server{
		cfg:  cfg,
		log:  log,
		prod: prod,
		srv: &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Server.HTTPPort),
			Handler: router,
		},
	}

	if prod {
		if cfg.Server.StaticsFolder != "" {
			s.registerStatics(router)
		}
		cert, err := certificates.NewSelfSigned("localhost", "127.0.0.1")
		if err != nil {
			return nil, fmt.Errorf("generating TLS certificate: %w", err)
		}
		s.srv.TLSConfig = &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		}
	} else {
		router.NoRoute(apiNotFound)
	}

	return s, nil
}

// registerStatics serves the UI bundle. Unknown non-API paths fall back to
// index.html so client-side routing keeps working after a full page reload.
func (s *Server) registerStatics(router *gin.Engine) {
	statics := s.cfg.Server.StaticsFolder
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			apiNotFound(c)
			return
		}
		path := filepath.Join(statics, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			c.File(path)
			return
		}
		c.File(filepath.Join(statics, "index.html"))
	})
}

func apiNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
}

// Start blocks serving requests until the listener fails or Stop is called.
// It returns http.ErrServerClosed after a graceful shutdown.
func (s *Server) Start() error {
	if s.prod {
		s.log.Infow("listening", "addr", s.srv.Addr, "mode", "prod", "tls", true)
		return s.srv.ListenAndServeTLS("", "")
	}
	s.log.Infow("listening", "addr", s.srv.Addr, "mode", "dev", "tls", false)
	return s.srv.ListenAndServe()
}

// Stop drains in-flight requests and shuts the listener down.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("shutting down")
	return s.srv.Shutdown(ctx)
}
