// Package api provides the supplemental REST management API for HomeDNS:
// health checks and runtime statistics over the DNS engine, via a
// Gin-based HTTP server. It only runs when Admin.Enabled is set; the DNS
// engine itself never depends on it.
package api

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/arlo-voss/homedns/internal/api/handlers"
	"github.com/arlo-voss/homedns/internal/api/middleware"
	"github.com/arlo-voss/homedns/internal/config"
)

// Server is the supplemental management REST API server. It is optional:
// cmd/homedns only starts it when the loaded config has Admin.Enabled set.
type Server struct {
	cfg        *config.Config
	logger     *slog.Logger
	engine     *gin.Engine
	handler    *handlers.Handler
	httpServer *http.Server
}

func New(cfg *config.Config, logger *slog.Logger) *Server {
	if cfg == nil {
		panic("api.New: cfg is nil")
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.SlogRequestLogger(logger))
	mountStaticLanding(engine)

	h := handlers.New(cfg, logger)
	RegisterRoutes(engine, h)

	addr := net.JoinHostPort(cfg.Admin.Host, strconv.Itoa(cfg.Admin.Port))
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &Server{cfg: cfg, logger: logger, engine: engine, handler: h, httpServer: httpServer}
}

// SetDNSStatsFunc wires the DNS engine's stats snapshot source into the
// /stats endpoint.
func (s *Server) SetDNSStatsFunc(fn handlers.DNSStatsFunc) {
	s.handler.SetDNSStatsFunc(fn)
}

func (s *Server) Addr() string {
	if s.httpServer == nil {
		return ""
	}
	return s.httpServer.Addr
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
