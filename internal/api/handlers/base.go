// Package handlers implements the REST API endpoint handlers for HomeDNS.
//
// @title HomeDNS Management API
// @version 1.0
// @description REST API for monitoring HomeDNS server health and statistics.
//
// @contact.name HomeDNS Support
// @contact.url https://github.com/arlo-voss/homedns
//
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
//
// @host localhost:8080
// @BasePath /api/v1
package handlers

import (
	"log/slog"
	"sync"
	"time"

	"github.com/arlo-voss/homedns/internal/config"
	"github.com/arlo-voss/homedns/internal/server"
)

// DNSStatsFunc returns a point-in-time snapshot of the DNS engine's query
// counters. The handler doesn't own the engine; it's handed a snapshot
// source once the engine's Runner is up.
type DNSStatsFunc func() server.DNSStatsSnapshot

// Handler contains dependencies for API handlers.
type Handler struct {
	cfg       *config.Config
	logger    *slog.Logger
	startTime time.Time

	mu           sync.RWMutex
	dnsStatsFunc DNSStatsFunc
}

// New creates a new Handler with the given configuration.
func New(cfg *config.Config, logger *slog.Logger) *Handler {
	return &Handler{
		cfg:       cfg,
		logger:    logger,
		startTime: time.Now(),
	}
}

// SetDNSStatsFunc wires the DNS engine's stats snapshot source into the
// handler. Called once, after the engine's Runner has bound its listeners.
func (h *Handler) SetDNSStatsFunc(fn DNSStatsFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dnsStatsFunc = fn
}

// GetDNSStatsFunc returns the currently wired stats snapshot source, or nil
// if none has been set yet.
func (h *Handler) GetDNSStatsFunc() DNSStatsFunc {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.dnsStatsFunc
}
