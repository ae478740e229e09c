package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/arlo-voss/homedns/internal/api"
	"github.com/arlo-voss/homedns/internal/config"
	"github.com/arlo-voss/homedns/internal/handler"
	"github.com/arlo-voss/homedns/internal/logging"
	"github.com/arlo-voss/homedns/internal/server"
	"github.com/arlo-voss/homedns/internal/store"
	"github.com/arlo-voss/homedns/internal/upstream"
)

// DefaultStorePath is the fixed location of the persistent record store.
// The DNS engine takes no flags or environment variables: this path,
// like the listener ports and the upstream endpoint, is a constant.
const DefaultStorePath = "./data/domains.db"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// cliFlags holds the only command-line input this binary accepts: the
// path to the optional admin-surface config file. Everything governing
// the DNS engine itself is a fixed constant.
type cliFlags struct {
	configPath string
}

func parseFlags() cliFlags {
	var f cliFlags
	flag.StringVar(&f.configPath, "config", "", "Path to admin-surface YAML config file (optional)")
	flag.Parse()
	return f
}

func run() error {
	flags := parseFlags()

	cfgPath := config.ResolveConfigPath(flags.configPath)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.Configure(logging.Config{
		Level:            cfg.Logging.Level,
		Structured:       cfg.Logging.Structured,
		StructuredFormat: cfg.Logging.StructuredFormat,
		IncludePID:       cfg.Logging.IncludePID,
		ExtraFields:      cfg.Logging.ExtraFields,
	})
	logger.Info("homedns starting", "store", DefaultStorePath, "upstream", upstream.DefaultEndpoint)

	// Sockets are bound before the store is opened, so a port already
	// in use is reported first.
	runner := server.NewRunner(logger)
	if err := runner.Bind(); err != nil {
		return fmt.Errorf("failed to bind listeners: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(DefaultStorePath), 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	upstreamClient := upstream.New(upstream.DefaultEndpoint, nil)

	st, err := store.Open(DefaultStorePath, upstreamClient)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	h := handler.New(st, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var apiSrv *api.Server
	if cfg.Admin.Enabled {
		apiSrv = api.New(cfg, logger)
		apiSrv.SetDNSStatsFunc(runner.DNSStats().Snapshot)

		logger.Info("admin surface starting", "addr", apiSrv.Addr())
		go func() {
			serveErr := apiSrv.ListenAndServe()
			if serveErr == nil || errors.Is(serveErr, http.ErrServerClosed) {
				return
			}
			logger.Error("admin surface error", "err", serveErr)
			cancel()
		}()
	}

	serveErr := runner.Serve(ctx, h)

	if apiSrv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = apiSrv.Shutdown(shutdownCtx)
		shutdownCancel()
		logger.Info("admin surface stopped")
	}

	if serveErr != nil {
		return fmt.Errorf("server exited with error: %w", serveErr)
	}
	return nil
}
