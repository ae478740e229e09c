// Package server implements the four fixed transport listeners: TCP
// and UDP, each over IPv4 and IPv6, all bound to port 53.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/arlo-voss/homedns/internal/handler"
)

// BindAddr is the fixed listening port; the DNS surface takes no
// flags or environment variables, so this is not configurable.
const BindAddr = "53"

// Runner orchestrates the four listeners' bind-then-serve lifecycle:
// sockets are bound first, and only then do the listeners start
// accepting.
type Runner struct {
	logger *slog.Logger
	stats  *DNSStats

	tcp4, tcp6 net.Listener
	udp4, udp6 *net.UDPConn
}

// NewRunner creates a Runner with its own DNS query counters.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger, stats: NewDNSStats()}
}

// DNSStats exposes the query counters for the admin surface to report.
func (r *Runner) DNSStats() *DNSStats {
	return r.stats
}

// reuseAddrControl sets SO_REUSEADDR on every socket this Runner binds, so a
// restart doesn't have to wait out a lingering TIME_WAIT from the previous
// process.
func reuseAddrControl(_, _ string, c syscall.RawConn) error {
	var sockErr error
	err := c.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	})
	if err != nil {
		return err
	}
	return sockErr
}

// Bind opens all four fixed sockets. A bind failure here is fatal;
// the caller is expected to log and exit on a non-nil error.
func (r *Runner) Bind() error {
	lc := net.ListenConfig{Control: reuseAddrControl}
	ctx := context.Background()

	var err error

	r.tcp4, err = lc.Listen(ctx, "tcp4", net.JoinHostPort("0.0.0.0", BindAddr))
	if err != nil {
		return fmt.Errorf("server: bind tcp4: %w", err)
	}
	r.tcp6, err = lc.Listen(ctx, "tcp6", net.JoinHostPort("::", BindAddr))
	if err != nil {
		return fmt.Errorf("server: bind tcp6: %w", err)
	}

	udp4Conn, err := lc.ListenPacket(ctx, "udp4", net.JoinHostPort("0.0.0.0", BindAddr))
	if err != nil {
		return fmt.Errorf("server: bind udp4: %w", err)
	}
	r.udp4 = udp4Conn.(*net.UDPConn)

	udp6Conn, err := lc.ListenPacket(ctx, "udp6", net.JoinHostPort("::", BindAddr))
	if err != nil {
		return fmt.Errorf("server: bind udp6: %w", err)
	}
	r.udp6 = udp6Conn.(*net.UDPConn)

	r.logger.Info("listening", "proto", "tcp", "family", "v4", "addr", r.tcp4.Addr())
	r.logger.Info("listening", "proto", "tcp", "family", "v6", "addr", r.tcp6.Addr())
	r.logger.Info("listening", "proto", "udp", "family", "v4", "addr", r.udp4.LocalAddr())
	r.logger.Info("listening", "proto", "udp", "family", "v6", "addr", r.udp6.LocalAddr())
	return nil
}

// Serve starts all four accept/recv loops against h and blocks until ctx
// is cancelled, then closes every listener and waits for in-flight
// workers to drain.
func (r *Runner) Serve(ctx context.Context, h *handler.Handler) error {
	tcp := &TCPServer{Logger: r.logger, Handler: h, Stats: r.stats}
	udp := &UDPServer{Logger: r.logger, Handler: h, Stats: r.stats}

	var wg sync.WaitGroup
	errCh := make(chan error, 4)

	wg.Add(4)
	go func() { defer wg.Done(); errCh <- tcp.Serve(ctx, r.tcp4) }()
	go func() { defer wg.Done(); errCh <- tcp.Serve(ctx, r.tcp6) }()
	go func() { defer wg.Done(); errCh <- udp.Serve(ctx, r.udp4) }()
	go func() { defer wg.Done(); errCh <- udp.Serve(ctx, r.udp6) }()

	<-ctx.Done()
	_ = r.tcp4.Close()
	_ = r.tcp6.Close()
	_ = r.udp4.Close()
	_ = r.udp6.Close()
	wg.Wait()
	close(errCh)

	for err := range errCh {
		if err != nil {
			return err
		}
	}
	return nil
}
