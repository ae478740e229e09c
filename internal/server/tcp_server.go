package server

import (
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/arlo-voss/homedns/internal/dns"
	"github.com/arlo-voss/homedns/internal/handler"
)

// tcpReadTimeout bounds the single recv a TCP worker performs before
// giving up on a connection: one read, one write, then close, no
// pipelining.
const tcpReadTimeout = 5 * time.Second

// TCPServer implements the TCP half of the listener set: an accept
// loop that spawns one short-lived worker per connection. Each worker
// reads up to
// the message-size ceiling in a single recv, decodes, dispatches to
// Handler, encodes, writes the reply, and closes.
type TCPServer struct {
	Logger  *slog.Logger
	Handler *handler.Handler
	Stats   *DNSStats
}

// Serve runs the accept loop on ln until ctx is cancelled or the
// listener is closed.
func (s *TCPServer) Serve(ctx context.Context, ln net.Listener) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		go s.handleConn(ctx, conn)
	}
}

func (s *TCPServer) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	bufPtr := bufferPool.Get()
	defer bufferPool.Put(bufPtr)
	buf := *bufPtr

	_ = conn.SetReadDeadline(time.Now().Add(tcpReadTimeout))
	n, err := conn.Read(buf)
	if err != nil || n < 2+dns.HeaderSize {
		return
	}
	msg := buf[:n]

	query, err := dns.ParseQuery(msg, true)
	if err != nil {
		s.Logger.Debug("tcp decode failed", "err", err)
		return
	}

	resp := s.Handler.Handle(ctx, query)
	out, err := dns.BuildResponse(resp, true)
	if err != nil {
		s.Logger.Warn("tcp encode failed", "err", err)
		return
	}

	_ = conn.SetWriteDeadline(time.Now().Add(tcpReadTimeout))
	if _, err := conn.Write(out); err != nil {
		s.Logger.Debug("tcp reply send failed", "err", err)
		return
	}

	s.recordStats(resp)
}

func (s *TCPServer) recordStats(resp dns.Response) {
	if s.Stats == nil {
		return
	}
	s.Stats.RecordQuery("tcp")
	switch resp.Header.RCode {
	case dns.NxDomain:
		s.Stats.RecordNXDOMAIN()
	case dns.NoError:
	default:
		s.Stats.RecordError()
	}
}
