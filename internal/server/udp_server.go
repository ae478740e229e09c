package server

import (
	"context"
	"log/slog"
	"net"

	"github.com/arlo-voss/homedns/internal/dns"
	"github.com/arlo-voss/homedns/internal/handler"
	"github.com/arlo-voss/homedns/internal/pool"
)

// bufferPool reduces allocations for the fixed receive-buffer ceiling
// (2048 bytes per message), shared by the UDP and TCP servers.
var bufferPool = pool.New(func() *[]byte {
	buf := make([]byte, dns.MaxMessageSize)
	return &buf
})

// UDPServer implements the UDP half of the listener set: a single
// recv loop per socket running in its own long-lived goroutine,
// handing each datagram off to a fresh short-lived worker.
type UDPServer struct {
	Logger  *slog.Logger
	Handler *handler.Handler
	Stats   *DNSStats
}

// Serve runs the recv loop on conn until ctx is cancelled or the socket
// is closed.
func (s *UDPServer) Serve(ctx context.Context, conn *net.UDPConn) error {
	for {
		bufPtr := bufferPool.Get()
		buf := *bufPtr

		n, peer, err := conn.ReadFromUDP(buf)
		if err != nil {
			bufferPool.Put(bufPtr)
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		go s.handleDatagram(ctx, conn, bufPtr, n, peer)
	}
}

func (s *UDPServer) handleDatagram(ctx context.Context, conn *net.UDPConn, bufPtr *[]byte, n int, peer *net.UDPAddr) {
	defer bufferPool.Put(bufPtr)

	payload := (*bufPtr)[:n]
	query, err := dns.ParseQuery(payload, false)
	if err != nil {
		s.Logger.Debug("udp decode failed", "peer", peer, "err", err)
		return
	}

	resp := s.Handler.Handle(ctx, query)
	out, err := dns.BuildResponse(resp, false)
	if err != nil {
		s.Logger.Warn("udp encode failed", "peer", peer, "err", err)
		return
	}

	if _, err := conn.WriteToUDP(out, peer); err != nil {
		s.Logger.Debug("udp reply send failed", "peer", peer, "err", err)
		return
	}

	s.recordStats(resp)
}

func (s *UDPServer) recordStats(resp dns.Response) {
	if s.Stats == nil {
		return
	}
	s.Stats.RecordQuery("udp")
	switch resp.Header.RCode {
	case dns.NxDomain:
		s.Stats.RecordNXDOMAIN()
	case dns.NoError:
	default:
		s.Stats.RecordError()
	}
}
