// Package upstream implements the DNS-over-HTTPS client that the
// record store falls back to on a cache miss: a single fixed
// JSON-over-HTTPS endpoint, no broader recursive resolution.
package upstream

import "errors"

var (
	// ErrNXDomain is returned when the upstream reports Status == 3.
	ErrNXDomain = errors.New("upstream: nxdomain")
	// ErrTransport is returned for network-level failures reaching the upstream.
	ErrTransport = errors.New("upstream: transport error")
	// ErrDecode is returned when the upstream's JSON body cannot be
	// turned into the requested record kind.
	ErrDecode = errors.New("upstream: decode error")
	// ErrNotImplemented is returned for record kinds this client never
	// asks the upstream about directly.
	ErrNotImplemented = errors.New("upstream: not implemented")
)
