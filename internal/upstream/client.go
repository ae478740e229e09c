package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/arlo-voss/homedns/internal/dns"
)

// DefaultEndpoint is the fixed upstream resolver this client talks to.
// It is not configurable.
const DefaultEndpoint = "https://8.8.8.8/resolve"

// Client issues DoH JSON lookups against a single fixed endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
}

// New builds a Client. httpClient may be nil, in which case
// http.DefaultClient is used.
func New(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{httpClient: httpClient, endpoint: endpoint}
}

// Resolve issues a lookup for (name, kind) and returns a
// ResourceRecord ready for the record store to serialize, or one of
// ErrNXDomain / ErrTransport / ErrDecode / ErrNotImplemented.
func (c *Client) Resolve(ctx context.Context, name string, kind dns.RecordKind) (dns.ResourceRecord, error) {
	return c.resolveDepth(ctx, name, kind, 0)
}

func (c *Client) resolveDepth(ctx context.Context, name string, kind dns.RecordKind, depth int) (dns.ResourceRecord, error) {
	if depth > maxCNAMEHops {
		return dns.ResourceRecord{}, fmt.Errorf("%w: exceeded %d CNAME hops resolving %s", ErrDecode, maxCNAMEHops, name)
	}

	switch kind {
	case dns.KindA:
		return c.resolveAddress(ctx, name, kind, wireTypeA, depth)
	case dns.KindAAAA:
		return c.resolveAddress(ctx, name, kind, wireTypeAAAA, depth)
	case dns.KindSOA:
		return c.resolveSOA(ctx, name)
	default:
		return dns.ResourceRecord{}, fmt.Errorf("%w: upstream lookup of kind %d", ErrNotImplemented, kind)
	}
}

func (c *Client) resolveAddress(ctx context.Context, name string, kind dns.RecordKind, wireType uint16, depth int) (dns.ResourceRecord, error) {
	resp, err := c.query(ctx, name, wireType)
	if err != nil {
		return dns.ResourceRecord{}, err
	}
	if resp.Status == nxDomainStatus {
		return dns.ResourceRecord{}, fmt.Errorf("%w: %s", ErrNXDomain, name)
	}

	var cname *dohAnswer
	for i := range resp.Answer {
		a := resp.Answer[i]
		if a.Type == wireType {
			rdata, ttl, err := decodeAddress(a, wireType)
			if err != nil {
				return dns.ResourceRecord{}, err
			}
			return dns.ResourceRecord{Name: name, Kind: kind, Class: dns.ClassIN, TTL: ttl, RData: rdata}, nil
		}
		if a.Type == wireTypeCNAME && cname == nil {
			cname = &resp.Answer[i]
		}
	}
	if cname != nil {
		return c.resolveDepth(ctx, cname.Data, kind, depth+1)
	}
	return dns.ResourceRecord{}, fmt.Errorf("%w: no matching answer for %s", ErrDecode, name)
}

func decodeAddress(a dohAnswer, wireType uint16) ([]byte, uint32, error) {
	ip := net.ParseIP(a.Data)
	if ip == nil {
		return nil, 0, fmt.Errorf("%w: invalid address %q", ErrDecode, a.Data)
	}
	if wireType == wireTypeA {
		v4 := ip.To4()
		if v4 == nil {
			return nil, 0, fmt.Errorf("%w: %q is not an IPv4 address", ErrDecode, a.Data)
		}
		var octets [4]byte
		copy(octets[:], v4)
		return dns.EncodeIPv4RData(octets), a.TTL, nil
	}
	v6 := ip.To16()
	if v6 == nil {
		return nil, 0, fmt.Errorf("%w: %q is not an IPv6 address", ErrDecode, a.Data)
	}
	var octets [16]byte
	copy(octets[:], v6)
	return dns.EncodeIPv6RData(octets), a.TTL, nil
}

func (c *Client) resolveSOA(ctx context.Context, name string) (dns.ResourceRecord, error) {
	resp, err := c.query(ctx, name, uint16(dns.KindSOA))
	if err != nil {
		return dns.ResourceRecord{}, err
	}
	if resp.Status == nxDomainStatus {
		return dns.ResourceRecord{}, fmt.Errorf("%w: %s", ErrNXDomain, name)
	}
	if len(resp.Authority) == 0 {
		return dns.ResourceRecord{}, fmt.Errorf("%w: no authority entry for %s", ErrDecode, name)
	}
	entry := resp.Authority[0]
	ar, err := parseSOAData(entry.Data)
	if err != nil {
		return dns.ResourceRecord{}, err
	}
	rdata, err := dns.EncodeSOARData(ar)
	if err != nil {
		return dns.ResourceRecord{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return dns.ResourceRecord{Name: name, Kind: dns.KindSOA, Class: dns.ClassIN, TTL: entry.TTL, RData: rdata}, nil
}

// parseSOAData parses the space-separated seven-token SOA data string
// the upstream returns: mname rname serial refresh retry expire minimum.
func parseSOAData(data string) (dns.AuthRecord, error) {
	fields := strings.Fields(data)
	if len(fields) != 7 {
		return dns.AuthRecord{}, fmt.Errorf("%w: SOA data has %d fields, want 7", ErrDecode, len(fields))
	}
	nums := make([]uint32, 5)
	for i, f := range fields[2:] {
		n, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			return dns.AuthRecord{}, fmt.Errorf("%w: SOA field %q: %v", ErrDecode, f, err)
		}
		nums[i] = uint32(n)
	}
	return dns.AuthRecord{
		MName:   fields[0],
		RName:   fields[1],
		Serial:  nums[0],
		Refresh: nums[1],
		Retry:   nums[2],
		Expire:  nums[3],
		Minimum: nums[4],
	}, nil
}

func (c *Client) query(ctx context.Context, name string, wireType uint16) (dohResponse, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return dohResponse{}, fmt.Errorf("%w: invalid endpoint %q: %v", ErrTransport, c.endpoint, err)
	}
	q := u.Query()
	q.Set("name", name)
	q.Set("type", strconv.Itoa(int(wireType)))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return dohResponse{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/dns-json")

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return dohResponse{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return dohResponse{}, fmt.Errorf("%w: upstream returned status %d", ErrTransport, httpResp.StatusCode)
	}

	var body dohResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&body); err != nil {
		return dohResponse{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return body, nil
}
