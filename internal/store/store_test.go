package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arlo-voss/homedns/internal/dns"
)

type fakeUpstream struct {
	calls int
	rr    dns.ResourceRecord
	err   error
}

func (f *fakeUpstream) Resolve(ctx context.Context, name string, kind dns.RecordKind) (dns.ResourceRecord, error) {
	f.calls++
	if f.err != nil {
		return dns.ResourceRecord{}, f.err
	}
	rr := f.rr
	rr.Name = name
	rr.Kind = kind
	return rr, nil
}

func openTestStore(t *testing.T, up Upstream) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "domains.db")
	s, err := Open(path, up)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetFillsFromUpstreamOnMiss(t *testing.T) {
	up := &fakeUpstream{rr: dns.ResourceRecord{Class: dns.ClassIN, TTL: 300, RData: []byte{192, 168, 0, 1}}}
	s := openTestStore(t, up)

	rr, err := s.Get(context.Background(), "host.example.com", dns.KindA)
	require.NoError(t, err)
	require.Equal(t, []byte{192, 168, 0, 1}, rr.RData)
	require.EqualValues(t, 300, rr.TTL)
	require.Equal(t, 1, up.calls)
}

func TestGetIsIdempotentWithoutSecondUpstreamCall(t *testing.T) {
	up := &fakeUpstream{rr: dns.ResourceRecord{Class: dns.ClassIN, TTL: 300, RData: []byte{10, 0, 0, 1}}}
	s := openTestStore(t, up)

	first, err := s.Get(context.Background(), "host.example.com", dns.KindA)
	require.NoError(t, err)
	second, err := s.Get(context.Background(), "host.example.com", dns.KindA)
	require.NoError(t, err)

	require.Equal(t, first.RData, second.RData)
	require.Equal(t, first.TTL, second.TTL)
	require.Equal(t, 1, up.calls, "second Get must hit the cache, not the upstream")
}

func TestGetAAAARoundTrip(t *testing.T) {
	addr := []byte{0x20, 0x01, 0x0d, 0xb8, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1}
	up := &fakeUpstream{rr: dns.ResourceRecord{Class: dns.ClassIN, TTL: 60, RData: addr}}
	s := openTestStore(t, up)

	rr, err := s.Get(context.Background(), "v6.example.com", dns.KindAAAA)
	require.NoError(t, err)
	require.Equal(t, addr, rr.RData)

	rr2, err := s.Get(context.Background(), "v6.example.com", dns.KindAAAA)
	require.NoError(t, err)
	require.Equal(t, addr, rr2.RData)
	require.Equal(t, 1, up.calls)
}

func TestGetSOARoundTrip(t *testing.T) {
	ar := dns.AuthRecord{
		MName: "ns1.example.com", RName: "admin.example.com",
		Serial: 2024010100, Refresh: 3600, Retry: 600, Expire: 1209600, Minimum: 60,
	}
	rdata, err := dns.EncodeSOARData(ar)
	require.NoError(t, err)

	up := &fakeUpstream{rr: dns.ResourceRecord{Class: dns.ClassIN, TTL: 3600, RData: rdata}}
	s := openTestStore(t, up)

	rr, err := s.Get(context.Background(), "example.com", dns.KindSOA)
	require.NoError(t, err)

	got, err := dns.DecodeSOARData(rr.RData)
	require.NoError(t, err)
	require.Equal(t, ar, got)
}

func TestGetEmptyNameReturnsNotFound(t *testing.T) {
	s := openTestStore(t, &fakeUpstream{})
	_, err := s.Get(context.Background(), "", dns.KindA)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetUnsupportedKindReturnsNotFoundWithoutUpstreamCall(t *testing.T) {
	up := &fakeUpstream{}
	s := openTestStore(t, up)
	_, err := s.Get(context.Background(), "host.example.com", dns.KindTXT)
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, 0, up.calls)
}

func TestGetPropagatesUpstreamFailureAsNotFound(t *testing.T) {
	up := &fakeUpstream{err: context.DeadlineExceeded}
	s := openTestStore(t, up)
	_, err := s.Get(context.Background(), "host.example.com", dns.KindA)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDifferentZonesGetSeparateTables(t *testing.T) {
	up := &fakeUpstream{rr: dns.ResourceRecord{Class: dns.ClassIN, TTL: 60, RData: []byte{1, 2, 3, 4}}}
	s := openTestStore(t, up)

	_, err := s.Get(context.Background(), "a.example.com", dns.KindA)
	require.NoError(t, err)
	_, err = s.Get(context.Background(), "b.test.org", dns.KindA)
	require.NoError(t, err)
	require.Equal(t, 2, up.calls)

	var tables int
	require.NoError(t, s.conn.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('zone_com', 'zone_org')`,
	).Scan(&tables))
	require.Equal(t, 2, tables)
}
