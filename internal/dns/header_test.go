package dns

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTrip(t *testing.T) {
	h := Header{
		ID:      0x1234,
		QR:      true,
		Opcode:  2,
		AA:      true,
		TC:      false,
		RD:      true,
		RA:      true,
		Z:       5,
		RCode:   ServerFailure,
		QDCount: 1,
		ANCount: 2,
		NSCount: 0,
		ARCount: 1,
	}
	wire := h.Marshal()
	require.Len(t, wire, HeaderSize)

	off := 0
	parsed, err := ParseHeader(wire, &off)
	require.NoError(t, err)
	require.Equal(t, HeaderSize, off)
	require.Equal(t, h, parsed)
}

// TestParseHeaderConcreteBytes exercises a fixed byte sequence: id=16,
// the flags byte 0x1D (qr=0, opcode=3, aa=1, tc=0, rd=1) and flags byte
// 0xC4 (ra=1, z=4, rcode=NotImplemented), zero counts.
func TestParseHeaderConcreteBytes(t *testing.T) {
	msg := []byte{0x00, 0x10, 0x1D, 0xC4, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	off := 0
	h, err := ParseHeader(msg, &off)
	require.NoError(t, err)
	require.Equal(t, Header{
		ID:      16,
		QR:      false,
		Opcode:  3,
		AA:      true,
		TC:      false,
		RD:      true,
		RA:      true,
		Z:       4,
		RCode:   NotImplemented,
		QDCount: 0,
		ANCount: 0,
		NSCount: 0,
		ARCount: 0,
	}, h)
}

func TestResponseCodeFromWireClampsAboveFive(t *testing.T) {
	require.Equal(t, Refused, responseCodeFromWire(6))
	require.Equal(t, Refused, responseCodeFromWire(15))
	require.Equal(t, NxDomain, responseCodeFromWire(3))
}
