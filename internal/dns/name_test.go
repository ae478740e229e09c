package dns

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeNameRoundTrip(t *testing.T) {
	cases := []string{
		"example.com",
		"www.example.com",
		"home",
		"a.b.c.d.e.f",
	}
	for _, name := range cases {
		encoded, err := EncodeName(name)
		require.NoError(t, err)

		off := 0
		decoded, err := DecodeName(encoded, &off)
		require.NoError(t, err)
		require.Equal(t, name, decoded)
		require.Equal(t, len(encoded), off)
	}
}

func TestEncodeNameRejectsOversizedLabel(t *testing.T) {
	label := make([]byte, 64)
	for i := range label {
		label[i] = 'a'
	}
	_, err := EncodeName(string(label) + ".com")
	require.Error(t, err)
}

func TestEncodeNameRejectsNonASCII(t *testing.T) {
	_, err := EncodeName("exämple.com")
	require.Error(t, err)
}

func TestDecodeNameRejectsCompressionPointer(t *testing.T) {
	msg := []byte{0xC0, 0x00}
	off := 0
	_, err := DecodeName(msg, &off)
	require.Error(t, err)
}

func TestLastLabel(t *testing.T) {
	require.Equal(t, "com", LastLabel("www.example.com"))
	require.Equal(t, "home", LastLabel("printer.home"))
	require.Equal(t, "com", LastLabel("com"))
	require.Equal(t, "", LastLabel(""))
}

func TestStripSuffixLabel(t *testing.T) {
	require.Equal(t, "printer", StripSuffixLabel("printer.home", "home"))
	require.Equal(t, "www.example.com", StripSuffixLabel("www.example.com", "home"))
	require.Equal(t, "", StripSuffixLabel("home", "home"))
}
