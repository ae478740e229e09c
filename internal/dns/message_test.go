package dns

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseQueryTCPTwoQuestions(t *testing.T) {
	header := Header{ID: 16, Opcode: 3, AA: true, RD: true, RA: true, Z: 4, RCode: NotImplemented, QDCount: 1}
	q1, err := Question{QName: "www.example.com", QType: KindAAAA, QClass: 16}.Marshal()
	require.NoError(t, err)
	q2, err := Question{QName: "www.google.com", QType: KindTLSA, QClass: 4}.Marshal()
	require.NoError(t, err)

	payload := append(append([]byte{}, header.Marshal()...), q1...)
	payload = append(payload, q2...)

	framed := make([]byte, 2+len(payload))
	framed[0] = byte(len(payload) >> 8)
	framed[1] = byte(len(payload))
	copy(framed[2:], payload)

	query, err := ParseQuery(framed, true)
	require.NoError(t, err)
	require.Equal(t, []Question{
		{QName: "www.example.com", QType: KindAAAA, QClass: 16},
		{QName: "www.google.com", QType: KindTLSA, QClass: 4},
	}, query.Questions)
}

func TestParseQueryTruncatedQuestionIsFormatError(t *testing.T) {
	header := Header{ID: 1, RD: true, QDCount: 1}
	msg := append([]byte{}, header.Marshal()...)
	// A label length byte with no terminating zero label and no
	// qtype/qclass bytes following: truncated mid-name.
	msg = append(msg, 3, 'w', 'w', 'w')

	_, err := ParseQuery(msg, false)
	require.Error(t, err)
}

func TestParseQueryIgnoresDisagreeingQDCount(t *testing.T) {
	header := Header{ID: 1, RD: true, QDCount: 5}
	q, err := Question{QName: "example.com", QType: KindA, QClass: ClassIN}.Marshal()
	require.NoError(t, err)
	msg := append(append([]byte{}, header.Marshal()...), q...)

	query, err := ParseQuery(msg, false)
	require.NoError(t, err)
	require.Len(t, query.Questions, 1)
}

// TestBuildResponseConcreteBytes exercises the literal TCP byte layout
// for id=32, opcode=3, rcode=Refused, rd=1, ra=1 with one A answer for
// www.example.com, ttl=200, rdata=C0 A8 00 01.
func TestBuildResponseConcreteBytes(t *testing.T) {
	resp := Response{
		Header: Header{ID: 32, Opcode: 3, RD: true, RA: true, RCode: Refused},
		Answers: []ResourceRecord{
			{Name: "www.example.com", Kind: KindA, Class: ClassIN, TTL: 200, RData: []byte{0xC0, 0xA8, 0x00, 0x01}},
		},
	}
	wire, err := BuildResponse(resp, true)
	require.NoError(t, err)

	require.Equal(t, []byte{0x00, 0x2B}, wire[0:2])
	require.Equal(t, []byte{0x19, 0x85}, wire[4:6]) // flag bytes
	require.Equal(t, []byte{0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00}, wire[6:14])

	name, err := EncodeName("www.example.com")
	require.NoError(t, err)
	off := 14 + len(name)
	require.Equal(t, []byte{0x00, 0x01}, wire[off:off+2])   // type A
	require.Equal(t, []byte{0x00, 0x01}, wire[off+2:off+4]) // class IN
	require.Equal(t, []byte{0x00, 0x00, 0x00, 0xC8}, wire[off+4:off+8])
	require.Equal(t, []byte{0x00, 0x04}, wire[off+8:off+10])
	require.Equal(t, []byte{0xC0, 0xA8, 0x00, 0x01}, wire[off+10:off+14])
	require.Equal(t, len(wire), off+14)
}

func TestBuildResponseCountsAgree(t *testing.T) {
	resp := Response{
		Header:     Header{ID: 1, QR: true},
		Questions:  []Question{{QName: "a.com", QType: KindA, QClass: ClassIN}},
		Answers:    []ResourceRecord{{Name: "a.com", Kind: KindA, Class: ClassIN, TTL: 10, RData: []byte{1, 2, 3, 4}}},
		Authority:  nil,
		Additional: nil,
	}
	wire, err := BuildResponse(resp, false)
	require.NoError(t, err)

	off := 0
	h, err := ParseHeader(wire, &off)
	require.NoError(t, err)
	require.EqualValues(t, 1, h.QDCount)
	require.EqualValues(t, 1, h.ANCount)
	require.EqualValues(t, 0, h.NSCount)
	require.EqualValues(t, 0, h.ARCount)
}

func TestBuildResponseEmptyQuestionsEmitsNothingExtra(t *testing.T) {
	resp := Response{Header: Header{ID: 1, QR: true}}
	wire, err := BuildResponse(resp, false)
	require.NoError(t, err)
	require.Equal(t, HeaderSize, len(wire))
}
