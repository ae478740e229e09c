package dns

import (
	"encoding/binary"
	"fmt"

	"github.com/arlo-voss/homedns/internal/helpers"
)

// MaxMessageSize is the receive buffer ceiling for inbound messages.
const MaxMessageSize = 2048

// Query is a decoded inbound message: a header plus its questions.
type Query struct {
	Header    Header
	Questions []Question
}

// Response is an outbound message ready for serialization.
type Response struct {
	Header     Header
	Questions  []Question
	Answers    []ResourceRecord
	Authority  []ResourceRecord
	Additional []ResourceRecord
}

// ParseQuery decodes bytes into a Query. If tcp is true, the leading
// 2-byte big-endian length prefix is stripped first; a mismatch
// between that prefix and the remaining length is tolerated (the
// remainder is parsed as-is). Questions are parsed until the buffer
// is exhausted, ignoring the header's qd count if it disagrees.
//
// A zero Query with a non-nil error indicates FormatError: the caller
// must drop the message.
func ParseQuery(raw []byte, tcp bool) (Query, error) {
	msg := raw
	if tcp {
		if len(msg) < 2 {
			return Query{}, fmt.Errorf("%w: tcp message missing length prefix", ErrDNSError)
		}
		msg = msg[2:]
	}

	off := 0
	h, err := ParseHeader(msg, &off)
	if err != nil {
		return Query{}, err
	}

	var questions []Question
	for off < len(msg) {
		q, err := ParseQuestion(msg, &off)
		if err != nil {
			return Query{}, err
		}
		questions = append(questions, q)
	}

	return Query{Header: h, Questions: questions}, nil
}

// BuildResponse serializes resp to wire format. Header counts are
// always recomputed from the section slice lengths. If tcp is true,
// a 2-byte big-endian length prefix is prepended.
func BuildResponse(resp Response, tcp bool) ([]byte, error) {
	h := resp.Header
	h.QDCount = helpers.ClampIntToUint16(len(resp.Questions))
	h.ANCount = helpers.ClampIntToUint16(len(resp.Answers))
	h.NSCount = helpers.ClampIntToUint16(len(resp.Authority))
	h.ARCount = helpers.ClampIntToUint16(len(resp.Additional))

	payload := make([]byte, 0, HeaderSize+64*(len(resp.Questions)+len(resp.Answers)+len(resp.Authority)+len(resp.Additional)+1))
	payload = append(payload, h.Marshal()...)

	for _, q := range resp.Questions {
		b, err := q.Marshal()
		if err != nil {
			return nil, err
		}
		payload = append(payload, b...)
	}
	for _, section := range [][]ResourceRecord{resp.Answers, resp.Authority, resp.Additional} {
		for _, rr := range section {
			b, err := rr.Marshal()
			if err != nil {
				return nil, err
			}
			payload = append(payload, b...)
		}
	}

	if !tcp {
		return payload, nil
	}
	out := make([]byte, 2+len(payload))
	binary.BigEndian.PutUint16(out[0:2], helpers.ClampIntToUint16(len(payload)))
	copy(out[2:], payload)
	return out, nil
}
