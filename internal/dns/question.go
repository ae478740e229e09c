package dns

import (
	"encoding/binary"
	"fmt"
)

// Question is one entry of the question section (RFC 1035 §4.1.2).
type Question struct {
	QName  string
	QType  RecordKind
	QClass uint16
}

// Marshal serializes q to wire format.
func (q Question) Marshal() ([]byte, error) {
	name, err := EncodeName(q.QName)
	if err != nil {
		return nil, err
	}
	b := make([]byte, 0, len(name)+4)
	b = append(b, name...)
	var tail [4]byte
	binary.BigEndian.PutUint16(tail[0:2], uint16(q.QType))
	binary.BigEndian.PutUint16(tail[2:4], q.QClass)
	return append(b, tail[:]...), nil
}

// ParseQuestion parses a question at *off, advancing *off past it. A
// short buffer after the name (fewer than 4 bytes for qtype/qclass)
// is a FormatError, surfaced as ErrDNSError.
func ParseQuestion(msg []byte, off *int) (Question, error) {
	name, err := DecodeName(msg, off)
	if err != nil {
		return Question{}, err
	}
	if *off+4 > len(msg) {
		return Question{}, fmt.Errorf("%w: unexpected EOF reading question", ErrDNSError)
	}
	q := Question{
		QName:  name,
		QType:  RecordKind(binary.BigEndian.Uint16(msg[*off : *off+2])),
		QClass: binary.BigEndian.Uint16(msg[*off+2 : *off+4]),
	}
	*off += 4
	return q, nil
}
