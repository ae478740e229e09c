package dns

import (
	"encoding/binary"
	"fmt"
)

// HeaderSize is the fixed size of a DNS message header in bytes.
const HeaderSize = 12

// Header is the 12-byte DNS message header (RFC 1035 §4.1.1), exposed
// as explicit typed fields rather than a raw flags word.
type Header struct {
	ID      uint16
	QR      bool
	Opcode  uint8 // 4 bits
	AA      bool
	TC      bool
	RD      bool
	RA      bool
	Z       uint8 // 3 bits, always 0 on emit
	RCode   ResponseCode
	QDCount uint16
	ANCount uint16
	NSCount uint16
	ARCount uint16
}

// Marshal serializes the header to wire format. The two flag bytes are
// packed as a single 16-bit word through the masks in enums.go (see the
// bit-layout diagram there).
func (h Header) Marshal() []byte {
	b := make([]byte, HeaderSize)
	binary.BigEndian.PutUint16(b[0:2], h.ID)

	var flags uint16
	if h.QR {
		flags |= qrFlag
	}
	flags |= (uint16(h.Opcode) << opcodeBits) & opcodeMask
	if h.AA {
		flags |= aaFlag
	}
	if h.TC {
		flags |= tcFlag
	}
	if h.RD {
		flags |= rdFlag
	}
	if h.RA {
		flags |= raFlag
	}
	flags |= (uint16(h.Z) << zBits) & zMask
	flags |= uint16(h.RCode) & rcodeMask
	binary.BigEndian.PutUint16(b[2:4], flags)

	binary.BigEndian.PutUint16(b[4:6], h.QDCount)
	binary.BigEndian.PutUint16(b[6:8], h.ANCount)
	binary.BigEndian.PutUint16(b[8:10], h.NSCount)
	binary.BigEndian.PutUint16(b[10:12], h.ARCount)
	return b
}

// ParseHeader parses a 12-byte header at *off, advancing *off past it.
func ParseHeader(msg []byte, off *int) (Header, error) {
	if *off+HeaderSize > len(msg) {
		return Header{}, fmt.Errorf("%w: unexpected EOF reading header", ErrDNSError)
	}
	flags := binary.BigEndian.Uint16(msg[*off+2 : *off+4])

	h := Header{
		ID:      binary.BigEndian.Uint16(msg[*off : *off+2]),
		QR:      flags&qrFlag != 0,
		Opcode:  uint8((flags & opcodeMask) >> opcodeBits),
		AA:      flags&aaFlag != 0,
		TC:      flags&tcFlag != 0,
		RD:      flags&rdFlag != 0,
		RA:      flags&raFlag != 0,
		Z:       uint8((flags & zMask) >> zBits),
		RCode:   responseCodeFromWire(uint8(flags & rcodeMask)),
		QDCount: binary.BigEndian.Uint16(msg[*off+4 : *off+6]),
		ANCount: binary.BigEndian.Uint16(msg[*off+6 : *off+8]),
		NSCount: binary.BigEndian.Uint16(msg[*off+8 : *off+10]),
		ARCount: binary.BigEndian.Uint16(msg[*off+10 : *off+12]),
	}
	*off += HeaderSize
	return h, nil
}
