package dns

import (
	"encoding/binary"
	"fmt"
)

// AuthRecord is the structured rdata of an SOA record.
type AuthRecord struct {
	MName   string
	RName   string
	Serial  uint32
	Refresh uint32
	Retry   uint32
	Expire  uint32
	Minimum uint32
}

// ResourceRecord is one answer/authority/additional entry. RDLength
// is derived from len(RData) on emit, never stored.
type ResourceRecord struct {
	Name  string
	Kind  RecordKind
	Class uint16
	TTL   uint32
	RData []byte
}

// Marshal serializes rr to wire format: name, type, class, ttl,
// rdlength, rdata.
func (rr ResourceRecord) Marshal() ([]byte, error) {
	name, err := EncodeName(rr.Name)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(name)+10+len(rr.RData))
	out = append(out, name...)

	var fixed [10]byte
	binary.BigEndian.PutUint16(fixed[0:2], uint16(rr.Kind))
	binary.BigEndian.PutUint16(fixed[2:4], rr.Class)
	binary.BigEndian.PutUint32(fixed[4:8], rr.TTL)
	binary.BigEndian.PutUint16(fixed[8:10], uint16(len(rr.RData)))
	out = append(out, fixed[:]...)
	out = append(out, rr.RData...)
	return out, nil
}

// ParseResourceRecord parses one RR at *off, advancing *off past it.
func ParseResourceRecord(msg []byte, off *int) (ResourceRecord, error) {
	name, err := DecodeName(msg, off)
	if err != nil {
		return ResourceRecord{}, err
	}
	if *off+10 > len(msg) {
		return ResourceRecord{}, fmt.Errorf("%w: unexpected EOF reading record header", ErrDNSError)
	}
	kind := RecordKind(binary.BigEndian.Uint16(msg[*off : *off+2]))
	class := binary.BigEndian.Uint16(msg[*off+2 : *off+4])
	ttl := binary.BigEndian.Uint32(msg[*off+4 : *off+8])
	rdlen := int(binary.BigEndian.Uint16(msg[*off+8 : *off+10]))
	*off += 10

	if *off+rdlen > len(msg) {
		return ResourceRecord{}, fmt.Errorf("%w: unexpected EOF reading rdata", ErrDNSError)
	}
	rdata := make([]byte, rdlen)
	copy(rdata, msg[*off:*off+rdlen])
	*off += rdlen

	return ResourceRecord{Name: name, Kind: kind, Class: class, TTL: ttl, RData: rdata}, nil
}

// EncodeIPv4RData builds the 4-byte rdata of an A record.
func EncodeIPv4RData(octets [4]byte) []byte {
	return octets[:]
}

// EncodeIPv6RData builds the 16-byte rdata of an AAAA record.
func EncodeIPv6RData(octets [16]byte) []byte {
	return octets[:]
}

// EncodeSOARData builds the rdata of an SOA record: mname, rname
// (both encoded names), then five u32 BE fields.
func EncodeSOARData(ar AuthRecord) ([]byte, error) {
	mname, err := EncodeName(ar.MName)
	if err != nil {
		return nil, err
	}
	rname, err := EncodeName(ar.RName)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(mname)+len(rname)+20)
	out = append(out, mname...)
	out = append(out, rname...)
	var tail [20]byte
	binary.BigEndian.PutUint32(tail[0:4], ar.Serial)
	binary.BigEndian.PutUint32(tail[4:8], ar.Refresh)
	binary.BigEndian.PutUint32(tail[8:12], ar.Retry)
	binary.BigEndian.PutUint32(tail[12:16], ar.Expire)
	binary.BigEndian.PutUint32(tail[16:20], ar.Minimum)
	return append(out, tail[:]...), nil
}

// DecodeSOARData parses an SOA rdata block.
func DecodeSOARData(rdata []byte) (AuthRecord, error) {
	off := 0
	mname, err := DecodeName(rdata, &off)
	if err != nil {
		return AuthRecord{}, err
	}
	rname, err := DecodeName(rdata, &off)
	if err != nil {
		return AuthRecord{}, err
	}
	if off+20 > len(rdata) {
		return AuthRecord{}, fmt.Errorf("%w: truncated SOA rdata", ErrDNSError)
	}
	return AuthRecord{
		MName:   mname,
		RName:   rname,
		Serial:  binary.BigEndian.Uint32(rdata[off : off+4]),
		Refresh: binary.BigEndian.Uint32(rdata[off+4 : off+8]),
		Retry:   binary.BigEndian.Uint32(rdata[off+8 : off+12]),
		Expire:  binary.BigEndian.Uint32(rdata[off+12 : off+16]),
		Minimum: binary.BigEndian.Uint32(rdata[off+16 : off+20]),
	}, nil
}

// EncodeCNAMERData, EncodeMXRData, EncodeLOCRData, EncodeRPRData,
// EncodeTLSARData, and EncodePTRRData build the answer rdata for their
// respective record kinds. These bodies remain open: the interface
// exists so a caller can dispatch on RecordKind uniformly, but none of
// these kinds is ever reached by the query handler's dispatch table
// (only A, AAAA and TXT are routed to an answer; everything else is
// logged and skipped), so these exist for completeness and future
// extension only.

// EncodeCNAMERData builds the rdata of a CNAME record. Not implemented.
func EncodeCNAMERData(target string) ([]byte, error) {
	return nil, fmt.Errorf("%w: CNAME rdata synthesis", ErrNotImplemented)
}

// EncodeMXRData builds the rdata of an MX record. Not implemented.
func EncodeMXRData(preference uint16, exchange string) ([]byte, error) {
	return nil, fmt.Errorf("%w: MX rdata synthesis", ErrNotImplemented)
}

// EncodeLOCRData builds the rdata of a LOC record. Not implemented.
func EncodeLOCRData() ([]byte, error) {
	return nil, fmt.Errorf("%w: LOC rdata synthesis", ErrNotImplemented)
}

// EncodeRPRData builds the rdata of an RP record. Not implemented.
func EncodeRPRData() ([]byte, error) {
	return nil, fmt.Errorf("%w: RP rdata synthesis", ErrNotImplemented)
}

// EncodeTLSARData builds the rdata of a TLSA record. Not implemented.
func EncodeTLSARData() ([]byte, error) {
	return nil, fmt.Errorf("%w: TLSA rdata synthesis", ErrNotImplemented)
}

// EncodePTRRData builds the rdata of a PTR record. Not implemented.
func EncodePTRRData(target string) ([]byte, error) {
	return nil, fmt.Errorf("%w: PTR rdata synthesis", ErrNotImplemented)
}
