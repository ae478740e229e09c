// Package dns implements the bit-exact wire codec for the DNS message
// format this resolver speaks: header, question section, and resource
// records for the record kinds this server understands.
//
// Standards referenced: RFC 1035 (core DNS protocol), RFC 3596 (AAAA),
// RFC 1183 (RP), RFC 6698 (TLSA), RFC 1876 (LOC).
//
// This codec intentionally does not implement message compression
// (RFC 1035 §4.1.4) on either the decode or encode path: inbound
// messages carry questions only, and outbound responses write every
// name out in full, including a question name repeated in its answers.
package dns

import "errors"

// ErrDNSError is the sentinel wrapped by every wire-format violation.
// Wrap it with fmt.Errorf("context: %w", ErrDNSError) to add detail.
var ErrDNSError = errors.New("dns wire error")

// ErrNotImplemented is wrapped by rdata encoders whose body is an open
// stub (CNAME, MX, LOC, RP, TLSA, PTR answer synthesis).
var ErrNotImplemented = errors.New("rdata encoder not implemented")
