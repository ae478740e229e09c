package store

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/arlo-voss/homedns/internal/dns"
)

// authorityJSON mirrors the authority column's JSON shape: mname/rname
// are arrays of label strings rather than dotted names.
type authorityJSON struct {
	MName   []string `json:"mname"`
	RName   []string `json:"rname"`
	Serial  uint32   `json:"serial"`
	Refresh uint32   `json:"refresh"`
	Retry   uint32   `json:"retry"`
	Expire  uint32   `json:"expire"`
	Minimum uint32   `json:"minimum"`
}

// serializeColumn renders rdata into the column's string cell form.
func serializeColumn(kind dns.RecordKind, rdata []byte) (string, error) {
	switch kind {
	case dns.KindA:
		if len(rdata) != 4 {
			return "", fmt.Errorf("store: A rdata must be 4 bytes, got %d", len(rdata))
		}
		return fmt.Sprintf("%d.%d.%d.%d", rdata[0], rdata[1], rdata[2], rdata[3]), nil
	case dns.KindAAAA:
		if len(rdata) != 16 {
			return "", fmt.Errorf("store: AAAA rdata must be 16 bytes, got %d", len(rdata))
		}
		parts := make([]string, 16)
		for i, b := range rdata {
			parts[i] = strconv.Itoa(int(b))
		}
		return strings.Join(parts, ":"), nil
	case dns.KindSOA:
		ar, err := dns.DecodeSOARData(rdata)
		if err != nil {
			return "", err
		}
		b, err := json.Marshal(authorityJSON{
			MName:   strings.Split(ar.MName, "."),
			RName:   strings.Split(ar.RName, "."),
			Serial:  ar.Serial,
			Refresh: ar.Refresh,
			Retry:   ar.Retry,
			Expire:  ar.Expire,
			Minimum: ar.Minimum,
		})
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		// Reserved columns: fill never writes to them.
		return "", nil
	}
}

// deserializeColumn inverts serializeColumn, producing rdata from the
// stored string cell. An empty value is never passed in; callers
// treat the empty cell as a cache miss before reaching here.
func deserializeColumn(kind dns.RecordKind, value string) ([]byte, error) {
	switch kind {
	case dns.KindA:
		octets := strings.Split(value, ".")
		if len(octets) != 4 {
			return nil, fmt.Errorf("store: malformed ipv4 cell %q", value)
		}
		out := make([]byte, 4)
		for i, o := range octets {
			n, err := strconv.ParseUint(o, 10, 8)
			if err != nil {
				return nil, fmt.Errorf("store: malformed ipv4 cell %q: %w", value, err)
			}
			out[i] = byte(n)
		}
		return out, nil
	case dns.KindAAAA:
		parts := strings.Split(value, ":")
		if len(parts) != 16 {
			return nil, fmt.Errorf("store: malformed ipv6 cell %q", value)
		}
		out := make([]byte, 16)
		for i, p := range parts {
			n, err := strconv.ParseUint(p, 10, 8)
			if err != nil {
				return nil, fmt.Errorf("store: malformed ipv6 cell %q: %w", value, err)
			}
			out[i] = byte(n)
		}
		return out, nil
	case dns.KindSOA:
		var aj authorityJSON
		if err := json.Unmarshal([]byte(value), &aj); err != nil {
			return nil, fmt.Errorf("store: malformed authority cell: %w", err)
		}
		ar := dns.AuthRecord{
			MName:   strings.Join(aj.MName, "."),
			RName:   strings.Join(aj.RName, "."),
			Serial:  aj.Serial,
			Refresh: aj.Refresh,
			Retry:   aj.Retry,
			Expire:  aj.Expire,
			Minimum: aj.Minimum,
		}
		return dns.EncodeSOARData(ar)
	default:
		return nil, fmt.Errorf("store: column for kind %d has no deserializer", kind)
	}
}
