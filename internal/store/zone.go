package store

import (
	"fmt"
	"strings"

	"github.com/arlo-voss/homedns/internal/dns"
)

// columnForKind maps a record kind to its cache column. Kinds not
// present here have no column at all and are rejected by Get before
// ever reaching SQL.
var columnForKind = map[dns.RecordKind]string{
	dns.KindA:     "ipv4",
	dns.KindAAAA:  "ipv6",
	dns.KindCNAME: "cname",
	dns.KindMX:    "mx",
	dns.KindLOC:   "loc",
	dns.KindRP:    "rp",
	dns.KindTLSA:  "certificate",
	dns.KindSOA:   "authority",
}

// sanitizeZone restricts a zone label to the character set allowed in
// a dynamically-interpolated table name identifier. Zone names come
// from attacker-controlled DNS questions and must be sanitized before
// use in DDL/DML.
func sanitizeZone(zone string) (string, error) {
	if zone == "" {
		return "", fmt.Errorf("store: empty zone")
	}
	for _, r := range zone {
		ok := (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
		if !ok {
			return "", fmt.Errorf("store: zone %q contains disallowed character %q", zone, r)
		}
	}
	return zone, nil
}

// tableName derives the per-zone table identifier. The "zone_" prefix
// keeps the identifier from starting with a digit or colliding with a
// SQL keyword, since sanitizeZone alone permits both.
func tableName(sanitizedZone string) string {
	return "zone_" + strings.ToLower(sanitizedZone)
}

const zoneTableDDL = `
CREATE TABLE IF NOT EXISTS "%s" (
	name        TEXT PRIMARY KEY,
	ipv4        TEXT NOT NULL DEFAULT '',
	ipv6        TEXT NOT NULL DEFAULT '',
	cname       TEXT NOT NULL DEFAULT '',
	mx          TEXT NOT NULL DEFAULT '',
	loc         TEXT NOT NULL DEFAULT '',
	rp          TEXT NOT NULL DEFAULT '',
	certificate TEXT NOT NULL DEFAULT '',
	authority   TEXT NOT NULL DEFAULT '',
	ttl         INTEGER NOT NULL DEFAULT 0
)`
