// Package store implements the persistent per-zone record cache: a
// SQLite-backed keyed store, one table per zone (the last label of a
// name), with one text column per record kind plus a ttl column, and
// an on-miss fill path through an upstream client.
package store

import "errors"

// ErrNotFound is returned when a record kind has no cache column or
// the name is empty, and is wrapped when the zone label fails
// sanitization or the upstream fill fails.
var ErrNotFound = errors.New("store: no such record")
