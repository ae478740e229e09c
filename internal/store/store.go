package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"

	"github.com/arlo-voss/homedns/internal/dns"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Upstream resolves a name/kind pair against the live resolver when
// the cache has nothing for it. internal/upstream.Client satisfies
// this.
type Upstream interface {
	Resolve(ctx context.Context, name string, kind dns.RecordKind) (dns.ResourceRecord, error)
}

// Store is the persistent per-zone record cache: one SQLite table per
// zone, one shared mutex serializing access to the handle. The mutex is
// never held across the upstream call in Get.
type Store struct {
	conn     *sql.DB
	mu       sync.Mutex
	upstream Upstream
}

// Open opens or creates the SQLite database at path and runs
// migrations. WAL journal mode suits a single-process, many-goroutine
// writer.
func Open(path string, upstream Upstream) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", path)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(time.Hour)

	s := &Store{conn: conn, upstream: upstream}
	if err := s.runMigrations(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return s, nil
}

func (s *Store) runMigrations() error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}
	dbDriver, err := sqlite.WithInstance(s.conn, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite", dbDriver)
	if err != nil {
		return fmt.Errorf("migrator: %w", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("up: %w", err)
	}
	return nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Get looks up name/kind in the cache, falling back to a fill through
// the upstream client on a miss: a cache hit is read and returned
// directly; a miss calls through to the upstream client, persists the
// answer, and returns it. The RR's Name field is left as whatever the
// upstream or the cache stored it as; callers that need the original
// (pre-strip) qname overwrite it themselves.
func (s *Store) Get(ctx context.Context, name string, kind dns.RecordKind) (dns.ResourceRecord, error) {
	if name == "" {
		return dns.ResourceRecord{}, ErrNotFound
	}
	column, ok := columnForKind[kind]
	if !ok {
		return dns.ResourceRecord{}, ErrNotFound
	}
	zone, err := sanitizeZone(dns.LastLabel(name))
	if err != nil {
		return dns.ResourceRecord{}, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	table := tableName(zone)

	value, ttl, err := s.readCell(table, column, name)
	if err != nil {
		return dns.ResourceRecord{}, fmt.Errorf("store: read: %w", err)
	}
	if value != "" {
		rdata, err := deserializeColumn(kind, value)
		if err != nil {
			// A corrupt cell is treated as a miss, same as an empty one.
			value = ""
		} else {
			return dns.ResourceRecord{Name: name, Kind: kind, Class: dns.ClassIN, TTL: ttl, RData: rdata}, nil
		}
	}

	rr, err := s.upstream.Resolve(ctx, name, kind)
	if err != nil {
		return dns.ResourceRecord{}, fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	serialized, err := serializeColumn(kind, rr.RData)
	if err == nil && serialized != "" {
		if err := s.writeCell(zone, table, column, name, serialized, rr.TTL); err != nil {
			return dns.ResourceRecord{}, fmt.Errorf("store: write: %w", err)
		}
	}
	return rr, nil
}

func (s *Store) readCell(table, column, name string) (string, uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureZoneTableLocked(table); err != nil {
		return "", 0, err
	}

	var value string
	var ttl uint32
	query := fmt.Sprintf(`SELECT "%s", ttl FROM "%s" WHERE name = ?`, column, table)
	err := s.conn.QueryRow(query, name).Scan(&value, &ttl)
	if err == sql.ErrNoRows {
		return "", 0, nil
	}
	if err != nil {
		return "", 0, err
	}
	return value, ttl, nil
}

func (s *Store) writeCell(zone, table, column, name, value string, ttl uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureZoneTableLocked(table); err != nil {
		return err
	}
	upsert := fmt.Sprintf(
		`INSERT INTO "%s" (name, "%s", ttl) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET "%s" = excluded."%s", ttl = excluded.ttl`,
		table, column, column, column,
	)
	_, err := s.conn.Exec(upsert, name, value, ttl)
	return err
}

// ensureZoneTableLocked creates the zone's table (and registers it in
// the zones bookkeeping table) if it doesn't already exist. Callers
// must hold s.mu.
func (s *Store) ensureZoneTableLocked(table string) error {
	if _, err := s.conn.Exec(fmt.Sprintf(zoneTableDDL, table)); err != nil {
		return err
	}
	zone := strings.TrimPrefix(table, "zone_")
	_, err := s.conn.Exec(
		`INSERT INTO zones (zone, created_at) VALUES (?, ?) ON CONFLICT(zone) DO NOTHING`,
		zone, time.Now().Unix(),
	)
	return err
}
