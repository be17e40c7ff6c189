// Package sqlitestore implements bus.Store on top of SQLite, so the
// VID<->RID translation tables, VID counter, and log level survive a
// daemon restart. Adapted from the teacher's pkg/opdb/sqlite.Store, which
// persists session state the same way: a single table keyed by
// (namespace, key), WAL journaling, and a busy timeout so the daemon's
// single writer never deadlocks against a concurrent reader (the
// introspection side channel in api/saipb).
package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/opencompute/go-sairedis/pkg/bus"
)

type Store struct {
	db *sql.DB
}

var _ bus.Store = (*Store)(nil)

func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %s: %w", p, err)
		}
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS bus_store (
			hash TEXT NOT NULL,
			field TEXT NOT NULL,
			value TEXT NOT NULL,
			PRIMARY KEY (hash, field)
		)
	`)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) HGet(ctx context.Context, hash, field string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM bus_store WHERE hash = ? AND field = ?`, hash, field).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *Store) HSet(ctx context.Context, hash, field, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bus_store (hash, field, value) VALUES (?, ?, ?)
		ON CONFLICT(hash, field) DO UPDATE SET value = excluded.value
	`, hash, field, value)
	return err
}

func (s *Store) HDel(ctx context.Context, hash, field string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM bus_store WHERE hash = ? AND field = ?`, hash, field)
	return err
}

func (s *Store) HLen(ctx context.Context, hash string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bus_store WHERE hash = ?`, hash).Scan(&n)
	return n, err
}

// scalarHash is the hash namespace used to store the top-level scalar keys
// (VIDCOUNTER, LOGLEVEL) alongside the translation hashes, in the same
// (hash, field, value) table.
const scalarHash = "_scalar"

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	return s.HGet(ctx, scalarHash, key)
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	return s.HSet(ctx, scalarHash, key, value)
}

func (s *Store) Incr(ctx context.Context, key string) (uint64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var cur uint64
	err = tx.QueryRowContext(ctx,
		`SELECT value FROM bus_store WHERE hash = ? AND field = ?`, scalarHash, key).Scan(&cur)
	if err != nil && err != sql.ErrNoRows {
		return 0, err
	}

	next := cur + 1
	_, err = tx.ExecContext(ctx, `
		INSERT INTO bus_store (hash, field, value) VALUES (?, ?, ?)
		ON CONFLICT(hash, field) DO UPDATE SET value = excluded.value
	`, scalarHash, key, fmt.Sprintf("%d", next))
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return next, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
