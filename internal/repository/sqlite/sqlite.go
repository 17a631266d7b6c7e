// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// WHY modernc.org/sqlite?
// It is a pure Go translation of SQLite: no CGo, no C compiler, and the
// same binary runs everywhere. ":memory:" gives every test its own database.
//
// CONNECTIONS:
// sql.DB is a pool, but SQLite pragmas (foreign_keys) and ":memory:"
// databases are per connection. The pool is pinned to a single connection
// so every statement sees the same pragmas and the same in-memory data.
// SQLite serialises writers anyway, so nothing is lost for this workload.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// DB wraps a sql.DB connection pool and provides repository methods for
// venues, artists, shows and editors.
type DB struct {
	conn *sql.DB
}

// New opens the SQLite database at dbPath and runs migrations.
//
// dbPath examples:
//   - "data/gigboard.db"  → file-based database (persistent)
//   - ":memory:"          → in-memory database (tests)
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets readers proceed while a write is in progress.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are OFF by default in SQLite. Shows must point at an
	// existing venue and artist, and deleting a venue cascades to its shows.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping checks that the database still answers. Used by the health endpoint.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite: ping: %w", err)
	}
	return nil
}

// migrate creates the schema. Every statement is idempotent, so it runs on
// every start.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS venues (
			id                  TEXT PRIMARY KEY,
			name                TEXT NOT NULL,
			city                TEXT NOT NULL DEFAULT '',
			state               TEXT NOT NULL DEFAULT '',
			address             TEXT NOT NULL DEFAULT '',
			phone               TEXT NOT NULL DEFAULT '',
			genres              TEXT NOT NULL DEFAULT '',
			image_link          TEXT NOT NULL DEFAULT '',
			facebook_link       TEXT NOT NULL DEFAULT '',
			website_link        TEXT NOT NULL DEFAULT '',
			seeking_talent      INTEGER NOT NULL DEFAULT 0,
			seeking_description TEXT NOT NULL DEFAULT '',
			created_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_venues_area ON venues(state, city);
	`)
	if err != nil {
		return fmt.Errorf("creating venues table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS artists (
			id                  TEXT PRIMARY KEY,
			name                TEXT NOT NULL,
			city                TEXT NOT NULL DEFAULT '',
			state               TEXT NOT NULL DEFAULT '',
			phone               TEXT NOT NULL DEFAULT '',
			genres              TEXT NOT NULL DEFAULT '',
			image_link          TEXT NOT NULL DEFAULT '',
			facebook_link       TEXT NOT NULL DEFAULT '',
			website_link        TEXT NOT NULL DEFAULT '',
			seeking_venue       INTEGER NOT NULL DEFAULT 0,
			seeking_description TEXT NOT NULL DEFAULT '',
			created_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating artists table: %w", err)
	}

	// A show belongs to exactly one artist and one venue. Deleting a venue
	// takes its shows with it; artists have no delete path.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS shows (
			id         TEXT PRIMARY KEY,
			artist_id  TEXT NOT NULL REFERENCES artists(id),
			venue_id   TEXT NOT NULL REFERENCES venues(id) ON DELETE CASCADE,
			start_time DATETIME NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_shows_venue_id ON shows(venue_id);
		CREATE INDEX IF NOT EXISTS idx_shows_artist_id ON shows(artist_id);
		CREATE INDEX IF NOT EXISTS idx_shows_start_time ON shows(start_time);
	`)
	if err != nil {
		return fmt.Errorf("creating shows table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS editors (
			id         TEXT PRIMARY KEY,
			provider   TEXT NOT NULL,
			subject    TEXT NOT NULL,
			login      TEXT NOT NULL,
			email      TEXT NOT NULL DEFAULT '',
			avatar_url TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (provider, subject)
		);
	`)
	if err != nil {
		return fmt.Errorf("creating editors table: %w", err)
	}

	return nil
}

// isForeignKeyViolation reports whether err is SQLite refusing a row whose
// reference points nowhere.
func isForeignKeyViolation(err error) bool {
	var sqlErr *sqlite.Error
	return errors.As(err, &sqlErr) && sqlErr.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
}
