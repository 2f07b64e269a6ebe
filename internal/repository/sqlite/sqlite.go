// Package sqlite implements repository.ItemRepository on SQLite.
//
// WHY modernc.org/sqlite?
// It is a pure Go translation of SQLite, so the binary cross-compiles
// without a C toolchain. The driver registers itself as "sqlite" from the
// blank import below.
//
// Unlike the document backends, rows are stored individually. The legacy
// id rules still hold: ids are count+1 and may repeat, so the table is keyed
// by an internal autoincrement `seq` that also fixes insertion order.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dbPath and runs migrations.
//
// dbPath examples:
//   - "data/items.db" → file-based database
//   - ":memory:"      → in-memory database, used by tests
//
// The pool is capped at one connection: SQLite serialises writers anyway,
// and an in-memory database exists only on the connection that created it.
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

	// WAL lets readers proceed while a write is in flight.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping checks the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// migrate is idempotent: CREATE ... IF NOT EXISTS is safe on every start.
//
// Timestamps are TEXT in RFC 3339 so they read back exactly as written,
// matching the JSON document format.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS items (
			seq         INTEGER PRIMARY KEY AUTOINCREMENT,
			id          INTEGER NOT NULL,
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at  TEXT NOT NULL,
			updated_at  TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_items_id ON items(id);
	`)
	if err != nil {
		return fmt.Errorf("creating items table: %w", err)
	}
	return nil
}
