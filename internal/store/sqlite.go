package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS slots (
	key TEXT PRIMARY KEY,
	value BLOB NOT NULL,
	updated_at TEXT NOT NULL
);`

// SQLiteDB is an embedded database holding one row per slot key.
type SQLiteDB struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteDB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteDB{db: db, path: path}, nil
}

// Close releases the database handle.
func (d *SQLiteDB) Close() error {
	return d.db.Close()
}

// Slot returns the slot stored under key.
func (d *SQLiteDB) Slot(key string) *SQLiteSlot {
	return &SQLiteSlot{db: d.db, path: d.path, key: key}
}

// SQLiteSlot is a Slot stored as a row of the slots table.
type SQLiteSlot struct {
	db   *sql.DB
	path string
	key  string
}

func (s *SQLiteSlot) Name() string {
	return s.path + "#" + s.key
}

func (s *SQLiteSlot) Read(ctx context.Context) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = ?`, s.key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *SQLiteSlot) Write(ctx context.Context, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.key, data, time.Now().UTC().Format(time.RFC3339Nano))
	return err
}

func (s *SQLiteSlot) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM slots WHERE key = ?`, s.key)
	return err
}

// Archive stores data in the row <key>.<suffix>.
func (s *SQLiteSlot) Archive(ctx context.Context, data []byte, suffix string) (string, error) {
	archived := &SQLiteSlot{db: s.db, path: s.path, key: s.key + "." + suffix}
	if err := archived.Write(ctx, data); err != nil {
		return "", err
	}
	return archived.Name(), nil
}
