// Package state persists non-authoritative metadata about environments in a
// sqlite database. The filesystem registry remains the source of truth; the
// journal only annotates environments with details the directory tree cannot
// carry (which backend built them, which interpreter, when they were last
// used). Rows for directories that no longer exist are ignored and pruned.
package state

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection to the journal database.
type DB struct {
	*sql.DB
	path string
}

// DefaultPath returns the default database path
// ($XDG_DATA_HOME/venvr/state.db, falling back to ~/.local/share).
func DefaultPath() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dataHome = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataHome, "venvr", "state.db"), nil
}

// Open opens or creates the journal database at the given path.
// An empty path means DefaultPath(); ":memory:" opens an in-memory database
// (used by tests).
func Open(path string) (*DB, error) {
	var err error
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	var dsn string
	if path == ":memory:" {
		dsn = "file::memory:?cache=shared"
	} else {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		// WAL keeps concurrent readers cheap. modernc.org/sqlite takes
		// pragmas in _pragma=name(value) form.
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(wal)", path)
	}

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if path == ":memory:" {
		// Shared-cache in-memory databases misbehave with multiple connections.
		sqlDB.SetMaxOpenConns(1)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := &DB{DB: sqlDB, path: path}
	if err := db.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// Path returns the database file path, or ":memory:".
func (db *DB) Path() string {
	return db.path
}
