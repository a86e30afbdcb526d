package state

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Environment is one journal row describing a registered environment.
type Environment struct {
	Name       string    // Environment name, unique
	Backend    string    // Backend that built it (e.g. "venv")
	Python     string    // Interpreter it was seeded with (may be empty)
	Path       string    // Absolute directory of the environment
	CreatedAt  time.Time // When the environment was created
	LastUsedAt time.Time // Last exec against it; zero if never used
}

// ErrEnvironmentNotFound is returned when no journal row exists for a name.
var ErrEnvironmentNotFound = errors.New("environment not found in journal")

// CreateEnvironment inserts a new journal row.
func (db *DB) CreateEnvironment(env *Environment) error {
	_, err := db.Exec(`
		INSERT INTO environments (name, backend, python, path, created_at, last_used_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		env.Name,
		env.Backend,
		nullString(env.Python),
		env.Path,
		env.CreatedAt.UTC().Format(time.RFC3339),
		nullTime(env.LastUsedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to record environment: %w", err)
	}
	return nil
}

// GetEnvironment retrieves a journal row by name.
func (db *DB) GetEnvironment(name string) (*Environment, error) {
	row := db.QueryRow(`
		SELECT name, backend, python, path, created_at, last_used_at
		FROM environments WHERE name = ?`, name)

	env, err := scanEnvironment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEnvironmentNotFound
		}
		return nil, fmt.Errorf("failed to get environment: %w", err)
	}
	return env, nil
}

// DeleteEnvironment removes a journal row. Deleting a row that does not
// exist returns ErrEnvironmentNotFound.
func (db *DB) DeleteEnvironment(name string) error {
	result, err := db.Exec("DELETE FROM environments WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to delete environment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrEnvironmentNotFound
	}
	return nil
}

// TouchEnvironment updates a row's last_used_at timestamp.
// A missing row is not an error; the journal is advisory.
func (db *DB) TouchEnvironment(name string, t time.Time) error {
	_, err := db.Exec(
		"UPDATE environments SET last_used_at = ? WHERE name = ?",
		t.UTC().Format(time.RFC3339), name,
	)
	if err != nil {
		return fmt.Errorf("failed to touch environment: %w", err)
	}
	return nil
}

// ListEnvironments returns all journal rows ordered by name.
func (db *DB) ListEnvironments() ([]*Environment, error) {
	rows, err := db.Query(`
		SELECT name, backend, python, path, created_at, last_used_at
		FROM environments ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list environments: %w", err)
	}
	defer rows.Close()

	var envs []*Environment
	for rows.Next() {
		env, err := scanEnvironment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan environment: %w", err)
		}
		envs = append(envs, env)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating environments: %w", err)
	}

	return envs, nil
}

// scanner is the shared subset of sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEnvironment(s scanner) (*Environment, error) {
	var env Environment
	var python, lastUsedAt sql.NullString
	var createdAt string

	err := s.Scan(
		&env.Name,
		&env.Backend,
		&python,
		&env.Path,
		&createdAt,
		&lastUsedAt,
	)
	if err != nil {
		return nil, err
	}

	env.Python = python.String

	env.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if lastUsedAt.Valid {
		env.LastUsedAt, err = time.Parse(time.RFC3339, lastUsedAt.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse last_used_at: %w", err)
		}
	}

	return &env, nil
}

// nullString converts an empty string to NULL for optional columns.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// nullTime converts a zero time to NULL for optional columns.
func nullTime(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(time.RFC3339), Valid: true}
}
