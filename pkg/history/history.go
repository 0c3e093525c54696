// Package history persists analysis runs in a local SQLite database so past
// rewrites, profiles and recommendations can be reviewed later.
package history

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// Run is one recorded invocation.
type Run struct {
	ID        string    `json:"id"`
	Command   string    `json:"command"`
	Query     string    `json:"query"`
	Payload   string    `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is a SQLite-backed run history.
type Store struct {
	db *sql.DB
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	command TEXT NOT NULL,
	query TEXT NOT NULL,
	payload TEXT NOT NULL,
	created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
CREATE INDEX IF NOT EXISTS idx_runs_command ON runs(command);
`

// DefaultPath returns the per-user history database location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "turboindex_history.db"
	}
	dir := filepath.Join(home, ".turboindex")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "turboindex_history.db"
	}
	return filepath.Join(dir, "history.db")
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open history database at %s", path)
	}
	if _, err := conn.Exec(createTableSQL); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "failed to initialize history schema")
	}
	return &Store{db: conn}, nil
}

// Record stores one run with a JSON-encoded payload and returns its id.
func (s *Store) Record(command, query string, payload any) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode run payload")
	}

	id := uuid.New().String()
	_, err = s.db.Exec(
		"INSERT INTO runs (id, command, query, payload, created_at) VALUES (?, ?, ?, ?, ?)",
		id, command, query, string(data), time.Now().UTC(),
	)
	if err != nil {
		return "", errors.Wrap(err, "failed to record run")
	}
	return id, nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		"SELECT id, command, query, payload, created_at FROM runs ORDER BY created_at DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query run history")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Command, &run.Query, &run.Payload, &run.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan run")
		}
		runs = append(runs, run)
	}
	return runs, errors.Wrap(rows.Err(), "failed to iterate run history")
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
