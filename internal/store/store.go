package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

// Store is the session history journal.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS runs (
		id                 INTEGER PRIMARY KEY AUTOINCREMENT,
		uid                TEXT NOT NULL UNIQUE,
		focus_minutes      INTEGER NOT NULL,
		break_minutes      INTEGER NOT NULL,
		cycles             INTEGER NOT NULL,
		long_break_minutes INTEGER NOT NULL,
		long_break_every   INTEGER NOT NULL,
		status             TEXT NOT NULL DEFAULT 'running',
		started_at         TEXT NOT NULL,
		finished_at        TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);

	CREATE TABLE IF NOT EXISTS intervals (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id      INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		position    INTEGER NOT NULL,
		session     INTEGER NOT NULL,
		kind        TEXT NOT NULL,
		label       TEXT NOT NULL,
		duration    INTEGER NOT NULL,
		started_at  TEXT NOT NULL,
		finished_at TEXT NOT NULL,
		UNIQUE(run_id, position)
	);

	CREATE INDEX IF NOT EXISTS idx_intervals_run     ON intervals(run_id);
	CREATE INDEX IF NOT EXISTS idx_intervals_started ON intervals(started_at);
	`
	_, err := s.db.Exec(ddl)
	return err
}

// DefaultDBPath returns ~/.config/pomodoro/pomodoro.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "pomodoro", "pomodoro.db"), nil
}
