// Package sqlite persists users, projects, tasks and the status catalog
// behind a single SQLite database with foreign keys enabled.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"taskify/internal/domain"
)

// Store wraps access to the SQLite database and exposes high level helpers.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open initializes a new SQLite store and runs the required migrations.
func Open(dbPath string, logger *slog.Logger) (*Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("empty database path")
	}

	if logger == nil {
		logger = slog.Default()
	}

	if err := ensureDir(dbPath); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=ON", dbPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	conn.SetMaxOpenConns(1)
	conn.SetConnMaxLifetime(0)

	s := &Store{db: conn, logger: logger}
	if err := s.migrate(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return s, nil
}

// Close releases the database resources.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func ensureDir(dbPath string) error {
	dir := filepath.Dir(dbPath)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id TEXT PRIMARY KEY,
            email TEXT NOT NULL UNIQUE,
            name TEXT NOT NULL DEFAULT '',
            created_at DATETIME NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS statuses (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL UNIQUE,
            sort_order INTEGER NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS projects (
            id TEXT PRIMARY KEY,
            title TEXT NOT NULL,
            description TEXT,
            user_id TEXT NOT NULL,
            created_at DATETIME NOT NULL,
            updated_at DATETIME NOT NULL,
            FOREIGN KEY(user_id) REFERENCES users(id)
        );`,
		`CREATE TABLE IF NOT EXISTS tasks (
            id TEXT PRIMARY KEY,
            title TEXT NOT NULL,
            description TEXT,
            status_id TEXT NOT NULL,
            project_id TEXT NOT NULL,
            created_at DATETIME NOT NULL,
            updated_at DATETIME NOT NULL,
            FOREIGN KEY(status_id) REFERENCES statuses(id),
            FOREIGN KEY(project_id) REFERENCES projects(id) ON DELETE CASCADE
        );`,
		`CREATE TABLE IF NOT EXISTS sessions (
            token TEXT PRIMARY KEY,
            user_id TEXT NOT NULL,
            expires_at DATETIME NOT NULL,
            FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
        );`,
		`CREATE INDEX IF NOT EXISTS idx_projects_user ON projects(user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status_id);`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return s.seedStatuses()
}

// seedStatuses installs the workflow catalog. The catalog is immutable
// afterwards; re-running is a no-op thanks to the unique name.
func (s *Store) seedStatuses() error {
	catalog := []struct {
		name      string
		sortOrder int
	}{
		{"Incomplete", 1},
		{"In Progress", 2},
		{"Done", 3},
	}

	for _, entry := range catalog {
		_, err := s.db.Exec(`INSERT OR IGNORE INTO statuses(id, name, sort_order) VALUES(?, ?, ?)`,
			uuid.NewString(), entry.name, entry.sortOrder)
		if err != nil {
			return fmt.Errorf("seed statuses: %w", err)
		}
	}
	return nil
}

// withTx runs fn inside a transaction, rolling back on any error.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &domain.StoreError{Op: "begin tx", Err: err}
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return &domain.StoreError{Op: "commit tx", Err: err}
	}
	return nil
}

// touchProject refreshes a project's updated_at inside the caller's
// transaction. Every task mutation must call this before committing.
func touchProject(tx *sql.Tx, projectID string, now time.Time) error {
	res, err := tx.Exec(`UPDATE projects SET updated_at = ? WHERE id = ?`, now, projectID)
	if err != nil {
		return &domain.StoreError{Op: "touch project", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &domain.StoreError{Op: "touch project", Err: err}
	}
	if affected == 0 {
		return &domain.NotFoundError{Kind: "project", ID: projectID}
	}
	return nil
}

func now() time.Time {
	return time.Now().UTC()
}
