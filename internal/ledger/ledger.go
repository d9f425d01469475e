// Package ledger persists a local history of completed downloads backed by
// SQLite. The history exists for reporting; correctness of the skip-if-exists
// policy never depends on it.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store manages download history persistence.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database and applies the
// schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.applySchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) applySchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS downloads (
	id TEXT PRIMARY KEY,
	run_id TEXT NOT NULL,
	source TEXT NOT NULL,
	dest_path TEXT NOT NULL,
	trigger_names TEXT NOT NULL,
	started_at TIMESTAMP NOT NULL,
	ended_at TIMESTAMP NOT NULL,
	size_bytes INTEGER NOT NULL,
	downloaded_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_downloads_downloaded_at ON downloads(downloaded_at DESC);
`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply history schema: %w", err)
	}
	return nil
}

// Row is one recorded download.
type Row struct {
	ID           string
	RunID        string
	Source       string
	DestPath     string
	TriggerNames string
	StartedAt    time.Time
	EndedAt      time.Time
	SizeBytes    int64
	DownloadedAt time.Time
}

// Record inserts one completed download. The row ID is allocated here.
func (s *Store) Record(ctx context.Context, row Row) error {
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	if row.DownloadedAt.IsZero() {
		row.DownloadedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO downloads (id, run_id, source, dest_path, trigger_names, started_at, ended_at, size_bytes, downloaded_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.ID, row.RunID, row.Source, row.DestPath, row.TriggerNames,
		row.StartedAt.UTC(), row.EndedAt.UTC(), row.SizeBytes, row.DownloadedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("record download: %w", err)
	}
	return nil
}

// Recent returns up to limit rows, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Row, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, run_id, source, dest_path, trigger_names, started_at, ended_at, size_bytes, downloaded_at
FROM downloads ORDER BY downloaded_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.ID, &row.RunID, &row.Source, &row.DestPath, &row.TriggerNames,
			&row.StartedAt, &row.EndedAt, &row.SizeBytes, &row.DownloadedAt); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
