// file: internal/database/sqlite_store.go
// version: 2.0.0
// guid: 6e7f8a9b-0c1d-2e3f-4a5b-6c7d8e9f0a1b

package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore implements the Store interface using SQLite3
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore creates a new SQLite store
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	store := &SQLiteStore{db: db, now: time.Now}
	if err := store.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return store, nil
}

// createTables creates all required tables
func (s *SQLiteStore) createTables() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS snapshots (
		id TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_updated_at ON snapshots(updated_at);
	`)
	return err
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// LoadSnapshot returns the snapshot stored for id.
func (s *SQLiteStore) LoadSnapshot(id string) ([]byte, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	var data []byte
	err := s.db.QueryRow("SELECT data FROM snapshots WHERE id = ?", id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %s: %w", id, ErrSnapshotNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", id, err)
	}
	return data, nil
}

// SaveSnapshot upserts the snapshot for id.
func (s *SQLiteStore) SaveSnapshot(id string, data []byte) error {
	if err := validateID(id); err != nil {
		return err
	}
	if data == nil {
		data = []byte{}
	}
	_, err := s.db.Exec(`
		INSERT INTO snapshots (id, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		id, data, s.now().UTC())
	if err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", id, err)
	}
	return nil
}

// DeleteSnapshot removes the snapshot for id.
func (s *SQLiteStore) DeleteSnapshot(id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	if _, err := s.db.Exec("DELETE FROM snapshots WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", id, err)
	}
	return nil
}

// ListSnapshots returns every snapshot, most recent first.
func (s *SQLiteStore) ListSnapshots() ([]SnapshotInfo, error) {
	rows, err := s.db.Query("SELECT id, length(data), updated_at FROM snapshots")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []SnapshotInfo
	for rows.Next() {
		var info SnapshotInfo
		if err := rows.Scan(&info.ID, &info.Size, &info.UpdatedAt); err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sortByRecency(infos)
	return infos, nil
}
