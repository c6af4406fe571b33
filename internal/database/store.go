// file: internal/database/store.go
// version: 3.0.0
// guid: 8a9b0c1d-2e3f-4a5b-6c7d-8e9f0a1b2c3d

// Package database persists preview session snapshots. PebbleDB is the
// default backend; SQLite3 is opt-in and an in-memory store serves tests and
// one-shot commands.
package database

import (
	"errors"
	"fmt"
	"time"
)

// ErrSnapshotNotFound is returned when no snapshot is stored under an ID.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Store defines the interface for our database operations
// This abstraction allows us to support both PebbleDB (default) and SQLite3 (opt-in)
type Store interface {
	// LoadSnapshot returns the raw snapshot bytes stored for a session.
	LoadSnapshot(id string) ([]byte, error)
	// SaveSnapshot replaces the snapshot for a session.
	SaveSnapshot(id string, data []byte) error
	// DeleteSnapshot removes a snapshot. Missing IDs are not an error.
	DeleteSnapshot(id string) error
	// ListSnapshots returns every stored snapshot, most recent first.
	ListSnapshots() ([]SnapshotInfo, error)

	Close() error
}

// SnapshotInfo describes a stored snapshot without its payload
type SnapshotInfo struct {
	ID        string    `json:"id"`
	Size      int       `json:"size"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GlobalStore is the process-wide store used by commands
var GlobalStore Store

// Open builds a store of the given type without touching GlobalStore.
func Open(dbType, path string, enableSQLite bool) (Store, error) {
	switch dbType {
	case "sqlite", "sqlite3":
		if !enableSQLite {
			return nil, fmt.Errorf("SQLite3 is not enabled. To use SQLite3, you must explicitly enable it with --enable-sqlite3-i-know-the-risks or set 'enable_sqlite3_i_know_the_risks: true' in your config file. PebbleDB is the recommended database for production use")
		}
		store, err := NewSQLiteStore(path)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
		}
		return store, nil
	case "pebble", "":
		store, err := NewPebbleStore(path)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize PebbleDB store: %w", err)
		}
		return store, nil
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s (supported: pebble, sqlite, memory)", dbType)
	}
}

// InitializeStore initializes the database store based on configuration
func InitializeStore(dbType, path string, enableSQLite bool) error {
	store, err := Open(dbType, path, enableSQLite)
	if err != nil {
		return err
	}
	GlobalStore = store
	return nil
}

// CloseStore closes the global store
func CloseStore() error {
	if GlobalStore == nil {
		return nil
	}
	err := GlobalStore.Close()
	GlobalStore = nil
	return err
}

// snapshotRecord is the stored form used by the key-value backends
type snapshotRecord struct {
	Data      []byte    `json:"data"`
	UpdatedAt time.Time `json:"updated_at"`
}

func validateID(id string) error {
	if id == "" {
		return fmt.Errorf("snapshot id is required")
	}
	return nil
}
