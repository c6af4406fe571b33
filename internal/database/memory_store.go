// file: internal/database/memory_store.go
// version: 1.0.0
// guid: 3f9c2a1e-6d4b-4e8a-9b7c-1a2d3e4f5a6b

package database

import (
	"fmt"
	"slices"
	"sync"
	"time"
)

// MemoryStore is a Store that keeps snapshots in a map. Nothing survives Close.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]snapshotRecord
	now       func() time.Time
	closed    bool
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snapshots: map[string]snapshotRecord{}, now: time.Now}
}

func (m *MemoryStore) LoadSnapshot(id string) ([]byte, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.snapshots[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, ErrSnapshotNotFound)
	}
	return slices.Clone(rec.Data), nil
}

func (m *MemoryStore) SaveSnapshot(id string, data []byte) error {
	if err := validateID(id); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return fmt.Errorf("memory store is closed")
	}
	m.snapshots[id] = snapshotRecord{Data: slices.Clone(data), UpdatedAt: m.now().UTC()}
	return nil
}

func (m *MemoryStore) DeleteSnapshot(id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snapshots, id)
	return nil
}

func (m *MemoryStore) ListSnapshots() ([]SnapshotInfo, error) {
	m.mu.RLock()
	infos := make([]SnapshotInfo, 0, len(m.snapshots))
	for id, rec := range m.snapshots {
		infos = append(infos, SnapshotInfo{ID: id, Size: len(rec.Data), UpdatedAt: rec.UpdatedAt})
	}
	m.mu.RUnlock()

	sortByRecency(infos)
	return infos, nil
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
