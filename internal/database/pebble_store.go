// file: internal/database/pebble_store.go
// version: 2.0.0
// guid: 0c1d2e3f-4a5b-6c7d-8e9f-0a1b2c3d4e5f

package database

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cockroachdb/pebble/v2"
)

// PebbleStore implements the Store interface using PebbleDB (LSM key-value store)
//
// Key Schema:
// - session:<id> -> snapshotRecord JSON
type PebbleStore struct {
	db  *pebble.DB
	now func() time.Time
}

const sessionPrefix = "session:"

// NewPebbleStore opens (or creates) a PebbleDB database at path.
func NewPebbleStore(path string) (*PebbleStore, error) {
	return newPebbleStore(path, &pebble.Options{})
}

func newPebbleStore(path string, opts *pebble.Options) (*PebbleStore, error) {
	db, err := pebble.Open(path, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open PebbleDB: %w", err)
	}
	return &PebbleStore{db: db, now: time.Now}, nil
}

// Close closes the database
func (p *PebbleStore) Close() error {
	return p.db.Close()
}

func sessionKey(id string) []byte {
	return []byte(sessionPrefix + id)
}

// LoadSnapshot returns the snapshot stored for id.
func (p *PebbleStore) LoadSnapshot(id string) ([]byte, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	value, closer, err := p.db.Get(sessionKey(id))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, fmt.Errorf("session %s: %w", id, ErrSnapshotNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", id, err)
	}
	defer closer.Close()

	var rec snapshotRecord
	if err := json.Unmarshal(value, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot record %s: %w", id, err)
	}
	return rec.Data, nil
}

// SaveSnapshot stores data under id, replacing any previous snapshot.
func (p *PebbleStore) SaveSnapshot(id string, data []byte) error {
	if err := validateID(id); err != nil {
		return err
	}
	value, err := json.Marshal(snapshotRecord{Data: data, UpdatedAt: p.now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to encode snapshot record: %w", err)
	}
	if err := p.db.Set(sessionKey(id), value, pebble.Sync); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", id, err)
	}
	return nil
}

// DeleteSnapshot removes the snapshot for id.
func (p *PebbleStore) DeleteSnapshot(id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	if err := p.db.Delete(sessionKey(id), pebble.Sync); err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", id, err)
	}
	return nil
}

// ListSnapshots scans the session keyspace.
func (p *PebbleStore) ListSnapshots() ([]SnapshotInfo, error) {
	prefix := []byte(sessionPrefix)
	iter, err := p.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: append(prefix, 0xFF),
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var infos []SnapshotInfo
	for iter.First(); iter.Valid(); iter.Next() {
		var rec snapshotRecord
		if err := json.Unmarshal(iter.Value(), &rec); err != nil {
			continue
		}
		infos = append(infos, SnapshotInfo{
			ID:        strings.TrimPrefix(string(iter.Key()), sessionPrefix),
			Size:      len(rec.Data),
			UpdatedAt: rec.UpdatedAt,
		})
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}

	sortByRecency(infos)
	return infos, nil
}

func sortByRecency(infos []SnapshotInfo) {
	sort.SliceStable(infos, func(i, j int) bool {
		if infos[i].UpdatedAt.Equal(infos[j].UpdatedAt) {
			return infos[i].ID > infos[j].ID
		}
		return infos[i].UpdatedAt.After(infos[j].UpdatedAt)
	})
}
