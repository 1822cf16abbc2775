// Package file is a durable-enough local store.Store implementation:
// an in-memory store that snapshots itself to a JSON file after every
// write and reloads that file at startup, in the spirit of the
// teacher's puzzle-file loading convention.
package file

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"mazemaster/internal/core"
	"mazemaster/internal/store"
	"mazemaster/internal/store/memory"
)

// recordType maps each table to the concrete struct its records
// decode into, so a reload produces real domain types rather than
// generic map[string]any values.
var recordType = map[store.Table]func() any{
	store.Mazes:         func() any { return &core.Maze{} },
	store.Solutions:     func() any { return &core.Solution{} },
	store.Users:         func() any { return &core.User{} },
	store.TokensIssued:  func() any { return &core.IssuedToken{} },
	store.TokensDeleted: func() any { return &core.DeletedToken{} },
	store.Keys:          func() any { return &core.Key{} },
}

// Store wraps a memory.Store with JSON-file persistence. Record
// values must round-trip through encoding/json; callers typically
// register concrete struct types, not interfaces, as records.
type Store struct {
	path string
	mem  *memory.Store
	mu   sync.Mutex
}

// snapshot is the on-disk shape: table name to key to raw JSON record.
type snapshot map[store.Table]map[string]json.RawMessage

// Open loads path if it exists and returns a Store that persists every
// subsequent write back to it. A missing file is not an error: it is
// treated as an empty store that will be created on first write.
func Open(path string) (*Store, error) {
	s := &Store{path: path, mem: memory.New()}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file store: reading %s: %w", path, err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("file store: parsing %s: %w", path, err)
	}
	for table, records := range snap {
		newRecord, ok := recordType[table]
		if !ok {
			continue // unknown table in an old snapshot; skip rather than fail
		}
		for key, raw := range records {
			v := newRecord()
			if err := json.Unmarshal(raw, v); err != nil {
				return nil, fmt.Errorf("file store: decoding record %s/%s: %w", table, key, err)
			}
			if err := s.mem.Put(table, key, v); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}

func (s *Store) GetByKey(t store.Table, key string) (any, error) {
	return s.mem.GetByKey(t, key)
}

func (s *Store) GetByField(t store.Table, field string, value any) ([]any, error) {
	return s.mem.GetByField(t, field, value)
}

func (s *Store) GetByFields(t store.Table, fields []string, values []any) ([]any, error) {
	return s.mem.GetByFields(t, fields, values)
}

func (s *Store) Put(t store.Table, key string, record any) error {
	if err := s.mem.Put(t, key, record); err != nil {
		return err
	}
	return s.flush()
}

func (s *Store) Update(t store.Table, key string, record any) error {
	return s.Put(t, key, record)
}

func (s *Store) Delete(t store.Table, key string) error {
	if err := s.mem.Delete(t, key); err != nil {
		return err
	}
	return s.flush()
}

func (s *Store) List(t store.Table) ([]any, error) {
	return s.mem.List(t)
}

// flush serializes the whole store to s.path. Called after every
// mutation: mazes and their solutions are small enough that rewriting
// the whole file is simpler, and safer under concurrent writers, than
// maintaining an append log.
func (s *Store) flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	allTables := []store.Table{store.Mazes, store.Solutions, store.Users, store.TokensIssued, store.TokensDeleted, store.Keys}
	snap := make(snapshot, len(allTables))
	for _, t := range allTables {
		records := s.mem.All(t)
		if len(records) == 0 {
			continue
		}
		byKey := make(map[string]json.RawMessage, len(records))
		for key, rec := range records {
			raw, err := json.Marshal(rec)
			if err != nil {
				return fmt.Errorf("file store: marshaling %s record: %w", t, err)
			}
			byKey[key] = raw
		}
		snap[t] = byKey
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("file store: marshaling snapshot: %w", err)
	}
	return os.WriteFile(s.path, data, 0o644)
}

var _ store.Store = (*Store)(nil)
