// Package memory is the default store.Store implementation: an
// in-process, mutex-guarded map of maps. It never touches disk and is
// wiped on process restart.
package memory

import (
	"reflect"
	"sync"

	"mazemaster/internal/store"
)

// Store is a thread-safe, in-memory implementation of store.Store.
type Store struct {
	mu     sync.RWMutex
	tables map[store.Table]map[string]any
}

// New returns an empty in-memory Store.
func New() *Store {
	return &Store{tables: make(map[store.Table]map[string]any)}
}

func (s *Store) table(t store.Table) map[string]any {
	tbl, ok := s.tables[t]
	if !ok {
		tbl = make(map[string]any)
		s.tables[t] = tbl
	}
	return tbl
}

// GetByKey returns the record stored under key, or store.ErrNotFound.
func (s *Store) GetByKey(t store.Table, key string) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.tables[t][key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return rec, nil
}

// GetByField returns every record in t whose field equals value.
func (s *Store) GetByField(t store.Table, field string, value any) ([]any, error) {
	return s.GetByFields(t, []string{field}, []any{value})
}

// GetByFields returns every record matching all given field/value
// pairs, via reflection over each record's exported struct fields.
func (s *Store) GetByFields(t store.Table, fields []string, values []any) ([]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []any
	for _, rec := range s.tables[t] {
		if matchesAll(rec, fields, values) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func matchesAll(rec any, fields []string, values []any) bool {
	v := reflect.ValueOf(rec)
	for v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return false
	}
	for i, field := range fields {
		fv := v.FieldByName(field)
		if !fv.IsValid() || !reflect.DeepEqual(fv.Interface(), values[i]) {
			return false
		}
	}
	return true
}

// Put creates or replaces the record stored under key.
func (s *Store) Put(t store.Table, key string, record any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table(t)[key] = record
	return nil
}

// Update replaces an existing record; identical to Put for this
// implementation since there is no on-disk generation to reconcile.
func (s *Store) Update(t store.Table, key string, record any) error {
	return s.Put(t, key, record)
}

// Delete removes the record stored under key.
func (s *Store) Delete(t store.Table, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.table(t), key)
	return nil
}

// List returns every record in t.
func (s *Store) List(t store.Table) ([]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]any, 0, len(s.tables[t]))
	for _, rec := range s.tables[t] {
		out = append(out, rec)
	}
	return out, nil
}

// All returns a snapshot copy of every key/record pair in t, letting
// callers (such as the file store) serialize the table keyed the same
// way it was written.
func (s *Store) All(t store.Table) map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.tables[t]))
	for k, v := range s.tables[t] {
		out[k] = v
	}
	return out
}

var _ store.Store = (*Store)(nil)
