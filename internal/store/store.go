// Package store declares the persistence contract the maze engine
// depends on. Concrete implementations live in store/memory and
// store/file; the engine never imports either directly.
package store

import "errors"

// ErrNotFound is returned by GetByKey when no record exists for key.
var ErrNotFound = errors.New("store: record not found")

// Table names the record families the engine and its collaborators
// persist. Only Mazes and Solutions are read by the solving engine
// itself; the rest belong to the session/auth collaborator.
type Table string

const (
	Mazes          Table = "mazes"
	Solutions      Table = "maze_solutions"
	Users          Table = "users"
	TokensIssued   Table = "tokens_issued"
	TokensDeleted  Table = "tokens_deleted"
	Keys           Table = "keys"
)

// Store is the abstract record store every table is persisted
// through. Implementations must be safe for concurrent use.
type Store interface {
	// GetByKey returns the record stored under key, or ErrNotFound.
	GetByKey(table Table, key string) (any, error)
	// GetByField returns every record whose field equals value.
	GetByField(table Table, field string, value any) ([]any, error)
	// GetByFields returns every record matching all given field/value
	// pairs (logical AND). fields and values must be the same length.
	GetByFields(table Table, fields []string, values []any) ([]any, error)
	// Put creates or replaces the record stored under key.
	Put(table Table, key string, record any) error
	// Update replaces an existing record; implementations may treat
	// this identically to Put, but callers use it to signal intent.
	Update(table Table, key string, record any) error
	// Delete removes the record stored under key. Deleting a key that
	// does not exist is not an error.
	Delete(table Table, key string) error
	// List returns every record in table.
	List(table Table) ([]any, error)
}
