// Package mazesvc is the maze domain service: it owns maze CRUD,
// fingerprint-based solution caching, and the bridge into the
// dispatcher, independent of any HTTP framing.
package mazesvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"mazemaster/internal/core"
	"mazemaster/internal/dispatch"
	"mazemaster/internal/maze/coord"
	"mazemaster/internal/maze/dfs"
	"mazemaster/internal/maze/fingerprint"
	"mazemaster/internal/solve"
	"mazemaster/internal/store"
)

var (
	ErrNotFound = errors.New("mazesvc: not found")
	ErrForbidden = errors.New("mazesvc: not owned by caller")
)

// Service is the maze domain's entry point, consumed directly by the
// HTTP transport.
type Service struct {
	Store      store.Store
	Dispatcher *dispatch.Dispatcher
}

func New(st store.Store, d *dispatch.Dispatcher) *Service {
	return &Service{Store: st, Dispatcher: d}
}

// CreateMaze stores a new maze for owner, or returns the existing one
// if owner already has a maze with the same fingerprint.
func (s *Service) CreateMaze(owner string, dim coord.Dimension, entrance coord.Coordinate, walls []coord.Coordinate) (*core.Maze, error) {
	fp := fingerprint.Compute(entrance, dim, walls)

	existing, err := s.Store.GetByFields(store.Mazes, []string{"OwnerID", "Fingerprint"}, []any{owner, fp})
	if err != nil {
		return nil, fmt.Errorf("mazesvc: checking for existing maze: %w", err)
	}
	if len(existing) > 0 {
		return existing[0].(*core.Maze), nil
	}

	owned, err := s.Store.GetByField(store.Mazes, "OwnerID", owner)
	if err != nil {
		return nil, fmt.Errorf("mazesvc: counting owned mazes: %w", err)
	}

	m := &core.Maze{
		ID:          uuid.NewString(),
		OwnerID:     owner,
		MazeNum:     len(owned) + 1,
		Fingerprint: fp,
		Dimension:   dim,
		Entrance:    entrance,
		Walls:       walls,
		CreatedAt:   time.Now(),
	}
	if err := s.Store.Put(store.Mazes, m.ID, m); err != nil {
		return nil, fmt.Errorf("mazesvc: storing maze: %w", err)
	}
	return m, nil
}

func (s *Service) GetMazeByID(owner, id string) (*core.Maze, error) {
	rec, err := s.Store.GetByKey(store.Mazes, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	m := rec.(*core.Maze)
	if m.OwnerID != owner {
		return nil, ErrForbidden
	}
	return m, nil
}

func (s *Service) GetMazeByNum(owner string, num int) (*core.Maze, error) {
	matches, err := s.Store.GetByFields(store.Mazes, []string{"OwnerID", "MazeNum"}, []any{owner, num})
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, ErrNotFound
	}
	return matches[0].(*core.Maze), nil
}

// DeleteMaze removes a maze. It never touches the maze's solution
// record: solutions are keyed by fingerprint and may be shared with
// other mazes, so they outlive the maze that first produced them.
func (s *Service) DeleteMaze(owner string, num int) error {
	m, err := s.GetMazeByNum(owner, num)
	if err != nil {
		return err
	}
	return s.Store.Delete(store.Mazes, m.ID)
}

// SolveError wraps a terminal solution status that the HTTP layer
// must translate into an error response.
type SolveError struct {
	Status core.SolutionStatus
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("mazesvc: solution status %s", e.Status)
}

// GetSolution returns the path for mode, triggering a solve if one is
// not already cached. Domain failures are returned as *SolveError;
// dispatch.ErrInFlight / ErrTooManyInFlight / ErrStillProcessing are
// returned unwrapped so the HTTP layer can map them directly.
func (s *Service) GetSolution(ctx context.Context, owner string, num int, mode solve.Mode) ([]coord.Coordinate, error) {
	maze, err := s.GetMazeByNum(owner, num)
	if err != nil {
		return nil, err
	}

	sol, err := s.getOrCreateSolution(maze.Fingerprint)
	if err != nil {
		return nil, err
	}

	if path, ok := cachedPath(sol, mode); ok {
		return path, nil
	}
	if sol.Status.Terminal() {
		return nil, asSolveError(sol.Status)
	}

	rng := dfs.NewRand(time.Now().UnixNano())
	ch, err := s.Dispatcher.Trigger(maze, sol, mode, rng)
	if err != nil {
		return nil, err
	}

	result, err := dispatch.Await(ctx, ch)
	if err != nil {
		return nil, err
	}
	if result.Err != nil {
		return nil, result.Err
	}
	if result.Path == nil {
		return nil, asSolveError(sol.Status)
	}
	return result.Path, nil
}

func (s *Service) getOrCreateSolution(fp string) (*core.Solution, error) {
	rec, err := s.Store.GetByKey(store.Solutions, fp)
	if err == nil {
		return rec.(*core.Solution), nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	sol := &core.Solution{
		ID:          uuid.NewString(),
		Fingerprint: fp,
		Status:      core.StatusNew,
		UpdatedAt:   time.Now(),
	}
	if err := s.Store.Put(store.Solutions, fp, sol); err != nil {
		return nil, fmt.Errorf("mazesvc: creating solution record: %w", err)
	}
	return sol, nil
}

// cachedPath reports the already-solved path for mode, if sol already
// holds one.
func cachedPath(sol *core.Solution, mode solve.Mode) ([]coord.Coordinate, bool) {
	switch {
	case mode == solve.ModeMin && (sol.Status == core.StatusSolvedMin || sol.Status == core.StatusSolvedMax || sol.Status == core.StatusFailedMax):
		return sol.SolutionMin, true
	case mode == solve.ModeMax && sol.Status == core.StatusSolvedMax:
		return sol.SolutionMax, true
	default:
		return nil, false
	}
}

// asSolveError wraps a terminal status as a caller-facing error.
// Callers only invoke it once cachedPath has already ruled out a
// genuine success for the requested mode.
func asSolveError(status core.SolutionStatus) error {
	return &SolveError{Status: status}
}
