// Package solve implements the solution state machine: it advances a
// core.Solution record by running the BFS/A* and DFS engines and
// persisting every status transition, exactly the orchestration the
// dispatcher's workers invoke.
package solve

import (
	"errors"
	"fmt"
	"time"

	"mazemaster/internal/core"
	"mazemaster/internal/maze/bfs"
	"mazemaster/internal/maze/coord"
	"mazemaster/internal/maze/dfs"
	"mazemaster/internal/maze/grid"
	"mazemaster/internal/maze/search"
	"mazemaster/internal/store"
)

// Mode selects which solution the caller wants.
type Mode string

const (
	ModeMin Mode = "min"
	ModeMax Mode = "max"
)

// Run advances sol toward the requested mode, mutating it and
// persisting every status transition to st. It returns the resulting
// path, or nil if sol is now in a state that carries no path for mode
// (an INVALID_* or SYSTEM_FAIL status, a still-processing state the
// caller must retry, or FAILED_MAX under ModeMax). The returned error is only
// ever a storage failure; domain failures are recorded as status
// values on sol instead of propagated.
func Run(st store.Store, maze *core.Maze, sol *core.Solution, mode Mode, rng dfs.Rand) ([]coord.Coordinate, error) {
	g := grid.New(maze.Dimension, maze.Walls)

	if sol.Status == core.StatusNew {
		if err := transition(st, sol, core.StatusProcessing); err != nil {
			return nil, err
		}

		if maze.Dimension.Height < 2 || maze.Dimension.Width < 1 {
			return nil, terminal(st, sol, core.StatusInvalidGeometry)
		}

		exits, err := bfs.FindAllBottomExits(g, maze.Entrance)
		switch {
		case errors.Is(err, grid.ErrStartInWall):
			return nil, terminal(st, sol, core.StatusInvalidEntryInWall)
		case errors.Is(err, grid.ErrStartOutOfBounds):
			return nil, terminal(st, sol, core.StatusInvalidEntryOutOfBounds)
		case err != nil:
			return nil, terminal(st, sol, core.StatusSystemFail)
		}

		switch len(exits) {
		case 0:
			return nil, terminal(st, sol, core.StatusInvalidNoExit)
		default:
			if len(exits) > 1 {
				return nil, terminal(st, sol, core.StatusInvalidMultiExit)
			}
			exit := exits[0].Location
			sol.DetectedExit = &exit
			sol.SolutionMin = search.Backtrack(exits[0])
			if err := transition(st, sol, core.StatusSolvedMin); err != nil {
				return nil, err
			}
		}
	}

	if mode == ModeMin {
		switch sol.Status {
		case core.StatusSolvedMin, core.StatusSolvedMax, core.StatusFailedMax:
			return sol.SolutionMin, nil
		default:
			return nil, nil
		}
	}

	// mode == ModeMax
	switch sol.Status {
	case core.StatusSolvedMax:
		return sol.SolutionMax, nil
	case core.StatusSolvedMin:
		if err := transition(st, sol, core.StatusProcessing); err != nil {
			return nil, err
		}
		result, err := dfs.FindLongest(g, maze.Entrance, *sol.DetectedExit, rng)
		if err != nil {
			return nil, terminal(st, sol, core.StatusSystemFail)
		}
		if result.Best == nil {
			return nil, terminal(st, sol, core.StatusFailedMax)
		}
		sol.SolutionMax = search.Backtrack(result.Best)
		if err := transition(st, sol, core.StatusSolvedMax); err != nil {
			return nil, err
		}
		return sol.SolutionMax, nil
	default:
		return nil, nil
	}
}

func transition(st store.Store, sol *core.Solution, status core.SolutionStatus) error {
	sol.Status = status
	sol.UpdatedAt = now()
	if err := st.Update(store.Solutions, sol.Fingerprint, sol); err != nil {
		return fmt.Errorf("solve: persisting %s: %w", status, err)
	}
	return nil
}

// terminal transitions sol into a terminal status and persists it,
// returning the persist error (nil on success) so callers can hand it
// straight back as Run's error.
func terminal(st store.Store, sol *core.Solution, status core.SolutionStatus) error {
	return transition(st, sol, status)
}

// now is overridable in tests that need deterministic timestamps.
var now = time.Now
