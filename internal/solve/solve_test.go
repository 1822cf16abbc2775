package solve

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mazemaster/internal/core"
	"mazemaster/internal/maze/coord"
	"mazemaster/internal/maze/dfs"
	"mazemaster/internal/store"
	"mazemaster/internal/store/memory"
)

func label(s string) coord.Coordinate {
	c, err := coord.Decode(s)
	if err != nil {
		panic(err)
	}
	return c
}

func walls(labels ...string) []coord.Coordinate {
	out := make([]coord.Coordinate, len(labels))
	for i, l := range labels {
		out[i] = label(l)
	}
	return out
}

func TestRunSingleExitReachesSolvedMin(t *testing.T) {
	maze := &core.Maze{
		Fingerprint: "fp1",
		Dimension:   coord.Dimension{Width: 3, Height: 3},
		Entrance:    label("A1"),
		Walls:       walls("A3", "B3"),
	}
	sol := &core.Solution{ID: "s1", Fingerprint: "fp1", Status: core.StatusNew}
	st := memory.New()
	require.NoError(t, st.Put(store.Solutions, sol.Fingerprint, sol))

	path, err := Run(st, maze, sol, ModeMin, dfs.NewRand(1))
	require.NoError(t, err)
	require.Equal(t, core.StatusSolvedMin, sol.Status)
	require.NotNil(t, sol.DetectedExit)
	require.Equal(t, label("C3"), *sol.DetectedExit)
	require.Equal(t, sol.SolutionMin, path)
	require.Equal(t, label("A1"), path[0])
}

func TestRunNoExitIsTerminalAndInvalid(t *testing.T) {
	maze := &core.Maze{
		Fingerprint: "fp2",
		Dimension:   coord.Dimension{Width: 3, Height: 3},
		Entrance:    label("A1"),
		Walls:       walls("A3", "B3", "C3"),
	}
	sol := &core.Solution{ID: "s2", Fingerprint: "fp2", Status: core.StatusNew}
	st := memory.New()
	require.NoError(t, st.Put(store.Solutions, sol.Fingerprint, sol))

	path, err := Run(st, maze, sol, ModeMin, dfs.NewRand(1))
	require.NoError(t, err)
	require.Nil(t, path)
	require.Equal(t, core.StatusInvalidNoExit, sol.Status)
	require.True(t, sol.Status.Terminal())
}

func TestRunMultiExitIsTerminalAndInvalid(t *testing.T) {
	maze := &core.Maze{
		Fingerprint: "fp3",
		Dimension:   coord.Dimension{Width: 3, Height: 3},
		Entrance:    label("A1"),
	}
	sol := &core.Solution{ID: "s3", Fingerprint: "fp3", Status: core.StatusNew}
	st := memory.New()
	require.NoError(t, st.Put(store.Solutions, sol.Fingerprint, sol))

	path, err := Run(st, maze, sol, ModeMin, dfs.NewRand(1))
	require.NoError(t, err)
	require.Nil(t, path)
	require.Equal(t, core.StatusInvalidMultiExit, sol.Status)
}

func TestRunEntryInWall(t *testing.T) {
	maze := &core.Maze{
		Fingerprint: "fp4",
		Dimension:   coord.Dimension{Width: 3, Height: 3},
		Entrance:    label("A1"),
		Walls:       walls("A1"),
	}
	sol := &core.Solution{ID: "s4", Fingerprint: "fp4", Status: core.StatusNew}
	st := memory.New()
	require.NoError(t, st.Put(store.Solutions, sol.Fingerprint, sol))

	_, err := Run(st, maze, sol, ModeMin, dfs.NewRand(1))
	require.NoError(t, err)
	require.Equal(t, core.StatusInvalidEntryInWall, sol.Status)
}

func TestRunEntryOutOfBounds(t *testing.T) {
	maze := &core.Maze{
		Fingerprint: "fp5",
		Dimension:   coord.Dimension{Width: 3, Height: 3},
		Entrance:    label("Z9"),
	}
	sol := &core.Solution{ID: "s5", Fingerprint: "fp5", Status: core.StatusNew}
	st := memory.New()
	require.NoError(t, st.Put(store.Solutions, sol.Fingerprint, sol))

	_, err := Run(st, maze, sol, ModeMin, dfs.NewRand(1))
	require.NoError(t, err)
	require.Equal(t, core.StatusInvalidEntryOutOfBounds, sol.Status)
}

func TestRunMaxModeUpgradesFromSolvedMin(t *testing.T) {
	maze := &core.Maze{
		Fingerprint: "fp6",
		Dimension:   coord.Dimension{Width: 3, Height: 4},
		Entrance:    label("A1"),
		Walls:       walls("A4", "B4"),
	}
	sol := &core.Solution{ID: "s6", Fingerprint: "fp6", Status: core.StatusNew}
	st := memory.New()
	require.NoError(t, st.Put(store.Solutions, sol.Fingerprint, sol))

	minPath, err := Run(st, maze, sol, ModeMin, dfs.NewRand(1))
	require.NoError(t, err)
	require.Equal(t, core.StatusSolvedMin, sol.Status)

	maxPath, err := Run(st, maze, sol, ModeMax, dfs.NewRand(1))
	require.NoError(t, err)
	require.Equal(t, core.StatusSolvedMax, sol.Status)
	require.GreaterOrEqual(t, len(maxPath), len(minPath))
	require.Equal(t, sol.SolutionMax, maxPath)
}

func TestRunMaxModeCachedAfterSolvedMax(t *testing.T) {
	maze := &core.Maze{
		Fingerprint: "fp7",
		Dimension:   coord.Dimension{Width: 3, Height: 3},
		Entrance:    label("A1"),
		Walls:       walls("A3", "B3"),
	}
	sol := &core.Solution{ID: "s7", Fingerprint: "fp7", Status: core.StatusNew}
	st := memory.New()
	require.NoError(t, st.Put(store.Solutions, sol.Fingerprint, sol))

	_, err := Run(st, maze, sol, ModeMax, dfs.NewRand(1))
	require.NoError(t, err)
	require.Equal(t, core.StatusSolvedMax, sol.Status)

	again, err := Run(st, maze, sol, ModeMax, dfs.NewRand(1))
	require.NoError(t, err)
	require.Equal(t, sol.SolutionMax, again)
}

func TestRunMinModeOnAlreadyTerminalInvalidReturnsNil(t *testing.T) {
	sol := &core.Solution{ID: "s8", Fingerprint: "fp8", Status: core.StatusInvalidNoExit}
	st := memory.New()
	require.NoError(t, st.Put(store.Solutions, sol.Fingerprint, sol))

	maze := &core.Maze{Fingerprint: "fp8", Dimension: coord.Dimension{Width: 3, Height: 3}, Entrance: label("A1")}
	path, err := Run(st, maze, sol, ModeMin, dfs.NewRand(1))
	require.NoError(t, err)
	require.Nil(t, path)
	require.Equal(t, core.StatusInvalidNoExit, sol.Status)
}
