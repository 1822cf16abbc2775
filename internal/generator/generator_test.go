package generator

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"mazemaster/internal/maze/bfs"
	"mazemaster/internal/maze/grid"
)

func TestGenerateProducesExactlyOneExit(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	m, err := Generate(rng, 8, 8, 0.2)
	require.NoError(t, err)

	g := grid.New(m.Dimension, m.Walls)
	exits, err := bfs.FindAllBottomExits(g, m.Entrance)
	require.NoError(t, err)
	require.Len(t, exits, 1)
}

func TestGenerateRejectsTooSmallDimension(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	_, err := Generate(rng, 1, 1, 0.2)
	require.Error(t, err)
}

func TestGenerateEntranceNeverWalled(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	m, err := Generate(rng, 6, 6, 0.5)
	require.NoError(t, err)

	g := grid.New(m.Dimension, m.Walls)
	require.True(t, g.Passable(m.Entrance))
}

func TestGenerateIsDeterministicForAFixedSeed(t *testing.T) {
	m1, err := Generate(rand.New(rand.NewSource(42)), 10, 10, 0.25)
	require.NoError(t, err)
	m2, err := Generate(rand.New(rand.NewSource(42)), 10, 10, 0.25)
	require.NoError(t, err)

	require.Equal(t, m1, m2)
}
