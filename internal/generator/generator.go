// Package generator produces random mazes for tests, benchmarks, and
// the genmaze CLI. It always yields a maze with exactly one detectable
// bottom-row exit, so its output can be fed straight into the solver
// test suite.
package generator

import (
	"fmt"
	"math/rand"

	"mazemaster/internal/maze/bfs"
	"mazemaster/internal/maze/coord"
	"mazemaster/internal/maze/grid"
)

// Maze is a freshly generated, already-validated maze description.
type Maze struct {
	Dimension coord.Dimension
	Entrance  coord.Coordinate
	Walls     []coord.Coordinate
}

// maxAttempts bounds the retry loop Generate uses to find a layout
// with exactly one exit; wall density low enough to matter in
// practice converges in a handful of attempts.
const maxAttempts = 200

// Generate builds a width x height maze with walls placed
// independently at the given density (0..1), always leaving the top
// row's entrance column and exactly one bottom-row column passable.
// It retries with fresh randomness until the result has exactly one
// reachable exit, returning an error if it cannot do so within a
// bounded number of attempts.
func Generate(rng *rand.Rand, width, height int, density float64) (Maze, error) {
	if width < 1 || height < 2 {
		return Maze{}, fmt.Errorf("generator: dimension %dx%d is too small", width, height)
	}

	dim := coord.Dimension{Width: width, Height: height}
	entrance := coord.Coordinate{Col: rng.Intn(width), Row: 0}
	exitCol := rng.Intn(width)

	for attempt := 0; attempt < maxAttempts; attempt++ {
		walls := layWalls(rng, dim, entrance, exitCol, density)
		g := grid.New(dim, walls)
		exits, err := bfs.FindAllBottomExits(g, entrance)
		if err != nil {
			continue
		}
		if len(exits) == 1 {
			return Maze{Dimension: dim, Entrance: entrance, Walls: walls}, nil
		}
	}
	return Maze{}, fmt.Errorf("generator: could not produce a single-exit %dx%d maze after %d attempts", width, height, maxAttempts)
}

func layWalls(rng *rand.Rand, dim coord.Dimension, entrance coord.Coordinate, exitCol int, density float64) []coord.Coordinate {
	var walls []coord.Coordinate
	bottom := dim.Height - 1
	for row := 0; row < dim.Height; row++ {
		for col := 0; col < dim.Width; col++ {
			c := coord.Coordinate{Col: col, Row: row}
			if c == entrance {
				continue
			}
			if row == bottom {
				if col != exitCol {
					walls = append(walls, c)
				}
				continue
			}
			if rng.Float64() < density {
				walls = append(walls, c)
			}
		}
	}
	return walls
}
