// Command solvemaze loads a maze JSON file (as produced by genmaze)
// and runs the solving engine against it directly, bypassing the HTTP
// transport and the dispatcher's concurrency controls — a fast local
// driver for exercising the solver on a single input.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"mazemaster/internal/core"
	"mazemaster/internal/maze/coord"
	"mazemaster/internal/maze/dfs"
	"mazemaster/internal/maze/fingerprint"
	"mazemaster/internal/solve"
	"mazemaster/internal/store"
	"mazemaster/internal/store/memory"
)

type mazeFile struct {
	Dimension coord.Dimension    `json:"Dimension"`
	Entrance  coord.Coordinate   `json:"Entrance"`
	Walls     []coord.Coordinate `json:"Walls"`
}

func main() {
	path := flag.String("file", "", "path to a maze JSON file (see cmd/genmaze)")
	mode := flag.String("mode", "max", "min or max")
	flag.Parse()

	if *path == "" {
		log.Fatal("-file is required")
	}

	data, err := os.ReadFile(*path)
	if err != nil {
		log.Fatalf("reading %s: %v", *path, err)
	}
	var mf mazeFile
	if err := json.Unmarshal(data, &mf); err != nil {
		log.Fatalf("parsing %s: %v", *path, err)
	}

	fp := fingerprint.Compute(mf.Entrance, mf.Dimension, mf.Walls)
	maze := &core.Maze{
		ID:          "cli",
		Fingerprint: fp,
		Dimension:   mf.Dimension,
		Entrance:    mf.Entrance,
		Walls:       mf.Walls,
		CreatedAt:   time.Now(),
	}
	sol := &core.Solution{ID: "cli", Fingerprint: fp, Status: core.StatusNew}

	st := memory.New()
	if err := st.Put(store.Solutions, fp, sol); err != nil {
		log.Fatalf("seeding solution: %v", err)
	}

	rng := dfs.NewRand(rand.Int63())
	path2, err := solve.Run(st, maze, sol, solve.Mode(*mode), rng)
	if err != nil {
		log.Fatalf("solve: %v", err)
	}

	fmt.Printf("status: %s\n", sol.Status)
	if path2 != nil {
		labels := make([]string, len(path2))
		for i, c := range path2 {
			labels[i] = c.String()
		}
		fmt.Printf("path (%d steps): %v\n", len(labels)-1, labels)
	}
}
