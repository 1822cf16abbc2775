// Command genmaze prints a randomly generated maze as JSON, for local
// testing against the HTTP API without hand-authoring a wall list.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"os"

	"mazemaster/internal/generator"
)

func main() {
	width := flag.Int("width", 10, "maze width")
	height := flag.Int("height", 10, "maze height")
	density := flag.Float64("density", 0.2, "wall density, 0..1")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	m, err := generator.Generate(rng, *width, *height, *density)
	if err != nil {
		log.Fatalf("generate: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		log.Fatalf("encode: %v", err)
	}
}
