// Package dfs implements the bounded longest-simple-path search: a
// best-effort, budget-limited exploration that biases toward detours
// and prunes branches a previously found path already dominates.
package dfs

import (
	"math/rand"

	"mazemaster/internal/maze/bfs"
	"mazemaster/internal/maze/coord"
	"mazemaster/internal/maze/grid"
	"mazemaster/internal/maze/search"
)

const (
	// MaxDepth bounds the stack depth of any single frame explored.
	MaxDepth = 1000
	// MaxPops bounds the total number of frames popped across the
	// whole search, guaranteeing termination on adversarial inputs.
	MaxPops = 100_000_000
)

type frame struct {
	node  *search.Node
	depth int
}

// Result is the outcome of a longest-path search.
type Result struct {
	Best *search.Node // nil if the search never reached goal
}

// Rand is the subset of math/rand.Rand used to permute neighbor order.
// Callers inject a seeded instance so runs are reproducible in tests.
type Rand interface {
	Shuffle(n int, swap func(i, j int))
}

// FindLongest searches for a long simple path from start to goal,
// biasing expansion toward the farthest neighbor first, pruning via a
// reachability prefilter and a per-edge dominance memo, and stopping
// once either budget is exhausted.
func FindLongest(g *grid.Grid, start, goal coord.Coordinate, rng Rand) (Result, error) {
	if err := g.CheckStart(start); err != nil {
		return Result{}, err
	}

	reachable, err := reachabilityMap(g, goal)
	if err != nil {
		return Result{}, err
	}
	if _, ok := reachable[start]; !ok {
		return Result{}, nil
	}

	// memo[parent][child] is the greatest cost at which child was
	// reached along any path from start to goal found so far.
	memo := make(map[coord.Coordinate]map[coord.Coordinate]float64)

	var best *search.Node
	stack := search.NewStack[frame]()
	stack.Push(frame{node: &search.Node{Location: start}, depth: 1})

	pops := 0
	for !stack.Empty() {
		pops++
		if pops > MaxPops {
			break
		}
		fr := stack.Pop()
		node := fr.node

		if node.Location == goal {
			if best == nil || node.Cost > best.Cost {
				best = node
			}
			recordPath(memo, node)
			continue
		}
		if fr.depth >= MaxDepth {
			break
		}

		candidates := g.SortedNeighborsToward(goal, node.Location)
		order := make([]coord.Coordinate, len(candidates))
		copy(order, candidates)
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

		for _, nb := range order {
			if node.HasVisited(nb) {
				continue
			}
			if _, ok := reachable[nb]; !ok {
				continue
			}
			nc := node.Cost + 1
			if byChild, ok := memo[node.Location]; ok {
				if seen, ok := byChild[nb]; ok && seen > nc {
					continue
				}
			}
			stack.Push(frame{
				node: &search.Node{
					Location:  nb,
					Parent:    node,
					Cost:      nc,
					Heuristic: float64(grid.Manhattan(nb, goal)),
				},
				depth: fr.depth + 1,
			})
		}
	}

	return Result{Best: best}, nil
}

// recordPath walks a successful path back to its root, raising the
// dominance memo along every edge it crosses.
func recordPath(memo map[coord.Coordinate]map[coord.Coordinate]float64, goalNode *search.Node) {
	for cur := goalNode; cur.Parent != nil; cur = cur.Parent {
		p, c := cur.Parent.Location, cur.Location
		byChild, ok := memo[p]
		if !ok {
			byChild = make(map[coord.Coordinate]float64)
			memo[p] = byChild
		}
		if cur.Cost > byChild[c] {
			byChild[c] = cur.Cost
		}
	}
}

// reachabilityMap returns the set of passable cells from which goal is
// reachable, computed by invoking the shortest-path search from every
// cell within the grid's bounds.
func reachabilityMap(g *grid.Grid, goal coord.Coordinate) (map[coord.Coordinate]struct{}, error) {
	out := make(map[coord.Coordinate]struct{})
	for row := 0; row < g.Dim.Height; row++ {
		for col := 0; col < g.Dim.Width; col++ {
			c := coord.Coordinate{Col: col, Row: row}
			if !g.Passable(c) {
				continue
			}
			n, err := bfs.FindShortest(g, c, goal)
			if err != nil {
				return nil, err
			}
			if n != nil {
				out[c] = struct{}{}
			}
		}
	}
	return out, nil
}

// NewRand wraps math/rand's default reproducible source with the
// given seed, for deterministic test runs.
func NewRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}
