// Package bfs implements the shortest-path and exit-enumeration
// searches: breadth-first enumeration of every bottom-row cell
// reachable from the entrance, and A* for the shortest path to a
// specific goal.
package bfs

import (
	"mazemaster/internal/maze/coord"
	"mazemaster/internal/maze/grid"
	"mazemaster/internal/maze/search"
)

// FindAllBottomExits runs a breadth-first search from start and
// returns the terminal node for every distinct bottom-row cell it can
// reach. An empty, non-nil slice means the maze has no exit; more than
// one entry means the maze has multiple exits.
func FindAllBottomExits(g *grid.Grid, start coord.Coordinate) ([]*search.Node, error) {
	if err := g.CheckStart(start); err != nil {
		return nil, err
	}

	bottom := g.BottomRow()
	explored := map[coord.Coordinate]struct{}{start: {}}
	q := search.NewQueue()
	q.Enqueue(&search.Node{Location: start})

	exits := make([]*search.Node, 0)
	for !q.Empty() {
		cur := q.Dequeue()
		if cur.Location.Row == bottom {
			exits = append(exits, cur)
		}
		for _, nb := range g.Neighbors(cur.Location) {
			if _, seen := explored[nb]; seen {
				continue
			}
			explored[nb] = struct{}{}
			q.Enqueue(&search.Node{Location: nb, Parent: cur, Cost: cur.Cost + 1})
		}
	}
	return exits, nil
}

// FindShortest runs A* from start to goal with the Manhattan heuristic
// and uniform edge cost 1, returning the terminal node of the shortest
// path, or nil if goal is unreachable.
func FindShortest(g *grid.Grid, start, goal coord.Coordinate) (*search.Node, error) {
	if err := g.CheckStart(start); err != nil {
		return nil, err
	}
	if start == goal {
		return &search.Node{Location: start}, nil
	}

	best := map[coord.Coordinate]float64{start: 0}
	pq := search.NewPriorityQueue()
	pq.Push(&search.Node{Location: start, Cost: 0, Heuristic: float64(grid.Manhattan(start, goal))})

	for pq.Len() > 0 {
		cur := pq.Pop()
		if cur.Location == goal {
			return cur, nil
		}
		if known, ok := best[cur.Location]; ok && cur.Cost > known {
			continue
		}
		for _, nb := range g.Neighbors(cur.Location) {
			nc := cur.Cost + 1
			if known, ok := best[nb]; ok && known <= nc {
				continue
			}
			best[nb] = nc
			pq.Push(&search.Node{
				Location:  nb,
				Parent:    cur,
				Cost:      nc,
				Heuristic: float64(grid.Manhattan(nb, goal)),
			})
		}
	}
	return nil, nil
}
