// Package pathfind computes NPC routes on a tile grid.
//
// Candidates are generated for every in-bounds neighbour that is not a wall,
// but the search only enters cells that are exactly Empty, so occupied cells
// (NPCs, the player, warps) are never routed through.
//
// The open set is ordered by the straight-line distance from a cell to the
// goal rather than the cumulative path cost. That makes this a greedy
// best-first search: on open or lightly obstructed grids it yields Manhattan
// length routes, but it does not guarantee the globally shortest route.
package pathfind

import (
	"container/heap"
	"math"

	"github.com/samdwyer/warpwalk/internal/world"
)

// Route is a goal-first sequence of points. Route[0] is the destination and
// the last element is the step adjacent to the start. The start itself is
// never included.
type Route []world.Point

// Next returns the step nearest the walker.
func (r Route) Next() (world.Point, bool) {
	if len(r) == 0 {
		return world.Point{}, false
	}
	return r[len(r)-1], true
}

// Goal returns the route destination.
func (r Route) Goal() (world.Point, bool) {
	if len(r) == 0 {
		return world.Point{}, false
	}
	return r[0], true
}

var neighbours = [...]world.Direction{world.Down, world.Right, world.Left, world.Up}

// Adjacent returns the in-bounds, non-wall neighbours of p.
// Up and left are offered only when they keep coordinates non-negative.
func Adjacent(grid *world.Grid, p world.Point) []world.Point {
	out := make([]world.Point, 0, 4)
	for _, d := range neighbours {
		next, ok := p.Step(d)
		if !ok {
			continue
		}
		tile, ok := grid.Lookup(next)
		if !ok || tile == world.TileWall {
			continue
		}
		out = append(out, next)
	}
	return out
}

func distance(a, b world.Point) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// FindPath searches a route from start to goal. The second result is false
// when the goal cannot be reached; a partial route is never returned.
// A start equal to the goal yields an empty route and true.
func FindPath(grid *world.Grid, start, goal world.Point) (Route, bool) {
	frontier := &openSet{}
	heap.Push(frontier, node{point: start})

	cameFrom := map[world.Point]world.Point{}
	seen := map[world.Point]bool{start: true}

	for frontier.Len() > 0 {
		current := heap.Pop(frontier).(node)
		if current.point == goal {
			break
		}
		for _, next := range Adjacent(grid, current.point) {
			if seen[next] || grid.Tile(next) != world.TileEmpty {
				continue
			}
			seen[next] = true
			cameFrom[next] = current.point
			heap.Push(frontier, node{point: next, cost: distance(next, goal)})
		}
	}

	route := Route{}
	for at := goal; at != start; {
		prev, ok := cameFrom[at]
		if !ok {
			return nil, false
		}
		route = append(route, at)
		at = prev
	}
	return route, true
}

// BestMatch finds the nearest Empty or Unknown cell not listed in visited and
// returns the shortest route to one of them.
//
// Candidates are gathered from a growing Chebyshev square around position,
// stopping at the first radius that yields any. Routes are then computed to
// each candidate and the one with the fewest points wins; ties keep the
// candidate that sorts first. The second result is false when no candidate
// is reachable.
func BestMatch(grid *world.Grid, position world.Point, visited []world.Point) (Route, bool) {
	skip := make(map[world.Point]bool, len(visited))
	for _, p := range visited {
		skip[p] = true
	}

	var candidates []world.Point
	for radius := 0; radius < max(grid.Len(), 1) && len(candidates) == 0; radius++ {
		candidates = within(grid, position, radius, skip)
	}

	var best Route
	found := false
	for _, c := range candidates {
		route, ok := FindPath(grid, position, c)
		if !ok {
			continue
		}
		if !found || len(route) < len(best) {
			best, found = route, true
		}
	}
	return best, found
}

// within lists open cells at Chebyshev distance <= radius in row-major order.
func within(grid *world.Grid, center world.Point, radius int, skip map[world.Point]bool) []world.Point {
	var out []world.Point
	for y := max(center.Y-radius, 0); y <= center.Y+radius && y < grid.Height; y++ {
		for x := max(center.X-radius, 0); x <= center.X+radius && x < grid.Width; x++ {
			p := world.Point{X: x, Y: y}
			if skip[p] {
				continue
			}
			if t := grid.Tile(p); t == world.TileEmpty || t == world.TileUnknown {
				out = append(out, p)
			}
		}
	}
	return out
}
