package pathfind

import "github.com/samdwyer/warpwalk/internal/world"

type node struct {
	point world.Point
	cost  float64
}

// openSet is a min-heap ordered by cost, then by row-major point order.
type openSet []node

func (s openSet) Len() int { return len(s) }

func (s openSet) Less(i, j int) bool {
	if s[i].cost != s[j].cost {
		return s[i].cost < s[j].cost
	}
	return s[i].point.Less(s[j].point)
}

func (s openSet) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

func (s *openSet) Push(x any) {
	*s = append(*s, x.(node))
}

func (s *openSet) Pop() any {
	old := *s
	n := len(old)
	item := old[n-1]
	*s = old[:n-1]
	return item
}
