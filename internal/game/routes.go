package game

import (
	"sort"
	"sync"

	"github.com/samdwyer/warpwalk/internal/pathfind"
	"github.com/samdwyer/warpwalk/internal/world"
)

// RouteKey identifies the route of one NPC within one area.
type RouteKey struct {
	NPC  uint8
	Area world.AreaKey
}

// Step is one popped route element: move NPC Key.NPC to Point.
type Step struct {
	Key   RouteKey
	Point world.Point
}

// RouteCache maps NPCs to their pending goal-first routes.
//
// It is the only structure shared between the ticker and the state owner.
// The lock is held just long enough to copy routes in or out; route
// computation always happens outside it. Every critical section unlocks via
// defer, so a panic while holding the lock cannot leave it held, and panics
// are not recovered.
type RouteCache struct {
	mu     sync.RWMutex
	routes map[RouteKey]pathfind.Route
}

// NewRouteCache creates an empty cache.
func NewRouteCache() *RouteCache {
	return &RouteCache{routes: make(map[RouteKey]pathfind.Route)}
}

// Pending returns the number of steps left for key.
// Zero means the NPC needs a new route.
func (c *RouteCache) Pending(key RouteKey) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.routes[key])
}

// Route returns a copy of the route stored for key.
func (c *RouteCache) Route(key RouteKey) pathfind.Route {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append(pathfind.Route(nil), c.routes[key]...)
}

// Store replaces the route for key with a copy of route.
func (c *RouteCache) Store(key RouteKey, route pathfind.Route) {
	cp := append(pathfind.Route(nil), route...)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.routes[key] = cp
}

// Drop discards the route for key.
func (c *RouteCache) Drop(key RouteKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.routes, key)
}

// Clear discards every route.
func (c *RouteCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.routes)
}

// Len returns the number of NPCs with a non-empty route.
func (c *RouteCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, r := range c.routes {
		if len(r) > 0 {
			n++
		}
	}
	return n
}

// PopSteps removes the next step from every non-empty route and returns
// them ordered by NPC id.
func (c *RouteCache) PopSteps() []Step {
	c.mu.Lock()
	defer c.mu.Unlock()

	steps := make([]Step, 0, len(c.routes))
	for key, route := range c.routes {
		next, ok := route.Next()
		if !ok {
			continue
		}
		c.routes[key] = route[:len(route)-1]
		steps = append(steps, Step{Key: key, Point: next})
	}
	sort.Slice(steps, func(i, j int) bool {
		a, b := steps[i].Key, steps[j].Key
		if a.Area != b.Area {
			if a.Area.Area != b.Area.Area {
				return a.Area.Area < b.Area.Area
			}
			return a.Area.Part < b.Area.Part
		}
		return a.NPC < b.NPC
	})
	return steps
}
