// Package game owns the area state machine, NPC routing and the goroutines
// that feed them.
package game

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/warpwalk/internal/pathfind"
	"github.com/samdwyer/warpwalk/internal/telemetry"
	"github.com/samdwyer/warpwalk/internal/world"
)

// Observer is notified after state changes. Render receives the full active
// area; Inspect reports the tile found by an interaction.
type Observer interface {
	Render(area *world.Area)
	Inspect(p world.Point, tile world.Tile)
}

type nopObserver struct{}

func (nopObserver) Render(*world.Area)              {}
func (nopObserver) Inspect(world.Point, world.Tile) {}

// Game holds every area definition and the state of the active area.
//
// Game is not safe for concurrent use. All mutation happens on the goroutine
// that drains the session mailbox; only the RouteCache is shared.
type Game struct {
	defs     map[world.AreaKey]*world.AreaDefinition
	key      world.AreaKey
	area     *world.Area
	entries  map[world.AreaKey]world.Point
	routes   *RouteCache
	cfg      Config
	rng      *rand.Rand
	observer Observer
	log      *zap.Logger
}

// New creates a game from the loaded definitions. The active area is built
// from cfg.Start, or is empty when no such definition exists.
// A nil observer or logger disables rendering or logging.
func New(ctx context.Context, defs []*world.AreaDefinition, cfg Config, observer Observer, log *zap.Logger) *Game {
	if observer == nil {
		observer = nopObserver{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if cfg.MaxTargetAttempts <= 0 {
		cfg.MaxTargetAttempts = 1
	}

	g := &Game{
		defs:     make(map[world.AreaKey]*world.AreaDefinition, len(defs)),
		key:      cfg.Start,
		entries:  make(map[world.AreaKey]world.Point),
		routes:   NewRouteCache(),
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(seed)),
		observer: observer,
		log:      log,
	}
	for _, def := range defs {
		g.defs[def.Key] = def
	}

	if def, ok := g.defs[cfg.Start]; ok {
		g.area = world.BuildArea(ctx, def, def.Player)
	} else {
		log.Warn("no definition for starting area", zap.Stringer("area", cfg.Start))
		g.area = world.NewEmptyArea()
		g.area.Key = cfg.Start
	}
	return g
}

// Area returns the active area. Callers must not retain it across intents.
func (g *Game) Area() *world.Area {
	return g.area
}

// Key returns the active area key.
func (g *Game) Key() world.AreaKey {
	return g.key
}

// Routes returns the shared NPC route cache.
func (g *Game) Routes() *RouteCache {
	return g.routes
}

// Entry returns the point the player last occupied in key.
func (g *Game) Entry(key world.AreaKey) (world.Point, bool) {
	p, ok := g.entries[key]
	return p, ok
}

// Redraw asks the observer to repaint the active area.
func (g *Game) Redraw() {
	g.observer.Render(g.area)
}

// MovePlayer turns the player toward dir, or steps when already facing it.
// Stepping onto a warp transitions to the destination area.
func (g *Game) MovePlayer(ctx context.Context, dir world.Direction) {
	defer g.Redraw()

	area := g.area
	target := area.Current
	if dir == area.Direction {
		if next, ok := area.Current.Step(dir); ok {
			target = next
		}
	}
	area.Direction = dir

	if target == area.Current {
		return
	}

	switch area.Grid.Tile(target) {
	case world.TileEmpty:
		area.MoveOccupant(area.Current, target, world.TileCurrent)
		area.Current = target
	case world.TileWarp:
		g.warp(ctx, target)
	}
}

// warp moves the player into the area named by the warp at p.
func (g *Game) warp(ctx context.Context, p world.Point) {
	dest, ok := g.area.WarpTarget(p)
	if !ok {
		return
	}
	def, ok := g.defs[dest]
	if !ok {
		g.log.Warn("warp to unknown area", zap.Stringer("from", g.key), zap.Stringer("to", dest))
		return
	}

	ctx, span := telemetry.Tracer("game").Start(ctx, "area.transition")
	defer span.End()

	spawn := def.Player
	restored := false
	if entry, ok := g.entries[dest]; ok {
		spawn.Point = entry
		restored = true
	}

	from := g.key
	g.entries[from] = g.area.Current
	g.routes.Clear()
	g.area = world.BuildArea(ctx, def, spawn)
	g.key = dest

	span.SetAttributes(
		attribute.String("area.from", from.String()),
		attribute.String("area.to", dest.String()),
		attribute.Bool("spawn.restored", restored),
	)
	g.log.Debug("area transition",
		zap.Stringer("from", from),
		zap.Stringer("to", dest),
		zap.Stringer("spawn", spawn.Point),
		zap.Bool("restored", restored),
	)

	g.RefreshNpcRoutes(ctx)
}

// Interact reports the tile in front of the player to the observer.
func (g *Game) Interact(ctx context.Context) {
	p, ok := g.area.Ahead()
	if !ok {
		return
	}
	g.observer.Inspect(p, g.area.Grid.Tile(p))
}

// RefreshNpcRoutes assigns a fresh route to every NPC of the active area
// that has none. It returns the number of routes assigned.
func (g *Game) RefreshNpcRoutes(ctx context.Context) int {
	_, span := telemetry.Tracer("game").Start(ctx, "routes.refresh")
	defer span.End()

	ids := make([]uint8, 0, len(g.area.NPCs))
	for id := range g.area.NPCs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	snapshot := g.area.Grid.Clone()
	assigned := 0
	for _, id := range ids {
		if g.assignRoute(snapshot, id) {
			assigned++
		}
	}

	span.SetAttributes(
		attribute.String("area.key", g.key.String()),
		attribute.Int("npcs", len(ids)),
		attribute.Int("routes.assigned", assigned),
	)
	return assigned
}

// assignRoute computes a route for one NPC unless it still has steps left.
func (g *Game) assignRoute(grid *world.Grid, id uint8) bool {
	key := RouteKey{NPC: id, Area: g.key}
	if g.routes.Pending(key) > 0 {
		return false
	}
	pos, ok := g.area.NPCs[id]
	if !ok {
		return false
	}
	prop, ok := g.area.Props[id]
	if !ok {
		g.log.Debug("npc has no roaming range", zap.Uint8("npc", id))
		return false
	}

	target := g.drawTarget(grid, prop)
	route, ok := pathfind.FindPath(grid, pos, target)
	if !ok || len(route) == 0 {
		g.log.Debug("no route for npc",
			zap.Uint8("npc", id),
			zap.Stringer("from", pos),
			zap.Stringer("to", target),
		)
		return false
	}
	g.routes.Store(key, route)
	return true
}

// drawTarget picks a random point in prop, preferring Empty cells.
// After MaxTargetAttempts draws the last one is accepted as is.
func (g *Game) drawTarget(grid *world.Grid, prop world.Prop) world.Point {
	var p world.Point
	for attempt := 0; attempt < g.cfg.MaxTargetAttempts; attempt++ {
		p = world.Point{X: prop.X.Pick(g.rng.Intn), Y: prop.Y.Pick(g.rng.Intn)}
		if grid.Tile(p) == world.TileEmpty {
			break
		}
	}
	return p
}

// ApplyNpcStep moves an NPC one step along its route.
//
// Steps for an area the player has left are ignored. A step onto a cell that
// is no longer Empty, or that is not next to the NPC, discards the whole
// route and computes a new one.
func (g *Game) ApplyNpcStep(ctx context.Context, key RouteKey, target world.Point) {
	if key.Area != g.key {
		return
	}
	pos, ok := g.area.NPCs[key.NPC]
	if !ok {
		g.routes.Drop(key)
		return
	}

	if adjacent(pos, target) && g.area.MoveOccupant(pos, target, world.TileNPC) {
		g.area.NPCs[key.NPC] = target
		g.Redraw()
		if g.routes.Pending(key) == 0 {
			g.assignRoute(g.area.Grid.Clone(), key.NPC)
		}
		return
	}

	g.log.Debug("npc route invalidated",
		zap.Uint8("npc", key.NPC),
		zap.Stringer("at", pos),
		zap.Stringer("blocked", target),
	)
	g.routes.Drop(key)
	g.assignRoute(g.area.Grid.Clone(), key.NPC)
}

func adjacent(a, b world.Point) bool {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx+dy*dy == 1
}
