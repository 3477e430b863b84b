package game

import (
	"context"
	"testing"

	"github.com/samdwyer/warpwalk/internal/pathfind"
	"github.com/samdwyer/warpwalk/internal/world"
)

// corridorDef is a 5×5 walled box with an extra wall at (3,1).
func corridorDef() *world.AreaDefinition {
	def := boxDef(keyA, 5, 5, world.Spawn{Point: world.Pt(1, 1), Facing: world.Right})
	return withCell(def, world.Pt(3, 1), 0, 0, 0)
}

// warpDefs returns area A with a warp to B at (4,1) and area B with a warp
// back to A at (2,1).
func warpDefs() (*world.AreaDefinition, *world.AreaDefinition) {
	a := boxDef(keyA, 6, 5, world.Spawn{Point: world.Pt(1, 1), Facing: world.Right})
	withCell(a, world.Pt(4, 1), 3, keyB.Area, keyB.Part)

	b := boxDef(keyB, 5, 5, world.Spawn{Point: world.Pt(2, 2), Facing: world.Up})
	withCell(b, world.Pt(2, 1), 3, keyA.Area, keyA.Part)
	return a, b
}

// npcDef is a 7×7 box with NPC 5 at (5,5) roaming the whole interior.
func npcDef() *world.AreaDefinition {
	def := boxDef(keyA, 7, 7, world.Spawn{Point: world.Pt(1, 1), Facing: world.Right})
	withCell(def, world.Pt(5, 5), 4, 5, 0)
	def.Props[5] = world.Prop{X: world.Range{Min: 1, Max: 5}, Y: world.Range{Min: 1, Max: 5}}
	return def
}

func TestNewWithoutStartingArea(t *testing.T) {
	g, _ := newTestGame(t)

	if g.Area() == nil {
		t.Fatal("Area() = nil, want an empty area")
	}
	if g.Area().Grid.Len() != 0 {
		t.Errorf("empty area has %d cells, want 0", g.Area().Grid.Len())
	}
	// Nothing to move into, but it must not panic.
	g.MovePlayer(context.Background(), world.Right)
	g.Interact(context.Background())
}

func TestMovePlayerTurnsBeforeStepping(t *testing.T) {
	ctx := context.Background()
	g, obs := newTestGame(t, corridorDef())

	g.MovePlayer(ctx, world.Down)
	if g.Area().Current != world.Pt(1, 1) {
		t.Errorf("first Down moved the player to %v, want a turn only", g.Area().Current)
	}
	if g.Area().Direction != world.Down {
		t.Errorf("Direction = %v, want down", g.Area().Direction)
	}

	g.MovePlayer(ctx, world.Down)
	if g.Area().Current != world.Pt(1, 2) {
		t.Errorf("second Down left the player at %v, want (1,2)", g.Area().Current)
	}
	if got := g.Area().Grid.Tile(world.Pt(1, 1)); got != world.TileEmpty {
		t.Errorf("vacated cell = %v, want empty", got)
	}
	if got := g.Area().Grid.Tile(world.Pt(1, 2)); got != world.TileCurrent {
		t.Errorf("occupied cell = %v, want player", got)
	}
	if obs.renders != 2 {
		t.Errorf("renders = %d, want 2", obs.renders)
	}
}

func TestMovePlayerBlocked(t *testing.T) {
	ctx := context.Background()
	def := corridorDef()
	withCell(def, world.Pt(1, 2), 4, 1, 1)
	g, _ := newTestGame(t, def)

	// (2,1) is open, (3,1) is a wall.
	g.MovePlayer(ctx, world.Right)
	g.MovePlayer(ctx, world.Right)
	if g.Area().Current != world.Pt(2, 1) {
		t.Fatalf("player at %v, want (2,1)", g.Area().Current)
	}

	// Back to (1,1) then into the stationary NPC below.
	g.MovePlayer(ctx, world.Left)
	g.MovePlayer(ctx, world.Left)
	g.MovePlayer(ctx, world.Down)
	g.MovePlayer(ctx, world.Down)
	if g.Area().Current != world.Pt(1, 1) {
		t.Errorf("player walked into an NPC, now at %v", g.Area().Current)
	}
	if got := g.Area().Grid.Tile(world.Pt(1, 2)); got != world.TileNPC {
		t.Errorf("NPC cell = %v, want npc", got)
	}

	// Up into the border wall.
	g.MovePlayer(ctx, world.Up)
	g.MovePlayer(ctx, world.Up)
	if g.Area().Current != world.Pt(1, 1) {
		t.Errorf("player walked into a wall, now at %v", g.Area().Current)
	}
}

func TestMovePlayerAtOrigin(t *testing.T) {
	ctx := context.Background()
	def := &world.AreaDefinition{
		Key: keyA, Width: 2, Height: 2,
		Player: world.Spawn{Point: world.Pt(0, 0), Facing: world.Left},
	}
	g, _ := newTestGame(t, def)

	g.MovePlayer(ctx, world.Left)
	g.MovePlayer(ctx, world.Up)
	g.MovePlayer(ctx, world.Up)
	if g.Area().Current != world.Pt(0, 0) {
		t.Errorf("player at %v, want (0,0)", g.Area().Current)
	}
}

func TestWarpRestoresEntries(t *testing.T) {
	ctx := context.Background()
	a, b := warpDefs()
	g, _ := newTestGame(t, a, b)

	g.MovePlayer(ctx, world.Right) // (2,1)
	g.MovePlayer(ctx, world.Right) // (3,1)
	g.MovePlayer(ctx, world.Right) // warp

	if g.Key() != keyB {
		t.Fatalf("Key() = %v, want %v", g.Key(), keyB)
	}
	if g.Area().Current != world.Pt(2, 2) || g.Area().Direction != world.Up {
		t.Errorf("first visit spawn = %v facing %v, want default (2,2) facing up",
			g.Area().Current, g.Area().Direction)
	}
	if entry, ok := g.Entry(keyA); !ok || entry != world.Pt(3, 1) {
		t.Errorf("Entry(A) = %v, %v, want (3,1), true", entry, ok)
	}

	g.MovePlayer(ctx, world.Up) // warp back
	if g.Key() != keyA {
		t.Fatalf("Key() = %v, want %v", g.Key(), keyA)
	}
	if g.Area().Current != world.Pt(3, 1) {
		t.Errorf("return spawn = %v, want recorded (3,1)", g.Area().Current)
	}
	if got := g.Area().Grid.Tile(world.Pt(1, 1)); got != world.TileEmpty {
		t.Errorf("default spawn cell = %v, want empty", got)
	}

	g.MovePlayer(ctx, world.Right) // into B again
	if g.Key() != keyB || g.Area().Current != world.Pt(2, 2) {
		t.Errorf("second visit to B at %v/%v, want %v/(2,2)", g.Key(), g.Area().Current, keyB)
	}
}

func TestWarpToMissingAreaIsNoop(t *testing.T) {
	ctx := context.Background()
	a := boxDef(keyA, 6, 5, world.Spawn{Point: world.Pt(3, 1), Facing: world.Right})
	withCell(a, world.Pt(4, 1), 3, 9, 9)
	g, _ := newTestGame(t, a)

	g.MovePlayer(ctx, world.Right)

	if g.Key() != keyA {
		t.Errorf("Key() = %v, want %v", g.Key(), keyA)
	}
	if g.Area().Current != world.Pt(3, 1) {
		t.Errorf("player at %v, want (3,1)", g.Area().Current)
	}
	if _, ok := g.Entry(keyA); ok {
		t.Error("failed warp should not record an entry")
	}
}

func TestWarpClearsRouteCache(t *testing.T) {
	ctx := context.Background()
	a, b := warpDefs()
	withCell(a, world.Pt(3, 3), 4, 5, 0)
	a.Props[5] = world.Prop{X: world.Range{Min: 1, Max: 2}, Y: world.Range{Min: 3, Max: 3}}
	g, _ := newTestGame(t, a, b)

	npcKey := RouteKey{NPC: 5, Area: keyA}
	stale := pathfind.Route{world.Pt(1, 1), world.Pt(2, 1), world.Pt(2, 2), world.Pt(3, 2)}
	g.Routes().Store(npcKey, stale)
	g.Routes().Store(RouteKey{NPC: 9, Area: world.AreaKey{Area: 7}}, stale)

	g.MovePlayer(ctx, world.Right)
	g.MovePlayer(ctx, world.Right)
	g.MovePlayer(ctx, world.Right) // warp to B

	if n := g.Routes().Len(); n != 0 {
		t.Fatalf("route cache holds %d routes after warp, want 0", n)
	}

	g.MovePlayer(ctx, world.Up) // back to A
	route := g.Routes().Route(npcKey)
	if len(route) == 0 {
		t.Fatal("returning to A should compute a fresh route")
	}
	goal, _ := route.Goal()
	if goal.Y != 3 || goal.X < 1 || goal.X > 2 {
		t.Errorf("fresh route goal = %v, want inside the roaming range", goal)
	}
}

func TestInteract(t *testing.T) {
	ctx := context.Background()
	g, obs := newTestGame(t, corridorDef())

	g.Interact(ctx)
	g.MovePlayer(ctx, world.Up)
	g.Interact(ctx)

	want := []world.Tile{world.TileEmpty, world.TileWall}
	if len(obs.inspected) != len(want) {
		t.Fatalf("inspected %v, want %v", obs.inspected, want)
	}
	for i := range want {
		if obs.inspected[i] != want[i] {
			t.Errorf("inspected[%d] = %v, want %v", i, obs.inspected[i], want[i])
		}
	}
	if obs.points[0] != world.Pt(2, 1) {
		t.Errorf("first inspected point = %v, want (2,1)", obs.points[0])
	}
}

func TestInteractOutOfBounds(t *testing.T) {
	def := &world.AreaDefinition{
		Key: keyA, Width: 3, Height: 1,
		Player: world.Spawn{Point: world.Pt(2, 0), Facing: world.Right},
	}
	g, obs := newTestGame(t, def)

	g.Interact(context.Background())
	if len(obs.inspected) != 0 {
		t.Errorf("Interact() past the edge reported %v", obs.inspected)
	}
}

func TestRefreshNpcRoutes(t *testing.T) {
	ctx := context.Background()
	g, _ := newTestGame(t, npcDef())
	key := RouteKey{NPC: 5, Area: keyA}

	if n := g.RefreshNpcRoutes(ctx); n != 1 {
		t.Fatalf("RefreshNpcRoutes() = %d, want 1", n)
	}
	route := g.Routes().Route(key)
	if len(route) == 0 {
		t.Fatal("no route stored")
	}
	goal, _ := route.Goal()
	if !g.Area().Props[5].Contains(goal) {
		t.Errorf("goal %v outside roaming range", goal)
	}
	prev := world.Pt(5, 5)
	for i := len(route) - 1; i >= 0; i-- {
		if !adjacent(prev, route[i]) {
			t.Fatalf("route %v is not contiguous from (5,5)", route)
		}
		if tile := g.Area().Grid.Tile(route[i]); tile != world.TileEmpty {
			t.Errorf("route enters %v at %v", tile, route[i])
		}
		prev = route[i]
	}

	// A pending route is left alone.
	if n := g.RefreshNpcRoutes(ctx); n != 0 {
		t.Errorf("second RefreshNpcRoutes() = %d, want 0", n)
	}
	again := g.Routes().Route(key)
	if len(again) != len(route) {
		t.Errorf("pending route replaced: %v -> %v", route, again)
	}
}

func TestRefreshSkipsUnroutableNpc(t *testing.T) {
	ctx := context.Background()
	def := npcDef()
	// Wall the NPC in.
	withCell(def, world.Pt(4, 5), 0, 0, 0)
	withCell(def, world.Pt(5, 4), 0, 0, 0)
	g, _ := newTestGame(t, def)

	if n := g.RefreshNpcRoutes(ctx); n != 0 {
		t.Errorf("RefreshNpcRoutes() = %d, want 0", n)
	}
	if p := g.Routes().Pending(RouteKey{NPC: 5, Area: keyA}); p != 0 {
		t.Errorf("Pending() = %d, want 0", p)
	}
}

func TestRefreshIgnoresStationaryAndUnrangedNpcs(t *testing.T) {
	def := npcDef()
	withCell(def, world.Pt(3, 3), 4, 6, 1) // stationary
	withCell(def, world.Pt(2, 4), 4, 7, 0) // no props entry
	def.Props[6] = world.Prop{X: world.Range{Min: 1, Max: 5}, Y: world.Range{Min: 1, Max: 5}}
	g, _ := newTestGame(t, def)

	g.RefreshNpcRoutes(context.Background())
	if g.Routes().Pending(RouteKey{NPC: 6, Area: keyA}) != 0 {
		t.Error("stationary NPC received a route")
	}
	if g.Routes().Pending(RouteKey{NPC: 7, Area: keyA}) != 0 {
		t.Error("NPC without a roaming range received a route")
	}
}

func TestDrawTargetBounded(t *testing.T) {
	g, _ := newTestGame(t, npcDef())
	walls := world.NewGrid(7, 7, world.TileWall)
	prop := world.Prop{X: world.Range{Min: 2, Max: 3}, Y: world.Range{Min: 2, Max: 3}}

	p := g.drawTarget(walls, prop)
	if !prop.Contains(p) {
		t.Errorf("drawTarget() = %v, want a point inside %+v even without Empty cells", p, prop)
	}
}

func TestApplyNpcStep(t *testing.T) {
	ctx := context.Background()
	def := npcDef()
	def.Props[5] = world.Prop{X: world.Range{Min: 3, Max: 3}, Y: world.Range{Min: 5, Max: 5}}
	g, obs := newTestGame(t, def)
	key := RouteKey{NPC: 5, Area: keyA}

	g.Routes().Store(key, pathfind.Route{world.Pt(3, 5), world.Pt(4, 5)})
	steps := g.Routes().PopSteps()
	if len(steps) != 1 || steps[0].Point != world.Pt(4, 5) {
		t.Fatalf("PopSteps() = %v, want one step to (4,5)", steps)
	}

	g.ApplyNpcStep(ctx, key, steps[0].Point)

	if got := g.Area().NPCs[5]; got != world.Pt(4, 5) {
		t.Errorf("NPC at %v, want (4,5)", got)
	}
	if got := g.Area().Grid.Tile(world.Pt(5, 5)); got != world.TileEmpty {
		t.Errorf("vacated cell = %v, want empty", got)
	}
	if got := g.Area().Grid.Tile(world.Pt(4, 5)); got != world.TileNPC {
		t.Errorf("occupied cell = %v, want npc", got)
	}
	if obs.renders != 1 {
		t.Errorf("renders = %d, want 1", obs.renders)
	}
	if p := g.Routes().Pending(key); p != 1 {
		t.Errorf("Pending() = %d, want the remaining step", p)
	}
}

func TestApplyNpcStepCollisionRecomputes(t *testing.T) {
	ctx := context.Background()
	def := npcDef()
	def.Props[5] = world.Prop{X: world.Range{Min: 3, Max: 3}, Y: world.Range{Min: 5, Max: 5}}
	withCell(def, world.Pt(5, 4), 4, 8, 1) // blocker
	g, _ := newTestGame(t, def)
	key := RouteKey{NPC: 5, Area: keyA}

	g.Routes().Store(key, pathfind.Route{world.Pt(5, 1), world.Pt(5, 2), world.Pt(5, 3)})
	g.ApplyNpcStep(ctx, key, world.Pt(5, 4))

	if got := g.Area().NPCs[5]; got != world.Pt(5, 5) {
		t.Errorf("blocked NPC moved to %v", got)
	}
	if got := g.Area().Grid.Tile(world.Pt(5, 4)); got != world.TileNPC {
		t.Errorf("blocker cell = %v, want npc", got)
	}
	want := pathfind.Route{world.Pt(3, 5), world.Pt(4, 5)}
	got := g.Routes().Route(key)
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("route after collision = %v, want fresh %v", got, want)
	}
}

func TestApplyNpcStepRejectsNonAdjacent(t *testing.T) {
	ctx := context.Background()
	g, _ := newTestGame(t, npcDef())
	key := RouteKey{NPC: 5, Area: keyA}

	g.ApplyNpcStep(ctx, key, world.Pt(3, 3))
	if got := g.Area().NPCs[5]; got != world.Pt(5, 5) {
		t.Errorf("NPC jumped to %v", got)
	}
}

func TestApplyNpcStepForOtherArea(t *testing.T) {
	ctx := context.Background()
	g, obs := newTestGame(t, npcDef())

	g.ApplyNpcStep(ctx, RouteKey{NPC: 5, Area: keyB}, world.Pt(4, 5))
	if got := g.Area().NPCs[5]; got != world.Pt(5, 5) {
		t.Errorf("step for another area moved the NPC to %v", got)
	}
	if obs.renders != 0 {
		t.Errorf("renders = %d, want 0", obs.renders)
	}
}
