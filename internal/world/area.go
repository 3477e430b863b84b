package world

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/warpwalk/internal/telemetry"
)

// AreaKey identifies one area/part pair.
type AreaKey struct {
	Area uint8
	Part uint8
}

// String implements fmt.Stringer.
func (k AreaKey) String() string {
	return fmt.Sprintf("%d/%d", k.Area, k.Part)
}

// Meta is the occupant metadata pair attached to a declared cell.
// For warps it names the destination (Primary=area, Secondary=part).
// For NPCs Primary is the NPC id and a non-zero Secondary marks a
// stationary NPC that never wanders.
type Meta struct {
	Primary   uint8
	Secondary uint8
}

// Cell is a declared (tile code, metadata) pair from a map definition.
type Cell struct {
	Kind uint8
	Meta Meta
}

// Spawn is a player position and facing.
type Spawn struct {
	Point  Point
	Facing Direction
}

// AreaDefinition is the immutable source data for one area.
// It is built once from map data and never mutated.
type AreaDefinition struct {
	Key    AreaKey
	Name   string
	Width  int
	Height int
	Cells  map[Point]Cell
	Player Spawn
	Props  map[uint8]Prop
}

// Area is the live, mutable state of the active map.
type Area struct {
	Key       AreaKey
	Name      string
	Grid      *Grid
	Current   Point
	Direction Direction
	Meta      map[Point]Meta
	Props     map[uint8]Prop
	NPCs      map[uint8]Point
}

// NewEmptyArea returns an area with no cells, used when no definition exists
// for the starting key.
func NewEmptyArea() *Area {
	return &Area{
		Grid:      NewGrid(0, 0, TileEmpty),
		Direction: Right,
		Meta:      make(map[Point]Meta),
		Props:     make(map[uint8]Prop),
		NPCs:      make(map[uint8]Point),
	}
}

// BuildArea constructs a fresh Area from a definition with the player at spawn.
//
// Every in-bounds cell starts Empty, declared cells are overlaid on top, and
// the spawn cell is forced to TileCurrent last.
func BuildArea(ctx context.Context, def *AreaDefinition, spawn Spawn) *Area {
	_, span := telemetry.Tracer("world").Start(ctx, "area.build")
	defer span.End()

	area := &Area{
		Key:       def.Key,
		Name:      def.Name,
		Grid:      NewGrid(def.Width, def.Height, TileEmpty),
		Direction: spawn.Facing,
		Meta:      make(map[Point]Meta, len(def.Cells)),
		Props:     make(map[uint8]Prop, len(def.Props)),
		NPCs:      make(map[uint8]Point),
	}

	for p, cell := range def.Cells {
		if !area.Grid.InBounds(p) {
			continue
		}
		tile := TileFromCode(cell.Kind)
		area.Grid.Set(p, tile)
		area.Meta[p] = cell.Meta
		if tile == TileNPC && cell.Meta.Secondary == 0 {
			area.NPCs[cell.Meta.Primary] = p
		}
	}
	for id, prop := range def.Props {
		area.Props[id] = prop
	}

	// The spawn wins over whatever was declared there.
	for id, p := range area.NPCs {
		if p == spawn.Point {
			delete(area.NPCs, id)
		}
	}
	area.Grid.Set(spawn.Point, TileCurrent)
	area.Current = spawn.Point

	span.SetAttributes(
		attribute.String("area.key", def.Key.String()),
		attribute.Int("area.width", def.Width),
		attribute.Int("area.height", def.Height),
		attribute.Int("area.npcs", len(area.NPCs)),
	)
	return area
}

// WarpTarget returns the destination area for the warp at p.
func (a *Area) WarpTarget(p Point) (AreaKey, bool) {
	if a.Grid.Tile(p) != TileWarp {
		return AreaKey{}, false
	}
	m, ok := a.Meta[p]
	if !ok {
		return AreaKey{}, false
	}
	return AreaKey{Area: m.Primary, Part: m.Secondary}, true
}

// Ahead returns the cell one step in front of the player.
func (a *Area) Ahead() (Point, bool) {
	p, ok := a.Current.Step(a.Direction)
	if !ok || !a.Grid.InBounds(p) {
		return Point{}, false
	}
	return p, true
}

// MoveOccupant vacates from, occupies to with tile and reports success.
// The move only happens when to is Empty.
func (a *Area) MoveOccupant(from, to Point, tile Tile) bool {
	if a.Grid.Tile(to) != TileEmpty {
		return false
	}
	a.Grid.Set(from, TileEmpty)
	a.Grid.Set(to, tile)
	return true
}
