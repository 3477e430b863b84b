package game

import (
	"context"
	"testing"

	"github.com/samdwyer/warpwalk/internal/world"
)

// boxDef returns a width×height definition with a wall border.
func boxDef(key world.AreaKey, width, height int, spawn world.Spawn) *world.AreaDefinition {
	cells := make(map[world.Point]world.Cell)
	for x := 0; x < width; x++ {
		cells[world.Pt(x, 0)] = world.Cell{Kind: 0}
		cells[world.Pt(x, height-1)] = world.Cell{Kind: 0}
	}
	for y := 0; y < height; y++ {
		cells[world.Pt(0, y)] = world.Cell{Kind: 0}
		cells[world.Pt(width-1, y)] = world.Cell{Kind: 0}
	}
	return &world.AreaDefinition{
		Key:    key,
		Width:  width,
		Height: height,
		Cells:  cells,
		Player: spawn,
		Props:  make(map[uint8]world.Prop),
	}
}

func withCell(def *world.AreaDefinition, p world.Point, kind, primary, secondary uint8) *world.AreaDefinition {
	def.Cells[p] = world.Cell{Kind: kind, Meta: world.Meta{Primary: primary, Secondary: secondary}}
	return def
}

type recordingObserver struct {
	renders   int
	inspected []world.Tile
	points    []world.Point
}

func (o *recordingObserver) Render(*world.Area) { o.renders++ }

func (o *recordingObserver) Inspect(p world.Point, tile world.Tile) {
	o.points = append(o.points, p)
	o.inspected = append(o.inspected, tile)
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.StepJitter = 0
	return cfg
}

func newTestGame(t *testing.T, defs ...*world.AreaDefinition) (*Game, *recordingObserver) {
	t.Helper()
	obs := &recordingObserver{}
	return New(context.Background(), defs, testConfig(), obs, nil), obs
}

var (
	keyA = world.AreaKey{Area: 0, Part: 0}
	keyB = world.AreaKey{Area: 1, Part: 0}
)
