package mapdata

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/warpwalk/internal/telemetry"
	"github.com/samdwyer/warpwalk/internal/world"
)

// ErrNoAreas is returned for a map file that declares no areas.
var ErrNoAreas = errors.New("map file declares no areas")

// File is the top-level structure of a map file.
type File struct {
	Areas []AreaSpec `yaml:"areas"`
}

// AreaSpec describes one area/part. Missing or malformed numbers decode as
// zero; the conversion to world types never fails on them.
type AreaSpec struct {
	Area     uint8         `yaml:"area"`
	Part     uint8         `yaml:"part"`
	Name     string        `yaml:"name"`
	Width    int           `yaml:"width"`  // 0 derives it from rows
	Height   int           `yaml:"height"` // 0 derives it from rows
	Player   *PlayerSpec   `yaml:"player"`
	Rows     []string      `yaml:"rows"` // one digit per cell, row-major
	Cells    []CellSpec    `yaml:"cells"`
	Props    []PropSpec    `yaml:"props"`
	Generate *GenerateSpec `yaml:"generate"`
}

// PlayerSpec is the default spawn of an area.
type PlayerSpec struct {
	X      int   `yaml:"x"`
	Y      int   `yaml:"y"`
	Facing uint8 `yaml:"facing"` // 0=up 1=down 2=right 3=left
}

// CellSpec overlays one cell with a tile code and occupant metadata.
type CellSpec struct {
	X    int     `yaml:"x"`
	Y    int     `yaml:"y"`
	Tile uint8   `yaml:"tile"`
	Meta []uint8 `yaml:"meta"` // [primary, secondary]
}

// PropSpec is the inclusive roaming rectangle of one NPC.
type PropSpec struct {
	NPC uint8 `yaml:"npc"`
	X   []int `yaml:"x"` // [min, max]
	Y   []int `yaml:"y"` // [min, max]
}

// GenerateSpec requests a procedural room layout instead of rows.
type GenerateSpec struct {
	Seed int64   `yaml:"seed"`
	NPCs []uint8 `yaml:"npcs"`
	Warp []uint8 `yaml:"warp"` // destination [area, part]; empty for none
}

// LoadDefault returns the definitions of the embedded world.
func LoadDefault(ctx context.Context) ([]*world.AreaDefinition, error) {
	file, err := Load[File](DefaultWorld)
	if err != nil {
		return nil, err
	}
	return Definitions(ctx, file)
}

// LoadPath returns the definitions of a map file on disk.
func LoadPath(ctx context.Context, path string) ([]*world.AreaDefinition, error) {
	file, err := LoadFile[File](path)
	if err != nil {
		return nil, err
	}
	return Definitions(ctx, file)
}

// Definitions converts a decoded file to immutable area definitions.
func Definitions(ctx context.Context, file File) ([]*world.AreaDefinition, error) {
	if len(file.Areas) == 0 {
		return nil, ErrNoAreas
	}

	ctx, span := telemetry.Tracer("mapdata").Start(ctx, "mapdata.definitions")
	defer span.End()

	seen := make(map[world.AreaKey]bool, len(file.Areas))
	defs := make([]*world.AreaDefinition, 0, len(file.Areas))
	for i := range file.Areas {
		def := file.Areas[i].definition(ctx)
		if seen[def.Key] {
			return nil, fmt.Errorf("area %v declared twice", def.Key)
		}
		seen[def.Key] = true
		defs = append(defs, def)
	}

	span.SetAttributes(attribute.Int("mapdata.areas", len(defs)))
	return defs, nil
}

func (s *AreaSpec) definition(ctx context.Context) *world.AreaDefinition {
	def := &world.AreaDefinition{
		Key:    world.AreaKey{Area: s.Area, Part: s.Part},
		Name:   s.Name,
		Width:  max(s.Width, 0),
		Height: max(s.Height, 0),
		Cells:  make(map[world.Point]world.Cell),
		Props:  make(map[uint8]world.Prop),
	}
	if def.Name == "" {
		def.Name = fmt.Sprintf("area %v", def.Key)
	}

	if s.Generate != nil {
		s.generate(ctx, def)
	} else {
		s.readRows(def)
	}

	if s.Player != nil {
		def.Player = world.Spawn{
			Point:  world.Point{X: max(s.Player.X, 0), Y: max(s.Player.Y, 0)},
			Facing: world.DirectionFromCode(s.Player.Facing),
		}
	}
	for _, c := range s.Cells {
		p := world.Point{X: max(c.X, 0), Y: max(c.Y, 0)}
		def.Cells[p] = world.Cell{
			Kind: c.Tile,
			Meta: world.Meta{Primary: index(c.Meta, 0), Secondary: index(c.Meta, 1)},
		}
	}
	for _, pr := range s.Props {
		def.Props[pr.NPC] = world.Prop{
			X: world.Range{Min: max(index(pr.X, 0), 0), Max: max(index(pr.X, 1), 0)},
			Y: world.Range{Min: max(index(pr.Y, 0), 0), Max: max(index(pr.Y, 1), 0)},
		}
	}
	return def
}

// readRows declares every character of rows as a cell. Digits are tile codes,
// anything else normalizes to code 0.
func (s *AreaSpec) readRows(def *world.AreaDefinition) {
	widest := 0
	for y, row := range s.Rows {
		widest = max(widest, len(row))
		for x := 0; x < len(row); x++ {
			var code uint8
			if ch := row[x]; ch >= '0' && ch <= '9' {
				code = ch - '0'
			}
			def.Cells[world.Point{X: x, Y: y}] = world.Cell{Kind: code}
		}
	}
	if def.Width == 0 {
		def.Width = widest
	}
	if def.Height == 0 {
		def.Height = len(s.Rows)
	}
}

// generate carves a room layout, spawns the player in the first room and
// scatters NPCs (each roaming its own room) and an optional warp.
func (s *AreaSpec) generate(ctx context.Context, def *world.AreaDefinition) {
	if def.Width == 0 {
		def.Width = world.DefaultWidth
	}
	if def.Height == 0 {
		def.Height = world.DefaultHeight
	}

	layout := world.NewLayout(def.Width, def.Height, rand.New(rand.NewSource(s.Generate.Seed)))
	layout.Generate(ctx)

	layout.Grid.Each(func(p world.Point, t world.Tile) {
		def.Cells[p] = world.Cell{Kind: t.Code()}
	})
	if len(layout.Rooms) == 0 {
		return
	}

	spawn := layout.Rooms[0].Center()
	def.Player = world.Spawn{Point: spawn, Facing: world.Right}
	layout.Grid.Set(spawn, world.TileCurrent)

	for i, id := range s.Generate.NPCs {
		room := (i + 1) % len(layout.Rooms)
		p, ok := layout.RandomPointInRoom(room)
		if !ok || layout.Grid.Tile(p) != world.TileEmpty {
			continue
		}
		layout.Grid.Set(p, world.TileNPC)
		def.Cells[p] = world.Cell{Kind: world.TileNPC.Code(), Meta: world.Meta{Primary: id}}
		def.Props[id] = layout.Rooms[room].Prop()
	}

	if len(s.Generate.Warp) > 0 {
		p, ok := layout.RandomPointInRoom(len(layout.Rooms) - 1)
		if ok && layout.Grid.Tile(p) == world.TileEmpty {
			def.Cells[p] = world.Cell{
				Kind: world.TileWarp.Code(),
				Meta: world.Meta{Primary: index(s.Generate.Warp, 0), Secondary: index(s.Generate.Warp, 1)},
			}
		}
	}
}

func index[T any](s []T, i int) T {
	var zero T
	if i < len(s) {
		return s[i]
	}
	return zero
}
