package world

import (
	"context"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/warpwalk/internal/telemetry"
)

const (
	// Default procedural area dimensions
	DefaultWidth  = 60
	DefaultHeight = 22

	// BSP parameters
	minRoomSize = 5  // Smallest room edge
	maxRoomSize = 12 // Largest room edge
	minLeafSize = 8  // Leaves smaller than twice this are not split again
)

// Layout is a procedurally carved room-and-corridor grid.
type Layout struct {
	Grid  *Grid
	Rooms []Room
	rng   *rand.Rand
}

// NewLayout creates a layout filled with walls. A nil rng seeds from the clock.
func NewLayout(width, height int, rng *rand.Rand) *Layout {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Layout{
		Grid: NewGrid(width, height, TileWall),
		rng:  rng,
	}
}

// Generate carves rooms with a binary space partition and joins them
// with L-shaped corridors.
func (l *Layout) Generate(ctx context.Context) {
	_, span := telemetry.Tracer("world").Start(ctx, "layout.generate")
	defer span.End()

	startTime := time.Now()

	root := &bspNode{x: 1, y: 1, width: l.Grid.Width - 2, height: l.Grid.Height - 2}
	l.split(root)
	l.carveRooms(root)
	l.connect(root)

	span.SetAttributes(
		attribute.Int("layout.width", l.Grid.Width),
		attribute.Int("layout.height", l.Grid.Height),
		attribute.Int("layout.rooms", len(l.Rooms)),
		attribute.Int64("layout.generation_ms", time.Since(startTime).Milliseconds()),
	)
}

// RandomPointInRoom returns a random Empty point within the room at index.
// It falls back to the room center after a bounded number of tries.
func (l *Layout) RandomPointInRoom(index int) (Point, bool) {
	if index < 0 || index >= len(l.Rooms) {
		return Point{}, false
	}
	room := l.Rooms[index]
	for i := 0; i < 100; i++ {
		p := Point{X: room.X + l.rng.Intn(room.Width), Y: room.Y + l.rng.Intn(room.Height)}
		if l.Grid.Tile(p) == TileEmpty {
			return p, true
		}
	}
	return room.Center(), true
}

type bspNode struct {
	x, y          int
	width, height int
	left, right   *bspNode
	room          *Room
}

func (n *bspNode) isLeaf() bool {
	return n.left == nil && n.right == nil
}

func (l *Layout) split(node *bspNode) {
	canSplitX := node.width >= minLeafSize*2
	canSplitY := node.height >= minLeafSize*2

	var vertical bool
	switch {
	case canSplitX && (node.width > node.height || !canSplitY):
		vertical = true
	case canSplitY:
		vertical = false
	default:
		return
	}

	extent := node.height
	if vertical {
		extent = node.width
	}
	lo, hi := minLeafSize, extent-minLeafSize
	if hi <= lo {
		return
	}
	at := lo + l.rng.Intn(hi-lo+1)

	if vertical {
		node.left = &bspNode{x: node.x, y: node.y, width: at, height: node.height}
		node.right = &bspNode{x: node.x + at, y: node.y, width: node.width - at, height: node.height}
	} else {
		node.left = &bspNode{x: node.x, y: node.y, width: node.width, height: at}
		node.right = &bspNode{x: node.x, y: node.y + at, width: node.width, height: node.height - at}
	}

	l.split(node.left)
	l.split(node.right)
}

func (l *Layout) carveRooms(node *bspNode) {
	if node == nil {
		return
	}
	if !node.isLeaf() {
		l.carveRooms(node.left)
		l.carveRooms(node.right)
		return
	}

	w := min(maxRoomSize, node.width-2)
	h := min(maxRoomSize, node.height-2)
	if w < minRoomSize || h < minRoomSize {
		return
	}
	w = minRoomSize + l.rng.Intn(w-minRoomSize+1)
	h = minRoomSize + l.rng.Intn(h-minRoomSize+1)

	room := Room{
		X:      node.x + 1 + l.rng.Intn(node.width-w-1),
		Y:      node.y + 1 + l.rng.Intn(node.height-h-1),
		Width:  w,
		Height: h,
	}
	node.room = &room
	l.Rooms = append(l.Rooms, room)

	for y := room.Y; y < room.Y+room.Height; y++ {
		for x := room.X; x < room.X+room.Width; x++ {
			l.carve(Point{X: x, Y: y})
		}
	}
}

func (l *Layout) connect(node *bspNode) {
	if node == nil || node.isLeaf() {
		return
	}
	l.connect(node.left)
	l.connect(node.right)

	a, b := anyRoom(node.left), anyRoom(node.right)
	if a == nil || b == nil {
		return
	}
	from, to := a.Center(), b.Center()
	if l.rng.Intn(2) == 0 {
		l.carveRow(from.X, to.X, from.Y)
		l.carveColumn(from.Y, to.Y, to.X)
	} else {
		l.carveColumn(from.Y, to.Y, from.X)
		l.carveRow(from.X, to.X, to.Y)
	}
}

func anyRoom(node *bspNode) *Room {
	if node == nil {
		return nil
	}
	if node.room != nil {
		return node.room
	}
	if room := anyRoom(node.left); room != nil {
		return room
	}
	return anyRoom(node.right)
}

func (l *Layout) carveRow(x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		l.carve(Point{X: x, Y: y})
	}
}

func (l *Layout) carveColumn(y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		l.carve(Point{X: x, Y: y})
	}
}

// carve opens p unless it lies on the outer border.
func (l *Layout) carve(p Point) {
	if p.X > 0 && p.X < l.Grid.Width-1 && p.Y > 0 && p.Y < l.Grid.Height-1 {
		l.Grid.Set(p, TileEmpty)
	}
}
