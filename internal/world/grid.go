package world

// Grid is a dense rectangle of tiles covering [0,Width) × [0,Height).
type Grid struct {
	Width  int
	Height int
	Tiles  [][]Tile
}

// NewGrid creates a grid with every cell set to fill.
func NewGrid(width, height int, fill Tile) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = fill
		}
	}
	return &Grid{Width: width, Height: height, Tiles: tiles}
}

// InBounds reports whether p lies inside the grid.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Lookup returns the tile at p and whether p is inside the grid.
func (g *Grid) Lookup(p Point) (Tile, bool) {
	if !g.InBounds(p) {
		return TileUnknown, false
	}
	return g.Tiles[p.Y][p.X], true
}

// Tile returns the tile at p, or TileUnknown outside the grid.
func (g *Grid) Tile(p Point) Tile {
	t, _ := g.Lookup(p)
	return t
}

// Set stores t at p. Points outside the grid are ignored.
func (g *Grid) Set(p Point, t Tile) bool {
	if !g.InBounds(p) {
		return false
	}
	g.Tiles[p.Y][p.X] = t
	return true
}

// Len returns the number of cells in the grid.
func (g *Grid) Len() int {
	return g.Width * g.Height
}

// Clone returns a deep copy that shares no memory with g.
func (g *Grid) Clone() *Grid {
	tiles := make([][]Tile, g.Height)
	for y := range tiles {
		tiles[y] = append([]Tile(nil), g.Tiles[y]...)
	}
	return &Grid{Width: g.Width, Height: g.Height, Tiles: tiles}
}

// Each calls fn for every cell in row-major order.
func (g *Grid) Each(fn func(p Point, t Tile)) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			fn(Point{X: x, Y: y}, g.Tiles[y][x])
		}
	}
}
