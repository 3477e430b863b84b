package world

// Room represents a rectangular room carved by the layout generator.
type Room struct {
	X, Y          int // Top-left corner position
	Width, Height int // Dimensions of the room
}

// Center returns the center point of the room.
func (r Room) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains returns true if the given point is inside the room.
func (r Room) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Prop returns the room's interior as an NPC roaming range.
func (r Room) Prop() Prop {
	return Prop{
		X: Range{Min: r.X, Max: r.X + r.Width - 1},
		Y: Range{Min: r.Y, Max: r.Y + r.Height - 1},
	}
}

// Range is an inclusive integer interval.
type Range struct {
	Min, Max int
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v int) bool {
	lo, hi := r.bounds()
	return v >= lo && v <= hi
}

// Pick draws a value uniformly from the range using intn
// (normally (*rand.Rand).Intn).
func (r Range) Pick(intn func(int) int) int {
	lo, hi := r.bounds()
	return lo + intn(hi-lo+1)
}

func (r Range) bounds() (int, int) {
	if r.Min > r.Max {
		return r.Max, r.Min
	}
	return r.Min, r.Max
}

// Prop is the rectangle an NPC draws its wandering targets from.
type Prop struct {
	X Range
	Y Range
}

// Contains reports whether p lies within the prop rectangle.
func (pr Prop) Contains(p Point) bool {
	return pr.X.Contains(p.X) && pr.Y.Contains(p.Y)
}
