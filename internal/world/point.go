package world

import "fmt"

// Point is a grid coordinate. Both axes are non-negative.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Compare orders points row-major: by Y first, then by X.
// It returns -1, 0 or +1.
func (p Point) Compare(other Point) int {
	switch {
	case p.Y < other.Y:
		return -1
	case p.Y > other.Y:
		return 1
	case p.X < other.X:
		return -1
	case p.X > other.X:
		return 1
	default:
		return 0
	}
}

// Less reports whether p sorts before other in row-major order.
func (p Point) Less(other Point) bool {
	return p.Compare(other) < 0
}

// Step returns the neighbouring point one cell in the given direction.
// The second result is false when the step would leave the non-negative
// quadrant.
func (p Point) Step(d Direction) (Point, bool) {
	switch d {
	case Up:
		if p.Y == 0 {
			return p, false
		}
		return Point{X: p.X, Y: p.Y - 1}, true
	case Down:
		return Point{X: p.X, Y: p.Y + 1}, true
	case Right:
		return Point{X: p.X + 1, Y: p.Y}, true
	case Left:
		if p.X == 0 {
			return p, false
		}
		return Point{X: p.X - 1, Y: p.Y}, true
	}
	return p, false
}

// String implements fmt.Stringer.
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}
