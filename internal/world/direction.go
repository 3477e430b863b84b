package world

// Direction is the facing of the player token.
type Direction uint8

const (
	Up Direction = iota
	Down
	Right
	Left
)

// DirectionFromCode decodes a facing code (0=Up, 1=Down, 2=Right, 3=Left).
// Any other code decodes to Left.
func DirectionFromCode(code uint8) Direction {
	if code > uint8(Left) {
		return Left
	}
	return Direction(code)
}

// Code returns the numeric facing code.
func (d Direction) Code() uint8 {
	return uint8(d)
}

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Right:
		return "right"
	default:
		return "left"
	}
}
