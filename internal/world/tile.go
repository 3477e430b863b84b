// Package world provides the tile grid, areas and their construction.
package world

// Tile represents the state of a single grid cell.
type Tile uint8

const (
	// TileWall represents an impassable wall tile.
	TileWall Tile = iota
	// TileEmpty represents a walkable floor tile.
	TileEmpty
	// TileCurrent marks the cell the player occupies.
	TileCurrent
	// TileWarp transitions the player to another area when entered.
	TileWarp
	// TileNPC marks a cell occupied by a non-player character.
	TileNPC
	// TileUnknown is any cell outside declared content.
	TileUnknown
)

// TileFromCode converts a map-file tile code to a Tile.
// Unrecognized codes map to TileUnknown.
func TileFromCode(code uint8) Tile {
	if code > uint8(TileNPC) {
		return TileUnknown
	}
	return Tile(code)
}

// Code returns the numeric code used by map files.
func (t Tile) Code() uint8 {
	return uint8(t)
}

// IsPassable returns true if an actor may step onto the tile.
func (t Tile) IsPassable() bool {
	return t == TileEmpty
}

// String returns a human-readable tile name.
func (t Tile) String() string {
	switch t {
	case TileWall:
		return "wall"
	case TileEmpty:
		return "empty"
	case TileCurrent:
		return "player"
	case TileWarp:
		return "warp"
	case TileNPC:
		return "npc"
	default:
		return "unknown"
	}
}
