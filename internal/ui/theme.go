package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Palette holds hex color strings for each kind of cell, as read from config.
// Empty entries fall back to the default theme.
type Palette struct {
	Wall   string
	Empty  string
	Warp   string
	NPC    string
	Player string
	Status string
}

// Theme is a parsed Palette.
type Theme struct {
	Wall   tcell.Color
	Empty  tcell.Color
	Warp   tcell.Color
	NPC    tcell.Color
	Player tcell.Color
	Status tcell.Color
}

// DefaultTheme returns the built-in colors.
func DefaultTheme() Theme {
	return Theme{
		Wall:   MustParseHexColor("#6C6C6C"),
		Empty:  tcell.ColorDefault,
		Warp:   MustParseHexColor("#AF5FFF"),
		NPC:    MustParseHexColor("#5FAF5F"),
		Player: MustParseHexColor("#FFD700"),
		Status: MustParseHexColor("#D0D0D0"),
	}
}

// NewTheme parses a palette on top of DefaultTheme.
func NewTheme(p Palette) (Theme, error) {
	theme := DefaultTheme()
	fields := []struct {
		name string
		hex  string
		dst  *tcell.Color
	}{
		{"wall", p.Wall, &theme.Wall},
		{"empty", p.Empty, &theme.Empty},
		{"warp", p.Warp, &theme.Warp},
		{"npc", p.NPC, &theme.NPC},
		{"player", p.Player, &theme.Player},
		{"status", p.Status, &theme.Status},
	}
	for _, f := range fields {
		if f.hex == "" {
			continue
		}
		color, err := ParseHexColor(f.hex)
		if err != nil {
			return theme, fmt.Errorf("theme %s: %w", f.name, err)
		}
		*f.dst = color
	}
	return theme, nil
}

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %s: %w", hex, err)
	}
	return tcell.NewHexColor(int32(rgb)), nil
}

// MustParseHexColor converts a hex color string to tcell.Color, panicking on error.
func MustParseHexColor(hex string) tcell.Color {
	color, err := ParseHexColor(hex)
	if err != nil {
		panic(err)
	}
	return color
}
