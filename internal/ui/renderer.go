package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/warpwalk/internal/world"
)

// Canvas is the drawing surface a Renderer paints on. *Screen satisfies it.
type Canvas interface {
	Clear()
	SetContent(x, y int, r rune, style tcell.Style)
	Show()
}

const (
	glyphWall  = '█'
	glyphEmpty = ' '
	glyphWarp  = '◊'
	glyphNPC   = '░'
	glyphOther = '?'
)

// Renderer draws areas and the status line. It implements game.Observer.
type Renderer struct {
	canvas Canvas
	theme  Theme
	area   *world.Area
	status string
}

// NewRenderer creates a new renderer for the given canvas.
func NewRenderer(canvas Canvas, theme Theme) *Renderer {
	return &Renderer{canvas: canvas, theme: theme}
}

// Render repaints the whole area with the status line underneath.
func (r *Renderer) Render(area *world.Area) {
	r.area = area
	r.canvas.Clear()

	area.Grid.Each(func(p world.Point, t world.Tile) {
		ch, style := r.glyph(t, area.Direction)
		r.canvas.SetContent(p.X, p.Y, ch, style)
	})

	line := area.Name
	if r.status != "" {
		line = fmt.Sprintf("%s | %s", area.Name, r.status)
	}
	r.drawText(0, area.Grid.Height, line)

	r.canvas.Show()
}

// Inspect reports the tile in front of the player on the status line.
func (r *Renderer) Inspect(_ world.Point, tile world.Tile) {
	r.status = "You see: " + tile.String()
	if r.area != nil {
		r.Render(r.area)
	}
}

// Status returns the current status message.
func (r *Renderer) Status() string {
	return r.status
}

func (r *Renderer) glyph(t world.Tile, facing world.Direction) (rune, tcell.Style) {
	style := tcell.StyleDefault
	switch t {
	case world.TileWall:
		return glyphWall, style.Foreground(r.theme.Wall)
	case world.TileEmpty:
		return glyphEmpty, style.Foreground(r.theme.Empty)
	case world.TileWarp:
		return glyphWarp, style.Foreground(r.theme.Warp)
	case world.TileNPC:
		return glyphNPC, style.Foreground(r.theme.NPC)
	case world.TileCurrent:
		return playerGlyph(facing), style.Foreground(r.theme.Player).Bold(true)
	default:
		return glyphOther, style
	}
}

func playerGlyph(d world.Direction) rune {
	switch d {
	case world.Up:
		return '↑'
	case world.Down:
		return '↓'
	case world.Right:
		return '→'
	default:
		return '←'
	}
}

func (r *Renderer) drawText(x, y int, msg string) {
	style := tcell.StyleDefault.Foreground(r.theme.Status)
	for _, ch := range msg {
		r.canvas.SetContent(x, y, ch, style)
		x++
	}
}
