package game

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/warpwalk/internal/world"
)

// translate converts a terminal event into an intent.
func translate(ev tcell.Event) (Intent, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return translateKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		return Intent{Kind: IntentRedraw}, true
	}
	return Intent{}, false
}

// translateKey maps arrows, WASD and vi keys to moves, space to interact,
// r to a route refresh and q/Esc/Ctrl-C to quit.
func translateKey(key tcell.Key, r rune) (Intent, bool) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Intent{Kind: IntentQuit}, true
	case tcell.KeyUp:
		return Move(world.Up), true
	case tcell.KeyDown:
		return Move(world.Down), true
	case tcell.KeyRight:
		return Move(world.Right), true
	case tcell.KeyLeft:
		return Move(world.Left), true
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			return Intent{Kind: IntentQuit}, true
		case ' ':
			return Intent{Kind: IntentInteract}, true
		case 'r', 'R':
			return Intent{Kind: IntentRefresh}, true
		case 'w', 'k':
			return Move(world.Up), true
		case 's', 'j':
			return Move(world.Down), true
		case 'd', 'l':
			return Move(world.Right), true
		case 'a', 'h':
			return Move(world.Left), true
		}
	}
	return Intent{}, false
}
