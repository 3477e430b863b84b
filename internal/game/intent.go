package game

import "github.com/samdwyer/warpwalk/internal/world"

// IntentKind identifies what an Intent asks the state owner to do.
type IntentKind int

const (
	// IntentMove turns or steps the player.
	IntentMove IntentKind = iota
	// IntentInteract inspects the cell in front of the player.
	IntentInteract
	// IntentRefresh assigns routes to NPCs that have none.
	IntentRefresh
	// IntentNpcStep moves one NPC one step along its route.
	IntentNpcStep
	// IntentRedraw repaints the whole frame.
	IntentRedraw
	// IntentQuit stops the session.
	IntentQuit
)

// String returns a human-readable intent name.
func (k IntentKind) String() string {
	switch k {
	case IntentMove:
		return "move"
	case IntentInteract:
		return "interact"
	case IntentRefresh:
		return "refresh"
	case IntentNpcStep:
		return "npc_step"
	case IntentRedraw:
		return "redraw"
	case IntentQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Intent is a single request queued for the state owner.
type Intent struct {
	Kind      IntentKind
	Direction world.Direction // IntentMove
	Step      Step            // IntentNpcStep
}

// Move returns a move intent for d.
func Move(d world.Direction) Intent {
	return Intent{Kind: IntentMove, Direction: d}
}
