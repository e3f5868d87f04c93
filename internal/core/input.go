package core

// Action is a semantic game action, abstracted from physical key presses.
// Games react to intents rather than raw input.
type Action int

const (
	ActionNone   Action = iota
	ActionLeft          // Left arrow, h, a
	ActionRight         // Right arrow, l, d
	ActionDown          // Down arrow, j, s - soft drop one row
	ActionRotate        // Up arrow, k, w, x, space
	ActionBack          // B, Escape - go back to menu
	ActionQuit          // Q, Ctrl+C - exit game/session
	ActionPause         // P - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionDown:
		return "Down"
	case ActionRotate:
		return "Rotate"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// IsMove reports whether the action mutates the active piece.
func (a Action) IsMove() bool {
	switch a {
	case ActionLeft, ActionRight, ActionDown, ActionRotate:
		return true
	}
	return false
}
