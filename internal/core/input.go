package core

import "github.com/vovakirdan/autotheft/internal/geom"

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone      Action = iota
	ActionUp               // W, Up arrow - held movement / throttle
	ActionDown             // S, Down arrow - held movement / brake
	ActionLeft             // A, Left arrow - held movement / steer
	ActionRight            // D, Right arrow - held movement / steer
	ActionFire             // Space, left click - fire weapon
	ActionInteract         // F - enter or leave a vehicle
	ActionShiftUp          // X - next gear
	ActionShiftDown        // Z - previous gear
	ActionConfirm          // Enter - confirm selection in menu
	ActionBack             // B, Escape - go back to menu
	ActionRestart          // R key - restart game after game over
	ActionQuit             // Q, Ctrl+C - exit game/session
	ActionPause            // P - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionFire:
		return "Fire"
	case ActionInteract:
		return "Interact"
	case ActionShiftUp:
		return "ShiftUp"
	case ActionShiftDown:
		return "ShiftDown"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state for one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Aim is the weapon direction relative to the viewer, if HasAim is set.
	// Games fall back to the player's facing otherwise.
	Aim    geom.Vec2
	HasAim bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// SetAim records an aim direction for this frame.
func (f *InputFrame) SetAim(dir geom.Vec2) {
	f.Aim = dir
	f.HasAim = true
}

// Facing resolves the held movement actions into an 8-way facing.
func (f InputFrame) Facing() Facing {
	return FacingFromKeys(f.Has(ActionUp), f.Has(ActionLeft), f.Has(ActionDown), f.Has(ActionRight))
}

// Clear resets all actions for the next frame. The aim is kept.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
