package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/autotheft/internal/core"
	"github.com/vovakirdan/autotheft/internal/geom"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	// Game/menu actions
	switch key {
	case "w", "up":
		return core.ActionUp, false
	case "s", "down":
		return core.ActionDown, false
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case " ":
		return core.ActionFire, false
	case "f", "e":
		return core.ActionInteract, false
	case "x":
		return core.ActionShiftUp, false
	case "z":
		return core.ActionShiftDown, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// IsHeld reports whether an action is a movement action that stays active
// between key repeats.
func IsHeld(a core.Action) bool {
	switch a {
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		return true
	}
	return false
}

// Opposite returns the opposing movement action, or ActionNone.
func Opposite(a core.Action) core.Action {
	switch a {
	case core.ActionUp:
		return core.ActionDown
	case core.ActionDown:
		return core.ActionUp
	case core.ActionLeft:
		return core.ActionRight
	case core.ActionRight:
		return core.ActionLeft
	}
	return core.ActionNone
}

// MouseInput is the aiming and firing state derived from a mouse event.
type MouseInput struct {
	Aim     geom.Vec2 // Offset from the screen center in cells
	Press   bool      // Left button went down
	Release bool      // Left button went up
}

// MapMouse translates a mouse event on a w x h screen. The aim is relative to
// the screen center, where games draw the player.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg, w, h int) MouseInput {
	in := MouseInput{
		Aim: geom.V(float64(msg.X-w/2), float64(msg.Y-h/2)),
	}
	if msg.Button == tea.MouseButtonLeft {
		switch msg.Action {
		case tea.MouseActionPress:
			in.Press = true
		case tea.MouseActionRelease:
			in.Release = true
		}
	}
	if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonNone {
		in.Release = true
	}
	return in
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
