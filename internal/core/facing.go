package core

import (
	"math"

	"github.com/vovakirdan/autotheft/internal/geom"
)

// Facing is a discretized 8-way direction. FacingNone means no input.
type Facing int

const (
	FacingNone Facing = iota
	North
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// String returns a human-readable name for the facing.
func (f Facing) String() string {
	switch f {
	case North:
		return "N"
	case NorthEast:
		return "NE"
	case East:
		return "E"
	case SouthEast:
		return "SE"
	case South:
		return "S"
	case SouthWest:
		return "SW"
	case West:
		return "W"
	case NorthWest:
		return "NW"
	default:
		return "-"
	}
}

var diag = math.Sqrt2 / 2

// Vector returns the unit vector for the facing in screen space (North is -y).
// FacingNone returns the zero vector.
func (f Facing) Vector() geom.Vec2 {
	switch f {
	case North:
		return geom.V(0, -1)
	case NorthEast:
		return geom.V(diag, -diag)
	case East:
		return geom.V(1, 0)
	case SouthEast:
		return geom.V(diag, diag)
	case South:
		return geom.V(0, 1)
	case SouthWest:
		return geom.V(-diag, diag)
	case West:
		return geom.V(-1, 0)
	case NorthWest:
		return geom.V(-diag, -diag)
	default:
		return geom.Vec2{}
	}
}

// HasNorth reports whether the facing has a northern component.
func (f Facing) HasNorth() bool {
	return f == North || f == NorthEast || f == NorthWest
}

// HasSouth reports whether the facing has a southern component.
func (f Facing) HasSouth() bool {
	return f == South || f == SouthEast || f == SouthWest
}

// HasEast reports whether the facing has an eastern component.
func (f Facing) HasEast() bool {
	return f == East || f == NorthEast || f == SouthEast
}

// HasWest reports whether the facing has a western component.
func (f Facing) HasWest() bool {
	return f == West || f == NorthWest || f == SouthWest
}

// FacingFromKeys resolves held movement keys into a facing.
// Only the eight exact combinations map to a direction; anything else,
// including opposite keys held together, is FacingNone.
func FacingFromKeys(up, left, down, right bool) Facing {
	switch {
	case up && !left && !down && !right:
		return North
	case up && !left && !down && right:
		return NorthEast
	case !up && !left && !down && right:
		return East
	case !up && !left && down && right:
		return SouthEast
	case !up && !left && down && !right:
		return South
	case !up && left && down && !right:
		return SouthWest
	case !up && left && !down && !right:
		return West
	case up && left && !down && !right:
		return NorthWest
	default:
		return FacingNone
	}
}
