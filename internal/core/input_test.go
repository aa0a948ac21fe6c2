package core

import (
	"math"
	"testing"

	"github.com/vovakirdan/autotheft/internal/geom"
)

func TestFacingFromKeys(t *testing.T) {
	tests := []struct {
		name                  string
		up, left, down, right bool
		expected              Facing
	}{
		{"W", true, false, false, false, North},
		{"W+D", true, false, false, true, NorthEast},
		{"D", false, false, false, true, East},
		{"S+D", false, false, true, true, SouthEast},
		{"S", false, false, true, false, South},
		{"A+S", false, true, true, false, SouthWest},
		{"A", false, true, false, false, West},
		{"W+A", true, true, false, false, NorthWest},
		{"nothing", false, false, false, false, FacingNone},
		{"W+S cancels", true, false, true, false, FacingNone},
		{"A+D cancels", false, true, false, true, FacingNone},
		{"three keys", true, true, false, true, FacingNone},
		{"all keys", true, true, true, true, FacingNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FacingFromKeys(tc.up, tc.left, tc.down, tc.right); got != tc.expected {
				t.Errorf("FacingFromKeys() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestFacingVector(t *testing.T) {
	all := []Facing{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}
	for _, f := range all {
		v := f.Vector()
		if math.Abs(v.Length()-1) > 1e-9 {
			t.Errorf("%v.Vector() length = %f, expected 1", f, v.Length())
		}
		if f.HasNorth() && v.Y >= 0 {
			t.Errorf("%v points north but Y = %f", f, v.Y)
		}
		if f.HasSouth() && v.Y <= 0 {
			t.Errorf("%v points south but Y = %f", f, v.Y)
		}
		if f.HasEast() && v.X <= 0 {
			t.Errorf("%v points east but X = %f", f, v.X)
		}
		if f.HasWest() && v.X >= 0 {
			t.Errorf("%v points west but X = %f", f, v.X)
		}
	}

	if v := FacingNone.Vector(); v != (geom.Vec2{}) {
		t.Errorf("FacingNone.Vector() = %v, expected zero", v)
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if f.Has(ActionFire) {
		t.Error("new frame should be empty")
	}

	f.Set(ActionUp)
	f.Set(ActionRight)
	if f.Facing() != NorthEast {
		t.Errorf("Facing() = %v, expected NE", f.Facing())
	}

	f.SetAim(geom.V(1, 0))
	f.Clear()

	if f.Has(ActionUp) {
		t.Error("Clear() should remove actions")
	}
	if !f.HasAim {
		t.Error("Clear() should keep the aim")
	}

	var zero InputFrame
	if zero.Has(ActionUp) {
		t.Error("zero frame Has() should be false")
	}
	zero.Set(ActionFire)
	if !zero.Has(ActionFire) {
		t.Error("Set() on zero frame should allocate")
	}
}

func TestTickDelta(t *testing.T) {
	cfg := RuntimeConfig{TickRate: 50}
	if d := cfg.TickDelta(); math.Abs(d-0.02) > 1e-12 {
		t.Errorf("TickDelta() = %f, expected 0.02", d)
	}
	if d := (RuntimeConfig{}).TickDelta(); math.Abs(d-1.0/60) > 1e-12 {
		t.Errorf("TickDelta() with zero rate = %f, expected 1/60", d)
	}
}
