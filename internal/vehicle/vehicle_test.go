package vehicle

import (
	"math"
	"testing"

	"github.com/vovakirdan/autotheft/internal/collide"
	"github.com/vovakirdan/autotheft/internal/core"
	"github.com/vovakirdan/autotheft/internal/geom"
)

const tolerance = 1e-9

func newTestVehicle() *Vehicle {
	return New(geom.V(0, 0), DefaultParams(), nil)
}

func TestAccelerateFromRest(t *testing.T) {
	v := newTestVehicle()
	v.SetThrottle(1)

	prev := v.Velocity()
	for i := 0; i < 20; i++ {
		v.Update(1)
		if v.Velocity() <= prev {
			t.Fatalf("tick %d: velocity %f did not increase from %f", i, v.Velocity(), prev)
		}
		if v.State() != StateAccelerating {
			t.Fatalf("tick %d: state = %v, expected Accelerating", i, v.State())
		}
		prev = v.Velocity()
	}
	if v.Reversed() {
		t.Error("positive throttle must clear reversed")
	}

	// First tick from rest: no drag, F = 650 * 8 / 0.4 = 13000N, a = 10 m/s^2
	w := newTestVehicle()
	w.SetThrottle(1)
	w.Update(1)
	if math.Abs(w.Velocity()-10) > tolerance {
		t.Errorf("velocity after 1s = %f, expected 10", w.Velocity())
	}
	if math.Abs(w.Acceleration()-10) > tolerance {
		t.Errorf("acceleration = %f, expected 10", w.Acceleration())
	}
}

func TestCoastDownNeverNegative(t *testing.T) {
	v := newTestVehicle()
	v.SetThrottle(1)
	for i := 0; i < 5; i++ {
		v.Update(1)
	}

	v.SetThrottle(0)
	prev := v.Velocity()
	for i := 0; i < 200; i++ {
		v.Update(1)
		if v.Velocity() < 0 {
			t.Fatalf("tick %d: velocity went negative: %f", i, v.Velocity())
		}
		if v.Velocity() > prev {
			t.Fatalf("tick %d: velocity increased while coasting: %f > %f", i, v.Velocity(), prev)
		}
		prev = v.Velocity()
	}
	if v.Velocity() >= 50 {
		t.Errorf("drag should have slowed the car, velocity = %f", v.Velocity())
	}
}

func TestBrakingClampsAtZero(t *testing.T) {
	v := newTestVehicle()
	v.velocity = 5
	v.SetThrottle(-1)

	// F = -10000 / 0.4 = -25000N: far more than enough to stop in 1s
	v.Update(1)
	if v.Velocity() != 0 {
		t.Errorf("velocity = %f, expected clamp to 0", v.Velocity())
	}
	if v.State() != StateBraking {
		t.Errorf("state = %v, expected Braking", v.State())
	}

	// Stopped: the next tick with throttle <= 0 engages reverse
	v.Update(1)
	if !v.Reversed() {
		t.Error("vehicle at rest with throttle <= 0 should be reversed")
	}
	if v.State() != StateReversing {
		t.Errorf("state = %v, expected Reversing", v.State())
	}
	if v.Velocity() != 0 {
		t.Errorf("reverse force is signed with throttle; velocity = %f, expected 0", v.Velocity())
	}
}

func TestIdleAtRest(t *testing.T) {
	v := newTestVehicle()
	v.Update(0.1)

	if v.State() != StateIdle {
		t.Errorf("state = %v, expected Idle", v.State())
	}
	if v.Position() != geom.V(0, 0) {
		t.Errorf("idle vehicle moved to %v", v.Position())
	}
}

func TestUpdateOrder(t *testing.T) {
	p := DefaultParams()
	v := New(geom.V(100, 100), p, nil)
	v.velocity = 20
	v.SetThrottle(1)
	v.SteerRight()

	dt := 0.1
	// Drag uses the velocity from before the throttle force
	drag := DragForce(p.AirDensity, 20, p.DragCoefficient, p.ReferenceArea)
	afterDrag := 20 - drag/p.Mass*dt
	thrust := p.EngineTorque * 8.0 / p.WheelDiameter
	expectedVel := afterDrag + thrust/p.Mass*dt

	// Position uses the orientation after the yaw step and the final velocity
	expectedOrient := geom.V(0, -1).Rotate(math.Pi / 4 * 0.03)
	expectedPos := geom.V(100, 100).Add(expectedOrient.Scale(expectedVel))

	v.Update(dt)

	if math.Abs(v.Velocity()-expectedVel) > 1e-9 {
		t.Errorf("velocity = %.12f, expected %.12f", v.Velocity(), expectedVel)
	}
	if !v.Orientation().ApproxEqual(expectedOrient, 1e-12) {
		t.Errorf("orientation = %v, expected %v", v.Orientation(), expectedOrient)
	}
	if !v.Position().ApproxEqual(expectedPos, 1e-9) {
		t.Errorf("position = %v, expected %v", v.Position(), expectedPos)
	}
}

func TestGearRatioScalesThrust(t *testing.T) {
	low := newTestVehicle()
	high := newTestVehicle()
	if err := high.Gearbox().ShiftTo(3); err != nil { // ratio 1.0
		t.Fatal(err)
	}

	low.SetThrottle(1)
	high.SetThrottle(1)
	low.Update(1)
	high.Update(1)

	if math.Abs(low.Velocity()/high.Velocity()-8) > 1e-9 {
		t.Errorf("first gear should give 8x the thrust of fourth: %f vs %f", low.Velocity(), high.Velocity())
	}
}

func TestReversedTravelsBackwards(t *testing.T) {
	v := newTestVehicle()
	v.velocity = 5
	v.reversed = true

	v.Update(0.01)

	// Facing north; reversed travel moves south (+y)
	if v.Position().Y <= 0 {
		t.Errorf("reversed vehicle should move south, position = %v", v.Position())
	}
	if v.State() != StateReversing {
		t.Errorf("state = %v, expected Reversing", v.State())
	}
}

func TestSteeringYaw(t *testing.T) {
	v := newTestVehicle()
	v.ApplyControl(core.East)

	if v.Throttle() != 0 {
		t.Errorf("East throttle = %f, expected 0", v.Throttle())
	}
	v.Update(1 / 60.0)

	// Steering right turns clockwise on screen: north rotates toward east
	if v.Orientation().X <= 0 {
		t.Errorf("right steer should yaw toward east, orientation = %v", v.Orientation())
	}
	if math.Abs(v.Orientation().Length()-1) > 1e-12 {
		t.Errorf("orientation must stay unit length, got %f", v.Orientation().Length())
	}

	// Yaw per tick is independent of dt
	w := newTestVehicle()
	w.SteerLeft()
	for i := 0; i < 100; i++ {
		w.Update(1 / 60.0)
	}
	expected := geom.V(0, -1).Rotate(-100 * math.Pi / 4 * 0.03)
	if !w.Orientation().ApproxEqual(expected, 1e-9) {
		t.Errorf("orientation after 100 ticks = %v, expected %v", w.Orientation(), expected)
	}
}

func TestApplyControlMapping(t *testing.T) {
	sa := DefaultParams().SteerAngle

	tests := []struct {
		facing   core.Facing
		throttle float64
		steer    float64
	}{
		{core.North, 1, 0},
		{core.NorthEast, 1, sa},
		{core.East, 0, sa},
		{core.SouthEast, -1, sa},
		{core.South, -1, 0},
		{core.SouthWest, -1, -sa},
		{core.West, 0, -sa},
		{core.NorthWest, 1, -sa},
		{core.FacingNone, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.facing.String(), func(t *testing.T) {
			v := newTestVehicle()
			v.SetThrottle(0.5)
			v.SteerLeft()

			v.ApplyControl(tc.facing)
			if v.Throttle() != tc.throttle {
				t.Errorf("throttle = %v, expected %v", v.Throttle(), tc.throttle)
			}
			if v.TurningAngle() != tc.steer {
				t.Errorf("turning angle = %v, expected %v", v.TurningAngle(), tc.steer)
			}
		})
	}
}

func TestSetThrottleClamps(t *testing.T) {
	v := newTestVehicle()
	v.SetThrottle(3)
	if v.Throttle() != 1 {
		t.Errorf("SetThrottle(3) -> %v, expected 1", v.Throttle())
	}
	v.SetThrottle(-7)
	if v.Throttle() != -1 {
		t.Errorf("SetThrottle(-7) -> %v, expected -1", v.Throttle())
	}
}

func TestEnterLeave(t *testing.T) {
	v := newTestVehicle()
	v.Enter()
	v.ApplyControl(core.NorthEast)
	if !v.Entered() {
		t.Fatal("Enter() should mark the vehicle occupied")
	}

	v.Leave()
	if v.Entered() {
		t.Error("Leave() should clear occupancy")
	}
	if v.Throttle() != 0 || v.TurningAngle() != 0 {
		t.Errorf("Leave() should neutralize controls, got throttle=%v steer=%v", v.Throttle(), v.TurningAngle())
	}
}

func TestVelocityKmh(t *testing.T) {
	v := newTestVehicle()
	v.velocity = 10
	if math.Abs(v.VelocityKmh()-36) > tolerance {
		t.Errorf("VelocityKmh() = %f, expected 36", v.VelocityKmh())
	}
}

func TestVehicleShapeFollowsPose(t *testing.T) {
	v := New(geom.V(50, 0), DefaultParams(), nil)

	// Facing north the body is 2 wide along x
	hit, ok := collide.Cast(v, geom.V(0, 0), geom.V(1, 0))
	if !ok {
		t.Fatal("expected ray to hit the vehicle body")
	}
	if math.Abs(hit.T-49) > 1e-9 {
		t.Errorf("hit t = %f, expected 49", hit.T)
	}

	// Facing east the body is 4.5 long along x
	v.SetOrientation(geom.V(1, 0))
	hit, ok = collide.Cast(v, geom.V(0, 0), geom.V(1, 0))
	if !ok {
		t.Fatal("expected ray to hit the rotated body")
	}
	if math.Abs(hit.T-47.75) > 1e-9 {
		t.Errorf("hit t = %f, expected 47.75", hit.T)
	}
	if !hit.Normal.ApproxEqual(geom.V(-1, 0), 1e-9) {
		t.Errorf("normal = %v, expected (-1, 0)", hit.Normal)
	}
}

func TestOdometer(t *testing.T) {
	v := newTestVehicle()
	v.velocity = 3
	v.reversed = false
	v.SetThrottle(0)
	// Throttle 0 while moving forward: braking branch with zero force
	v.Update(0)

	if math.Abs(v.Odometer()-3) > tolerance {
		t.Errorf("Odometer() = %f, expected 3", v.Odometer())
	}
}
