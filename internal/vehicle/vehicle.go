// Package vehicle simulates a single-axle car: throttle, brake and reverse
// forces from wheel torque, quadratic air drag, a discrete gearbox and
// steering that yaws the orientation by a fixed fraction of the turning angle
// each tick.
package vehicle

import (
	"github.com/vovakirdan/autotheft/internal/collide"
	"github.com/vovakirdan/autotheft/internal/core"
	"github.com/vovakirdan/autotheft/internal/geom"
)

// MsToKmh converts m/s to km/h.
const MsToKmh = 3.6

// State is the dynamics branch taken during the last update.
type State int

const (
	StateIdle State = iota
	StateAccelerating
	StateBraking
	StateReversing
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateAccelerating:
		return "Accelerating"
	case StateBraking:
		return "Braking"
	case StateReversing:
		return "Reversing"
	default:
		return "Idle"
	}
}

// Vehicle is the mutable simulation state of one car.
// Velocity is a non-negative speed; the direction of travel is carried by
// the reversed flag.
type Vehicle struct {
	params  Params
	gearbox *Gearbox

	pos          geom.Vec2
	orientation  geom.Vec2 // Unit vector
	velocity     float64   // m/s, never negative
	acceleration float64   // Last applied force / mass, for display
	throttle     float64   // [-1, 1]
	turningAngle float64   // Radians, 0 when steering is neutral
	reversed     bool
	entered      bool
	state        State

	odometer float64 // World units travelled
}

// New creates a vehicle at rest at pos, facing north.
// A nil gearbox is replaced by SixStep().
func New(pos geom.Vec2, p Params, gb *Gearbox) *Vehicle {
	if gb == nil {
		gb = SixStep()
	}
	return &Vehicle{
		params:      p,
		gearbox:     gb,
		pos:         pos,
		orientation: geom.V(0, -1),
	}
}

// Update advances the simulation by dt seconds.
// Order matters: drag, throttle/brake/reverse force, yaw, then translation.
// Later steps read state written by earlier ones.
func (v *Vehicle) Update(dt float64) {
	p := v.params

	drag := DragForce(p.AirDensity, v.velocity, p.DragCoefficient, p.ReferenceArea)
	v.ApplyForce(-drag, dt)

	if v.throttle > 0 {
		v.state = StateAccelerating
		v.reversed = false
		torque := v.throttle * p.EngineTorque * v.gearbox.Ratio()
		v.ApplyForce(v.ForceFromWheelTorque(torque), dt)
	} else {
		if v.velocity <= 0 {
			v.reversed = true
		}
		if v.reversed {
			v.state = StateReversing
			v.ApplyForce(v.ForceFromWheelTorque(v.throttle*p.ReverseTorque), dt)
		} else {
			v.state = StateBraking
			v.ApplyForce(v.ForceFromWheelTorque(v.throttle*p.BrakingTorque), dt)
		}
		if v.throttle == 0 && v.velocity == 0 {
			v.state = StateIdle
		}
	}

	if v.turningAngle != 0 {
		v.orientation = v.orientation.Rotate(v.turningAngle * p.SteerDamping).Normalize()
	}

	sign := 1.0
	if v.reversed {
		sign = -1
	}
	step := v.orientation.Scale(v.velocity * sign * p.PositionScale)
	v.pos = v.pos.Add(step)
	v.odometer += step.Length()
}

// ApplyForce integrates force over dt: a = F/m, v = max(0, v + a*dt).
func (v *Vehicle) ApplyForce(force, dt float64) {
	v.acceleration = force / v.params.Mass
	v.velocity = max(0, v.velocity+v.acceleration*dt)
}

// ForceFromWheelTorque converts wheel torque into a traction force.
func (v *Vehicle) ForceFromWheelTorque(torque float64) float64 {
	return torque / v.params.WheelDiameter
}

// SetThrottle sets the throttle command, clamped to [-1, 1].
func (v *Vehicle) SetThrottle(t float64) {
	v.throttle = max(-1, min(1, t))
}

// SteerLeft sets the turning angle to -SteerAngle (counter-clockwise on screen).
func (v *Vehicle) SteerLeft() {
	v.turningAngle = -v.params.SteerAngle
}

// SteerRight sets the turning angle to +SteerAngle (clockwise on screen).
func (v *Vehicle) SteerRight() {
	v.turningAngle = v.params.SteerAngle
}

// SteerNeutral centers the steering.
func (v *Vehicle) SteerNeutral() {
	v.turningAngle = 0
}

// ApplyControl maps an 8-way facing onto throttle and steering.
// North-ish facings accelerate, south-ish facings brake or reverse,
// east/west components steer. FacingNone releases both.
func (v *Vehicle) ApplyControl(f core.Facing) {
	switch {
	case f.HasNorth():
		v.throttle = 1
	case f.HasSouth():
		v.throttle = -1
	default:
		v.throttle = 0
	}

	switch {
	case f.HasEast():
		v.SteerRight()
	case f.HasWest():
		v.SteerLeft()
	default:
		v.SteerNeutral()
	}
}

// ResetControls sets throttle to zero and steering to neutral.
func (v *Vehicle) ResetControls() {
	v.throttle = 0
	v.turningAngle = 0
}

// Stop zeroes velocity and acceleration, as after hitting a wall.
func (v *Vehicle) Stop() {
	v.velocity, v.acceleration = 0, 0
}

// Enter marks the vehicle as occupied.
func (v *Vehicle) Enter() {
	v.entered = true
}

// Leave marks the vehicle as empty and releases the controls.
func (v *Vehicle) Leave() {
	v.entered = false
	v.ResetControls()
}

// Entered reports whether someone occupies the vehicle.
func (v *Vehicle) Entered() bool { return v.entered }

// Position returns the world position.
func (v *Vehicle) Position() geom.Vec2 { return v.pos }

// SetPosition teleports the vehicle.
func (v *Vehicle) SetPosition(p geom.Vec2) { v.pos = p }

// Orientation returns the unit heading vector.
func (v *Vehicle) Orientation() geom.Vec2 { return v.orientation }

// SetOrientation sets the heading. Zero vectors are ignored.
func (v *Vehicle) SetOrientation(o geom.Vec2) {
	if o.Length() == 0 {
		return
	}
	v.orientation = o.Normalize()
}

// Velocity returns the speed in m/s.
func (v *Vehicle) Velocity() float64 { return v.velocity }

// VelocityKmh returns the speed in km/h.
func (v *Vehicle) VelocityKmh() float64 { return v.velocity * MsToKmh }

// Acceleration returns the last applied acceleration in m/s^2.
func (v *Vehicle) Acceleration() float64 { return v.acceleration }

// Throttle returns the throttle command.
func (v *Vehicle) Throttle() float64 { return v.throttle }

// TurningAngle returns the current steering angle in radians.
func (v *Vehicle) TurningAngle() float64 { return v.turningAngle }

// Reversed reports whether the vehicle travels backwards.
func (v *Vehicle) Reversed() bool { return v.reversed }

// State returns the branch taken by the last update.
func (v *Vehicle) State() State { return v.state }

// Gearbox returns the vehicle's gearbox.
func (v *Vehicle) Gearbox() *Gearbox { return v.gearbox }

// Params returns the vehicle's constants.
func (v *Vehicle) Params() Params { return v.params }

// Odometer returns the total distance travelled in world units.
func (v *Vehicle) Odometer() float64 { return v.odometer }

// Body returns the vehicle outline as a polygon owned by the vehicle:
// a Width x Length box rotated to the orientation and placed at the position.
func (v *Vehicle) Body() collide.Polygon {
	return collide.Polygon{
		Position: v.pos,
		Angle:    v.orientation.Angle() - geom.V(0, -1).Angle(),
		Segments: collide.CenteredBox(v.params.Width, v.params.Length),
	}
}

// Shape implements collide.Collidable.
func (v *Vehicle) Shape() []geom.LineSegment {
	return v.Body().Shape()
}
