package vehicle

import "math"

// Params holds the tunable constants of a vehicle.
type Params struct {
	Mass          float64 // kg
	EngineTorque  float64 // Nm at full throttle, before gear ratio
	ReverseTorque float64 // Nm
	BrakingTorque float64 // Nm
	WheelDiameter float64 // m, divides wheel torque into force

	AirDensity      float64 // kg/m^3
	DragCoefficient float64
	ReferenceArea   float64 // m^2

	SteerAngle    float64 // Turning angle magnitude for steer commands (radians)
	SteerDamping  float64 // Yaw per tick = turning angle * SteerDamping
	PositionScale float64 // World units moved per tick per m/s

	Length float64 // Body length along the orientation, world units
	Width  float64 // Body width, world units
}

// DefaultParams returns a 1.3t sedan with a 650Nm engine.
func DefaultParams() Params {
	return Params{
		Mass:            1300,
		EngineTorque:    650,
		ReverseTorque:   400,
		BrakingTorque:   10000,
		WheelDiameter:   0.4,
		AirDensity:      1.293,
		DragCoefficient: 0.4,
		ReferenceArea:   1.3,
		SteerAngle:      math.Pi / 4,
		SteerDamping:    0.03,
		PositionScale:   1,
		Length:          4.5,
		Width:           2,
	}
}

// DragForce returns 0.5 * rho * v^2 * Cd * A.
func DragForce(airDensity, velocity, dragCoefficient, referenceArea float64) float64 {
	return 0.5 * airDensity * velocity * velocity * dragCoefficient * referenceArea
}
