// Package world owns everything that exists on the map: the vehicle arena,
// building and target collidables, the player and their weapon.
package world

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/autotheft/internal/collide"
	"github.com/vovakirdan/autotheft/internal/geom"
	"github.com/vovakirdan/autotheft/internal/vehicle"
)

var (
	ErrUnknownVehicle   = errors.New("unknown vehicle")
	ErrNoVehicleNearby  = errors.New("no vehicle nearby")
	ErrNotInVehicle     = errors.New("not in a vehicle")
	ErrAlreadyInVehicle = errors.New("already in a vehicle")
)

// VehicleHandle addresses a vehicle in the world arena.
// Handles stay valid for the lifetime of the world.
type VehicleHandle int

// Target is a destructible box.
type Target struct {
	Box       collide.Rect
	HitPoints int
}

// Alive reports whether the target still has hit points.
func (t *Target) Alive() bool { return t.HitPoints > 0 }

// Shape implements collide.Collidable.
func (t *Target) Shape() []geom.LineSegment { return t.Box.Shape() }

// World is the set of simulated and collidable objects.
type World struct {
	vehicles  []*vehicle.Vehicle
	buildings []collide.Rect
	targets   []*Target

	parallelEps float64
}

// New creates an empty world. eps is the parallel threshold for ray casts;
// non-positive values use geom.DefaultParallelEpsilon.
func New(eps float64) *World {
	if eps <= 0 {
		eps = geom.DefaultParallelEpsilon
	}
	return &World{parallelEps: eps}
}

// AddVehicle stores v in the arena and returns its handle.
func (w *World) AddVehicle(v *vehicle.Vehicle) VehicleHandle {
	w.vehicles = append(w.vehicles, v)
	return VehicleHandle(len(w.vehicles) - 1)
}

// Vehicle resolves a handle.
func (w *World) Vehicle(h VehicleHandle) (*vehicle.Vehicle, error) {
	if h < 0 || int(h) >= len(w.vehicles) {
		return nil, fmt.Errorf("world: vehicle %d: %w", h, ErrUnknownVehicle)
	}
	return w.vehicles[h], nil
}

// VehicleCount returns the number of vehicles in the arena.
func (w *World) VehicleCount() int { return len(w.vehicles) }

// Vehicles returns the arena in handle order.
func (w *World) Vehicles() []*vehicle.Vehicle { return w.vehicles }

// AddBuilding adds a static obstacle.
func (w *World) AddBuilding(r collide.Rect) {
	w.buildings = append(w.buildings, r)
}

// Buildings returns the static obstacles.
func (w *World) Buildings() []collide.Rect { return w.buildings }

// AddTarget adds a destructible target and returns its index.
func (w *World) AddTarget(box collide.Rect, hp int) int {
	w.targets = append(w.targets, &Target{Box: box, HitPoints: hp})
	return len(w.targets) - 1
}

// Targets returns all targets, destroyed ones included.
func (w *World) Targets() []*Target { return w.targets }

// TargetsAlive counts targets with hit points left.
func (w *World) TargetsAlive() int {
	n := 0
	for _, t := range w.targets {
		if t.Alive() {
			n++
		}
	}
	return n
}

// Damage subtracts hit points from a target. It reports whether this call
// destroyed it. Non-target objects are not damageable.
func (w *World) Damage(id ObjectID, amount int) bool {
	if id.Kind != KindTarget || id.Index < 0 || id.Index >= len(w.targets) {
		return false
	}
	t := w.targets[id.Index]
	if !t.Alive() {
		return false
	}
	t.HitPoints -= amount
	return !t.Alive()
}

// Update advances every vehicle by dt seconds in handle order.
func (w *World) Update(dt float64) {
	for _, v := range w.vehicles {
		v.Update(dt)
	}
}

// NearestVehicle returns the closest unoccupied vehicle within radius of pos.
func (w *World) NearestVehicle(pos geom.Vec2, radius float64) (VehicleHandle, bool) {
	best := VehicleHandle(-1)
	bestDist := radius
	for i, v := range w.vehicles {
		if v.Entered() {
			continue
		}
		if d := v.Position().Distance(pos); d <= bestDist {
			best, bestDist = VehicleHandle(i), d
		}
	}
	return best, best >= 0
}
