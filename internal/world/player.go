package world

import (
	"fmt"

	"github.com/vovakirdan/autotheft/internal/core"
	"github.com/vovakirdan/autotheft/internal/geom"
)

// Player is the character the user controls. On foot they move in eight
// directions; inside a vehicle their input drives it and their position
// follows it.
type Player struct {
	pos         geom.Vec2
	facing      core.Facing
	speed       float64 // World units per second on foot
	enterRadius float64

	vehicle   VehicleHandle
	inVehicle bool
}

// NewPlayer creates a player on foot at pos, facing south.
func NewPlayer(pos geom.Vec2, speed, enterRadius float64) *Player {
	return &Player{
		pos:         pos,
		facing:      core.South,
		speed:       speed,
		enterRadius: enterRadius,
		vehicle:     -1,
	}
}

// Position returns the player's position. While driving it is the vehicle
// position as of the last Sync.
func (p *Player) Position() geom.Vec2 { return p.pos }

// Facing returns the last non-empty movement direction.
func (p *Player) Facing() core.Facing { return p.facing }

// Speed returns the on-foot movement speed.
func (p *Player) Speed() float64 { return p.speed }

// EnterRadius returns how far away a vehicle can be entered from.
func (p *Player) EnterRadius() float64 { return p.enterRadius }

// Vehicle returns the handle of the occupied vehicle.
func (p *Player) Vehicle() (VehicleHandle, bool) {
	return p.vehicle, p.inVehicle
}

// Control applies one tick of directional input. On foot it moves the player
// by facing * speed * dt; in a vehicle it sets throttle and steering.
func (p *Player) Control(w *World, f core.Facing, dt float64) error {
	if p.inVehicle {
		v, err := w.Vehicle(p.vehicle)
		if err != nil {
			return err
		}
		v.ApplyControl(f)
		return nil
	}

	if f == core.FacingNone {
		return nil
	}
	p.facing = f
	p.pos = p.pos.Add(f.Vector().Scale(p.speed * dt))
	return nil
}

// Sync copies the occupied vehicle's position onto the player.
func (p *Player) Sync(w *World) {
	if !p.inVehicle {
		return
	}
	if v, err := w.Vehicle(p.vehicle); err == nil {
		p.pos = v.Position()
	}
}

// SetPosition places the player. Ignored while driving.
func (p *Player) SetPosition(pos geom.Vec2) {
	if !p.inVehicle {
		p.pos = pos
	}
}

// EnterNearest gets into the closest free vehicle within the enter radius.
func (p *Player) EnterNearest(w *World) (VehicleHandle, error) {
	if p.inVehicle {
		return p.vehicle, ErrAlreadyInVehicle
	}
	h, ok := w.NearestVehicle(p.pos, p.enterRadius)
	if !ok {
		return -1, ErrNoVehicleNearby
	}
	v, err := w.Vehicle(h)
	if err != nil {
		return -1, err
	}

	v.Enter()
	p.vehicle, p.inVehicle = h, true
	p.pos = v.Position()
	return h, nil
}

// Leave gets out of the occupied vehicle. The player is placed at the
// vehicle position and the vehicle's controls are released.
func (p *Player) Leave(w *World) (VehicleHandle, error) {
	if !p.inVehicle {
		return -1, ErrNotInVehicle
	}
	h := p.vehicle
	v, err := w.Vehicle(h)
	if err != nil {
		return -1, fmt.Errorf("world: leave: %w", err)
	}

	v.Leave()
	p.pos = v.Position()
	p.vehicle, p.inVehicle = -1, false
	return h, nil
}

// Interact enters the nearest vehicle when on foot and leaves when driving.
// It reports whether the player is in a vehicle afterwards.
func (p *Player) Interact(w *World) (bool, error) {
	if p.inVehicle {
		_, err := p.Leave(w)
		return p.inVehicle, err
	}
	_, err := p.EnterNearest(w)
	return p.inVehicle, err
}

// AimDirection picks the direction to fire in: the explicit aim when given,
// otherwise the vehicle heading while driving, otherwise the facing.
func (p *Player) AimDirection(w *World, aim geom.Vec2, hasAim bool) geom.Vec2 {
	if hasAim && aim != (geom.Vec2{}) {
		return aim.Normalize()
	}
	if p.inVehicle {
		if v, err := w.Vehicle(p.vehicle); err == nil {
			return v.Orientation()
		}
	}
	return p.facing.Vector()
}
