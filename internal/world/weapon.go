package world

import "github.com/vovakirdan/autotheft/internal/geom"

// Weapon is a hit-scan gun with a fire cooldown and a maximum range.
type Weapon struct {
	Cooldown float64 // Seconds between shots
	Damage   int
	Range    float64

	wait  float64 // Seconds until the next shot is allowed
	shots int
	hits  int
}

// NewWeapon creates a ready weapon.
func NewWeapon(cooldown float64, damage int, rng float64) *Weapon {
	return &Weapon{Cooldown: cooldown, Damage: damage, Range: rng}
}

// Shot describes one trigger pull.
type Shot struct {
	Origin    geom.Vec2
	Direction geom.Vec2 // Unit length
	End       geom.Vec2 // Impact point, or the point at full range on a miss
	Hit       Hit
	Struck    bool
	Destroyed bool // A target lost its last hit points
}

// Update counts the cooldown down by dt seconds.
func (wp *Weapon) Update(dt float64) {
	wp.wait = max(0, wp.wait-dt)
}

// Ready reports whether the cooldown has elapsed.
func (wp *Weapon) Ready() bool { return wp.wait <= 0 }

// Shots returns the number of shots fired.
func (wp *Weapon) Shots() int { return wp.shots }

// Hits returns the number of shots that struck something within range.
func (wp *Weapon) Hits() int { return wp.hits }

// Reset makes the weapon ready and clears its counters.
func (wp *Weapon) Reset() {
	wp.wait, wp.shots, wp.hits = 0, 0, 0
}

// Fire shoots from the player's position along dir. The vehicle the player
// sits in is not a valid target. It returns false while cooling down or when
// dir is zero. Hits beyond Range count as misses.
func (wp *Weapon) Fire(w *World, p *Player, dir geom.Vec2) (Shot, bool) {
	if !wp.Ready() || dir == (geom.Vec2{}) {
		return Shot{}, false
	}
	wp.wait = wp.Cooldown
	wp.shots++

	own, driving := p.Vehicle()
	skip := func(id ObjectID) bool {
		return driving && id.Kind == KindVehicle && id.Index == int(own)
	}

	shot := Shot{Origin: p.Position(), Direction: dir.Normalize()}
	shot.End = shot.Origin.Add(shot.Direction.Scale(wp.Range))

	hit, ok := w.FindNearestCollidableExcept(shot.Origin, shot.Direction, skip)
	if !ok || hit.T > wp.Range {
		return shot, true
	}

	wp.hits++
	shot.Hit, shot.Struck, shot.End = hit, true, hit.Point
	shot.Destroyed = w.Damage(hit.Object, wp.Damage)
	return shot, true
}
