package world

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/autotheft/internal/collide"
	"github.com/vovakirdan/autotheft/internal/core"
	"github.com/vovakirdan/autotheft/internal/geom"
	"github.com/vovakirdan/autotheft/internal/vehicle"
)

func newCar(pos geom.Vec2) *vehicle.Vehicle {
	return vehicle.New(pos, vehicle.DefaultParams(), nil)
}

func TestFindNearestAcrossObjects(t *testing.T) {
	w := New(0)
	w.AddBuilding(collide.NewRect(20, -5, 10, 10))
	w.AddBuilding(collide.NewRect(5, -5, 10, 10))

	tests := []struct {
		name string
		dir  geom.Vec2
	}{
		{"unit direction", geom.V(1, 0)},
		{"scaled direction", geom.V(3, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			hit, ok := w.FindNearestCollidable(geom.V(0, 0), tc.dir)
			if !ok {
				t.Fatal("expected a hit")
			}
			if hit.Object != (ObjectID{KindBuilding, 1}) {
				t.Errorf("hit %v, expected building#1", hit.Object)
			}
			if math.Abs(hit.T-5) > 1e-9 {
				t.Errorf("T = %f, expected 5", hit.T)
			}
			if !hit.Point.ApproxEqual(geom.V(5, 0), 1e-9) {
				t.Errorf("Point = %v, expected (5, 0)", hit.Point)
			}
			if !hit.Normal.ApproxEqual(geom.V(-1, 0), 1e-9) {
				t.Errorf("Normal = %v, expected (-1, 0)", hit.Normal)
			}
		})
	}
}

func TestFindNearestMisses(t *testing.T) {
	empty := New(0)
	if _, ok := empty.FindNearestCollidable(geom.V(0, 0), geom.V(1, 0)); ok {
		t.Error("empty world should not report a hit")
	}

	w := New(0)
	w.AddBuilding(collide.NewRect(5, -5, 10, 10))
	if _, ok := w.FindNearestCollidable(geom.V(0, 0), geom.V(-1, 0)); ok {
		t.Error("ray pointing away should miss")
	}
	if _, ok := w.FindNearestCollidable(geom.V(0, 0), geom.V(0, 0)); ok {
		t.Error("zero direction should miss")
	}
}

func TestHitScanTieKeepsFirstObject(t *testing.T) {
	objs := []Object{
		{ID: ObjectID{KindBuilding, 0}, Body: collide.NewRect(5, -5, 10, 10)},
		{ID: ObjectID{KindBuilding, 1}, Body: collide.NewRect(5, -5, 10, 10)},
	}

	hit, ok := HitScan(objs, geom.V(0, 0), geom.V(1, 0), geom.DefaultParallelEpsilon)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.Object.Index != 0 {
		t.Errorf("tie resolved to %v, expected the first object", hit.Object)
	}
}

func TestDestroyedTargetsAreNotCollidable(t *testing.T) {
	w := New(0)
	id := w.AddTarget(collide.NewRect(5, -1, 2, 2), 1)
	w.AddBuilding(collide.NewRect(20, -5, 10, 10))

	hit, _ := w.FindNearestCollidable(geom.V(0, 0), geom.V(1, 0))
	if hit.Object != (ObjectID{KindTarget, id}) {
		t.Fatalf("hit %v, expected target", hit.Object)
	}

	if !w.Damage(hit.Object, 5) {
		t.Fatal("Damage should report the target destroyed")
	}
	if w.Damage(hit.Object, 5) {
		t.Error("a destroyed target cannot be destroyed again")
	}
	if w.TargetsAlive() != 0 {
		t.Errorf("TargetsAlive() = %d, expected 0", w.TargetsAlive())
	}

	hit, _ = w.FindNearestCollidable(geom.V(0, 0), geom.V(1, 0))
	if hit.Object.Kind != KindBuilding {
		t.Errorf("hit %v, expected the building behind the destroyed target", hit.Object)
	}
}

func TestVehicleHandles(t *testing.T) {
	w := New(0)
	a := w.AddVehicle(newCar(geom.V(0, 0)))
	b := w.AddVehicle(newCar(geom.V(10, 0)))

	if a == b {
		t.Fatal("handles must be distinct")
	}
	vb, err := w.Vehicle(b)
	if err != nil {
		t.Fatalf("Vehicle(%d) failed: %v", b, err)
	}
	if vb.Position() != geom.V(10, 0) {
		t.Errorf("handle %d resolved to vehicle at %v", b, vb.Position())
	}

	for _, h := range []VehicleHandle{-1, 2, 99} {
		if _, err := w.Vehicle(h); !errors.Is(err, ErrUnknownVehicle) {
			t.Errorf("Vehicle(%d) error = %v, expected ErrUnknownVehicle", h, err)
		}
	}
}

func TestNearestVehicle(t *testing.T) {
	w := New(0)
	far := w.AddVehicle(newCar(geom.V(4, 0)))
	near := w.AddVehicle(newCar(geom.V(2, 0)))

	h, ok := w.NearestVehicle(geom.V(0, 0), 5)
	if !ok || h != near {
		t.Errorf("NearestVehicle = %d, %v; expected %d", h, ok, near)
	}

	v, _ := w.Vehicle(near)
	v.Enter()
	h, ok = w.NearestVehicle(geom.V(0, 0), 5)
	if !ok || h != far {
		t.Errorf("occupied vehicles should be skipped: got %d, expected %d", h, far)
	}

	if _, ok := w.NearestVehicle(geom.V(0, 0), 1); ok {
		t.Error("no vehicle within radius 1")
	}
}

func TestPlayerOnFoot(t *testing.T) {
	w := New(0)
	p := NewPlayer(geom.V(0, 0), 10, 3)

	if err := p.Control(w, core.North, 0.5); err != nil {
		t.Fatal(err)
	}
	if !p.Position().ApproxEqual(geom.V(0, -5), 1e-9) {
		t.Errorf("after North: %v, expected (0, -5)", p.Position())
	}

	start := p.Position()
	_ = p.Control(w, core.SouthEast, 0.5)
	if d := p.Position().Distance(start); math.Abs(d-5) > 1e-9 {
		t.Errorf("diagonal step length = %f, expected 5", d)
	}

	_ = p.Control(w, core.FacingNone, 0.5)
	if p.Facing() != core.SouthEast {
		t.Errorf("facing should persist without input, got %v", p.Facing())
	}
}

func TestEnterThenLeave(t *testing.T) {
	w := New(0)
	h := w.AddVehicle(newCar(geom.V(10, 10)))
	p := NewPlayer(geom.V(11, 10), 10, 3)

	inside, err := p.Interact(w)
	if err != nil || !inside {
		t.Fatalf("Interact() = %v, %v; expected to enter", inside, err)
	}
	got, ok := p.Vehicle()
	if !ok || got != h {
		t.Fatalf("Vehicle() = %d, %v; expected %d", got, ok, h)
	}
	v, _ := w.Vehicle(h)
	if !v.Entered() {
		t.Error("vehicle should be marked entered")
	}

	// Drive for a while
	for i := 0; i < 30; i++ {
		if err := p.Control(w, core.NorthEast, 1.0/60); err != nil {
			t.Fatal(err)
		}
		w.Update(1.0 / 60)
		p.Sync(w)
		if p.Position() != v.Position() {
			t.Fatalf("tick %d: player at %v, vehicle at %v", i, p.Position(), v.Position())
		}
	}
	if v.Position() == geom.V(10, 10) {
		t.Fatal("vehicle should have moved")
	}

	at := v.Position()
	inside, err = p.Interact(w)
	if err != nil || inside {
		t.Fatalf("Interact() = %v, %v; expected to leave", inside, err)
	}
	if p.Position() != at {
		t.Errorf("player at %v after leaving, expected vehicle position %v", p.Position(), at)
	}
	if v.Throttle() != 0 || v.TurningAngle() != 0 {
		t.Errorf("controls not reset: throttle=%v steer=%v", v.Throttle(), v.TurningAngle())
	}
	if v.Entered() {
		t.Error("vehicle still marked entered")
	}

	// The empty car coasts on; the player stays where they got out
	w.Update(1.0 / 60)
	p.Sync(w)
	if p.Position() != at {
		t.Errorf("player moved with the empty vehicle: %v, expected %v", p.Position(), at)
	}
	if v.Position() == at {
		t.Error("vehicle should coast after the driver leaves")
	}

	// On foot again: input moves the player, not the car
	_ = p.Control(w, core.West, 1)
	if p.Position() == at {
		t.Error("player should walk after leaving")
	}
	if v.Throttle() != 0 {
		t.Error("walking must not drive the vehicle")
	}
}

func TestEnterLeaveErrors(t *testing.T) {
	w := New(0)
	w.AddVehicle(newCar(geom.V(100, 100)))
	p := NewPlayer(geom.V(0, 0), 10, 3)

	if _, err := p.EnterNearest(w); !errors.Is(err, ErrNoVehicleNearby) {
		t.Errorf("EnterNearest far away error = %v, expected ErrNoVehicleNearby", err)
	}
	if _, err := p.Leave(w); !errors.Is(err, ErrNotInVehicle) {
		t.Errorf("Leave on foot error = %v, expected ErrNotInVehicle", err)
	}

	p.SetPosition(geom.V(100, 101))
	if _, err := p.EnterNearest(w); err != nil {
		t.Fatalf("EnterNearest failed: %v", err)
	}
	if _, err := p.EnterNearest(w); !errors.Is(err, ErrAlreadyInVehicle) {
		t.Errorf("second EnterNearest error = %v, expected ErrAlreadyInVehicle", err)
	}
}

func TestAimDirection(t *testing.T) {
	w := New(0)
	h := w.AddVehicle(newCar(geom.V(0, 0)))
	p := NewPlayer(geom.V(0, 1), 10, 3)

	if d := p.AimDirection(w, geom.V(0, 3), true); d != geom.V(0, 1) {
		t.Errorf("explicit aim = %v, expected normalized (0, 1)", d)
	}
	if d := p.AimDirection(w, geom.Vec2{}, false); d != core.South.Vector() {
		t.Errorf("on-foot aim = %v, expected facing", d)
	}

	if _, err := p.EnterNearest(w); err != nil {
		t.Fatal(err)
	}
	v, _ := w.Vehicle(h)
	if d := p.AimDirection(w, geom.Vec2{}, false); d != v.Orientation() {
		t.Errorf("driving aim = %v, expected vehicle heading", d)
	}
}

func TestWeaponExcludesOwnVehicle(t *testing.T) {
	w := New(0)
	w.AddVehicle(newCar(geom.V(0, 0)))
	target := w.AddTarget(collide.NewRect(10, -1, 2, 2), 3)
	p := NewPlayer(geom.V(0, 0), 10, 3)
	if _, err := p.EnterNearest(w); err != nil {
		t.Fatal(err)
	}

	// The plain query does not exclude anything: the ray starts inside the car
	hit, ok := w.FindNearestCollidable(p.Position(), geom.V(1, 0))
	if !ok || hit.Object.Kind != KindVehicle {
		t.Fatalf("unfiltered query hit %v, expected own vehicle", hit.Object)
	}

	wp := NewWeapon(0.5, 1, 50)
	shot, fired := wp.Fire(w, p, geom.V(1, 0))
	if !fired {
		t.Fatal("weapon should fire when ready")
	}
	if !shot.Struck || shot.Hit.Object != (ObjectID{KindTarget, target}) {
		t.Errorf("shot hit %v, expected target#%d", shot.Hit.Object, target)
	}
	if math.Abs(shot.Hit.T-10) > 1e-9 {
		t.Errorf("shot distance = %f, expected 10", shot.Hit.T)
	}
	if w.Targets()[target].HitPoints != 2 {
		t.Errorf("target HP = %d, expected 2", w.Targets()[target].HitPoints)
	}
}

func TestWeaponCooldown(t *testing.T) {
	w := New(0)
	p := NewPlayer(geom.V(0, 0), 10, 3)
	wp := NewWeapon(0.5, 1, 50)

	if _, ok := wp.Fire(w, p, geom.V(1, 0)); !ok {
		t.Fatal("first shot should fire")
	}
	if _, ok := wp.Fire(w, p, geom.V(1, 0)); ok {
		t.Error("second shot should be blocked by cooldown")
	}

	wp.Update(0.25)
	if wp.Ready() {
		t.Error("weapon should still be cooling down")
	}
	wp.Update(0.25)
	if !wp.Ready() {
		t.Error("weapon should be ready after the cooldown")
	}
	if _, ok := wp.Fire(w, p, geom.Vec2{}); ok {
		t.Error("zero direction should not fire")
	}
	if wp.Shots() != 1 {
		t.Errorf("Shots() = %d, expected 1", wp.Shots())
	}
}

func TestWeaponRangeAndDestroy(t *testing.T) {
	w := New(0)
	w.AddTarget(collide.NewRect(100, -1, 2, 2), 1)
	near := w.AddTarget(collide.NewRect(10, -1, 2, 2), 2)
	p := NewPlayer(geom.V(0, 0), 10, 3)
	wp := NewWeapon(0, 1, 50)

	shot, _ := wp.Fire(w, p, geom.V(0, -1))
	if shot.Struck {
		t.Error("shot into empty space should miss")
	}
	if !shot.End.ApproxEqual(geom.V(0, -50), 1e-9) {
		t.Errorf("miss end = %v, expected full range (0, -50)", shot.End)
	}

	shot, _ = wp.Fire(w, p, geom.V(1, 0))
	if !shot.Struck || shot.Destroyed {
		t.Fatalf("first hit: struck=%v destroyed=%v", shot.Struck, shot.Destroyed)
	}
	shot, _ = wp.Fire(w, p, geom.V(1, 0))
	if !shot.Destroyed || shot.Hit.Object.Index != near {
		t.Fatalf("second hit should destroy target#%d, got %+v", near, shot)
	}

	// Only the far target remains, and it is out of range
	shot, _ = wp.Fire(w, p, geom.V(1, 0))
	if shot.Struck {
		t.Errorf("target beyond range should not count, hit %v at %f", shot.Hit.Object, shot.Hit.T)
	}
	if wp.Shots() != 4 || wp.Hits() != 2 {
		t.Errorf("Shots/Hits = %d/%d, expected 4/2", wp.Shots(), wp.Hits())
	}
}
