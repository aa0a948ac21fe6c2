package world

import (
	"fmt"

	"github.com/vovakirdan/autotheft/internal/collide"
	"github.com/vovakirdan/autotheft/internal/geom"
)

// ObjectKind classifies a collidable world object.
type ObjectKind int

const (
	KindVehicle ObjectKind = iota
	KindTarget
	KindBuilding
)

// String returns a human-readable name for the kind.
func (k ObjectKind) String() string {
	switch k {
	case KindVehicle:
		return "vehicle"
	case KindTarget:
		return "target"
	case KindBuilding:
		return "building"
	default:
		return "unknown"
	}
}

// ObjectID identifies a world object by kind and index within that kind.
// For vehicles the index is the VehicleHandle.
type ObjectID struct {
	Kind  ObjectKind
	Index int
}

func (id ObjectID) String() string {
	return fmt.Sprintf("%s#%d", id.Kind, id.Index)
}

// Object pairs a collidable with its identity.
type Object struct {
	ID   ObjectID
	Body collide.Collidable
}

// Hit is the result of a hit-scan query.
type Hit struct {
	Object ObjectID
	T      float64   // Distance along the normalized ray
	Point  geom.Vec2 // Impact point in world space
	Normal geom.Vec2
}

// HitScan casts a ray against every object and returns the globally nearest
// hit. The direction is normalized first so T is a world distance. A zero
// direction never hits.
func HitScan(objects []Object, origin, dir geom.Vec2, eps float64) (Hit, bool) {
	ray := collide.NewRay(origin, dir)
	if ray.Direction == (geom.Vec2{}) {
		return Hit{}, false
	}

	var best Hit
	found := false
	for _, obj := range objects {
		h, ok := collide.CastEps(obj.Body, ray.Origin, ray.Direction, eps)
		if !ok {
			continue
		}
		if !found || h.T < best.T {
			best = Hit{Object: obj.ID, T: h.T, Normal: h.Normal}
			found = true
		}
	}
	if found {
		best.Point = ray.At(best.T)
	}
	return best, found
}

// Objects returns the current collidables: vehicles, live targets, then
// buildings.
func (w *World) Objects() []Object {
	objs := make([]Object, 0, len(w.vehicles)+len(w.targets)+len(w.buildings))
	for i, v := range w.vehicles {
		objs = append(objs, Object{ID: ObjectID{KindVehicle, i}, Body: v})
	}
	for i, t := range w.targets {
		if t.Alive() {
			objs = append(objs, Object{ID: ObjectID{KindTarget, i}, Body: t})
		}
	}
	for i, b := range w.buildings {
		objs = append(objs, Object{ID: ObjectID{KindBuilding, i}, Body: b})
	}
	return objs
}

// FindNearestCollidable returns the first object struck by a ray from origin
// along dir. No object is excluded.
func (w *World) FindNearestCollidable(origin, dir geom.Vec2) (Hit, bool) {
	return HitScan(w.Objects(), origin, dir, w.parallelEps)
}

// FindNearestCollidableExcept is FindNearestCollidable with the objects for
// which skip returns true left out.
func (w *World) FindNearestCollidableExcept(origin, dir geom.Vec2, skip func(ObjectID) bool) (Hit, bool) {
	all := w.Objects()
	kept := all[:0]
	for _, o := range all {
		if !skip(o.ID) {
			kept = append(kept, o)
		}
	}
	return HitScan(kept, origin, dir, w.parallelEps)
}
