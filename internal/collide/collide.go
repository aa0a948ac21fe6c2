// Package collide implements ray queries against polygonal boundaries.
// Anything that can produce its boundary as world-space line segments is a
// Collidable and gets the nearest-hit query for free.
package collide

import "github.com/vovakirdan/autotheft/internal/geom"

// Collidable is anything exposing a world-space polygonal boundary.
type Collidable interface {
	// Shape returns the boundary segments in world space.
	// No closure is implied: an open polyline stays open.
	Shape() []geom.LineSegment
}

// RayHit is the nearest intersection of a ray with one shape.
type RayHit struct {
	T      float64   // Ray parameter, in units of the ray direction
	Normal geom.Vec2 // Normal of the struck segment
}

// Ray is an origin and a direction. The direction need not be unit length;
// T values are expressed in multiples of it.
type Ray struct {
	Origin    geom.Vec2
	Direction geom.Vec2
}

// NewRay creates a ray with a normalized direction, so T equals distance.
func NewRay(origin, direction geom.Vec2) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) geom.Vec2 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Cast returns the nearest hit of the ray against c using the default
// parallel epsilon.
func Cast(c Collidable, origin, dir geom.Vec2) (RayHit, bool) {
	return CastEps(c, origin, dir, geom.DefaultParallelEpsilon)
}

// CastEps tests every segment of c's shape and keeps the smallest t.
// Ties keep the segment seen first.
func CastEps(c Collidable, origin, dir geom.Vec2, eps float64) (RayHit, bool) {
	return nearest(c.Shape(), origin, dir, eps)
}

// CastRay is Cast with a Ray value.
func CastRay(c Collidable, r Ray) (RayHit, bool) {
	return Cast(c, r.Origin, r.Direction)
}

func nearest(segments []geom.LineSegment, origin, dir geom.Vec2, eps float64) (RayHit, bool) {
	var best RayHit
	found := false
	for _, s := range segments {
		t, n, ok := s.IntersectRayEps(origin, dir, eps)
		if !ok {
			continue
		}
		if !found || t < best.T {
			best = RayHit{T: t, Normal: n}
			found = true
		}
	}
	return best, found
}
