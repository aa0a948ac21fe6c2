package geom

import "math"

// DefaultParallelEpsilon is the smallest |denominator| accepted by
// IntersectRay. Rays closer to parallel than this are treated as misses.
const DefaultParallelEpsilon = 1e-6

// LineSegment is a finite segment between two points.
type LineSegment struct {
	Start, End Vec2
}

// Seg creates a segment from start to end.
func Seg(start, end Vec2) LineSegment {
	return LineSegment{Start: start, End: end}
}

// Translate returns the segment moved by offset.
func (s LineSegment) Translate(offset Vec2) LineSegment {
	return LineSegment{Start: s.Start.Add(offset), End: s.End.Add(offset)}
}

// Rotate returns the segment rotated by angle radians around the origin.
func (s LineSegment) Rotate(angle float64) LineSegment {
	return LineSegment{Start: s.Start.Rotate(angle), End: s.End.Rotate(angle)}
}

// Vector returns End - Start.
func (s LineSegment) Vector() Vec2 {
	return s.End.Sub(s.Start)
}

// Length returns the segment length.
func (s LineSegment) Length() float64 {
	return s.Vector().Length()
}

// Normal returns the unit perpendicular (v.Y, -v.X) of the segment vector v.
// For a boundary wound clockwise on screen (y down) this points outward.
// No per-segment flip correction is applied.
func (s LineSegment) Normal() Vec2 {
	v := s.Vector()
	return Vec2{X: v.Y, Y: -v.X}.Normalize()
}

// IntersectRay tests the ray origin + t*dir against the segment using
// DefaultParallelEpsilon. See IntersectRayEps.
func (s LineSegment) IntersectRay(origin, dir Vec2) (t float64, normal Vec2, ok bool) {
	return s.IntersectRayEps(origin, dir, DefaultParallelEpsilon)
}

// IntersectRayEps returns the ray parameter t of the hit (in units of dir,
// not arc length) and the segment normal.
// A hit requires t >= 0 and the segment parameter u within [0, 1].
// Near-parallel rays (|denom| < eps) and zero-length segments never hit.
func (s LineSegment) IntersectRayEps(origin, dir Vec2, eps float64) (t float64, normal Vec2, ok bool) {
	v1 := origin.Sub(s.Start)
	v2 := s.End.Sub(s.Start)
	v3 := dir.Perp()

	denom := v2.Dot(v3)
	if math.Abs(denom) < eps {
		return 0, Vec2{}, false
	}

	t = v2.PerpDot(v1) / denom
	u := v1.Dot(v3) / denom

	if t < 0 || u < 0 || u > 1 {
		return 0, Vec2{}, false
	}
	if v2.X == 0 && v2.Y == 0 {
		return 0, Vec2{}, false
	}
	return t, Vec2{X: v2.Y, Y: -v2.X}.Normalize(), true
}
