package collide

import "github.com/vovakirdan/autotheft/internal/geom"

// Rect is an axis-aligned rectangle in world space.
type Rect struct {
	X, Y float64 // Top-left corner
	W, H float64 // Width and height
}

// NewRect creates a rectangle. Negative sizes are flipped so the corner is
// always top-left and the boundary winding stays clockwise.
func NewRect(x, y, w, h float64) Rect {
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	return Rect{X: x, Y: y, W: w, H: h}
}

// Corners returns top-left, top-right, bottom-right and bottom-left.
func (r Rect) Corners() [4]geom.Vec2 {
	return [4]geom.Vec2{
		geom.V(r.X, r.Y),
		geom.V(r.X+r.W, r.Y),
		geom.V(r.X+r.W, r.Y+r.H),
		geom.V(r.X, r.Y+r.H),
	}
}

// Shape returns the four edges wound clockwise on screen starting at the
// top-left corner, so every edge normal points outward.
func (r Rect) Shape() []geom.LineSegment {
	c := r.Corners()
	return []geom.LineSegment{
		geom.Seg(c[0], c[1]),
		geom.Seg(c[1], c[2]),
		geom.Seg(c[2], c[3]),
		geom.Seg(c[3], c[0]),
	}
}

// Contains reports whether p lies inside or on the rectangle.
func (r Rect) Contains(p geom.Vec2) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Center returns the rectangle center.
func (r Rect) Center() geom.Vec2 {
	return geom.V(r.X+r.W/2, r.Y+r.H/2)
}

// Polygon is a set of local-space segments owned by an object at Position.
// Segments are rotated by Angle and then translated by Position at query
// time. Normals are one of the two perpendiculars of each segment: they point
// outward only if the caller winds the boundary clockwise on screen.
type Polygon struct {
	Position geom.Vec2
	Angle    float64 // Radians, applied before translation
	Segments []geom.LineSegment
}

// Shape returns the polygon's segments in world space.
func (p Polygon) Shape() []geom.LineSegment {
	out := make([]geom.LineSegment, len(p.Segments))
	for i, s := range p.Segments {
		if p.Angle != 0 {
			s = s.Rotate(p.Angle)
		}
		out[i] = s.Translate(p.Position)
	}
	return out
}

// Outline builds segments joining consecutive points. When closed is true
// a final segment joins the last point back to the first.
func Outline(closed bool, points ...geom.Vec2) []geom.LineSegment {
	if len(points) < 2 {
		return nil
	}
	segs := make([]geom.LineSegment, 0, len(points))
	for i := 0; i+1 < len(points); i++ {
		segs = append(segs, geom.Seg(points[i], points[i+1]))
	}
	if closed && len(points) > 2 {
		segs = append(segs, geom.Seg(points[len(points)-1], points[0]))
	}
	return segs
}

// CenteredBox returns the clockwise outline of a w x h box centered on the
// local origin.
func CenteredBox(w, h float64) []geom.LineSegment {
	hw, hh := w/2, h/2
	return Outline(true,
		geom.V(-hw, -hh),
		geom.V(hw, -hh),
		geom.V(hw, hh),
		geom.V(-hw, hh),
	)
}
