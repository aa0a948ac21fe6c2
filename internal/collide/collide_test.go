package collide

import (
	"math"
	"testing"

	"github.com/vovakirdan/autotheft/internal/geom"
)

const tolerance = 1e-9

func TestRectShape(t *testing.T) {
	r := NewRect(0, 0, 10, 10)
	shape := r.Shape()

	if len(shape) != 4 {
		t.Fatalf("Shape() returned %d segments, expected 4", len(shape))
	}

	expected := []geom.LineSegment{
		geom.Seg(geom.V(0, 0), geom.V(10, 0)),
		geom.Seg(geom.V(10, 0), geom.V(10, 10)),
		geom.Seg(geom.V(10, 10), geom.V(0, 10)),
		geom.Seg(geom.V(0, 10), geom.V(0, 0)),
	}
	for i, s := range shape {
		if s != expected[i] {
			t.Errorf("segment %d = %v, expected %v", i, s, expected[i])
		}
	}

	// Consecutive segments chain end to start
	for i := range shape {
		next := shape[(i+1)%len(shape)]
		if shape[i].End != next.Start {
			t.Errorf("segment %d end %v does not meet segment %d start %v", i, shape[i].End, (i+1)%4, next.Start)
		}
	}
}

func TestRectNormalsPointOutward(t *testing.T) {
	r := NewRect(-3, 4, 6, 2)
	center := r.Center()

	for i, s := range r.Shape() {
		mid := s.Start.Add(s.End).Scale(0.5)
		outward := mid.Sub(center)
		if s.Normal().Dot(outward) <= 0 {
			t.Errorf("segment %d normal %v points inward", i, s.Normal())
		}
	}
}

func TestNewRectNegativeSize(t *testing.T) {
	r := NewRect(10, 10, -4, -6)
	if r.X != 6 || r.Y != 4 || r.W != 4 || r.H != 6 {
		t.Errorf("NewRect(10, 10, -4, -6) = %+v, expected {6 4 4 6}", r)
	}
}

func TestCastRectLeftEdge(t *testing.T) {
	r := NewRect(5, -5, 10, 10)

	hit, ok := Cast(r, geom.V(0, 0), geom.V(1, 0))
	if !ok {
		t.Fatal("expected hit on rectangle")
	}
	if math.Abs(hit.T-5) > tolerance {
		t.Errorf("hit t = %f, expected 5", hit.T)
	}
	// Normal is perpendicular to the left edge
	leftEdge := geom.V(0, 1)
	if math.Abs(hit.Normal.Dot(leftEdge)) > tolerance {
		t.Errorf("normal %v not perpendicular to left edge", hit.Normal)
	}
	if !hit.Normal.ApproxEqual(geom.V(-1, 0), tolerance) {
		t.Errorf("normal = %v, expected (-1, 0)", hit.Normal)
	}
}

func TestCastMiss(t *testing.T) {
	r := NewRect(5, -5, 10, 10)

	tests := []struct {
		name   string
		origin geom.Vec2
		dir    geom.Vec2
	}{
		{"pointing away", geom.V(0, 0), geom.V(-1, 0)},
		{"passing above", geom.V(0, -20), geom.V(1, 0)},
		{"passing below", geom.V(0, 20), geom.V(1, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if hit, ok := Cast(r, tc.origin, tc.dir); ok {
				t.Errorf("expected miss, got %+v", hit)
			}
		})
	}
}

func TestCastFromInside(t *testing.T) {
	r := NewRect(0, 0, 10, 10)

	hit, ok := Cast(r, geom.V(5, 5), geom.V(0, -1))
	if !ok {
		t.Fatal("expected hit from inside")
	}
	if math.Abs(hit.T-5) > tolerance {
		t.Errorf("hit t = %f, expected 5", hit.T)
	}
	// Exiting through the top edge: outward normal points up
	if !hit.Normal.ApproxEqual(geom.V(0, -1), tolerance) {
		t.Errorf("normal = %v, expected (0, -1)", hit.Normal)
	}
}

func TestCastTieKeepsFirstSegment(t *testing.T) {
	// Two segments crossing the ray at the same point with different normals
	p := Polygon{Segments: []geom.LineSegment{
		geom.Seg(geom.V(5, -5), geom.V(5, 5)),
		geom.Seg(geom.V(5, 5), geom.V(5, -5)),
	}}

	hit, ok := Cast(p, geom.V(0, 0), geom.V(1, 0))
	if !ok {
		t.Fatal("expected hit")
	}
	if !hit.Normal.ApproxEqual(geom.V(1, 0), tolerance) {
		t.Errorf("normal = %v, expected first segment's normal (1, 0)", hit.Normal)
	}
}

func TestPolygonTranslatedByPosition(t *testing.T) {
	local := Outline(true,
		geom.V(0, 0),
		geom.V(50, 0),
		geom.V(50, 50),
		geom.V(0, 50),
	)
	p := Polygon{Position: geom.V(100, 100), Segments: local}

	shape := p.Shape()
	if len(shape) != 4 {
		t.Fatalf("Shape() returned %d segments, expected 4", len(shape))
	}
	if shape[0].Start != geom.V(100, 100) || shape[0].End != geom.V(150, 100) {
		t.Errorf("first segment = %v, expected (100,100)-(150,100)", shape[0])
	}

	// Local segments are untouched
	if local[0].Start != geom.V(0, 0) {
		t.Error("Shape() must not mutate local segments")
	}

	// The query follows the owner's position
	hit, ok := Cast(p, geom.V(0, 125), geom.V(1, 0))
	if !ok {
		t.Fatal("expected hit on translated polygon")
	}
	if math.Abs(hit.T-100) > tolerance {
		t.Errorf("hit t = %f, expected 100", hit.T)
	}

	p.Position = geom.V(200, 100)
	hit, ok = Cast(p, geom.V(0, 125), geom.V(1, 0))
	if !ok || math.Abs(hit.T-200) > tolerance {
		t.Errorf("after move: hit = %+v ok=%v, expected t=200", hit, ok)
	}
}

func TestPolygonOpenOutline(t *testing.T) {
	// An open "U": the ray enters through the missing side
	p := Polygon{Segments: Outline(false,
		geom.V(0, 0),
		geom.V(0, 10),
		geom.V(10, 10),
		geom.V(10, 0),
	)}

	if len(p.Segments) != 3 {
		t.Fatalf("open outline has %d segments, expected 3", len(p.Segments))
	}

	hit, ok := Cast(p, geom.V(5, -10), geom.V(0, 1))
	if !ok {
		t.Fatal("expected hit on the bottom of the U")
	}
	if math.Abs(hit.T-20) > tolerance {
		t.Errorf("hit t = %f, expected 20", hit.T)
	}
}

func TestPolygonRotated(t *testing.T) {
	p := Polygon{
		Position: geom.V(10, 0),
		Angle:    math.Pi / 2,
		Segments: CenteredBox(4, 2), // becomes 2 wide, 4 tall after rotation
	}

	hit, ok := Cast(p, geom.V(0, 0), geom.V(1, 0))
	if !ok {
		t.Fatal("expected hit on rotated box")
	}
	if math.Abs(hit.T-9) > 1e-9 {
		t.Errorf("hit t = %f, expected 9", hit.T)
	}
	if !hit.Normal.ApproxEqual(geom.V(-1, 0), 1e-9) {
		t.Errorf("normal = %v, expected (-1, 0)", hit.Normal)
	}
}

func TestNewRayNormalizes(t *testing.T) {
	r := NewRay(geom.V(0, 0), geom.V(3, 4))
	if math.Abs(r.Direction.Length()-1) > tolerance {
		t.Errorf("direction length = %f, expected 1", r.Direction.Length())
	}

	hit, ok := CastRay(NewRect(5, -5, 10, 10), NewRay(geom.V(0, 0), geom.V(10, 0)))
	if !ok || math.Abs(hit.T-5) > tolerance {
		t.Errorf("CastRay() = %+v ok=%v, expected t=5 (distance)", hit, ok)
	}
	if p := r.At(5); !p.ApproxEqual(geom.V(3, 4), tolerance) {
		t.Errorf("At(5) = %v, expected (3, 4)", p)
	}
}
