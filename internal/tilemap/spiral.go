// Package tilemap holds the tile grid the world is drawn on and the spiral
// cursor used to enumerate cells around a viewer.
package tilemap

// Cell is an integer grid coordinate.
type Cell struct {
	X, Y int
}

// Add returns c offset by o.
func (c Cell) Add(o Cell) Cell {
	return Cell{c.X + o.X, c.Y + o.Y}
}

var (
	dirRight = Cell{1, 0}
	dirDown  = Cell{0, 1}
	dirLeft  = Cell{-1, 0}
	dirUp    = Cell{0, -1}
)

// SpiralIterator walks outward from a center cell in square rings:
// right 1, down 1, left 2, up 2, right 3, down 3, ...
// The run length grows by one after every second turn.
//
// The sequence ends the first time a coordinate would have a negative axis
// and stays ended. Callers enumerating cells near the top or left edge of a
// grid therefore see a truncated prefix.
type SpiralIterator struct {
	pos            Cell
	dir            Cell
	stepsRemaining int
	layer          int
	stepsInLayer   int
	done           bool
}

// NewSpiral creates an iterator centered on start. The center itself is not
// yielded.
func NewSpiral(start Cell) *SpiralIterator {
	return &SpiralIterator{
		pos:            start,
		dir:            dirRight,
		stepsRemaining: 1,
		layer:          1,
	}
}

func (s *SpiralIterator) rotate() {
	switch s.dir {
	case dirRight:
		s.dir = dirDown
	case dirDown:
		s.dir = dirLeft
	case dirLeft:
		s.dir = dirUp
	default:
		s.dir = dirRight
	}
}

// Next returns the next cell in the spiral, or false once the sequence has
// ended.
func (s *SpiralIterator) Next() (Cell, bool) {
	if s.done {
		return Cell{}, false
	}

	if s.stepsRemaining == 0 {
		s.rotate()
		s.stepsInLayer++
		if s.stepsInLayer%2 == 0 {
			s.layer++
		}
		s.stepsRemaining = s.layer
	}

	next := s.pos.Add(s.dir)
	if next.X < 0 || next.Y < 0 {
		s.done = true
		return Cell{}, false
	}

	s.pos = next
	s.stepsRemaining--
	return next, true
}

// Done reports whether the sequence has ended.
func (s *SpiralIterator) Done() bool { return s.done }

// Take returns up to n further cells.
func (s *SpiralIterator) Take(n int) []Cell {
	out := make([]Cell, 0, max(n, 0))
	for len(out) < n {
		c, ok := s.Next()
		if !ok {
			break
		}
		out = append(out, c)
	}
	return out
}
