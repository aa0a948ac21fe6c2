package tilemap

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/vovakirdan/autotheft/internal/collide"
	"github.com/vovakirdan/autotheft/internal/geom"
)

// Kind is the terrain of a tile.
type Kind uint8

const (
	KindGrass Kind = iota
	KindRoad
	KindBuilding
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindRoad:
		return "road"
	case KindBuilding:
		return "building"
	default:
		return "grass"
	}
}

// Variant records which neighbours a road tile connects to.
type Variant struct {
	North, East, South, West bool
}

// Variant indices, in tile sheet order.
const (
	VariantVertical = iota
	VariantHorizontal
	VariantCornerSE
	VariantCornerSW
	VariantCornerNE
	VariantCornerNW
	VariantCrossing
	VariantTeeW
	VariantTeeE
	VariantTeeS
	VariantTeeN
	VariantEmpty
)

// Index maps the connection set onto a tile sheet index. Dead ends have no
// sheet entry and return -1.
func (v Variant) Index() int {
	switch v {
	case Variant{North: true, South: true}:
		return VariantVertical
	case Variant{East: true, West: true}:
		return VariantHorizontal
	case Variant{East: true, South: true}:
		return VariantCornerSE
	case Variant{South: true, West: true}:
		return VariantCornerSW
	case Variant{North: true, East: true}:
		return VariantCornerNE
	case Variant{North: true, West: true}:
		return VariantCornerNW
	case Variant{North: true, East: true, South: true, West: true}:
		return VariantCrossing
	case Variant{North: true, South: true, West: true}:
		return VariantTeeW
	case Variant{North: true, East: true, South: true}:
		return VariantTeeE
	case Variant{East: true, South: true, West: true}:
		return VariantTeeS
	case Variant{North: true, East: true, West: true}:
		return VariantTeeN
	case Variant{}:
		return VariantEmpty
	default:
		return -1
	}
}

// Tile is one grid cell.
type Tile struct {
	Kind Kind
	Road Variant // Only meaningful for KindRoad
}

// Options controls map generation.
type Options struct {
	Width, Height  int     // In tiles
	TileSize       float64 // World units per tile edge
	RoadSpacing    int     // A road runs along every RoadSpacing-th row and column
	BuildingChance int     // Percent of off-road tiles that become buildings
	Seed           int64
}

// DefaultOptions returns a small town.
func DefaultOptions() Options {
	return Options{
		Width:          48,
		Height:         48,
		TileSize:       4,
		RoadSpacing:    6,
		BuildingChance: 35,
	}
}

// Map is a fixed-size tile grid. Tile (0, 0) covers world [0, TileSize)².
type Map struct {
	width, height int
	tileSize      float64
	tiles         []Tile
	buildings     []collide.Rect
}

// Generate builds a grid of roads with grass and buildings in between.
// The layout depends only on the options.
func Generate(o Options) *Map {
	if o.Width < 1 {
		o.Width = 1
	}
	if o.Height < 1 {
		o.Height = 1
	}
	if o.TileSize <= 0 {
		o.TileSize = 1
	}
	if o.RoadSpacing < 1 {
		o.RoadSpacing = 1
	}

	m := &Map{
		width:    o.Width,
		height:   o.Height,
		tileSize: o.TileSize,
		tiles:    make([]Tile, o.Width*o.Height),
	}

	isRoad := func(x, y int) bool {
		if x < 0 || y < 0 || x >= o.Width || y >= o.Height {
			return false
		}
		return x%o.RoadSpacing == 0 || y%o.RoadSpacing == 0
	}

	for y := 0; y < o.Height; y++ {
		for x := 0; x < o.Width; x++ {
			t := &m.tiles[y*o.Width+x]
			if isRoad(x, y) {
				t.Kind = KindRoad
				t.Road = Variant{
					North: isRoad(x, y-1),
					East:  isRoad(x+1, y),
					South: isRoad(x, y+1),
					West:  isRoad(x-1, y),
				}
				continue
			}
			if int(decoration(o.Seed, x, y)%100) < o.BuildingChance {
				t.Kind = KindBuilding
				m.buildings = append(m.buildings, m.TileRect(Cell{x, y}))
			}
		}
	}

	return m
}

// decoration hashes a tile coordinate with the map seed.
func decoration(seed int64, x, y int) uint64 {
	var buf [24]byte
	binary.LittleEndian.PutUint64(buf[0:], uint64(seed))
	binary.LittleEndian.PutUint64(buf[8:], uint64(int64(x)))
	binary.LittleEndian.PutUint64(buf[16:], uint64(int64(y)))
	return xxhash.Sum64(buf[:])
}

// Width returns the map width in tiles.
func (m *Map) Width() int { return m.width }

// Height returns the map height in tiles.
func (m *Map) Height() int { return m.height }

// TileSize returns the world size of one tile edge.
func (m *Map) TileSize() float64 { return m.tileSize }

// Bounds returns the world-space extent of the map.
func (m *Map) Bounds() collide.Rect {
	return collide.NewRect(0, 0, float64(m.width)*m.tileSize, float64(m.height)*m.tileSize)
}

// InBounds reports whether c is a tile of the map.
func (m *Map) InBounds(c Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < m.width && c.Y < m.height
}

// At returns the tile at c.
func (m *Map) At(c Cell) (Tile, bool) {
	if !m.InBounds(c) {
		return Tile{}, false
	}
	return m.tiles[c.Y*m.width+c.X], true
}

// TileIndex converts a world position to the tile containing it.
// Positions outside the map give cells outside it, possibly negative.
func (m *Map) TileIndex(pos geom.Vec2) Cell {
	return Cell{
		X: int(math.Floor(pos.X / m.tileSize)),
		Y: int(math.Floor(pos.Y / m.tileSize)),
	}
}

// TileOrigin returns the world position of the tile's top-left corner.
func (m *Map) TileOrigin(c Cell) geom.Vec2 {
	return geom.V(float64(c.X)*m.tileSize, float64(c.Y)*m.tileSize)
}

// TileCenter returns the world position of the tile's center.
func (m *Map) TileCenter(c Cell) geom.Vec2 {
	return m.TileOrigin(c).Add(geom.V(m.tileSize/2, m.tileSize/2))
}

// TileRect returns the world rectangle covered by a tile.
func (m *Map) TileRect(c Cell) collide.Rect {
	o := m.TileOrigin(c)
	return collide.NewRect(o.X, o.Y, m.tileSize, m.tileSize)
}

// Buildings returns the rectangles of all building tiles in row-major order.
func (m *Map) Buildings() []collide.Rect {
	return m.buildings
}

// RoadCells returns every road tile in row-major order.
func (m *Map) RoadCells() []Cell {
	return m.Cells(KindRoad)
}

// Cells returns every tile of the given kind in row-major order.
func (m *Map) Cells(kind Kind) []Cell {
	var out []Cell
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if m.tiles[y*m.width+x].Kind == kind {
				out = append(out, Cell{x, y})
			}
		}
	}
	return out
}

// VisibleCells returns the center cell followed by those of the first
// radius² spiral cells around it that lie inside the map.
//
// The spiral runs in a frame shifted by (radius, radius) so that a center
// near the top or left edge never walks it into negative coordinates.
func (m *Map) VisibleCells(center Cell, radius int) []Cell {
	var out []Cell
	if m.InBounds(center) {
		out = append(out, center)
	}
	if center.X < 0 || center.Y < 0 {
		return out
	}

	shift := Cell{radius, radius}
	back := Cell{-radius, -radius}
	it := NewSpiral(center.Add(shift))
	for _, c := range it.Take(radius * radius) {
		if c = c.Add(back); m.InBounds(c) {
			out = append(out, c)
		}
	}
	return out
}
