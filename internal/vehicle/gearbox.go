package vehicle

import (
	"errors"
	"fmt"
)

// ErrInvalidGear is returned when a shift targets a gear that does not exist.
var ErrInvalidGear = errors.New("vehicle: invalid gear")

// DefaultGearRatios is the standard six-gear ladder.
var DefaultGearRatios = []float64{8.0, 2.0, 1.4, 1.0, 0.8, 0.6}

// Gear is a single gearbox step.
type Gear struct {
	Ratio float64 // Multiplier applied to engine torque
}

// Gearbox is an ordered list of gears with a cursor on the active one.
// The cursor always addresses an existing gear.
type Gearbox struct {
	gears   []Gear
	current int
}

// NewGearbox creates a gearbox in gear 0 from the given ratios.
func NewGearbox(ratios ...float64) (*Gearbox, error) {
	if len(ratios) == 0 {
		return nil, fmt.Errorf("%w: gearbox needs at least one gear", ErrInvalidGear)
	}
	gears := make([]Gear, len(ratios))
	for i, r := range ratios {
		if r <= 0 {
			return nil, fmt.Errorf("%w: gear %d has non-positive ratio %g", ErrInvalidGear, i, r)
		}
		gears[i] = Gear{Ratio: r}
	}
	return &Gearbox{gears: gears}, nil
}

// SixStep returns a gearbox with DefaultGearRatios.
func SixStep() *Gearbox {
	gb, err := NewGearbox(DefaultGearRatios...)
	if err != nil {
		panic(err) // constant table
	}
	return gb
}

// Len returns the number of gears.
func (g *Gearbox) Len() int {
	return len(g.gears)
}

// CurrentGear returns the active gear index (0-based).
func (g *Gearbox) CurrentGear() int {
	return g.current
}

// Gear returns the active gear.
func (g *Gearbox) Gear() Gear {
	return g.gears[g.current]
}

// Ratio returns the active gear's ratio.
func (g *Gearbox) Ratio() float64 {
	return g.gears[g.current].Ratio
}

// Ratios returns a copy of all gear ratios in order.
func (g *Gearbox) Ratios() []float64 {
	out := make([]float64, len(g.gears))
	for i, gear := range g.gears {
		out[i] = gear.Ratio
	}
	return out
}

// ShiftTo selects gear n. Out-of-range targets fail with ErrInvalidGear and
// leave the gearbox unchanged.
func (g *Gearbox) ShiftTo(n int) error {
	if n < 0 || n >= len(g.gears) {
		return fmt.Errorf("%w: gear %d outside 0..%d", ErrInvalidGear, n, len(g.gears)-1)
	}
	g.current = n
	return nil
}

// ShiftUp selects the next higher gear. There is no wraparound.
func (g *Gearbox) ShiftUp() error {
	return g.ShiftTo(g.current + 1)
}

// ShiftDown selects the next lower gear. There is no wraparound.
func (g *Gearbox) ShiftDown() error {
	return g.ShiftTo(g.current - 1)
}
