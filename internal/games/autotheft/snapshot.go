package autotheft

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Snapshot contains the simulation state that must match between two runs
// fed the same seed and inputs. Uses primitive types only for stable hashing.
type Snapshot struct {
	Tick      uint64
	Mode      int // 0=Timed, 1=FreeRoam
	State     string
	Score     int
	Wave      int
	Destroyed int
	Elapsed   float64

	PlayerX, PlayerY float64
	Driving          int // Vehicle handle, -1 on foot

	// Each vehicle is 8 floats: X, Y, OrientX, OrientY, Velocity, Throttle,
	// TurningAngle, Gear
	VehicleData []float64

	// Hit points per target, in spawn order
	TargetHP []int

	Shots, Hits int
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	vehicles := g.world.Vehicles()
	vehicleData := make([]float64, 0, len(vehicles)*8)
	for _, v := range vehicles {
		pos, o := v.Position(), v.Orientation()
		vehicleData = append(vehicleData,
			pos.X, pos.Y, o.X, o.Y,
			v.Velocity(), v.Throttle(), v.TurningAngle(),
			float64(v.Gearbox().CurrentGear()),
		)
	}

	targets := g.world.Targets()
	targetHP := make([]int, len(targets))
	for i, t := range targets {
		targetHP[i] = t.HitPoints
	}

	driving := -1
	if h, ok := g.player.Vehicle(); ok {
		driving = int(h)
	}

	pos := g.player.Position()
	return Snapshot{
		Tick:        uint64(g.tickCount), //#nosec G115 -- tick count is non-negative
		Mode:        int(g.mode),
		State:       g.state,
		Score:       g.score,
		Wave:        g.wave,
		Destroyed:   g.destroyed,
		Elapsed:     g.elapsed,
		PlayerX:     pos.X,
		PlayerY:     pos.Y,
		Driving:     driving,
		VehicleData: vehicleData,
		TargetHP:    targetHP,
		Shots:       g.weapon.Shots(),
		Hits:        g.weapon.Hits(),
	}
}

// Hash returns an xxhash digest of the snapshot for determinism checks.
// Floats are hashed by their exact bit patterns.
func (s Snapshot) Hash() uint64 {
	d := xxhash.New()
	var buf [8]byte

	putInt := func(v int64) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v)) //#nosec G115 -- bit reinterpretation for hashing
		_, _ = d.Write(buf[:])
	}
	putFloat := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = d.Write(buf[:])
	}

	putInt(int64(s.Tick)) //#nosec G115 -- bit reinterpretation for hashing
	putInt(int64(s.Mode))
	_, _ = d.WriteString(s.State)
	putInt(int64(s.Score))
	putInt(int64(s.Wave))
	putInt(int64(s.Destroyed))
	putFloat(s.Elapsed)
	putFloat(s.PlayerX)
	putFloat(s.PlayerY)
	putInt(int64(s.Driving))

	putInt(int64(len(s.VehicleData)))
	for _, f := range s.VehicleData {
		putFloat(f)
	}
	putInt(int64(len(s.TargetHP)))
	for _, hp := range s.TargetHP {
		putInt(int64(hp))
	}

	putInt(int64(s.Shots))
	putInt(int64(s.Hits))
	return d.Sum64()
}
