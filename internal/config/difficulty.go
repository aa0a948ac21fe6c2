package config

import "math"

// Progress is what difficulty can scale with.
type Progress struct {
	Score int
	Ticks int
	Wave  int // 1-based, the wave about to spawn
}

// DifficultyManager turns round progress into a level and derives the
// toughness of each new wave from it.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the difficulty level in [initial, 1].
func (d *DifficultyManager) Level(p Progress) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	var done float64
	switch d.cfg.Progression.Type {
	case "score":
		done = float64(p.Score)
	case "time":
		done = float64(p.Ticks)
	case "wave":
		// The first wave always starts at the initial level
		done = float64(max(0, p.Wave-1))
	default:
		return d.initialLevel
	}

	maxAt := math.Max(1, float64(d.cfg.Progression.MaxAt))
	progress := clampF(done/maxAt, 0.0, 1.0)

	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// TargetHitPoints returns the hit points of a newly spawned target.
func (d *DifficultyManager) TargetHitPoints(base int, p Progress) int {
	return scaled(base, d.cfg.Scaling.HitPointBonus, d.Level(p))
}

// WaveSize returns how many targets the next wave spawns.
func (d *DifficultyManager) WaveSize(base int, p Progress) int {
	return scaled(base, d.cfg.Scaling.TargetBonus, d.Level(p))
}

// scaled adds the level's share of bonus to base, never going below 1.
func scaled(base, bonus int, level float64) int {
	return max(1, base+int(math.Round(level*float64(bonus))))
}

func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
