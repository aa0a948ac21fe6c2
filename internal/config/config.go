// Package config provides YAML-based game configuration loading and
// difficulty management for Auto Theft.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// AutoTheftConfig contains all configuration for the game.
type AutoTheftConfig struct {
	Vehicle    VehicleConfig    `yaml:"vehicle"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Collision  CollisionConfig  `yaml:"collision"`
	Player     PlayerConfig     `yaml:"player"`
	Weapon     WeaponConfig     `yaml:"weapon"`
	Map        MapConfig        `yaml:"map"`
	Round      RoundConfig      `yaml:"round"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// VehicleConfig defines the car constants.
type VehicleConfig struct {
	Mass          float64   `yaml:"mass"`           // kg
	EngineTorque  float64   `yaml:"engine_torque"`  // Nm
	ReverseTorque float64   `yaml:"reverse_torque"` // Nm
	BrakingTorque float64   `yaml:"braking_torque"` // Nm
	WheelDiameter float64   `yaml:"wheel_diameter"` // m
	GearRatios    []float64 `yaml:"gear_ratios"`
	SteerAngleDeg float64   `yaml:"steer_angle_deg"`
	SteerDamping  float64   `yaml:"steer_damping"`  // Fraction of the steer angle applied per tick
	PositionScale float64   `yaml:"position_scale"` // World units per m/s per tick
	Length        float64   `yaml:"length"`
	Width         float64   `yaml:"width"`
	Count         int       `yaml:"count"` // Vehicles parked on the map
}

// PhysicsConfig defines the air drag model.
type PhysicsConfig struct {
	AirDensity      float64 `yaml:"air_density"` // kg/m³
	DragCoefficient float64 `yaml:"drag_coefficient"`
	ReferenceArea   float64 `yaml:"reference_area"` // m²
}

// CollisionConfig defines ray casting tolerances.
type CollisionConfig struct {
	ParallelEpsilon float64 `yaml:"parallel_epsilon"`
}

// PlayerConfig defines on-foot parameters.
type PlayerConfig struct {
	Speed       float64 `yaml:"speed"`        // World units per second
	EnterRadius float64 `yaml:"enter_radius"` // Max distance to a vehicle to get in
}

// WeaponConfig defines the hit-scan gun.
type WeaponConfig struct {
	Cooldown float64 `yaml:"cooldown"` // Seconds between shots
	Damage   int     `yaml:"damage"`
	Range    float64 `yaml:"range"`
}

// MapConfig defines the generated town.
type MapConfig struct {
	Width          int     `yaml:"width"`  // Tiles
	Height         int     `yaml:"height"` // Tiles
	TileSize       float64 `yaml:"tile_size"`
	RoadSpacing    int     `yaml:"road_spacing"`
	BuildingChance int     `yaml:"building_chance"` // Percent
	DrawRadius     int     `yaml:"draw_radius"`     // Spiral cells drawn = radius²
}

// RoundConfig defines a timed round.
type RoundConfig struct {
	Duration        float64 `yaml:"duration"` // Seconds, 0 = no timer
	Targets         int     `yaml:"targets"`
	TargetHitPoints int     `yaml:"target_hit_points"`
	TargetSize      float64 `yaml:"target_size"`
	HitScore        int     `yaml:"hit_score"`
	DestroyScore    int     `yaml:"destroy_score"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	HitPointBonus int `yaml:"hit_point_bonus"` // Extra target hit points at max difficulty
	TargetBonus   int `yaml:"target_bonus"`    // Extra targets per wave at max difficulty
}

// Validate rejects values the simulation cannot run with.
func (c AutoTheftConfig) Validate() error {
	switch {
	case c.Vehicle.Mass <= 0:
		return fmt.Errorf("config: vehicle.mass must be positive: %w", ErrInvalidConfig)
	case c.Vehicle.WheelDiameter <= 0:
		return fmt.Errorf("config: vehicle.wheel_diameter must be positive: %w", ErrInvalidConfig)
	case len(c.Vehicle.GearRatios) == 0:
		return fmt.Errorf("config: vehicle.gear_ratios is empty: %w", ErrInvalidConfig)
	case c.Map.TileSize <= 0:
		return fmt.Errorf("config: map.tile_size must be positive: %w", ErrInvalidConfig)
	case c.Map.Width <= 0 || c.Map.Height <= 0:
		return fmt.Errorf("config: map size must be positive: %w", ErrInvalidConfig)
	case c.Round.Duration < 0:
		return fmt.Errorf("config: round.duration must not be negative: %w", ErrInvalidConfig)
	}
	for i, r := range c.Vehicle.GearRatios {
		if r <= 0 {
			return fmt.Errorf("config: vehicle.gear_ratios[%d] = %v: %w", i, r, ErrInvalidConfig)
		}
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (use easy, normal, hard or fixed): %w", s, ErrInvalidConfig)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
