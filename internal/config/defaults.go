package config

import (
	_ "embed"
)

//go:embed defaults/autotheft.yaml
var defaultAutoTheftYAML []byte

// DefaultAutoTheftConfig returns the default game configuration.
func DefaultAutoTheftConfig() AutoTheftConfig {
	return AutoTheftConfig{
		Vehicle: VehicleConfig{
			Mass:          1300,
			EngineTorque:  650,
			ReverseTorque: 400,
			BrakingTorque: 10000,
			WheelDiameter: 0.4,
			GearRatios:    []float64{8.0, 2.0, 1.4, 1.0, 0.8, 0.6},
			SteerAngleDeg: 45,
			SteerDamping:  0.03,
			PositionScale: 0.02,
			Length:        4.5,
			Width:         2,
			Count:         6,
		},
		Physics: PhysicsConfig{
			AirDensity:      1.293,
			DragCoefficient: 0.4,
			ReferenceArea:   1.3,
		},
		Collision: CollisionConfig{
			ParallelEpsilon: 1e-6,
		},
		Player: PlayerConfig{
			Speed:       12,
			EnterRadius: 4,
		},
		Weapon: WeaponConfig{
			Cooldown: 0.25,
			Damage:   1,
			Range:    40,
		},
		Map: MapConfig{
			Width:          48,
			Height:         48,
			TileSize:       4,
			RoadSpacing:    6,
			BuildingChance: 35,
			DrawRadius:     24,
		},
		Round: RoundConfig{
			Duration:        120,
			Targets:         8,
			TargetHitPoints: 2,
			TargetSize:      2,
			HitScore:        10,
			DestroyScore:    100,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 3000,
			},
			Scaling: ScalingConfig{
				HitPointBonus: 3,
				TargetBonus:   4,
			},
		},
	}
}
