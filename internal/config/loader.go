package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadAutoTheft loads the game configuration.
// Search order: customPath -> ~/.autotheft/configs/autotheft.yaml -> ./configs/autotheft.yaml -> embedded default
// Files are applied over the defaults, so a partial file only overrides the
// keys it sets.
func LoadAutoTheft(customPath string) (AutoTheftConfig, error) {
	cfg := DefaultAutoTheftConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("autotheft.yaml"); userCfgPath != "" {
		if c, ok := tryLoad(userCfgPath); ok {
			return c, nil
		}
	}

	// Try local configs directory
	if c, ok := tryLoad(filepath.Join("configs", "autotheft.yaml")); ok {
		return c, nil
	}

	// Use embedded default YAML
	cfg = DefaultAutoTheftConfig()
	if err := yaml.Unmarshal(defaultAutoTheftYAML, &cfg); err != nil {
		return DefaultAutoTheftConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads an optional config file. Missing, unparsable or invalid
// files are skipped.
func tryLoad(path string) (AutoTheftConfig, bool) {
	cfg := DefaultAutoTheftConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if cfg.Validate() != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := UserDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}

// UserDir returns ~/.autotheft, or empty if home is unavailable.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".autotheft")
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *AutoTheftConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		cfg.Round.Duration = 0
		return
	}

	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	// Adjust round length and toughness
	switch preset {
	case DifficultyEasy:
		cfg.Round.Duration = 180
		cfg.Round.TargetHitPoints = 1
		cfg.Weapon.Cooldown = 0.15
	case DifficultyHard:
		cfg.Round.Duration = 90
		cfg.Round.TargetHitPoints = 3
		cfg.Weapon.Cooldown = 0.4
	}
}
