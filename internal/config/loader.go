package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppDir is the per-user directory holding configs, scores and logs.
const AppDir = ".racer"

// LoadRacer loads racer configuration on top of the built-in defaults.
// Search order: customPath -> ~/.racer/configs/racer.yaml -> ./configs/racer.yaml -> embedded default
func LoadRacer(customPath string) (RacerConfig, error) {
	cfg := DefaultRacerConfig()

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
	if userCfgPath := userConfigPath("racer.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, cfg.Validate()
			}
			cfg = DefaultRacerConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "racer.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, cfg.Validate()
		}
		cfg = DefaultRacerConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultRacerYAML, &cfg); err != nil {
		return DefaultRacerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Validate rejects values the simulation cannot run with.
func (c RacerConfig) Validate() error {
	switch {
	case c.Arena.Width <= 0 || c.Arena.Height <= 0:
		return fmt.Errorf("config: arena must have a positive size")
	case c.Vehicle.Width <= 0 || c.Vehicle.Height <= 0:
		return fmt.Errorf("config: vehicle must have a positive size")
	case c.Vehicle.MaxSpeed <= 0:
		return fmt.Errorf("config: vehicle.max_speed must be positive")
	case c.Vehicle.Deceleration <= 0:
		return fmt.Errorf("config: vehicle.deceleration must be positive")
	case c.Race.CountdownIntervalMS <= 0 || c.Trial.TickMS <= 0:
		return fmt.Errorf("config: timer intervals must be positive")
	case c.PowerUps.Enabled && c.PowerUps.Size >= c.Arena.Width:
		return fmt.Errorf("config: powerups.size must be smaller than the arena")
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, AppDir, "configs", filename)
}

// ApplyRacerPreset modifies the config based on a difficulty preset.
// An empty preset keeps the configured difficulty.
func ApplyRacerPreset(cfg *RacerConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}
