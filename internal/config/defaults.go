package config

import (
	_ "embed"
)

//go:embed defaults/racer.yaml
var defaultRacerYAML []byte

// DefaultRacerConfig returns the built-in racer configuration. It matches
// defaults/racer.yaml and backs every field a config file leaves out.
func DefaultRacerConfig() RacerConfig {
	return RacerConfig{
		Arena: ArenaConfig{
			Width:  800,
			Height: 600,
		},
		Vehicle: VehicleConfig{
			Width:        30,
			Height:       50,
			MaxSpeed:     5,
			Acceleration: 0.2,
			Deceleration: 0.1,
			TurnSpeed:    0.1,
		},
		AI: AIConfig{
			CaptureRadius: 50,
		},
		PowerUps: PowerUpConfig{
			Enabled:       true,
			MaxActive:     3,
			SpawnAttempts: 100,
			Size:          20,
			SpeedBoost:    2,
			DurationMS:    3000,
		},
		Race: RaceConfig{
			CountdownTicks:      3,
			CountdownIntervalMS: 1000,
			ResultDelayMS:       2000,
		},
		Trial: TrialConfig{
			CollectibleSize: 20,
			TickMS:          1000,
			LeaderboardSize: 5,
			PlayerName:      "PLAYER",
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.3,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 2,
			},
			Scaling: ScalingConfig{
				AIMinSpeedFactor: 0.7,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "racer", "racer_duel", "racer_trial":
		return defaultRacerYAML
	default:
		return nil
	}
}
