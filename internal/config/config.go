// Package config provides YAML-based game configuration loading and
// difficulty management for the racer.
package config

import "time"

// RacerConfig contains all tuning for the racing games.
type RacerConfig struct {
	Arena      ArenaConfig      `yaml:"arena"`
	Vehicle    VehicleConfig    `yaml:"vehicle"`
	AI         AIConfig         `yaml:"ai"`
	PowerUps   PowerUpConfig    `yaml:"powerups"`
	Race       RaceConfig       `yaml:"race"`
	Trial      TrialConfig      `yaml:"trial"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ArenaConfig is the world size in world units.
type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// VehicleConfig defines car size and per-frame handling constants.
type VehicleConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	MaxSpeed     float64 `yaml:"max_speed"`
	Acceleration float64 `yaml:"acceleration"`
	Deceleration float64 `yaml:"deceleration"`
	TurnSpeed    float64 `yaml:"turn_speed"`
}

// AIConfig defines waypoint following.
type AIConfig struct {
	CaptureRadius float64 `yaml:"capture_radius"`
}

// PowerUpConfig defines pickup spawning and the speed boost.
type PowerUpConfig struct {
	Enabled       bool    `yaml:"enabled"`
	MaxActive     int     `yaml:"max_active"`
	SpawnAttempts int     `yaml:"spawn_attempts"`
	Size          float64 `yaml:"size"`
	SpeedBoost    float64 `yaml:"speed_boost"`
	DurationMS    int     `yaml:"duration_ms"`
}

// Duration returns how long one boost lasts.
func (p PowerUpConfig) Duration() time.Duration {
	return time.Duration(p.DurationMS) * time.Millisecond
}

// RaceConfig defines the level state machine timing.
type RaceConfig struct {
	CountdownTicks      int `yaml:"countdown_ticks"`
	CountdownIntervalMS int `yaml:"countdown_interval_ms"`
	ResultDelayMS       int `yaml:"result_delay_ms"`
}

// CountdownInterval returns the time between countdown ticks.
func (r RaceConfig) CountdownInterval() time.Duration {
	return time.Duration(r.CountdownIntervalMS) * time.Millisecond
}

// ResultDelay returns how long an outcome stays up before the next level.
func (r RaceConfig) ResultDelay() time.Duration {
	return time.Duration(r.ResultDelayMS) * time.Millisecond
}

// TrialConfig defines the collectible time-trial variant.
type TrialConfig struct {
	CollectibleSize float64 `yaml:"collectible_size"`
	TickMS          int     `yaml:"tick_ms"`
	LeaderboardSize int     `yaml:"leaderboard_size"`
	RetryOnTimeout  bool    `yaml:"retry_on_timeout"`
	PlayerName      string  `yaml:"player_name"`
}

// Tick returns the interval at which the trial clock loses one second.
func (t TrialConfig) Tick() time.Duration {
	return time.Duration(t.TickMS) * time.Millisecond
}

// DifficultyConfig defines how the CPU driver gets faster through the levels.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "level" or "none"
	MaxAt int    `yaml:"max_at"` // level index at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	AIMinSpeedFactor float64 `yaml:"ai_min_speed_factor"` // CPU max speed factor at difficulty 0
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

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
