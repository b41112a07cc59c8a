package config

import "math"

// DifficultyManager calculates CPU driver parameters from the level reached.
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

// Level returns the difficulty (0.0 to 1.0) at a zero-based level index.
func (d *DifficultyManager) Level(levelIndex int) float64 {
	if !d.IsEnabled() || d.cfg.Progression.Type != "level" {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	progress := clampF(float64(levelIndex)/maxAt, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// AIMaxSpeed scales the CPU's max speed from AIMinSpeedFactor at difficulty
// 0 up to the full base speed at difficulty 1.
func (d *DifficultyManager) AIMaxSpeed(base float64, levelIndex int) float64 {
	minFactor := d.cfg.Scaling.AIMinSpeedFactor
	if minFactor <= 0 || minFactor > 1 {
		minFactor = 1
	}
	level := d.Level(levelIndex)
	return base * (minFactor + level*(1.0-minFactor))
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
