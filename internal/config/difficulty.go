package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// presetScaling is the per-preset multiplier applied to scroll speed and spawn rate.
var presetScaling = map[DifficultyPreset]float64{
	DifficultyEasy:   0.7,
	DifficultyNormal: 1.0,
	DifficultyHard:   1.4,
	DifficultyFixed:  1.0,
}

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	if name == "" {
		return DifficultyNormal, nil
	}
	p := DifficultyPreset(name)
	if _, ok := presetScaling[p]; !ok {
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
	return p, nil
}

// ApplyPreset scales the constants for a difficulty preset.
// It runs once before a session starts; constants never change mid-session.
func ApplyPreset(cfg *GameConstants, preset DifficultyPreset) {
	scale, ok := presetScaling[preset]
	if !ok || scale == 1.0 {
		return
	}

	// Faster scrolling and more frequent obstacles
	cfg.Scroll.Velocity *= scale
	if cfg.Obstacles.Period > 0 {
		cfg.Obstacles.Period /= scale
	}
}
