package config

import (
	"fmt"
	"math"
)

// Ramp is a score-driven parameter: clamp(base + per_score*score, min, max).
// A zero Min or Max leaves that side unbounded.
type Ramp struct {
	Base     float64 `yaml:"base"`
	PerScore float64 `yaml:"per_score"`
	Min      float64 `yaml:"min"`
	Max      float64 `yaml:"max"`
}

// At evaluates the ramp for a score.
func (r Ramp) At(score int) float64 {
	v := r.Base + r.PerScore*float64(score)
	if r.Min != 0 {
		v = math.Max(v, r.Min)
	}
	if r.Max != 0 {
		v = math.Min(v, r.Max)
	}
	return v
}

// Scaled returns the ramp with its slope multiplied by f.
func (r Ramp) Scaled(f float64) Ramp {
	r.PerScore *= f
	return r
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
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// Factor returns how strongly score ramps apply under the preset.
func (p DifficultyPreset) Factor() float64 {
	switch p {
	case DifficultyEasy:
		return 0.5
	case DifficultyHard:
		return 1.5
	case DifficultyFixed:
		return 0
	default:
		return 1
	}
}

// ApplyDodgePreset scales the spawn and fall-speed ramps.
func ApplyDodgePreset(cfg *DodgeConfig, preset DifficultyPreset) {
	f := preset.Factor()
	cfg.SpawnInterval = cfg.SpawnInterval.Scaled(f)
	cfg.FallSpeed = cfg.FallSpeed.Scaled(f)
}

// ApplyBrickPreset scales the per-hit speed-up.
func ApplyBrickPreset(cfg *BrickConfig, preset DifficultyPreset) {
	cfg.Ball.SpeedUp = 1 + (cfg.Ball.SpeedUp-1)*preset.Factor()
}

// ApplySnakePreset scales the move interval ramp.
func ApplySnakePreset(cfg *SnakeConfig, preset DifficultyPreset) {
	cfg.Interval = cfg.Interval.Scaled(preset.Factor())
}
