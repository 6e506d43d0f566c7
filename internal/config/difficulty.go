package config

import "fmt"

// ParsePreset validates a preset name. An empty name means "keep the config as is".
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Presets scale the serve speed and how fast rallies accelerate;
// easy and fixed disable the periodic speed-up entirely.
func ApplyPreset(cfg *MatchConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Ball.ServeSpeedX *= 0.8
		cfg.Ball.ServeSpeedY *= 0.8
		cfg.Ball.Increment = 1
		cfg.Ball.IncrementStep = 0
	case DifficultyHard:
		cfg.Ball.ServeSpeedX *= 1.25
		cfg.Ball.ServeSpeedY *= 1.25
		cfg.Ball.Increment += 0.05
		cfg.Ball.IncrementStep *= 2
	case DifficultyFixed:
		cfg.Ball.Increment = 1
		cfg.Ball.IncrementStep = 0
	}
}
