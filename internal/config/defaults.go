package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/match.yaml
var defaultMatchYAML []byte

// DefaultMatchConfig returns the hardcoded match configuration.
// It mirrors defaults/match.yaml and is used when the embedded file cannot be parsed.
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		World: WorldConfig{
			Width:  800,
			Height: 400,
		},
		Ball: BallConfig{
			Radius:        8,
			ServeSpeedX:   300,
			ServeSpeedY:   180,
			Increment:     1.05,
			IncrementStep: 0.01,
			SpeedUpEvery:  3,
		},
		Paddle: PaddleConfig{
			Width:  10,
			Height: 80,
			Offset: 20,
			Speed:  420,
		},
		Spin: SpinConfig{
			Kick:  120,
			Boost: 60,
		},
		Rules: RulesConfig{
			WinningScore:      3,
			CountdownFrom:     3,
			CountdownInterval: time.Second,
			ScoredDelay:       2 * time.Second,
			TickRate:          60,
			SubmitTimeout:     10 * time.Second,
		},
		Controls: ControlsConfig{
			P1Up:   "w",
			P1Down: "s",
			P2Up:   "up",
			P2Down: "down",
			Pause:  "p",
			Escape: "esc",
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultMatchYAML
}
