// Package config provides YAML-based match configuration loading and
// difficulty presets for the pong match engine.
package config

import (
	"time"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// MatchConfig contains all tunables of a match.
// World units are abstract; the platform scales them to the terminal.
type MatchConfig struct {
	World    WorldConfig    `yaml:"world"`
	Ball     BallConfig     `yaml:"ball"`
	Paddle   PaddleConfig   `yaml:"paddle"`
	Spin     SpinConfig     `yaml:"spin"`
	Rules    RulesConfig    `yaml:"rules"`
	Controls ControlsConfig `yaml:"controls"`
}

// WorldConfig defines the playfield bounds.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// BallConfig defines ball size, serve velocity and progressive speed-up.
type BallConfig struct {
	Radius        float64 `yaml:"radius"`
	ServeSpeedX   float64 `yaml:"serve_speed_x"`  // units per second
	ServeSpeedY   float64 `yaml:"serve_speed_y"`  // units per second
	Increment     float64 `yaml:"increment"`      // initial speed-up factor
	IncrementStep float64 `yaml:"increment_step"` // added to the factor after each speed-up
	SpeedUpEvery  int     `yaml:"speed_up_every"` // speed up on every Nth total bounce
}

// PaddleConfig defines paddle geometry and movement.
type PaddleConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Offset float64 `yaml:"offset"` // distance between world edge and paddle back edge
	Speed  float64 `yaml:"speed"`  // units per second
}

// SpinConfig defines the velocity perturbation applied when a player
// moves the paddle into the ball's vertical direction on contact.
type SpinConfig struct {
	Kick  float64 `yaml:"kick"`  // vertical velocity added
	Boost float64 `yaml:"boost"` // horizontal speed added
}

// RulesConfig defines scoring and lifecycle timing.
type RulesConfig struct {
	WinningScore      int           `yaml:"winning_score"`
	CountdownFrom     int           `yaml:"countdown_from"`
	CountdownInterval time.Duration `yaml:"countdown_interval"`
	ScoredDelay       time.Duration `yaml:"scored_delay"`
	TickRate          int           `yaml:"tick_rate"`
	SubmitTimeout     time.Duration `yaml:"submit_timeout"`
}

// ControlsConfig maps logical actions to key codes as reported by the terminal.
type ControlsConfig struct {
	P1Up   string `yaml:"p1_up"`
	P1Down string `yaml:"p1_down"`
	P2Up   string `yaml:"p2_up"`
	P2Down string `yaml:"p2_down"`
	Pause  string `yaml:"pause"`
	Escape string `yaml:"escape"`
}

// Bindings returns the controls as an action -> code table.
func (c ControlsConfig) Bindings() map[core.Action]string {
	return map[core.Action]string{
		core.ActionP1Up:   c.P1Up,
		core.ActionP1Down: c.P1Down,
		core.ActionP2Up:   c.P2Up,
		core.ActionP2Down: c.P2Down,
		core.ActionPause:  c.Pause,
		core.ActionEscape: c.Escape,
	}
}

// FixedStep returns the simulation step in seconds.
func (r RulesConfig) FixedStep() float64 {
	if r.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(r.TickRate)
}

// StepDuration returns the simulation step as a duration.
func (r RulesConfig) StepDuration() time.Duration {
	if r.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(r.TickRate)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)
