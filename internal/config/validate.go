package config

import "fmt"

// ValidationError contains details about validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// Validate checks that the configuration describes a playable match.
func (c MatchConfig) Validate() error {
	checks := []struct {
		ok    bool
		field string
		msg   string
	}{
		{c.World.Width > 0 && c.World.Height > 0, "world", "width and height must be positive"},
		{c.Ball.Radius > 0, "ball.radius", "must be positive"},
		{2*c.Ball.Radius < c.World.Height, "ball.radius", "ball does not fit the world height"},
		{c.Ball.ServeSpeedX > 0, "ball.serve_speed_x", "must be positive"},
		{c.Ball.ServeSpeedY >= 0, "ball.serve_speed_y", "must not be negative"},
		{c.Ball.Increment >= 1, "ball.increment", "must be at least 1"},
		{c.Ball.IncrementStep >= 0, "ball.increment_step", "must not be negative"},
		{c.Ball.SpeedUpEvery >= 0, "ball.speed_up_every", "must not be negative"},
		{c.Paddle.Width > 0 && c.Paddle.Height > 0, "paddle", "width and height must be positive"},
		{c.Paddle.Height < c.World.Height, "paddle.height", "paddle does not fit the world height"},
		{c.Paddle.Offset >= 0, "paddle.offset", "must not be negative"},
		{2*(c.Paddle.Offset+c.Paddle.Width) < c.World.Width, "paddle", "paddles overlap at the center"},
		{c.Paddle.Speed >= 0, "paddle.speed", "must not be negative"},
		{c.Spin.Kick >= 0 && c.Spin.Boost >= 0, "spin", "kick and boost must not be negative"},
		{c.Rules.WinningScore > 0, "rules.winning_score", "must be positive"},
		{c.Rules.CountdownFrom > 0, "rules.countdown_from", "must be positive"},
		{c.Rules.CountdownInterval > 0, "rules.countdown_interval", "must be positive"},
		{c.Rules.ScoredDelay >= 0, "rules.scored_delay", "must not be negative"},
		{c.Rules.TickRate > 0, "rules.tick_rate", "must be positive"},
	}

	for _, chk := range checks {
		if !chk.ok {
			return ValidationError{Field: chk.field, Message: chk.msg}
		}
	}

	if err := c.Controls.validate(); err != nil {
		return err
	}
	return nil
}

// validate rejects missing and duplicate key codes.
func (c ControlsConfig) validate() error {
	seen := make(map[string]bool)
	for action, code := range c.Bindings() {
		if code == "" {
			return ValidationError{Field: "controls", Message: fmt.Sprintf("%s is unbound", action)}
		}
		if seen[code] {
			return ValidationError{Field: "controls", Message: fmt.Sprintf("key %q bound twice", code)}
		}
		seen[code] = true
	}
	return nil
}
