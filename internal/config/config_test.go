package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded defaults failed to parse: %v", err)
	}

	if cfg != DefaultMatchConfig() {
		t.Errorf("embedded YAML and DefaultMatchConfig() differ:\n%+v\n%+v", cfg, DefaultMatchConfig())
	}
}

func TestDefaultRules(t *testing.T) {
	cfg := DefaultMatchConfig()

	if cfg.Rules.WinningScore != 3 {
		t.Errorf("WinningScore = %d, expected 3", cfg.Rules.WinningScore)
	}
	if cfg.Rules.CountdownFrom != 3 {
		t.Errorf("CountdownFrom = %d, expected 3", cfg.Rules.CountdownFrom)
	}
	if cfg.Rules.ScoredDelay != 2*time.Second {
		t.Errorf("ScoredDelay = %v, expected 2s", cfg.Rules.ScoredDelay)
	}
	if cfg.Rules.StepDuration() != time.Second/60 {
		t.Errorf("StepDuration() = %v, expected 1/60s", cfg.Rules.StepDuration())
	}
	if cfg.Rules.FixedStep() != 1.0/60.0 {
		t.Errorf("FixedStep() = %v, expected 1/60", cfg.Rules.FixedStep())
	}
}

func TestLoadCustomPathPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("rules:\n  winning_score: 5\n  scored_delay: 500ms\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Rules.WinningScore != 5 {
		t.Errorf("WinningScore = %d, expected 5", cfg.Rules.WinningScore)
	}
	if cfg.Rules.ScoredDelay != 500*time.Millisecond {
		t.Errorf("ScoredDelay = %v, expected 500ms", cfg.Rules.ScoredDelay)
	}
	// Untouched sections keep defaults
	if cfg.World != DefaultMatchConfig().World {
		t.Errorf("World = %+v, expected defaults", cfg.World)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() should fail for a missing custom file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("rules:\n  winning_score: 0\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	_, err := Load(path)
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Load() error = %v, expected ValidationError", err)
	}
	if verr.Field != "rules.winning_score" {
		t.Errorf("Field = %q, expected rules.winning_score", verr.Field)
	}
}

func TestValidateControls(t *testing.T) {
	cfg := DefaultMatchConfig()
	cfg.Controls.P2Up = "w"

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject duplicate key codes")
	}

	cfg = DefaultMatchConfig()
	cfg.Controls.Pause = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject unbound actions")
	}
}

func TestValidateGeometry(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*MatchConfig)
	}{
		{"zero world", func(c *MatchConfig) { c.World.Width = 0 }},
		{"huge ball", func(c *MatchConfig) { c.Ball.Radius = c.World.Height }},
		{"tall paddle", func(c *MatchConfig) { c.Paddle.Height = c.World.Height }},
		{"overlapping paddles", func(c *MatchConfig) { c.Paddle.Offset = c.World.Width / 2 }},
		{"slowing increment", func(c *MatchConfig) { c.Ball.Increment = 0.9 }},
		{"zero tick rate", func(c *MatchConfig) { c.Rules.TickRate = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultMatchConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestApplyPreset(t *testing.T) {
	base := DefaultMatchConfig()

	easy := base
	ApplyPreset(&easy, DifficultyEasy)
	if easy.Ball.ServeSpeedX >= base.Ball.ServeSpeedX {
		t.Error("easy should serve slower")
	}
	if easy.Ball.Increment != 1 || easy.Ball.IncrementStep != 0 {
		t.Errorf("easy increment = %v step %v, want no speed-up", easy.Ball.Increment, easy.Ball.IncrementStep)
	}

	hard := base
	ApplyPreset(&hard, DifficultyHard)
	if hard.Ball.ServeSpeedX <= base.Ball.ServeSpeedX || hard.Ball.IncrementStep <= base.Ball.IncrementStep {
		t.Error("hard should serve faster and accelerate quicker")
	}

	fixed := base
	ApplyPreset(&fixed, DifficultyFixed)
	if fixed.Ball.Increment != 1 || fixed.Ball.IncrementStep != 0 {
		t.Error("fixed should disable speed-up")
	}

	normal := base
	ApplyPreset(&normal, DifficultyNormal)
	if normal != base {
		t.Error("normal should keep the config unchanged")
	}
}

func TestParsePreset(t *testing.T) {
	for _, name := range []string{"", "easy", "normal", "hard", "fixed"} {
		if _, err := ParsePreset(name); err != nil {
			t.Errorf("ParsePreset(%q) failed: %v", name, err)
		}
	}
	if _, err := ParsePreset("insane"); err == nil {
		t.Error("ParsePreset(insane) should fail")
	}
}
