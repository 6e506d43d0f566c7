// Package match implements the two-player paddle-ball match engine:
// fixed-timestep physics, the phase state machine that drives a match
// from ready-up to game over, and the statistics recorded along the way.
//
// The engine is single-threaded. Every callback (frames, timers, posted
// work) runs on the goroutine that advances the Scheduler.
package match

import (
	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
)

// World is the playfield size in world units.
type World struct {
	W, H float64
}

// Ball is the ball state. Pos is the center.
type Ball struct {
	Pos       core.Vec2
	Vel       core.Vec2 // units per second
	Increment float64   // factor applied on the next periodic speed-up
	Radius    float64
}

// Speed returns the ball's speed in units per second.
func (b Ball) Speed() float64 {
	return b.Vel.Len()
}

// Paddle is a paddle state. Pos is the top-left corner.
type Paddle struct {
	Pos   core.Vec2
	W, H  float64
	Speed float64 // units per second
}

// Linkage ties a match to its persistent records.
// A non-empty TournamentID marks a tournament match.
type Linkage struct {
	MatchID      string
	TournamentID string
	Round        int
	Slot         int
}

// Tournament reports whether the match belongs to a tournament bracket.
func (l Linkage) Tournament() bool {
	return l.TournamentID != ""
}

// State is the complete mutable state of one match session.
type State struct {
	World   World
	Ball    Ball
	Paddles [2]Paddle // index 0 = Player1 (left)
	Phase   Phase
	Ready   [2]bool
	Link    Linkage
	Stats   LiveStats
	Players [2]string
}

// NewState creates a match state with the board laid out for a first serve.
func NewState(cfg config.MatchConfig) State {
	s := State{
		World: World{W: cfg.World.Width, H: cfg.World.Height},
		Phase: PhaseStart,
		Ball:  Ball{Increment: cfg.Ball.Increment, Radius: cfg.Ball.Radius},
	}
	s.Stats.Reset()
	resetBoard(&s, cfg)
	return s
}

// Paddle returns the paddle of a player.
func (s *State) Paddle(p core.PlayerID) *Paddle {
	return &s.Paddles[p.Index()]
}

// Registered reports whether both identity slots are filled.
func (s *State) Registered() bool {
	return s.Players[0] != "" && s.Players[1] != ""
}

// resetBoard centers the paddles and parks the ball at the center with no velocity.
// Ball.Increment is left alone; it belongs to the match, not the rally.
func resetBoard(s *State, cfg config.MatchConfig) {
	y := (s.World.H - cfg.Paddle.Height) / 2
	s.Paddles[0] = Paddle{
		Pos:   core.Vec2{X: cfg.Paddle.Offset, Y: y},
		W:     cfg.Paddle.Width,
		H:     cfg.Paddle.Height,
		Speed: cfg.Paddle.Speed,
	}
	s.Paddles[1] = Paddle{
		Pos:   core.Vec2{X: s.World.W - cfg.Paddle.Offset - cfg.Paddle.Width, Y: y},
		W:     cfg.Paddle.Width,
		H:     cfg.Paddle.Height,
		Speed: cfg.Paddle.Speed,
	}
	s.Ball.Pos = core.Vec2{X: s.World.W / 2, Y: s.World.H / 2}
	s.Ball.Vel = core.Vec2{}
	s.Ball.Radius = cfg.Ball.Radius
}

// resetMatch clears score, statistics and progressive speed-up.
// Identity and linkage survive.
func resetMatch(s *State, cfg config.MatchConfig) {
	s.Stats.Reset()
	s.Ball.Increment = cfg.Ball.Increment
	s.Ready = [2]bool{}
	resetBoard(s, cfg)
}
