package match

import (
	"math/rand"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
)

// ServeDirection picks the diagonal of the next serve.
// The ball goes toward the player who conceded: after a P1 point it
// travels southeast, after a P2 point southwest. With no scorer yet the
// diagonal is chosen at random.
func ServeDirection(lastScorer core.PlayerID, rng *rand.Rand) Heading {
	switch lastScorer {
	case core.Player1:
		return HeadingSE
	case core.Player2:
		return HeadingSW
	}
	if rng.Intn(2) == 0 {
		return HeadingSE
	}
	return HeadingSW
}

// Serve re-lays the board and launches the ball along the chosen diagonal
// at the configured base speed. The rally bounce counter starts over.
func Serve(s *State, cfg config.MatchConfig, rng *rand.Rand) Heading {
	resetBoard(s, cfg)
	h := ServeDirection(s.Stats.LastScorer, rng)
	u := h.Unit()
	s.Ball.Vel = core.Vec2{
		X: u.X * cfg.Ball.ServeSpeedX,
		Y: u.Y * cfg.Ball.ServeSpeedY,
	}
	s.Stats.CurrentBounces = 0
	return h
}
