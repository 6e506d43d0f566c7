package match

import (
	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
)

// StepResult reports what happened during one physics tick.
type StepResult struct {
	WallHit   bool
	PaddleHit core.PlayerID // NoPlayer if no paddle was hit
	Spin      bool
	SpeedUp   bool
	Scored    bool
	Scorer    core.PlayerID
}

// Step advances the match by one fixed tick.
// Order: walls, paddle, goal, integration, paddle movement. A goal ends the
// tick immediately so the scoring position is what the caller observes.
func Step(s *State, in core.InputFrame, cfg config.MatchConfig) StepResult {
	dt := cfg.Rules.FixedStep()
	var res StepResult

	res.WallHit = collideWalls(s)
	res.PaddleHit, res.Spin, res.SpeedUp = collidePaddle(s, in, cfg)

	if scorer := detectGoal(s); scorer != core.NoPlayer {
		awardPoint(s, scorer)
		res.Scored = true
		res.Scorer = scorer
		return res
	}

	s.Ball.Pos = s.Ball.Pos.Add(s.Ball.Vel.Scale(dt))
	movePaddles(s, in, dt)

	return res
}

// collideWalls reflects the ball off the top and bottom bounds and keeps it inside them.
func collideWalls(s *State) bool {
	b := &s.Ball
	e := BallEdges(*b)
	hit := false

	if e.North <= 0 {
		if b.Vel.Y < 0 {
			b.Vel.Y = -b.Vel.Y
			hit = true
		}
		b.Pos.Y = b.Radius
	} else if e.South >= s.World.H {
		if b.Vel.Y > 0 {
			b.Vel.Y = -b.Vel.Y
			hit = true
		}
		b.Pos.Y = s.World.H - b.Radius
	}
	return hit
}

// collidePaddle tests the paddle the ball travels toward and resolves a hit.
func collidePaddle(s *State, in core.InputFrame, cfg config.MatchConfig) (core.PlayerID, bool, bool) {
	var side core.PlayerID
	switch {
	case s.Ball.Vel.X < 0:
		side = core.Player1
	case s.Ball.Vel.X > 0:
		side = core.Player2
	default:
		return core.NoPlayer, false, false
	}

	p := *s.Paddle(side)
	pe := PaddleEdges(p)
	be := BallEdges(s.Ball)
	face := FacingEdge(p, s.World)

	var reached, inFront bool
	if side == core.Player1 {
		reached = be.West <= face.X
		inFront = s.Ball.Pos.X >= pe.West
	} else {
		reached = be.East >= face.X
		inFront = s.Ball.Pos.X <= pe.East
	}
	overlap := be.South >= pe.North && be.North <= pe.South
	if !reached || !inFront || !overlap {
		return core.NoPlayer, false, false
	}

	heading := HeadingOf(s.Ball.Vel)
	s.Ball.Vel.X = -s.Ball.Vel.X

	st := &s.Stats
	st.CurrentBounces++
	st.TotalBounces++
	st.Players[side.Index()].PaddleHits++

	spin := applySpin(s, side, heading, in, cfg.Spin)
	speedUp := applySpeedUp(s, cfg.Ball)
	return side, spin, speedUp
}

// applySpin kicks the ball when the hitter moves the paddle along the ball's
// vertical direction. A paddle resting against a wall never spins.
func applySpin(s *State, side core.PlayerID, heading Heading, in core.InputFrame, spin config.SpinConfig) bool {
	p := s.Paddle(side)
	if p.Pos.Y <= 0 || p.Pos.Y+p.H >= s.World.H {
		return false
	}

	switch {
	case in.Has(core.UpAction(side)) && heading.Northish():
		s.Ball.Vel.Y -= spin.Kick
	case in.Has(core.DownAction(side)) && heading.Southish():
		s.Ball.Vel.Y += spin.Kick
	default:
		return false
	}

	s.Ball.Vel.X += core.Sign(s.Ball.Vel.X) * spin.Boost
	s.Stats.Players[side.Index()].Effects++
	return true
}

// applySpeedUp scales the ball on every Nth bounce of the match and grows the factor.
func applySpeedUp(s *State, ball config.BallConfig) bool {
	n := ball.SpeedUpEvery
	total := s.Stats.TotalBounces
	if n <= 0 || total == 0 || total%n != 0 {
		return false
	}
	s.Ball.Vel = s.Ball.Vel.Scale(s.Ball.Increment)
	s.Ball.Increment += ball.IncrementStep
	return true
}

// detectGoal returns the scorer when the ball's leading edge left the field.
func detectGoal(s *State) core.PlayerID {
	e := BallEdges(s.Ball)
	switch {
	case s.Ball.Vel.X < 0 && e.West < 0:
		return core.Player2
	case s.Ball.Vel.X > 0 && e.East > s.World.W:
		return core.Player1
	default:
		return core.NoPlayer
	}
}

// awardPoint credits the scorer and closes the rally's bounce record.
func awardPoint(s *State, scorer core.PlayerID) {
	st := &s.Stats
	ps := &st.Players[scorer.Index()]
	ps.Score++
	st.LastScorer = scorer
	if st.CurrentBounces > ps.MaxRallyBounces {
		ps.MaxRallyBounces = st.CurrentBounces
	}
}

// movePaddles moves each paddle by its held keys and stops it at the walls.
func movePaddles(s *State, in core.InputFrame, dt float64) {
	for _, side := range []core.PlayerID{core.Player1, core.Player2} {
		p := s.Paddle(side)
		dir := 0.0
		if in.Has(core.UpAction(side)) {
			dir--
		}
		if in.Has(core.DownAction(side)) {
			dir++
		}
		p.Pos.Y = core.ClampF(p.Pos.Y+dir*p.Speed*dt, 0, s.World.H-p.H)
	}
}
