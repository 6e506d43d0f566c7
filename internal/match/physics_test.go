package match

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
)

func newTestState() (State, config.MatchConfig) {
	cfg := config.DefaultMatchConfig()
	return NewState(cfg), cfg
}

func TestStepIntegratesExactly(t *testing.T) {
	s, cfg := newTestState()
	s.Ball.Vel = core.Vec2{X: 300, Y: 180}

	for i := 0; i < 30; i++ {
		before := s.Ball.Pos
		vel := s.Ball.Vel
		res := Step(&s, core.NewInputFrame(), cfg)
		if res.WallHit || res.PaddleHit != core.NoPlayer || res.Scored {
			t.Fatalf("tick %d: unexpected event %+v", i, res)
		}
		want := before.Add(vel.Scale(cfg.Rules.FixedStep()))
		if s.Ball.Pos != want {
			t.Fatalf("tick %d: Pos = %+v, want %+v", i, s.Ball.Pos, want)
		}
	}
}

func TestStepWallCollision(t *testing.T) {
	tests := []struct {
		name  string
		y     float64
		vy    float64
		wantY float64 // sign of vy after
	}{
		{"north wall", 5, -50, 1},
		{"north edge exactly", 8, -50, 1},
		{"south wall", 395, 50, -1},
		{"south edge exactly", 392, 50, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, cfg := newTestState()
			s.Ball.Pos = core.Vec2{X: 400, Y: tt.y}
			s.Ball.Vel = core.Vec2{X: 100, Y: tt.vy}

			res := Step(&s, core.NewInputFrame(), cfg)
			if !res.WallHit {
				t.Fatal("expected wall hit")
			}
			if core.Sign(s.Ball.Vel.Y) != tt.wantY {
				t.Errorf("vy = %v, want sign %v", s.Ball.Vel.Y, tt.wantY)
			}
			if s.Ball.Vel.Y != -tt.vy {
				t.Errorf("vy = %v, want %v", s.Ball.Vel.Y, -tt.vy)
			}
			if s.Ball.Pos.Y < 0 || s.Ball.Pos.Y > s.World.H {
				t.Errorf("y = %v outside [0, %v]", s.Ball.Pos.Y, s.World.H)
			}
		})
	}
}

func TestStepPaddleCollision(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		vx   float64
		side core.PlayerID
	}{
		{"left paddle", 37, -300, core.Player1},
		{"right paddle", 763, 300, core.Player2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, cfg := newTestState()
			s.Ball.Pos = core.Vec2{X: tt.x, Y: 200}
			s.Ball.Vel = core.Vec2{X: tt.vx, Y: 0}

			res := Step(&s, core.NewInputFrame(), cfg)
			if res.PaddleHit != tt.side {
				t.Fatalf("PaddleHit = %v, want %v", res.PaddleHit, tt.side)
			}
			if s.Ball.Vel.X != -tt.vx {
				t.Errorf("vx = %v, want %v", s.Ball.Vel.X, -tt.vx)
			}
			if s.Stats.CurrentBounces != 1 {
				t.Errorf("CurrentBounces = %d, want 1", s.Stats.CurrentBounces)
			}
			if got := s.Stats.Player(tt.side).PaddleHits; got != 1 {
				t.Errorf("PaddleHits = %d, want 1", got)
			}
		})
	}
}

func TestStepIgnoresPaddleBehindBall(t *testing.T) {
	s, cfg := newTestState()
	// touching the left paddle but moving away from it
	s.Ball.Pos = core.Vec2{X: 37, Y: 200}
	s.Ball.Vel = core.Vec2{X: 300, Y: 0}

	res := Step(&s, core.NewInputFrame(), cfg)
	if res.PaddleHit != core.NoPlayer {
		t.Errorf("PaddleHit = %v, want none", res.PaddleHit)
	}
	if s.Ball.Vel.X != 300 {
		t.Errorf("vx = %v, want 300", s.Ball.Vel.X)
	}
}

func TestStepMissesWithoutVerticalOverlap(t *testing.T) {
	s, cfg := newTestState()
	s.Ball.Pos = core.Vec2{X: 37, Y: 100}
	s.Ball.Vel = core.Vec2{X: -300, Y: 0}

	res := Step(&s, core.NewInputFrame(), cfg)
	if res.PaddleHit != core.NoPlayer {
		t.Errorf("PaddleHit = %v, want none", res.PaddleHit)
	}
}

func TestSpeedUpEveryThirdBounce(t *testing.T) {
	s, cfg := newTestState()
	cfg.Ball.Increment = 1.1
	cfg.Ball.IncrementStep = 0.1
	s.Ball.Increment = cfg.Ball.Increment

	var fired []int
	for i := 1; i <= 9; i++ {
		s.Ball.Pos = core.Vec2{X: 37, Y: 200}
		s.Ball.Vel = core.Vec2{X: -300, Y: 0}
		res := Step(&s, core.NewInputFrame(), cfg)
		if res.PaddleHit != core.Player1 {
			t.Fatalf("bounce %d: no paddle hit", i)
		}
		if res.SpeedUp {
			fired = append(fired, i)
			if s.Ball.Vel.X <= 300 {
				t.Errorf("bounce %d: vx = %v, expected scaled up", i, s.Ball.Vel.X)
			}
		} else if s.Ball.Vel.X != 300 {
			t.Errorf("bounce %d: vx = %v, want 300", i, s.Ball.Vel.X)
		}
	}

	want := []int{3, 6, 9}
	if len(fired) != len(want) {
		t.Fatalf("speed-ups at %v, want %v", fired, want)
	}
	for i := range want {
		if fired[i] != want[i] {
			t.Errorf("speed-ups at %v, want %v", fired, want)
		}
	}
	if s.Stats.TotalBounces != 9 {
		t.Errorf("TotalBounces = %d, want 9", s.Stats.TotalBounces)
	}
	if got, want := s.Ball.Increment, 1.1+0.3; got < want-1e-9 || got > want+1e-9 {
		t.Errorf("Increment = %v, want %v", got, want)
	}
}

func TestSpinUpKick(t *testing.T) {
	s, cfg := newTestState()
	s.Ball.Pos = core.Vec2{X: 37, Y: 200}
	s.Ball.Vel = core.Vec2{X: -300, Y: -100}

	in := core.NewInputFrame()
	in.Set(core.ActionP1Up)
	res := Step(&s, in, cfg)

	if !res.Spin {
		t.Fatal("expected spin")
	}
	if want := -100 - cfg.Spin.Kick; s.Ball.Vel.Y != want {
		t.Errorf("vy = %v, want %v", s.Ball.Vel.Y, want)
	}
	if want := 300 + cfg.Spin.Boost; s.Ball.Vel.X != want {
		t.Errorf("vx = %v, want %v", s.Ball.Vel.X, want)
	}
	if s.Stats.Players[0].Effects != 1 {
		t.Errorf("Effects = %d, want 1", s.Stats.Players[0].Effects)
	}
}

func TestSpinDownKickRightPaddle(t *testing.T) {
	s, cfg := newTestState()
	s.Ball.Pos = core.Vec2{X: 763, Y: 200}
	s.Ball.Vel = core.Vec2{X: 300, Y: 100}

	in := core.NewInputFrame()
	in.Set(core.ActionP2Down)
	res := Step(&s, in, cfg)

	if !res.Spin {
		t.Fatal("expected spin")
	}
	if want := 100 + cfg.Spin.Kick; s.Ball.Vel.Y != want {
		t.Errorf("vy = %v, want %v", s.Ball.Vel.Y, want)
	}
	if want := -300 - cfg.Spin.Boost; s.Ball.Vel.X != want {
		t.Errorf("vx = %v, want %v", s.Ball.Vel.X, want)
	}
	if s.Stats.Players[1].Effects != 1 {
		t.Errorf("Effects = %d, want 1", s.Stats.Players[1].Effects)
	}
}

func TestSpinRequiresMatchingDirection(t *testing.T) {
	tests := []struct {
		name   string
		vy     float64
		action core.Action
	}{
		{"up key, ball heading south", 100, core.ActionP1Up},
		{"down key, ball heading north", -100, core.ActionP1Down},
		{"up key, flat ball", 0, core.ActionP1Up},
		{"other player's key", -100, core.ActionP2Up},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, cfg := newTestState()
			s.Ball.Pos = core.Vec2{X: 37, Y: 200}
			s.Ball.Vel = core.Vec2{X: -300, Y: tt.vy}
			in := core.NewInputFrame()
			in.Set(tt.action)

			res := Step(&s, in, cfg)
			if res.Spin {
				t.Error("unexpected spin")
			}
			if s.Stats.Players[0].Effects != 0 {
				t.Errorf("Effects = %d, want 0", s.Stats.Players[0].Effects)
			}
		})
	}
}

func TestSpinDisabledAgainstWall(t *testing.T) {
	s, cfg := newTestState()
	s.Paddles[0].Pos.Y = 0
	s.Ball.Pos = core.Vec2{X: 37, Y: 40}
	s.Ball.Vel = core.Vec2{X: -300, Y: -100}

	in := core.NewInputFrame()
	in.Set(core.ActionP1Up)
	res := Step(&s, in, cfg)

	if res.PaddleHit != core.Player1 {
		t.Fatalf("PaddleHit = %v, want P1", res.PaddleHit)
	}
	if res.Spin {
		t.Error("spin applied against the wall")
	}
	if s.Ball.Vel.Y != -100 {
		t.Errorf("vy = %v, want -100", s.Ball.Vel.Y)
	}
}

func TestStepScoring(t *testing.T) {
	tests := []struct {
		name   string
		x, vx  float64
		scorer core.PlayerID
	}{
		{"left exit", 5, -300, core.Player2},
		{"right exit", 795, 300, core.Player1},
		{"left edge but moving right", 5, 300, core.NoPlayer},
		{"right edge but moving left", 795, -300, core.NoPlayer},
		{"edge exactly on boundary", 8, -300, core.NoPlayer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, cfg := newTestState()
			s.Ball.Pos = core.Vec2{X: tt.x, Y: 20}
			s.Ball.Vel = core.Vec2{X: tt.vx, Y: 0}
			s.Stats.CurrentBounces = 4
			before := s.Ball.Pos

			res := Step(&s, core.NewInputFrame(), cfg)
			if tt.scorer == core.NoPlayer {
				if res.Scored {
					t.Fatalf("unexpected score by %v", res.Scorer)
				}
				return
			}
			if !res.Scored || res.Scorer != tt.scorer {
				t.Fatalf("Scored = %v, Scorer = %v, want %v", res.Scored, res.Scorer, tt.scorer)
			}
			if s.Ball.Pos != before {
				t.Errorf("ball moved on scoring tick: %+v -> %+v", before, s.Ball.Pos)
			}
			ps := s.Stats.Player(tt.scorer)
			if ps.Score != 1 {
				t.Errorf("Score = %d, want 1", ps.Score)
			}
			if s.Stats.Player(tt.scorer.Opponent()).Score != 0 {
				t.Error("opponent scored too")
			}
			if s.Stats.LastScorer != tt.scorer {
				t.Errorf("LastScorer = %v, want %v", s.Stats.LastScorer, tt.scorer)
			}
			if ps.MaxRallyBounces != 4 {
				t.Errorf("MaxRallyBounces = %d, want 4", ps.MaxRallyBounces)
			}
		})
	}
}

func TestPaddleMovementClamped(t *testing.T) {
	s, cfg := newTestState()
	s.Paddles[0].Pos.Y = 2
	s.Paddles[1].Pos.Y = s.World.H - s.Paddles[1].H - 1

	in := core.NewInputFrame()
	in.Set(core.ActionP1Up)
	in.Set(core.ActionP2Down)
	Step(&s, in, cfg)

	if s.Paddles[0].Pos.Y != 0 {
		t.Errorf("P1 y = %v, want 0", s.Paddles[0].Pos.Y)
	}
	if want := s.World.H - s.Paddles[1].H; s.Paddles[1].Pos.Y != want {
		t.Errorf("P2 y = %v, want %v", s.Paddles[1].Pos.Y, want)
	}
}

func TestPaddleMovementBothKeysCancel(t *testing.T) {
	s, cfg := newTestState()
	y := s.Paddles[0].Pos.Y

	in := core.NewInputFrame()
	in.Set(core.ActionP1Up)
	in.Set(core.ActionP1Down)
	Step(&s, in, cfg)

	if s.Paddles[0].Pos.Y != y {
		t.Errorf("P1 y = %v, want %v", s.Paddles[0].Pos.Y, y)
	}
}

func TestServeDirection(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if got := ServeDirection(core.Player1, rng); got != HeadingSE {
		t.Errorf("after P1 point: %v, want SE", got)
	}
	if got := ServeDirection(core.Player2, rng); got != HeadingSW {
		t.Errorf("after P2 point: %v, want SW", got)
	}

	seen := map[Heading]bool{}
	for i := 0; i < 100; i++ {
		h := ServeDirection(core.NoPlayer, rng)
		if h != HeadingSE && h != HeadingSW {
			t.Fatalf("random serve %v, want SE or SW", h)
		}
		seen[h] = true
	}
	if !seen[HeadingSE] || !seen[HeadingSW] {
		t.Errorf("random serve never varied: %v", seen)
	}
}

func TestServeResetsBoardKeepsIncrement(t *testing.T) {
	s, cfg := newTestState()
	s.Ball.Increment = 1.5
	s.Ball.Pos = core.Vec2{X: 10, Y: 10}
	s.Paddles[0].Pos.Y = 0
	s.Stats.CurrentBounces = 7
	s.Stats.TotalBounces = 7
	s.Stats.LastScorer = core.Player2

	h := Serve(&s, cfg, rand.New(rand.NewSource(1)))
	if h != HeadingSW {
		t.Errorf("heading = %v, want SW", h)
	}
	if s.Ball.Pos != (core.Vec2{X: 400, Y: 200}) {
		t.Errorf("ball not centered: %+v", s.Ball.Pos)
	}
	if s.Ball.Vel != (core.Vec2{X: -cfg.Ball.ServeSpeedX, Y: cfg.Ball.ServeSpeedY}) {
		t.Errorf("Vel = %+v", s.Ball.Vel)
	}
	if s.Paddles[0].Pos.Y != (s.World.H-cfg.Paddle.Height)/2 {
		t.Errorf("paddle not centered: %v", s.Paddles[0].Pos.Y)
	}
	if s.Ball.Increment != 1.5 {
		t.Errorf("Increment = %v, want 1.5", s.Ball.Increment)
	}
	if s.Stats.CurrentBounces != 0 {
		t.Errorf("CurrentBounces = %d, want 0", s.Stats.CurrentBounces)
	}
	if s.Stats.TotalBounces != 7 {
		t.Errorf("TotalBounces = %d, want 7", s.Stats.TotalBounces)
	}
}
