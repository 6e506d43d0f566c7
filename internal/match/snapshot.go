package match

import "github.com/vovakirdan/tui-pong/internal/core"

// ReadyPrompt describes one ready key shown during WAITING.
type ReadyPrompt struct {
	Player core.PlayerID
	Name   string
	Code   string
	Ready  bool
}

// Snapshot is a read-only copy of a session for presentation.
// Nothing in it aliases controller state.
type Snapshot struct {
	World     World
	Ball      Ball
	Paddles   [2]Paddle
	Phase     Phase
	Countdown int // seconds left while in COUNTDOWN, else 0
	Ready     [2]bool
	Prompts   []ReadyPrompt
	Players   [2]string
	Link      Linkage
	Stats     LiveStats
	Alpha     float64 // leftover step fraction from the last frame
	Notice    *Notice
	Final     *FinalStats
	Submit    SubmitState
	InputLock bool
}

// Score returns the score of a side.
func (s Snapshot) Score(p core.PlayerID) int {
	return s.Stats.Players[p.Index()].Score
}

// Snapshot copies the current state of the session.
func (c *Controller) Snapshot() Snapshot {
	snap := Snapshot{
		World:     c.state.World,
		Ball:      c.state.Ball,
		Paddles:   c.state.Paddles,
		Phase:     c.state.Phase,
		Ready:     c.state.Ready,
		Players:   c.state.Players,
		Link:      c.state.Link,
		Stats:     c.state.Stats.Clone(),
		Alpha:     c.alpha,
		Submit:    c.submit,
		InputLock: c.state.Phase.InputLocked(),
	}
	if c.state.Phase == PhaseCountdown {
		snap.Countdown = c.countdownValue
	}
	if c.state.Phase == PhaseWaiting {
		for _, p := range []core.PlayerID{core.Player1, core.Player2} {
			snap.Prompts = append(snap.Prompts, ReadyPrompt{
				Player: p,
				Name:   c.state.Players[p.Index()],
				Code:   c.controls.Code(core.UpAction(p)),
				Ready:  c.state.Ready[p.Index()],
			})
		}
	}
	if c.notice != nil {
		n := *c.notice
		snap.Notice = &n
	}
	if c.final != nil {
		f := *c.final
		snap.Final = &f
	}
	return snap
}
