package match

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
)

var (
	ErrPlayersMissing     = errors.New("both players must be registered")
	ErrRestartUnavailable = errors.New("restart is only available while paused or after game over")
	ErrTournamentRestart  = errors.New("tournament matches cannot be restarted")
	ErrInvalidPhase       = errors.New("action not available in this phase")
	ErrInvalidPlayer      = errors.New("invalid player")
	ErrDuplicatePlayer    = errors.New("players must have different names")
	ErrClosed             = errors.New("match session closed")
)

// Options configure a Controller.
type Options struct {
	Config    config.MatchConfig
	Scheduler Scheduler
	Host      Host           // nil means NopHost
	Submitter StatsSubmitter // nil skips persistence
	Logger    *log.Logger    // nil discards
	Seed      int64          // serve direction RNG seed
}

// Controller owns one match session: the state, the controls, the loop and
// the timers. All methods must be called from the scheduler's goroutine.
type Controller struct {
	cfg       config.MatchConfig
	sched     Scheduler
	host      Host
	submitter StatsSubmitter
	logger    *log.Logger
	rng       *rand.Rand

	state    State
	controls core.Controls
	wired    bool
	loop     *Loop
	alpha    float64

	countdown      Timer
	countdownValue int
	scoredTimer    Timer
	servePending   bool

	final  *FinalStats
	submit SubmitState
	notice *Notice
	closed bool
}

// NewController creates a session in START.
func NewController(opts Options) *Controller {
	c := &Controller{
		cfg:       opts.Config,
		sched:     opts.Scheduler,
		host:      opts.Host,
		submitter: opts.Submitter,
		logger:    opts.Logger,
		rng:       rand.New(rand.NewSource(opts.Seed)),
		state:     NewState(opts.Config),
		controls:  core.NewControls(opts.Config.Controls.Bindings()),
	}
	if c.sched == nil {
		c.sched = NewClock()
	}
	if c.host == nil {
		c.host = NopHost{}
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	c.loop = NewLoop(c.sched, c.cfg.Rules.StepDuration(), c.tick, c.render)
	return c
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	return c.state.Phase
}

// Controls returns a copy of the session's key bindings and held state.
func (c *Controller) Controls() core.Controls {
	return c.controls.Clone()
}

// Final returns the finalized statistics once the match is over.
func (c *Controller) Final() (FinalStats, bool) {
	if c.final == nil {
		return FinalStats{}, false
	}
	return *c.final, true
}

// Register fills a player slot. Only allowed in START.
func (c *Controller) Register(p core.PlayerID, name string) error {
	if c.closed {
		return ErrClosed
	}
	if c.state.Phase != PhaseStart {
		return ErrInvalidPhase
	}
	if p.Index() < 0 {
		return ErrInvalidPlayer
	}
	name = strings.TrimSpace(name)
	if name != "" && strings.EqualFold(name, c.state.Players[p.Opponent().Index()]) {
		return ErrDuplicatePlayer
	}
	c.state.Players[p.Index()] = name
	return nil
}

// Link attaches match and tournament ids. Only allowed in START.
func (c *Controller) Link(l Linkage) error {
	if c.closed {
		return ErrClosed
	}
	if c.state.Phase != PhaseStart {
		return ErrInvalidPhase
	}
	c.state.Link = l
	return nil
}

// Start moves from START to WAITING. Without both players nothing changes
// and the host is told why.
func (c *Controller) Start() error {
	if c.closed {
		return ErrClosed
	}
	if c.state.Phase != PhaseStart {
		return ErrInvalidPhase
	}
	if !c.state.Registered() {
		c.notify(NoticeWarn, "Both players must enter a name before the match can start")
		c.logger.Warn("start rejected", "p1", c.state.Players[0], "p2", c.state.Players[1])
		return ErrPlayersMissing
	}

	if c.state.Link.MatchID == "" {
		c.state.Link.MatchID = uuid.NewString()
	}
	c.servePending = true
	c.logger.Info("match created",
		"match", c.state.Link.MatchID,
		"tournament", c.state.Link.TournamentID,
		"p1", c.state.Players[0],
		"p2", c.state.Players[1])
	c.transition(PhaseWaiting)
	return nil
}

// KeyDown feeds a key press. Repeats of a held key are ignored.
func (c *Controller) KeyDown(code string) {
	if c.closed || !c.wired {
		return
	}
	action, pressed := c.controls.Press(code)
	if !pressed {
		return
	}

	switch c.state.Phase {
	case PhaseWaiting:
		c.ready(action)
	case PhaseCountdown, PhasePlaying:
		if action == core.ActionPause {
			_ = c.Pause()
		}
	case PhasePaused:
		switch action {
		case core.ActionPause:
			_ = c.Resume()
		case core.ActionEscape:
			if err := c.Restart(); err != nil {
				c.logger.Debug("restart rejected", "err", err)
			}
		}
	}
}

// KeyUp feeds a key release.
func (c *Controller) KeyUp(code string) {
	if c.closed {
		return
	}
	c.controls.Release(code)
}

// Blur force-releases every held key. Hosts call it when focus is lost.
func (c *Controller) Blur() {
	c.controls.ReleaseAll()
}

// Pause stops play during COUNTDOWN or PLAYING.
func (c *Controller) Pause() error {
	if c.closed {
		return ErrClosed
	}
	switch c.state.Phase {
	case PhaseCountdown, PhasePlaying:
		c.transition(PhasePaused)
		return nil
	}
	return ErrInvalidPhase
}

// Resume leaves PAUSED. Play always comes back through a countdown.
func (c *Controller) Resume() error {
	if c.closed {
		return ErrClosed
	}
	if c.state.Phase != PhasePaused {
		return ErrInvalidPhase
	}
	c.transition(PhaseCountdown)
	return nil
}

// Restart resets score and statistics and returns to WAITING.
// Tournament matches cannot be restarted.
func (c *Controller) Restart() error {
	if c.closed {
		return ErrClosed
	}
	if c.state.Phase != PhasePaused && c.state.Phase != PhaseGameOver {
		return ErrRestartUnavailable
	}
	if c.state.Link.Tournament() {
		c.notify(NoticeWarn, "Tournament matches cannot be restarted")
		return ErrTournamentRestart
	}
	c.transition(PhaseRestart)
	return nil
}

// Close ends the session. Timers and the loop are cancelled and a
// submission still in flight is no longer reported.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.cancelTimers()
	c.loop.Stop()
	c.unwireInput()
	c.host.SetInputLock(false)
	c.closed = true
	c.logger.Debug("session closed", "match", c.state.Link.MatchID)
}

func (c *Controller) ready(action core.Action) {
	switch action {
	case core.UpAction(core.Player1):
		c.state.Ready[0] = true
	case core.UpAction(core.Player2):
		c.state.Ready[1] = true
	default:
		return
	}
	if c.state.Ready[0] && c.state.Ready[1] {
		c.transition(PhaseCountdown)
	}
}

// transition moves along a legal edge and runs the entry effects of to.
func (c *Controller) transition(to Phase) bool {
	from := c.state.Phase
	if !canTransition(from, to) {
		c.logger.Warn("illegal transition", "from", from, "to", to)
		return false
	}
	c.state.Phase = to
	c.logger.Debug("phase", "from", from, "to", to)
	c.host.SetInputLock(to.InputLocked())

	switch to {
	case PhaseWaiting:
		c.wireInput()
		c.state.Ready = [2]bool{}
	case PhaseCountdown:
		if from == PhasePaused {
			c.state.Stats.EndPause(c.sched.Now())
		}
		c.enterCountdown()
	case PhasePlaying:
		c.state.Stats.BeginMatch(c.sched.Now())
		c.state.Stats.BeginRally(c.sched.Now())
		c.loop.Start()
	case PhasePaused:
		c.loop.Stop()
		stopTimer(&c.countdown)
		c.state.Stats.BeginPause(c.sched.Now())
		c.state.Stats.HoldRally(c.sched.Now())
	case PhaseScored:
		stopTimer(&c.scoredTimer)
		c.scoredTimer = c.sched.AfterFunc(c.cfg.Rules.ScoredDelay, c.afterScored)
	case PhaseGameOver:
		c.enterGameOver()
	case PhaseRestart:
		c.enterRestart()
	}
	return true
}

func (c *Controller) enterCountdown() {
	if c.servePending {
		h := Serve(&c.state, c.cfg, c.rng)
		c.state.Stats.ResetRally()
		c.servePending = false
		c.logger.Debug("serve", "heading", h, "last_scorer", c.state.Stats.LastScorer)
	}

	stopTimer(&c.countdown)
	c.countdownValue = max(c.cfg.Rules.CountdownFrom, 1)
	c.countdown = c.sched.Every(c.cfg.Rules.CountdownInterval, c.countdownTick)
}

func (c *Controller) countdownTick() {
	c.countdownValue--
	if c.countdownValue > 0 {
		return
	}
	stopTimer(&c.countdown)
	c.transition(PhasePlaying)
}

func (c *Controller) afterScored() {
	c.scoredTimer = nil
	c.servePending = true
	c.transition(PhaseCountdown)
}

// tick is the loop's physics callback.
func (c *Controller) tick() {
	in := c.controls.Snapshot()
	res := Step(&c.state, in, c.cfg)
	if !res.Scored {
		return
	}

	c.loop.Stop()
	now := c.sched.Now()
	d := c.state.Stats.EndRally(now, res.Scorer, c.state.Ball.Speed())
	score := c.state.Stats.Player(res.Scorer).Score
	c.logger.Debug("point",
		"scorer", res.Scorer,
		"score", fmt.Sprintf("%d-%d", c.state.Stats.Players[0].Score, c.state.Stats.Players[1].Score),
		"rally", d)

	if score >= c.cfg.Rules.WinningScore {
		c.transition(PhaseGameOver)
		return
	}
	c.transition(PhaseScored)
}

func (c *Controller) render(alpha float64) {
	c.alpha = alpha
}

func (c *Controller) enterGameOver() {
	c.cancelTimers()
	c.loop.Stop()
	c.unwireInput()

	final := c.state.Stats.Finalize(c.sched.Now(), c.state.Players, c.state.Link)
	c.final = &final
	c.logger.Info("match over",
		"match", final.Link.MatchID,
		"winner", final.WinnerName,
		"score", fmt.Sprintf("%d-%d", final.Players[0].Score, final.Players[1].Score),
		"rallies", final.TotalRallies)

	if c.submitter == nil {
		c.submit = SubmitSkipped
		return
	}
	c.submit = SubmitPending
	c.submitAsync(final)
}

// submitAsync hands the stats to the submitter on its own goroutine and
// posts the outcome back to the scheduler.
func (c *Controller) submitAsync(final FinalStats) {
	timeout := c.cfg.Rules.SubmitTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	submitter := c.submitter
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := submitter.SubmitMatchStats(ctx, final)
		c.sched.Post(func() { c.submitted(final.Link.MatchID, err) })
	}()
}

func (c *Controller) submitted(matchID string, err error) {
	if c.closed {
		return
	}
	// a restart may already have started a new match
	if c.final == nil || c.final.Link.MatchID != matchID {
		if err != nil {
			c.logger.Error("submit match stats", "match", matchID, "err", err)
		}
		return
	}
	if err != nil {
		c.submit = SubmitFailed
		c.logger.Error("submit match stats", "match", matchID, "err", err)
		c.notify(NoticeError, "Could not save match results: "+err.Error())
		return
	}
	c.submit = SubmitSaved
	c.logger.Info("match stats saved", "match", matchID)
}

func (c *Controller) enterRestart() {
	c.cancelTimers()
	c.loop.Stop()
	resetMatch(&c.state, c.cfg)
	c.state.Link.MatchID = uuid.NewString()
	c.servePending = true
	c.final = nil
	c.submit = SubmitNone
	c.countdownValue = 0
	c.logger.Info("match restarted", "match", c.state.Link.MatchID)
	c.transition(PhaseWaiting)
}

func (c *Controller) cancelTimers() {
	stopTimer(&c.countdown)
	stopTimer(&c.scoredTimer)
}

func (c *Controller) wireInput() {
	c.controls.ReleaseAll()
	c.wired = true
}

func (c *Controller) unwireInput() {
	c.controls.ReleaseAll()
	c.wired = false
}

func (c *Controller) notify(kind NoticeKind, msg string) {
	n := Notice{Kind: kind, Message: msg, At: c.sched.Now()}
	c.notice = &n
	c.host.Notify(n)
}

// stopTimer cancels the timer behind h, if any, and clears the handle.
func stopTimer(h *Timer) {
	if *h != nil {
		(*h).Stop()
		*h = nil
	}
}
