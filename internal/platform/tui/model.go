package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/match"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

type view int

const (
	viewSetup view = iota
	viewMatch
	viewHistory
)

// Options configure an App.
type Options struct {
	Config       config.MatchConfig
	Store        *storage.Store // nil disables persistence and history
	Logger       *log.Logger    // nil discards
	Seed         int64          // 0 picks a time-based seed
	FPS          int            // 0 uses the config tick rate
	Width        int
	Height       int
	Players      [2]string // prefilled names
	TournamentID string    // play the next pairing of this bracket
	FirstHold    time.Duration
	RepeatHold   time.Duration
}

// App is the Bubble Tea model hosting one match session at a time:
// the setup form, the match itself, and the history table.
type App struct {
	opts   Options
	logger *log.Logger
	keys   KeyMap
	help   help.Model

	inputs  [2]textinput.Model
	focus   int
	formErr string
	bracket *storage.BracketMatch

	clock    *match.Clock
	ctrl     *match.Controller
	host     *sessionHost
	hold     *KeyHold
	renderer Renderer
	epoch    time.Time
	sessions int64

	screen   *core.Screen
	history  HistoryModel
	view     view
	width    int
	height   int
	quitting bool
}

// NewApp creates the app with a fresh session on the setup form.
func NewApp(opts Options) App {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.FPS <= 0 {
		opts.FPS = opts.Config.Rules.TickRate
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.FirstHold <= 0 {
		opts.FirstHold = DefaultFirstHold
	}
	if opts.RepeatHold <= 0 {
		opts.RepeatHold = DefaultRepeatHold
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 80, 24
	}

	m := App{
		opts:   opts,
		logger: opts.Logger,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		screen: core.NewScreen(opts.Width, opts.Height),
		width:  opts.Width,
		height: opts.Height,
	}
	m.help.Width = opts.Width

	placeholders := [2]string{"Left player", "Right player"}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 16
		ti.Width = 20
		ti.SetValue(opts.Players[i])
		m.inputs[i] = ti
	}
	m.newSession()
	return m
}

// newSession closes the current controller and opens a new one in START.
func (m *App) newSession() {
	if m.ctrl != nil {
		m.ctrl.Close()
	}
	m.sessions++

	var submitter match.StatsSubmitter
	if m.opts.Store != nil {
		submitter = m.opts.Store
	}

	m.clock = match.NewClock()
	m.host = newSessionHost(m.logger)
	m.ctrl = match.NewController(match.Options{
		Config:    m.opts.Config,
		Scheduler: m.clock,
		Host:      m.host,
		Submitter: submitter,
		Logger:    m.logger,
		Seed:      m.opts.Seed + m.sessions,
	})
	controls := m.ctrl.Controls()
	m.hold = NewKeyHold(m.ctrl, m.opts.FirstHold, m.opts.RepeatHold,
		controls.Code(core.ActionPause), controls.Code(core.ActionEscape))
	m.renderer = NewRenderer(controls, m.opts.Config.Rules.StepDuration())
	m.epoch = time.Time{}
	m.view = viewSetup
	m.formErr = ""
	m.bracket = nil

	if m.opts.TournamentID != "" {
		m.loadBracket()
	}

	m.focus = 0
	m.inputs[0].Focus()
	m.inputs[1].Blur()
}

// loadBracket picks the next playable pairing of the tournament.
func (m *App) loadBracket() {
	if m.opts.Store == nil {
		m.formErr = "Tournament play needs a database"
		return
	}
	next, err := m.opts.Store.NextTournamentMatch(m.opts.TournamentID)
	if err != nil {
		m.logger.Error("load tournament", "tournament", m.opts.TournamentID, "err", err)
		m.formErr = "Could not load tournament: " + err.Error()
		return
	}
	if next == nil {
		m.formErr = "No playable match left in this tournament"
		return
	}
	m.bracket = next
	m.inputs[0].SetValue(next.Player1)
	m.inputs[1].SetValue(next.Player2)
}

// Init starts the cursor blink and the tick loop.
func (m App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tickCmd(m.opts.FPS))
}

// Update handles messages and updates the model state.
func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		if m.view == viewHistory {
			m.history, _ = m.history.Update(msg)
		}
		return m, nil

	case TickMsg:
		m.advance(time.Time(msg))
		return m, tickCmd(m.opts.FPS)

	case tea.BlurMsg:
		m.hold.Blur()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m.quit()
		}
		switch m.view {
		case viewSetup:
			return m.updateSetup(msg)
		case viewHistory:
			return m.updateHistory(msg)
		default:
			return m.updateMatch(msg)
		}
	}

	if m.view == viewSetup {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

// advance moves the match clock to the wall time of a tick.
func (m *App) advance(t time.Time) {
	if m.epoch.IsZero() {
		m.epoch = t.Add(-m.clock.Now())
	}
	now := t.Sub(m.epoch)
	m.hold.Expire(now)
	m.clock.Advance(now)
}

func (m App) updateSetup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m.quit()

	case key.Matches(msg, m.keys.Start):
		m.start()
		return m, nil

	case key.Matches(msg, m.keys.NextField), key.Matches(msg, m.keys.PrevField):
		m.inputs[m.focus].Blur()
		m.focus = 1 - m.focus
		return m, m.inputs[m.focus].Focus()
	}

	// bracket pairings are fixed
	if m.bracket != nil {
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.formErr = ""
	return m, cmd
}

// start registers both names and starts the match. A rejection stays on
// the form with the reason shown inline.
func (m *App) start() {
	if m.opts.TournamentID != "" && m.bracket == nil {
		return
	}
	if m.bracket != nil {
		if err := m.ctrl.Link(m.bracket.Linkage()); err != nil {
			m.formErr = setupError(err)
			return
		}
	}

	// clear both slots so a swapped pair is not reported as a duplicate
	_ = m.ctrl.Register(core.Player1, "")
	_ = m.ctrl.Register(core.Player2, "")
	for i, p := range []core.PlayerID{core.Player1, core.Player2} {
		if err := m.ctrl.Register(p, m.inputs[i].Value()); err != nil {
			m.formErr = setupError(err)
			return
		}
	}
	if err := m.ctrl.Start(); err != nil {
		m.formErr = setupError(err)
		return
	}

	m.formErr = ""
	m.inputs[0].Blur()
	m.inputs[1].Blur()
	m.view = viewMatch
}

func setupError(err error) string {
	switch {
	case errors.Is(err, match.ErrPlayersMissing):
		return "Both players must enter a name"
	case errors.Is(err, match.ErrDuplicatePlayer):
		return "Players must have different names"
	default:
		return err.Error()
	}
}

func (m App) updateMatch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	code := inputCode(msg)

	// the match owns the keyboard
	if m.host.Locked() {
		m.hold.Press(code, m.clock.Now())
		return m, nil
	}

	if m.ctrl.Phase() == match.PhaseGameOver {
		return m.updateGameOver(msg)
	}

	if key.Matches(msg, m.keys.Quit) {
		return m.quit()
	}
	m.hold.Press(code, m.clock.Now())
	return m, nil
}

func (m App) updateGameOver(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Restart):
		if err := m.ctrl.Restart(); err != nil {
			m.logger.Debug("restart rejected", "err", err)
		}

	case key.Matches(msg, m.keys.NewMatch):
		// the next bracket pairing is only known once the result is stored
		if m.ctrl.Snapshot().Submit == match.SubmitPending {
			return m, nil
		}
		m.newSession()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.History):
		m.history = NewHistoryModel(m.opts.Store, m.width, m.height)
		m.view = viewHistory

	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	}
	return m, nil
}

func (m App) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.history, cmd = m.history.Update(msg)
	switch {
	case m.history.IsQuitting():
		return m.quit()
	case m.history.IsGoingBack():
		m.view = viewMatch
	}
	return m, cmd
}

func (m App) quit() (tea.Model, tea.Cmd) {
	m.ctrl.Close()
	m.quitting = true
	return m, tea.Quit
}

// View renders the current state to a string for display.
func (m App) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewSetup:
		return m.setupView()
	case viewHistory:
		return m.history.View()
	}

	snap := m.ctrl.Snapshot()
	var notice *match.Notice
	if n, ok := m.host.Notice(m.clock.Now()); ok {
		notice = &n
	}

	if snap.Final != nil {
		var b strings.Builder
		b.WriteString(RenderFinal(*snap.Final, snap.Submit))
		if notice != nil {
			b.WriteString("\n" + errorStyle.Render(notice.Message))
		}
		b.WriteString("\n" + hintStyle.Render(m.help.View(m.keys)))
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
	}

	m.renderer.Render(m.screen, snap, notice)
	return RenderScreen(m.screen)
}

func (m App) setupView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("P O N G"))
	b.WriteString("\n\n")

	if m.bracket != nil {
		b.WriteString(labelStyle.Render(fmt.Sprintf("Tournament round %d, match %d", m.bracket.Round, m.bracket.Slot+1)))
		b.WriteString("\n\n")
	}

	controls := m.ctrl.Controls()
	labels := [2]string{
		fmt.Sprintf("Left paddle (%s/%s)",
			keyLabel(controls.Code(core.ActionP1Up)), keyLabel(controls.Code(core.ActionP1Down))),
		fmt.Sprintf("Right paddle (%s/%s)",
			keyLabel(controls.Code(core.ActionP2Up)), keyLabel(controls.Code(core.ActionP2Down))),
	}
	for i, in := range m.inputs {
		b.WriteString(labelStyle.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n\n")
	}

	if m.formErr != "" {
		b.WriteString(errorStyle.Render(m.formErr))
		b.WriteString("\n\n")
	}
	b.WriteString(hintStyle.Render(m.help.View(setupHelp{m.keys})))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, panelStyle.Render(b.String()))
}

// Run starts the Bubble Tea program with a new app.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewApp(opts),
		tea.WithAltScreen(),   // Use alternate screen buffer
		tea.WithReportFocus(), // Focus loss releases held keys
	)

	_, err := p.Run()
	return err
}
