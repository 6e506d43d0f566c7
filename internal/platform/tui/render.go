package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/match"
)

// Minimum terminal size for drawing the court.
const (
	minCourtW = 24
	minCourtH = 10
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorOrange:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Court projects world coordinates onto the screen. Row 0 holds the
// scoreboard, the last row the status line, and the court box fills the rest.
type Court struct {
	world  match.World
	box    core.Rect
	innerW int
	innerH int
}

// NewCourt lays a court out on a screen of the given size.
func NewCourt(world match.World, width, height int) Court {
	box := core.NewRect(0, 1, width, height-2)
	return Court{
		world:  world,
		box:    box,
		innerW: max(box.W-2, 1),
		innerH: max(box.H-2, 1),
	}
}

// CellX maps a world x coordinate to a screen column inside the court.
func (c Court) CellX(x float64) int {
	col := int(x / c.world.W * float64(c.innerW))
	return c.box.X + 1 + core.Clamp(col, 0, c.innerW-1)
}

// CellY maps a world y coordinate to a screen row inside the court.
func (c Court) CellY(y float64) int {
	row := int(y / c.world.H * float64(c.innerH))
	return c.box.Y + 1 + core.Clamp(row, 0, c.innerH-1)
}

// Renderer draws match snapshots onto a screen.
type Renderer struct {
	controls core.Controls
	step     time.Duration
}

// NewRenderer creates a renderer for a session's controls and fixed step.
func NewRenderer(controls core.Controls, step time.Duration) Renderer {
	return Renderer{controls: controls, step: step}
}

// Render draws snap onto s. notice, when non-nil, replaces the status line.
func (r Renderer) Render(s *core.Screen, snap match.Snapshot, notice *match.Notice) {
	s.Clear()
	w, h := s.Width(), s.Height()
	if w < minCourtW || h < minCourtH {
		s.DrawTextCentered(h/2, "Terminal too small", core.ColorRed)
		return
	}

	court := NewCourt(snap.World, w, h)
	r.drawScoreboard(s, snap)
	s.DrawBox(court.box, core.ColorWall)
	s.DrawVLine(w/2, court.box.Y+1, court.innerH, 2, '┊', core.ColorNet)

	for i, p := range snap.Paddles {
		left, top := court.CellX(p.Pos.X), court.CellY(p.Pos.Y)
		right, bottom := court.CellX(p.Pos.X+p.W-0.001), court.CellY(p.Pos.Y+p.H-0.001)
		rect := core.NewRect(left, top, right-left+1, bottom-top+1)
		s.DrawRect(rect, '█', core.PlayerColor(core.PlayerID(i+1)))
	}

	ball := snap.Ball.Pos
	if snap.Phase == match.PhasePlaying {
		// draw where the ball will be after the leftover fraction of a step
		ball = ball.Add(snap.Ball.Vel.Scale(snap.Alpha * r.step.Seconds()))
	}
	s.SetColored(court.CellX(ball.X), court.CellY(ball.Y), '●', core.ColorBall)

	r.drawOverlay(s, snap)
	r.drawStatus(s, snap, notice)
}

func (r Renderer) drawScoreboard(s *core.Screen, snap match.Snapshot) {
	w := s.Width()
	score := fmt.Sprintf("%d : %d", snap.Score(core.Player1), snap.Score(core.Player2))
	s.DrawTextCentered(0, score, core.ColorWhite)
	s.DrawTextColored(2, 0, snap.Players[0], core.ColorPlayer1)
	right := []rune(snap.Players[1])
	s.DrawTextColored(w-2-len(right), 0, snap.Players[1], core.ColorPlayer2)
}

func (r Renderer) drawOverlay(s *core.Screen, snap match.Snapshot) {
	mid := s.Height() / 2
	switch snap.Phase {
	case match.PhaseWaiting:
		s.DrawTextCentered(mid-2, "GET READY", core.ColorWhite)
		for i, p := range snap.Prompts {
			line := fmt.Sprintf("%s: press %s", p.Name, keyLabel(p.Code))
			color := core.PlayerColor(p.Player)
			if p.Ready {
				line = fmt.Sprintf("%s: READY", p.Name)
				color = core.ColorGreen
			}
			s.DrawTextCentered(mid+i, line, color)
		}
	case match.PhaseCountdown:
		if snap.Countdown > 0 {
			s.DrawTextCentered(mid, fmt.Sprintf(" %d ", snap.Countdown), core.ColorYellow)
		}
	case match.PhaseScored:
		if who := snap.Stats.LastScorer; who != core.NoPlayer {
			s.DrawTextCentered(mid, fmt.Sprintf(" %s scores! ", snap.Players[who.Index()]), core.PlayerColor(who))
		}
	case match.PhasePaused:
		s.DrawTextCentered(mid-1, " PAUSED ", core.ColorYellow)
		hint := fmt.Sprintf(" %s resume  %s restart ",
			keyLabel(r.controls.Code(core.ActionPause)), keyLabel(r.controls.Code(core.ActionEscape)))
		if snap.Link.Tournament() {
			hint = fmt.Sprintf(" %s resume ", keyLabel(r.controls.Code(core.ActionPause)))
		}
		s.DrawTextCentered(mid+1, hint, core.ColorGray)
	case match.PhaseGameOver:
		s.DrawTextCentered(mid, " GAME OVER ", core.ColorRed)
	}
}

func (r Renderer) drawStatus(s *core.Screen, snap match.Snapshot, notice *match.Notice) {
	y := s.Height() - 1
	if notice != nil {
		color := core.ColorNotice
		if notice.Kind == match.NoticeError {
			color = core.ColorRed
		}
		s.DrawTextCentered(y, notice.Message, color)
		return
	}

	var status string
	switch snap.Phase {
	case match.PhasePlaying, match.PhaseCountdown:
		status = fmt.Sprintf("%s/%s  %s/%s  %s pause  |  rally %d",
			keyLabel(r.controls.Code(core.ActionP1Up)), keyLabel(r.controls.Code(core.ActionP1Down)),
			keyLabel(r.controls.Code(core.ActionP2Up)), keyLabel(r.controls.Code(core.ActionP2Down)),
			keyLabel(r.controls.Code(core.ActionPause)),
			snap.Stats.CurrentBounces)
	case match.PhaseWaiting, match.PhasePaused:
		status = "q quit"
	default:
		status = snap.Phase.String()
	}
	s.DrawTextCentered(y, status, core.ColorGray)
}

var (
	panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(1, 3)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// RenderFinal renders the game-over statistics panel.
func RenderFinal(f match.FinalStats, submit match.SubmitState) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s wins %d-%d",
		f.WinnerName, f.Winning().Score, f.Losing().Score)))
	b.WriteString("\n\n")

	row := func(label, a, c string) {
		fmt.Fprintf(&b, "%s %-14s %-14s\n", labelStyle.Render(fmt.Sprintf("%-22s", label)), a, c)
	}
	p1, p2 := f.Players[0], f.Players[1]
	row("", p1.Name, p2.Name)
	row("Score", strconv.Itoa(p1.Score), strconv.Itoa(p2.Score))
	row("Best win streak", strconv.Itoa(p1.MaxConsecutiveWins), strconv.Itoa(p2.MaxConsecutiveWins))
	row("Paddle hits", strconv.Itoa(p1.PaddleHits), strconv.Itoa(p2.PaddleHits))
	row("Spin shots", strconv.Itoa(p1.Effects), strconv.Itoa(p2.Effects))
	row("Longest won rally", strconv.Itoa(p1.MaxBouncesWonRally), strconv.Itoa(p2.MaxBouncesWonRally))
	row("Fastest won rally", formatDuration(p1.FastestWonRally), formatDuration(p2.FastestWonRally))
	row("Fastest lost rally", formatDuration(p1.FastestLostRally), formatDuration(p2.FastestLostRally))
	row("Top speed scoring", formatSpeed(p1.MaxSpeedWonRally), formatSpeed(p2.MaxSpeedWonRally))
	row("Top speed conceding", formatSpeed(p1.MaxSpeedLostRally), formatSpeed(p2.MaxSpeedLostRally))
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s %d rallies, %d bounces (%.1f per rally)\n",
		labelStyle.Render("Match:"), f.TotalRallies, f.TotalBounces, f.AvgBouncesPerRally)
	fmt.Fprintf(&b, "%s %s played, %s paused, %s per rally\n",
		labelStyle.Render("Time: "), formatDuration(f.MatchDuration),
		formatDuration(f.PausedDuration), formatDuration(f.AvgRallyDuration))

	switch submit {
	case match.SubmitSaved:
		b.WriteString("\n" + okStyle.Render("Results "+submit.String()))
	case match.SubmitFailed:
		b.WriteString("\n" + errorStyle.Render("Results could not be saved"))
	case match.SubmitPending, match.SubmitSkipped:
		b.WriteString("\n" + hintStyle.Render("Results "+submit.String()))
	}

	return panelStyle.Render(b.String())
}

// formatDuration prints durations as seconds with one decimal.
// Zero means the value was never recorded.
func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func formatSpeed(v float64) string {
	if v <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f u/s", v)
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
