package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines the host's own key bindings. Match keys (paddles, pause,
// escape) come from the match config and are not listed here.
type KeyMap struct {
	Start     key.Binding
	NextField key.Binding
	PrevField key.Binding
	Restart   key.Binding
	NewMatch  key.Binding
	History   key.Binding
	Back      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// ShortHelp returns key bindings for the game-over help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Restart, k.NewMatch, k.History, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.NextField, k.PrevField},
		{k.Restart, k.NewMatch, k.History},
		{k.Back, k.Quit, k.ForceQuit},
	}
}

// setupHelp lists the bindings active on the setup form.
type setupHelp struct{ k KeyMap }

func (s setupHelp) ShortHelp() []key.Binding {
	return []key.Binding{s.k.Start, s.k.NextField, s.k.Back}
}

func (s setupHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{s.ShortHelp()}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start match"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("S-tab", "prev field"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rematch"),
		),
		NewMatch: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new match"),
		),
		History: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "history"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit now"),
		),
	}
}

// inputCode returns the code a key message is matched against in the
// match controls. Bubble Tea reports space as " ".
func inputCode(msg tea.KeyMsg) string {
	code := msg.String()
	if code == " " {
		return "space"
	}
	return code
}

// keyLabel returns a short display label for a control code.
func keyLabel(code string) string {
	switch code {
	case "up":
		return "↑"
	case "down":
		return "↓"
	case "left":
		return "←"
	case "right":
		return "→"
	case "":
		return "?"
	}
	return strings.ToUpper(code)
}
