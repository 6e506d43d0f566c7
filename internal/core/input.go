package core

// Action represents a logical match action, abstracted from physical key presses.
// Both players share one local keyboard, so every action is bound to exactly one code.
type Action int

const (
	ActionNone   Action = iota
	ActionP1Up          // W - left paddle up, P1 ready key
	ActionP1Down        // S - left paddle down
	ActionP2Up          // Up arrow - right paddle up, P2 ready key
	ActionP2Down        // Down arrow - right paddle down
	ActionPause         // P - pause/resume
	ActionEscape        // Esc - restart from pause (casual matches)
)

// Actions lists every bindable action in declaration order.
var Actions = []Action{
	ActionP1Up,
	ActionP1Down,
	ActionP2Up,
	ActionP2Down,
	ActionPause,
	ActionEscape,
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionP1Up:
		return "P1 Up"
	case ActionP1Down:
		return "P1 Down"
	case ActionP2Up:
		return "P2 Up"
	case ActionP2Down:
		return "P2 Down"
	case ActionPause:
		return "Pause"
	case ActionEscape:
		return "Escape"
	default:
		return "Unknown"
	}
}

// UpAction returns the "up" movement action for a player.
func UpAction(p PlayerID) Action {
	if p == Player2 {
		return ActionP2Up
	}
	return ActionP1Up
}

// DownAction returns the "down" movement action for a player.
func DownAction(p PlayerID) Action {
	if p == Player2 {
		return ActionP2Down
	}
	return ActionP1Down
}

// Binding pairs an input code with its current held state.
type Binding struct {
	Code string
	Held bool
}

// Controls is the logical-action -> {code, held} map owned by a match session.
// It is mutated by input events and read by the simulation through Snapshot.
type Controls struct {
	bindings map[Action]Binding
	byCode   map[string]Action
}

// NewControls creates controls from an action -> code table.
// Actions with an empty code stay unbound.
func NewControls(codes map[Action]string) Controls {
	c := Controls{
		bindings: make(map[Action]Binding, len(codes)),
		byCode:   make(map[string]Action, len(codes)),
	}
	for a, code := range codes {
		if code == "" {
			continue
		}
		c.bindings[a] = Binding{Code: code}
		c.byCode[code] = a
	}
	return c
}

// DefaultControls returns the default shared-keyboard layout.
func DefaultControls() Controls {
	return NewControls(map[Action]string{
		ActionP1Up:   "w",
		ActionP1Down: "s",
		ActionP2Up:   "up",
		ActionP2Down: "down",
		ActionPause:  "p",
		ActionEscape: "esc",
	})
}

// Lookup returns the action bound to a code.
func (c Controls) Lookup(code string) (Action, bool) {
	a, ok := c.byCode[code]
	return a, ok
}

// Code returns the input code bound to an action, or "" if unbound.
func (c Controls) Code(a Action) string {
	return c.bindings[a].Code
}

// Press marks the action bound to code as held.
// Returns the action and whether it transitioned from released to held.
func (c *Controls) Press(code string) (Action, bool) {
	a, ok := c.byCode[code]
	if !ok {
		return ActionNone, false
	}
	b := c.bindings[a]
	wasHeld := b.Held
	b.Held = true
	c.bindings[a] = b
	return a, !wasHeld
}

// Release marks the action bound to code as not held.
func (c *Controls) Release(code string) (Action, bool) {
	a, ok := c.byCode[code]
	if !ok {
		return ActionNone, false
	}
	b := c.bindings[a]
	b.Held = false
	c.bindings[a] = b
	return a, true
}

// ReleaseAll force-clears every held key.
func (c *Controls) ReleaseAll() {
	for a, b := range c.bindings {
		b.Held = false
		c.bindings[a] = b
	}
}

// Clone returns an independent copy. Pressing keys on the copy leaves c unchanged.
func (c Controls) Clone() Controls {
	out := Controls{
		bindings: make(map[Action]Binding, len(c.bindings)),
		byCode:   make(map[string]Action, len(c.byCode)),
	}
	for a, b := range c.bindings {
		out.bindings[a] = b
	}
	for code, a := range c.byCode {
		out.byCode[code] = a
	}
	return out
}

// Held reports whether the action is currently held.
func (c Controls) Held(a Action) bool {
	return c.bindings[a].Held
}

// Snapshot copies the held state into an InputFrame.
// The frame stays stable for a whole tick even if Controls changes meanwhile.
func (c Controls) Snapshot() InputFrame {
	f := NewInputFrame()
	for a, b := range c.bindings {
		if b.Held {
			f.Actions[a] = true
		}
	}
	return f
}

// InputFrame represents the held actions sampled for one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were held this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as held for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was held this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}
