package match

// Phase is the lifecycle stage of a match.
type Phase int

const (
	PhaseStart Phase = iota
	PhaseWaiting
	PhaseCountdown
	PhasePlaying
	PhasePaused
	PhaseScored
	PhaseGameOver
	PhaseRestart
)

var phaseNames = [...]string{
	PhaseStart:     "START",
	PhaseWaiting:   "WAITING",
	PhaseCountdown: "COUNTDOWN",
	PhasePlaying:   "PLAYING",
	PhasePaused:    "PAUSED",
	PhaseScored:    "SCORED",
	PhaseGameOver:  "GAMEOVER",
	PhaseRestart:   "RESTART",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "UNKNOWN"
	}
	return phaseNames[p]
}

// transitions lists every allowed edge of the lifecycle.
var transitions = map[Phase][]Phase{
	PhaseStart:     {PhaseWaiting},
	PhaseWaiting:   {PhaseCountdown},
	PhaseCountdown: {PhasePlaying, PhasePaused},
	PhasePlaying:   {PhasePaused, PhaseScored, PhaseGameOver},
	PhaseScored:    {PhaseCountdown},
	PhasePaused:    {PhaseCountdown, PhaseRestart},
	PhaseGameOver:  {PhaseRestart},
	PhaseRestart:   {PhaseWaiting},
}

// canTransition reports whether from -> to is a legal edge.
func canTransition(from, to Phase) bool {
	for _, p := range transitions[from] {
		if p == to {
			return true
		}
	}
	return false
}

// InputLocked reports whether the host should suppress its own handling
// of navigation-like keys during p.
func (p Phase) InputLocked() bool {
	switch p {
	case PhasePlaying, PhaseCountdown, PhaseScored:
		return true
	}
	return false
}
