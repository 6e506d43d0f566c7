package match

import (
	"time"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// OptDuration is a duration that may not have been recorded yet.
type OptDuration struct {
	d  time.Duration
	ok bool
}

// Get returns the value and whether it was recorded.
func (o OptDuration) Get() (time.Duration, bool) {
	return o.d, o.ok
}

// Lower records d if nothing is recorded yet or d is strictly smaller.
// Returns true when the value changed.
func (o *OptDuration) Lower(d time.Duration) bool {
	if o.ok && d >= o.d {
		return false
	}
	o.d, o.ok = d, true
	return true
}

// OrZero returns the value, or 0 when unset.
func (o OptDuration) OrZero() time.Duration {
	if !o.ok {
		return 0
	}
	return o.d
}

// PlayerStats holds the running per-player statistics of a match.
type PlayerStats struct {
	Score           int
	Effects         int
	MaxRallyBounces int // most bounces in a rally this player won
	FastestWon      OptDuration
	FastestLost     OptDuration
	MaxSpeedWon     float64 // ball speed when this player scored
	MaxSpeedLost    float64 // ball speed when this player conceded
	PaddleHits      int
	WinStreak       int
	MaxWinStreak    int
}

// LiveStats is the statistics state carried across the rallies of a match.
// Physics writes the bounce and score counters; the controller drives the timing.
type LiveStats struct {
	Players        [2]PlayerStats
	LastScorer     core.PlayerID
	CurrentBounces int
	TotalBounces   int
	TotalRallies   int
	RallyDurations []time.Duration

	MatchStart  time.Duration
	started     bool
	RallyStart  time.Duration
	rallyOpen   bool
	rallyPaused time.Duration // time the open rally spent out of play
	held        bool
	holdStart   time.Duration

	PauseStart  time.Duration
	paused      bool
	PausedTotal time.Duration
}

// Player returns the running stats of a side.
func (s *LiveStats) Player(p core.PlayerID) *PlayerStats {
	return &s.Players[p.Index()]
}

// Reset clears everything. Used for a fresh match and for restarts.
func (s *LiveStats) Reset() {
	*s = LiveStats{}
}

// BeginMatch stamps the match start. Only the first call counts.
func (s *LiveStats) BeginMatch(now time.Duration) {
	if s.started {
		return
	}
	s.started = true
	s.MatchStart = now
}

// BeginRally opens a rally. While a rally is already open it only ends a
// hold, so resuming play after a pause continues the same rally.
func (s *LiveStats) BeginRally(now time.Duration) {
	if s.rallyOpen {
		if s.held {
			s.held = false
			s.rallyPaused += max(now-s.holdStart, 0)
		}
		return
	}
	s.rallyOpen = true
	s.RallyStart = now
	s.rallyPaused = 0
	s.held = false
}

// HoldRally stops the rally clock until the next BeginRally.
// No-op without an open rally or while already held.
func (s *LiveStats) HoldRally(now time.Duration) {
	if !s.rallyOpen || s.held {
		return
	}
	s.held = true
	s.holdStart = now
}

// RallyOpen reports whether a rally is in progress.
func (s *LiveStats) RallyOpen() bool {
	return s.rallyOpen
}

// EndRally closes the open rally won by scorer and folds it into the extrema.
// ballSpeed is the speed of the ball when it left the field.
// Returns the rally duration with pauses excluded.
func (s *LiveStats) EndRally(now time.Duration, scorer core.PlayerID, ballSpeed float64) time.Duration {
	var d time.Duration
	if s.rallyOpen {
		d = now - s.RallyStart - s.rallyPaused
		if s.held {
			d -= now - s.holdStart
		}
		if d < 0 {
			d = 0
		}
	}
	s.rallyOpen = false
	s.rallyPaused = 0
	s.held = false
	s.TotalRallies++
	s.RallyDurations = append(s.RallyDurations, d)

	winner := s.Player(scorer)
	loser := s.Player(scorer.Opponent())

	winner.FastestWon.Lower(d)
	loser.FastestLost.Lower(d)
	winner.MaxSpeedWon = max(winner.MaxSpeedWon, ballSpeed)
	loser.MaxSpeedLost = max(loser.MaxSpeedLost, ballSpeed)

	winner.WinStreak++
	winner.MaxWinStreak = max(winner.MaxWinStreak, winner.WinStreak)
	loser.WinStreak = 0

	return d
}

// ResetRally drops the open rally and its bounce count without recording it.
func (s *LiveStats) ResetRally() {
	s.rallyOpen = false
	s.rallyPaused = 0
	s.held = false
	s.CurrentBounces = 0
}

// BeginPause stamps the start of a pause. Repeated calls keep the first stamp.
func (s *LiveStats) BeginPause(now time.Duration) {
	if s.paused {
		return
	}
	s.paused = true
	s.PauseStart = now
}

// EndPause accumulates the elapsed pause time. Rally timing is handled
// separately by HoldRally and BeginRally.
func (s *LiveStats) EndPause(now time.Duration) time.Duration {
	if !s.paused {
		return 0
	}
	s.paused = false
	d := now - s.PauseStart
	if d < 0 {
		d = 0
	}
	s.PausedTotal += d
	return d
}

// Paused reports whether a pause is being timed.
func (s *LiveStats) Paused() bool {
	return s.paused
}

// Clone returns a deep copy safe to hand to presentation.
func (s LiveStats) Clone() LiveStats {
	s.RallyDurations = append([]time.Duration(nil), s.RallyDurations...)
	return s
}

// FinalPlayerStats is the per-player part of the finalized record.
type FinalPlayerStats struct {
	Player             core.PlayerID
	Name               string
	Score              int
	MaxConsecutiveWins int
	Effects            int
	MaxBouncesWonRally int
	FastestWonRally    time.Duration
	FastestLostRally   time.Duration
	MaxSpeedWonRally   float64
	MaxSpeedLostRally  float64
	PaddleHits         int
}

// FinalStats is the statistics record handed to the persistence collaborator
// at game over. No field carries an unset marker: missing extrema are 0.
type FinalStats struct {
	Link               Linkage
	Players            [2]FinalPlayerStats
	Winner             core.PlayerID
	WinnerName         string
	LoserName          string
	TotalRallies       int
	TotalBounces       int
	AvgBouncesPerRally float64
	MatchDuration      time.Duration // pauses excluded
	AvgRallyDuration   time.Duration
	PausedDuration     time.Duration
}

// Winning returns the winner's entry.
func (f FinalStats) Winning() FinalPlayerStats {
	return f.Players[f.Winner.Index()]
}

// Losing returns the loser's entry.
func (f FinalStats) Losing() FinalPlayerStats {
	return f.Players[f.Winner.Opponent().Index()]
}

// Finalize projects the running statistics into the finalized record.
// The winner is the side with the higher score.
func (s *LiveStats) Finalize(now time.Duration, names [2]string, link Linkage) FinalStats {
	f := FinalStats{
		Link:           link,
		TotalRallies:   s.TotalRallies,
		TotalBounces:   s.TotalBounces,
		PausedDuration: s.PausedTotal,
	}

	for i, side := range []core.PlayerID{core.Player1, core.Player2} {
		ps := s.Players[i]
		f.Players[i] = FinalPlayerStats{
			Player:             side,
			Name:               names[i],
			Score:              ps.Score,
			MaxConsecutiveWins: ps.MaxWinStreak,
			Effects:            ps.Effects,
			MaxBouncesWonRally: ps.MaxRallyBounces,
			FastestWonRally:    ps.FastestWon.OrZero(),
			FastestLostRally:   ps.FastestLost.OrZero(),
			MaxSpeedWonRally:   ps.MaxSpeedWon,
			MaxSpeedLostRally:  ps.MaxSpeedLost,
			PaddleHits:         ps.PaddleHits,
		}
	}

	f.Winner = core.Player1
	if s.Players[1].Score > s.Players[0].Score {
		f.Winner = core.Player2
	}
	f.WinnerName = names[f.Winner.Index()]
	f.LoserName = names[f.Winner.Opponent().Index()]

	paused := s.PausedTotal
	if s.paused {
		paused += max(now-s.PauseStart, 0)
	}
	f.MatchDuration = max(now-s.MatchStart-paused, 0)

	if s.TotalRallies > 0 {
		f.AvgBouncesPerRally = float64(s.TotalBounces) / float64(s.TotalRallies)
		var sum time.Duration
		for _, d := range s.RallyDurations {
			sum += d
		}
		f.AvgRallyDuration = sum / time.Duration(len(s.RallyDurations))
	}

	return f
}
