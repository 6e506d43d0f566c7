package match

import (
	"context"
	"time"
)

// NoticeKind classifies a user-facing message.
type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeWarn
	NoticeError
)

func (k NoticeKind) String() string {
	switch k {
	case NoticeWarn:
		return "warn"
	case NoticeError:
		return "error"
	default:
		return "info"
	}
}

// Notice is a message the host should show to the players.
type Notice struct {
	Kind    NoticeKind
	Message string
	At      time.Duration
}

// Host is the environment hosting a match: it shows notices and toggles
// its own handling of navigation keys while the match owns the keyboard.
type Host interface {
	SetInputLock(on bool)
	Notify(n Notice)
}

// NopHost ignores everything.
type NopHost struct{}

func (NopHost) SetInputLock(bool) {}
func (NopHost) Notify(Notice)     {}

// StatsSubmitter persists finalized match statistics. It is called once per
// finished match from a separate goroutine.
type StatsSubmitter interface {
	SubmitMatchStats(ctx context.Context, stats FinalStats) error
}

// SubmitterFunc adapts a function to StatsSubmitter.
type SubmitterFunc func(ctx context.Context, stats FinalStats) error

func (f SubmitterFunc) SubmitMatchStats(ctx context.Context, stats FinalStats) error {
	return f(ctx, stats)
}

// SubmitState tracks the game-over submission.
type SubmitState int

const (
	SubmitNone SubmitState = iota
	SubmitPending
	SubmitSaved
	SubmitFailed
	SubmitSkipped // no submitter configured
)

func (s SubmitState) String() string {
	switch s {
	case SubmitPending:
		return "saving"
	case SubmitSaved:
		return "saved"
	case SubmitFailed:
		return "failed"
	case SubmitSkipped:
		return "not saved"
	default:
		return ""
	}
}
