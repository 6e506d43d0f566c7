package tui

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/match"
)

// Hold windows for terminals that only report key presses.
// The first press waits out the keyboard's auto-repeat delay; once repeats
// arrive they come quickly, so a short window is enough.
const (
	DefaultFirstHold  = 550 * time.Millisecond
	DefaultRepeatHold = 120 * time.Millisecond
	noticeTTL         = 4 * time.Second
)

// sessionHost is the match.Host of a terminal session. It remembers the
// input lock and the latest notice for the view.
type sessionHost struct {
	logger *log.Logger
	locked bool
	notice *match.Notice
}

func newSessionHost(logger *log.Logger) *sessionHost {
	return &sessionHost{logger: logger}
}

func (h *sessionHost) SetInputLock(on bool) {
	h.locked = on
}

func (h *sessionHost) Notify(n match.Notice) {
	h.notice = &n
	switch n.Kind {
	case match.NoticeError:
		h.logger.Error(n.Message)
	case match.NoticeWarn:
		h.logger.Warn(n.Message)
	default:
		h.logger.Info(n.Message)
	}
}

// Locked reports whether the match currently owns the keyboard.
func (h *sessionHost) Locked() bool {
	return h.locked
}

// Notice returns the latest notice if it is still fresh at now.
func (h *sessionHost) Notice(now time.Duration) (match.Notice, bool) {
	if h.notice == nil || now-h.notice.At > noticeTTL {
		return match.Notice{}, false
	}
	return *h.notice, true
}

// KeyInput receives key transitions.
type KeyInput interface {
	KeyDown(code string)
	KeyUp(code string)
	Blur()
}

type heldKey struct {
	last    time.Duration
	repeats int
}

// KeyHold turns a stream of key presses into down/up transitions.
// A key stays down until no repeat has arrived within its hold window.
// Tap codes go down and straight back up; their auto-repeats are dropped.
type KeyHold struct {
	target KeyInput
	first  time.Duration
	repeat time.Duration
	taps   map[string]bool
	held   map[string]heldKey
	tapped map[string]heldKey
}

// NewKeyHold creates a KeyHold feeding target.
func NewKeyHold(target KeyInput, first, repeat time.Duration, taps ...string) *KeyHold {
	k := &KeyHold{
		target: target,
		first:  first,
		repeat: repeat,
		taps:   make(map[string]bool, len(taps)),
		held:   make(map[string]heldKey),
		tapped: make(map[string]heldKey),
	}
	for _, code := range taps {
		k.taps[code] = true
	}
	return k
}

// Press registers a press (or auto-repeat) of code at now.
func (k *KeyHold) Press(code string, now time.Duration) {
	if k.taps[code] {
		if h, ok := k.tapped[code]; ok && now-h.last < k.window(h) {
			h.last = now
			h.repeats++
			k.tapped[code] = h
			return
		}
		k.tapped[code] = heldKey{last: now}
		k.target.KeyDown(code)
		k.target.KeyUp(code)
		return
	}
	h, ok := k.held[code]
	if !ok {
		k.target.KeyDown(code)
		k.held[code] = heldKey{last: now}
		return
	}
	h.last = now
	h.repeats++
	k.held[code] = h
}

// Expire releases every key whose hold window has passed at now.
func (k *KeyHold) Expire(now time.Duration) {
	for code, h := range k.held {
		if now-h.last >= k.window(h) {
			delete(k.held, code)
			k.target.KeyUp(code)
		}
	}
	for code, h := range k.tapped {
		if now-h.last >= k.window(h) {
			delete(k.tapped, code)
		}
	}
}

func (k *KeyHold) window(h heldKey) time.Duration {
	if h.repeats > 0 {
		return k.repeat
	}
	return k.first
}

// Blur drops every held key.
func (k *KeyHold) Blur() {
	clear(k.held)
	clear(k.tapped)
	k.target.Blur()
}

// Held reports whether code is currently held down.
func (k *KeyHold) Held(code string) bool {
	_, ok := k.held[code]
	return ok
}
