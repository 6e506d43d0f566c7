package match

import (
	"sort"
	"sync"
	"time"
)

// Timer is a cancellable handle for scheduled work.
type Timer interface {
	// Stop cancels the timer. It reports whether the timer was still active.
	Stop() bool
}

// FrameID identifies a pending frame request. Zero means none.
type FrameID uint64

// FrameDriver delivers per-frame callbacks with the current time.
type FrameDriver interface {
	RequestFrame(fn func(now time.Duration)) FrameID
	CancelFrame(id FrameID)
}

// Scheduler is everything the controller needs from its host: time,
// timers, frames and a way to hand work back to the engine goroutine.
type Scheduler interface {
	FrameDriver
	Now() time.Duration
	AfterFunc(d time.Duration, fn func()) Timer
	Every(d time.Duration, fn func()) Timer
	// Post queues fn to run on the engine goroutine. Safe for concurrent use.
	Post(fn func())
}

// Clock is a cooperative Scheduler running in virtual time.
// Only Post may be called from other goroutines; everything else belongs
// to the goroutine calling Advance.
type Clock struct {
	now    time.Duration
	seq    uint64
	timers []*clockTimer

	nextFrame FrameID
	frames    map[FrameID]func(time.Duration)

	mu     sync.Mutex
	posted []func()
}

var _ Scheduler = (*Clock)(nil)

// NewClock creates a clock at time zero.
func NewClock() *Clock {
	return &Clock{frames: make(map[FrameID]func(time.Duration))}
}

type clockTimer struct {
	c        *Clock
	seq      uint64
	due      time.Duration
	interval time.Duration
	fn       func()
	active   bool
}

// Stop is idempotent and safe on a nil timer.
func (t *clockTimer) Stop() bool {
	if t == nil || !t.active {
		return false
	}
	t.active = false
	t.c.remove(t)
	return true
}

// Now returns the current virtual time.
func (c *Clock) Now() time.Duration {
	return c.now
}

// AfterFunc runs fn once, d after now.
func (c *Clock) AfterFunc(d time.Duration, fn func()) Timer {
	return c.schedule(d, 0, fn)
}

// Every runs fn every d until stopped. d must be positive.
func (c *Clock) Every(d time.Duration, fn func()) Timer {
	if d <= 0 {
		d = time.Millisecond
	}
	return c.schedule(d, d, fn)
}

func (c *Clock) schedule(d, interval time.Duration, fn func()) *clockTimer {
	if d < 0 {
		d = 0
	}
	c.seq++
	t := &clockTimer{c: c, seq: c.seq, due: c.now + d, interval: interval, fn: fn, active: true}
	c.timers = append(c.timers, t)
	return t
}

func (c *Clock) remove(t *clockTimer) {
	for i, x := range c.timers {
		if x == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return
		}
	}
}

// RequestFrame schedules fn for the next Advance.
func (c *Clock) RequestFrame(fn func(now time.Duration)) FrameID {
	c.nextFrame++
	c.frames[c.nextFrame] = fn
	return c.nextFrame
}

// CancelFrame drops a pending frame request. Unknown ids are ignored.
func (c *Clock) CancelFrame(id FrameID) {
	delete(c.frames, id)
}

// Post queues fn for the next Advance.
func (c *Clock) Post(fn func()) {
	c.mu.Lock()
	c.posted = append(c.posted, fn)
	c.mu.Unlock()
}

// ActiveTimers returns the number of scheduled timers.
func (c *Clock) ActiveTimers() int {
	return len(c.timers)
}

// PendingFrames returns the number of outstanding frame requests.
func (c *Clock) PendingFrames() int {
	return len(c.frames)
}

// Advance moves time forward to to. Due timers fire in due order (ties in
// scheduling order) with Now set to their due time. Then frames requested
// before this call run with Now == to, then posted work.
// Time never moves backward.
func (c *Clock) Advance(to time.Duration) {
	if to < c.now {
		to = c.now
	}

	for {
		t := c.nextDue(to)
		if t == nil {
			break
		}
		c.now = t.due
		if t.interval > 0 {
			t.due += t.interval
		} else {
			t.active = false
			c.remove(t)
		}
		t.fn()
	}
	c.now = to

	if len(c.frames) > 0 {
		ids := make([]FrameID, 0, len(c.frames))
		for id := range c.frames {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		for _, id := range ids {
			fn, ok := c.frames[id]
			if !ok {
				continue
			}
			delete(c.frames, id)
			fn(c.now)
		}
	}

	c.mu.Lock()
	posted := c.posted
	c.posted = nil
	c.mu.Unlock()
	for _, fn := range posted {
		fn()
	}
}

// AdvanceBy moves time forward by d.
func (c *Clock) AdvanceBy(d time.Duration) {
	c.Advance(c.now + d)
}

func (c *Clock) nextDue(limit time.Duration) *clockTimer {
	var best *clockTimer
	for _, t := range c.timers {
		if t.due > limit {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.seq < best.seq) {
			best = t
		}
	}
	return best
}
