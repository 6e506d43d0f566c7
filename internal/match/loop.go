package match

import "time"

// Loop is a fixed-timestep accumulator driven by frame callbacks.
// Physics runs zero or more times per frame at exactly Step intervals;
// render runs once per frame with the leftover fraction of a step.
type Loop struct {
	driver  FrameDriver
	step    time.Duration
	physics func()
	render  func(alpha float64)

	running bool
	frame   FrameID
	hasLast bool
	last    time.Duration
	acc     time.Duration
}

// NewLoop creates a stopped loop. render may be nil.
func NewLoop(driver FrameDriver, step time.Duration, physics func(), render func(alpha float64)) *Loop {
	if step <= 0 {
		step = time.Second / 60
	}
	return &Loop{driver: driver, step: step, physics: physics, render: render}
}

// Running reports whether a frame is scheduled.
func (l *Loop) Running() bool {
	return l.running
}

// Start begins requesting frames. No-op if already running.
func (l *Loop) Start() {
	if l.running {
		return
	}
	l.running = true
	l.hasLast = false
	l.acc = 0
	l.frame = l.driver.RequestFrame(l.onFrame)
}

// Stop cancels the pending frame and zeroes the clock and accumulator so a
// later Start never replays catch-up steps. No-op if already stopped.
func (l *Loop) Stop() {
	if !l.running {
		return
	}
	l.running = false
	if l.frame != 0 {
		l.driver.CancelFrame(l.frame)
		l.frame = 0
	}
	l.hasLast = false
	l.last = 0
	l.acc = 0
}

func (l *Loop) onFrame(now time.Duration) {
	l.frame = 0
	if !l.running {
		return
	}

	var elapsed time.Duration
	if l.hasLast {
		elapsed = now - l.last
	}
	l.last, l.hasLast = now, true
	elapsed = max(0, min(elapsed, 2*l.step))
	l.acc += elapsed

	for l.acc >= l.step {
		l.physics()
		l.acc -= l.step
		if !l.running {
			return
		}
	}

	if l.render != nil {
		l.render(float64(l.acc) / float64(l.step))
	}
	l.frame = l.driver.RequestFrame(l.onFrame)
}
