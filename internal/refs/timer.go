package refs

import "time"

// DefaultInterval is the starting practice timer interval.
const DefaultInterval = 3 * time.Second

// minInterval is the floor enforced when the interval is adjusted by drag.
const minInterval = 100 * time.Millisecond

// Timer drives the periodic switch to the next reference. It can be
// paused without losing progress, hidden, and have its interval adjusted
// interactively; while the interval is being adjusted the countdown is
// suspended.
type Timer struct {
	start     time.Time
	interval  time.Duration
	pausedAt  time.Duration // elapsed captured when paused
	paused    bool
	hidden    bool
	adjusting bool
}

// NewTimer creates a running timer with the given interval.
func NewTimer(interval time.Duration, now time.Time) *Timer {
	return &Timer{start: now, interval: interval}
}

// Tick returns the elapsed time toward the next expiry and whether the
// interval expired on this call. On expiry the start advances by one
// interval so no time is lost between cycles.
func (t *Timer) Tick(now time.Time) (time.Duration, bool) {
	if t.adjusting {
		return t.interval, false
	}
	if t.paused {
		return t.pausedAt, false
	}

	elapsed := now.Sub(t.start)
	expired := elapsed >= t.interval
	if expired {
		t.start = t.start.Add(t.interval)
		elapsed = now.Sub(t.start)
	}
	return elapsed, expired
}

// Elapsed returns the progress toward the next expiry without advancing
// the timer.
func (t *Timer) Elapsed(now time.Time) time.Duration {
	if t.adjusting {
		return 0
	}
	if t.paused {
		return t.pausedAt
	}
	return now.Sub(t.start)
}

// Interval returns the current interval.
func (t *Timer) Interval() time.Duration {
	return t.interval
}

// IsPaused reports whether the timer is paused.
func (t *Timer) IsPaused() bool {
	return t.paused
}

// SetPause pauses or resumes the timer, preserving elapsed progress
// across the pause.
func (t *Timer) SetPause(paused bool, now time.Time) {
	switch {
	case paused && !t.paused:
		t.pausedAt = now.Sub(t.start)
		t.paused = true
	case !paused && t.paused:
		t.start = now.Add(-t.pausedAt)
		t.paused = false
	}
}

// TogglePause flips the paused state.
func (t *Timer) TogglePause(now time.Time) {
	t.SetPause(!t.paused, now)
}

// Hidden reports whether the timer readout should be hidden.
func (t *Timer) Hidden() bool {
	return t.hidden
}

// ToggleHide flips the readout visibility.
func (t *Timer) ToggleHide() {
	t.hidden = !t.hidden
}

// Adjusting reports whether the interval is being adjusted.
func (t *Timer) Adjusting() bool {
	return t.adjusting
}

// SetAdjusting enters or leaves interval adjustment. Leaving restarts
// the countdown from the adjustment moment.
func (t *Timer) SetAdjusting(adjusting bool, now time.Time) {
	if t.adjusting && !adjusting {
		t.start = now
	}
	t.adjusting = adjusting
}

// AdjustInterval changes the interval by deltaPixels of horizontal drag,
// 10ms per pixel, clamped to a 100ms floor.
func (t *Timer) AdjustInterval(deltaPixels float32) {
	adjusted := t.interval + time.Duration(float64(deltaPixels)*0.01*float64(time.Second))
	if adjusted < minInterval {
		adjusted = minInterval
	}
	t.interval = adjusted
}
