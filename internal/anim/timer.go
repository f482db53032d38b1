package anim

import "time"

// Timer turns wall-clock time between frames into a normalized delta.
// A delta of 1 corresponds to DeltaScale milliseconds.
type Timer struct {
	clock    Clock
	scale    float64
	previous time.Time
	current  time.Time
	delta    float64
}

func NewTimer(clock Clock, scale float64) *Timer {
	if clock == nil {
		clock = SystemClock{}
	}
	if scale <= 0 {
		scale = DefaultDeltaScale
	}
	t := &Timer{clock: clock, scale: scale}
	t.Reset()
	return t
}

// Reset restarts the measurement from now and sets the delta to 1, so a
// resumed animation does not receive the whole paused interval at once.
func (t *Timer) Reset() {
	t.previous = t.clock.Now()
	t.delta = 1
}

// Tick reads the clock, recomputes the delta and advances the previous
// timestamp. It returns the new delta.
func (t *Timer) Tick() float64 {
	now := t.clock.Now()
	t.current = now
	elapsed := float64(now.Sub(t.previous)) / float64(time.Millisecond)
	t.delta = elapsed / t.scale
	if t.delta < 0 {
		t.delta = 0
	}
	t.previous = now
	return t.delta
}

func (t *Timer) Delta() float64 { return t.delta }

// Current returns the timestamp of the last tick and false before the first one.
func (t *Timer) Current() (time.Time, bool) {
	return t.current, !t.current.IsZero()
}
