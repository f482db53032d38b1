package loop

import "time"

// Debouncer collapses a burst of triggers into one call after a quiet period.
// Each Trigger resets the deadline and supersedes earlier generations, so
// only the last trigger in a burst can fire.
type Debouncer struct {
	delay    time.Duration
	gen      uint64
	armed    bool
	deadline time.Time
	fn       func()
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

func (d *Debouncer) Delay() time.Duration { return d.delay }

// Trigger arms fn to run delay after now and returns its generation.
func (d *Debouncer) Trigger(now time.Time, fn func()) uint64 {
	d.gen++
	d.armed = true
	d.deadline = now.Add(d.delay)
	d.fn = fn
	return d.gen
}

// Fire runs the armed call if gen is the latest generation. Drivers that
// deliver a timer message per trigger use this; stale generations are no-ops.
func (d *Debouncer) Fire(gen uint64) bool {
	if !d.armed || gen != d.gen {
		return false
	}
	fn := d.fn
	d.armed = false
	d.fn = nil
	fn()
	return true
}

// Due reports the generation to fire when the quiet period has elapsed.
// Drivers that poll once per loop iteration use this.
func (d *Debouncer) Due(now time.Time) (uint64, bool) {
	if d.armed && !now.Before(d.deadline) {
		return d.gen, true
	}
	return 0, false
}

func (d *Debouncer) Pending() bool { return d.armed }

func (d *Debouncer) Cancel() {
	d.armed = false
	d.fn = nil
}
