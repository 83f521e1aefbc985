package gesture

import "time"

// Gate debounces an evaluator's instantaneous match into a stable active
// signal: the match must hold continuously for the required duration before
// the gate reports active. A single non-matching tick fully resets the hold
// timer; there is no leniency window for transient tracking dropouts.
//
// A Gate is advanced once per tick and is not safe for concurrent use.
type Gate struct {
	required time.Duration
	start    time.Time
	started  bool
	elapsed  time.Duration
	active   bool
}

// NewGate returns a Gate requiring the match to hold for the given duration.
// A zero duration activates on the first matching tick.
func NewGate(required time.Duration) *Gate {
	return &Gate{required: required}
}

// Update advances the gate with the instantaneous match result at the given
// timestamp and returns the new active state. Timestamps must be monotonic
// non-decreasing across calls.
func (g *Gate) Update(match bool, now time.Time) bool {
	if !match {
		g.start = time.Time{}
		g.started = false
		g.elapsed = 0
		g.active = false
		return false
	}

	if !g.started {
		g.start = now
		g.started = true
	}
	g.elapsed = now.Sub(g.start)
	g.active = g.elapsed >= g.required

	return g.active
}

// Active returns the state produced by the last Update.
func (g *Gate) Active() bool {
	return g.active
}

// ActiveDuration returns how long the match has held continuously as of the
// last Update, or zero when not matching.
func (g *Gate) ActiveDuration() time.Duration {
	return g.elapsed
}

// Required returns the configured hold duration.
func (g *Gate) Required() time.Duration {
	return g.required
}
