package gesture

import (
	"fmt"
	"time"

	"github.com/ayusman/mudra/internal/hand"
)

// Side selects which hand(s) a gesture applies to.
type Side string

const (
	// SideLeft evaluates left-hand frames only.
	SideLeft Side = "left"
	// SideRight evaluates right-hand frames only.
	SideRight Side = "right"
	// SideBoth evaluates frames from either hand.
	SideBoth Side = "both"
)

// Accepts reports whether a frame of the given chirality should be evaluated.
func (s Side) Accepts(c hand.Chirality) bool {
	switch s {
	case SideBoth:
		return true
	case SideLeft:
		return c == hand.Left
	case SideRight:
		return c == hand.Right
	default:
		return false
	}
}

// Definition is a named, trackable gesture: an evaluator plus the hand side
// filter and required hold duration. Each definition owns its Gate
// exclusively; only Advance mutates it.
type Definition struct {
	name      string
	evaluator Evaluator
	side      Side
	gate      *Gate
}

// NewDefinition creates a tracked gesture definition.
// Name and evaluator are required; an unknown side or negative hold duration
// is a configuration error.
func NewDefinition(name string, evaluator Evaluator, side Side, hold time.Duration) (*Definition, error) {
	if name == "" {
		return nil, fmt.Errorf("gesture: name is required")
	}
	if evaluator == nil {
		return nil, fmt.Errorf("gesture %q: evaluator is required", name)
	}
	switch side {
	case SideLeft, SideRight, SideBoth:
	default:
		return nil, fmt.Errorf("gesture %q: unknown side %q", name, side)
	}
	if hold < 0 {
		return nil, fmt.Errorf("gesture %q: hold duration must not be negative, got %v", name, hold)
	}

	return &Definition{
		name:      name,
		evaluator: evaluator,
		side:      side,
		gate:      NewGate(hold),
	}, nil
}

// Name returns the gesture's registered name.
func (d *Definition) Name() string {
	return d.name
}

// Side returns the gesture's hand side filter.
func (d *Definition) Side() Side {
	return d.side
}

// Advance evaluates the gesture against a frame and feeds the result through
// the gate, returning the new active state.
func (d *Definition) Advance(f *hand.Frame, now time.Time) bool {
	return d.gate.Update(d.evaluator.Matches(f), now)
}

// Active returns the gate's current active state.
func (d *Definition) Active() bool {
	return d.gate.Active()
}

// ActiveDuration returns how long the gesture's match has held continuously.
func (d *Definition) ActiveDuration() time.Duration {
	return d.gate.ActiveDuration()
}
