package gesture

import (
	"fmt"

	"github.com/ayusman/mudra/internal/hand"
)

// FingerDistance matches when the distance between two joints falls inside
// [MinimumDistance, MaximumDistance], inclusive on both ends.
type FingerDistance struct {
	Finger1         hand.JointName
	Finger2         hand.JointName
	MinimumDistance float64
	MaximumDistance float64
}

// NewFingerDistance returns a FingerDistance over an explicit joint pair and
// range. There are no default joints: both must be named and valid, and the
// range must satisfy 0 <= min <= max. Violations are configuration errors
// reported at construction.
func NewFingerDistance(finger1, finger2 hand.JointName, minimumDistance, maximumDistance float64) (FingerDistance, error) {
	if !finger1.Valid() || !finger2.Valid() {
		return FingerDistance{}, fmt.Errorf("finger distance: invalid joint pair (%d, %d)", finger1, finger2)
	}
	if minimumDistance < 0 {
		return FingerDistance{}, fmt.Errorf("finger distance: minimum distance must not be negative, got %g", minimumDistance)
	}
	if maximumDistance < minimumDistance {
		return FingerDistance{}, fmt.Errorf("finger distance: maximum distance %g is less than minimum %g", maximumDistance, minimumDistance)
	}
	return FingerDistance{
		Finger1:         finger1,
		Finger2:         finger2,
		MinimumDistance: minimumDistance,
		MaximumDistance: maximumDistance,
	}, nil
}

// Matches reports whether the joint distance is within range.
// Returns false when the skeleton is unavailable.
func (g FingerDistance) Matches(f *hand.Frame) bool {
	d, ok := f.Distance(g.Finger1, g.Finger2)
	return ok && d >= g.MinimumDistance && d <= g.MaximumDistance
}
