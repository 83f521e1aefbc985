package gesture

import (
	"fmt"

	"github.com/ayusman/mudra/internal/hand"
)

// DefaultPinchDistance is the default pinch threshold in meters.
const DefaultPinchDistance = 0.02

// Pinch matches when two fingertips are closer than MinimumDistance.
type Pinch struct {
	Finger1         hand.JointName
	Finger2         hand.JointName
	MinimumDistance float64
}

// NewPinch returns a Pinch with the default configuration:
// index tip against thumb tip at DefaultPinchDistance.
func NewPinch() Pinch {
	return Pinch{
		Finger1:         hand.IndexTip,
		Finger2:         hand.ThumbTip,
		MinimumDistance: DefaultPinchDistance,
	}
}

// NewPinchBetween returns a Pinch over an explicit joint pair.
// It fails when either joint is out of range or the threshold is not positive.
func NewPinchBetween(finger1, finger2 hand.JointName, minimumDistance float64) (Pinch, error) {
	if !finger1.Valid() || !finger2.Valid() {
		return Pinch{}, fmt.Errorf("pinch: invalid joint pair (%d, %d)", finger1, finger2)
	}
	if minimumDistance <= 0 {
		return Pinch{}, fmt.Errorf("pinch: minimum distance must be positive, got %g", minimumDistance)
	}
	return Pinch{Finger1: finger1, Finger2: finger2, MinimumDistance: minimumDistance}, nil
}

// Matches reports whether the two fingers are within the pinch threshold.
// Returns false when the skeleton is unavailable.
func (p Pinch) Matches(f *hand.Frame) bool {
	d, ok := f.Distance(p.Finger1, p.Finger2)
	return ok && d < p.MinimumDistance
}
