package gesture

import (
	"testing"

	"github.com/ayusman/mudra/internal/hand"
)

// frameWithDistance returns a tracked frame whose index and thumb tips are
// exactly d apart.
func frameWithDistance(d float64) hand.Frame {
	return hand.PinchFrame(hand.Right, d)
}

func TestFingerDistance_InclusiveRange(t *testing.T) {
	g, err := NewFingerDistance(hand.IndexTip, hand.ThumbTip, 0.05, 0.10)
	if err != nil {
		t.Fatalf("NewFingerDistance() error = %v", err)
	}

	tests := []struct {
		dist float64
		want bool
	}{
		{0.07, true},
		{0.11, false},
		{0.05, true}, // inclusive lower bound
		{0.10, true}, // inclusive upper bound
		{0.04, false},
	}

	for _, tt := range tests {
		f := frameWithDistance(tt.dist)
		if got := g.Matches(&f); got != tt.want {
			t.Errorf("Matches() at distance %g = %v, want %v", tt.dist, got, tt.want)
		}
	}
}

func TestFingerDistance_UntrackedFrame(t *testing.T) {
	g, err := NewFingerDistance(hand.IndexTip, hand.ThumbTip, 0, 1)
	if err != nil {
		t.Fatalf("NewFingerDistance() error = %v", err)
	}

	untracked := hand.UntrackedFrame(hand.Right)
	if g.Matches(&untracked) {
		t.Error("expected no match for untracked skeleton")
	}
}

func TestNewFingerDistance_Validation(t *testing.T) {
	tests := []struct {
		name    string
		finger1 hand.JointName
		finger2 hand.JointName
		min     float64
		max     float64
		wantErr bool
	}{
		{"valid", hand.IndexTip, hand.ThumbTip, 0.05, 0.10, false},
		{"equal bounds", hand.IndexTip, hand.ThumbTip, 0.05, 0.05, false},
		{"max below min", hand.IndexTip, hand.ThumbTip, 0.10, 0.05, true},
		{"negative min", hand.IndexTip, hand.ThumbTip, -0.01, 0.05, true},
		{"invalid first joint", hand.JointName(42), hand.ThumbTip, 0.05, 0.10, true},
		{"invalid second joint", hand.IndexTip, hand.JointName(-3), 0.05, 0.10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFingerDistance(tt.finger1, tt.finger2, tt.min, tt.max)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewFingerDistance() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
