// Package gesture provides gesture evaluators and the duration-gated
// activation state machine used to track them over time.
package gesture

import "github.com/ayusman/mudra/internal/hand"

// Evaluator decides whether a gesture's geometric condition holds for a
// single frame, ignoring history. Implementations must be pure: no side
// effects, no retained state, and false (never an error) when the frame's
// skeleton is unavailable. All temporal state lives in Gate.
type Evaluator interface {
	Matches(f *hand.Frame) bool
}
