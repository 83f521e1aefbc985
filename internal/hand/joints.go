// Package hand provides hand skeleton types and geometry helpers for gesture evaluation.
package hand

// JointName identifies a tracked skeletal point on a hand.
// Indices follow the MediaPipe hand landmark convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
type JointName int

const (
	Wrist JointName = iota
	ThumbCMC
	ThumbMCP
	ThumbIP
	ThumbTip
	IndexMCP
	IndexPIP
	IndexDIP
	IndexTip
	MiddleMCP
	MiddlePIP
	MiddleDIP
	MiddleTip
	RingMCP
	RingPIP
	RingDIP
	RingTip
	PinkyMCP
	PinkyPIP
	PinkyDIP
	PinkyTip
)

// NumJoints is the number of tracked joints per hand.
const NumJoints = 21

var jointNames = [NumJoints]string{
	"wrist",
	"thumbCMC", "thumbMCP", "thumbIP", "thumbTip",
	"indexMCP", "indexPIP", "indexDIP", "indexTip",
	"middleMCP", "middlePIP", "middleDIP", "middleTip",
	"ringMCP", "ringPIP", "ringDIP", "ringTip",
	"pinkyMCP", "pinkyPIP", "pinkyDIP", "pinkyTip",
}

// Valid reports whether j is within the tracked joint set.
func (j JointName) Valid() bool {
	return j >= 0 && j < NumJoints
}

// String returns the joint's name, or "unknown" for out-of-range values.
func (j JointName) String() string {
	if !j.Valid() {
		return "unknown"
	}
	return jointNames[j]
}
