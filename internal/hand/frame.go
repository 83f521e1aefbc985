package hand

import "math"

// Chirality identifies which physical hand a frame belongs to.
type Chirality string

const (
	// Left is the left hand.
	Left Chirality = "left"
	// Right is the right hand.
	Right Chirality = "right"
)

// Point3D represents a 3D position in the frame's reference space.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Frame is a snapshot of one hand's joint positions for a single update tick.
// A Frame is immutable after creation and describes only the tick it was
// produced for. Tracked is false when the skeleton was not observed; all
// position queries then report unavailable rather than an error.
type Frame struct {
	Joints    [NumJoints]Point3D `json:"joints"`
	Chirality Chirality          `json:"chirality"`
	Tracked   bool               `json:"tracked"`
}

// Position returns the position of the given joint.
// The second return value is false when the skeleton is untracked or the
// joint name is out of range.
func (f *Frame) Position(j JointName) (Point3D, bool) {
	if f == nil || !f.Tracked || !j.Valid() {
		return Point3D{}, false
	}
	return f.Joints[j], true
}

// Distance returns the Euclidean distance between two joints.
// The second return value is false when either position is unavailable.
func (f *Frame) Distance(a, b JointName) (float64, bool) {
	pa, ok := f.Position(a)
	if !ok {
		return 0, false
	}
	pb, ok := f.Position(b)
	if !ok {
		return 0, false
	}
	return distance3D(pa, pb), true
}

// distance3D calculates the Euclidean distance between two 3D points.
func distance3D(a, b Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
