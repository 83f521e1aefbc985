package hand

// Preset frames for tests and demos. Coordinates are in meters in a
// right-handed reference space with the wrist near the origin.

// OpenHandFrame returns a frame for a relaxed open hand with all fingers
// extended and spread. Fingertips sit 7-10cm from the wrist.
func OpenHandFrame(side Chirality) Frame {
	f := Frame{Chirality: side, Tracked: true}

	f.Joints[Wrist] = Point3D{X: 0.00, Y: 0.00, Z: 0.00}

	// Thumb extended to the side
	f.Joints[ThumbCMC] = Point3D{X: -0.020, Y: 0.015, Z: 0.005}
	f.Joints[ThumbMCP] = Point3D{X: -0.040, Y: 0.030, Z: 0.010}
	f.Joints[ThumbIP] = Point3D{X: -0.055, Y: 0.045, Z: 0.012}
	f.Joints[ThumbTip] = Point3D{X: -0.068, Y: 0.058, Z: 0.014}

	// Index finger extended
	f.Joints[IndexMCP] = Point3D{X: -0.015, Y: 0.060, Z: 0.000}
	f.Joints[IndexPIP] = Point3D{X: -0.018, Y: 0.085, Z: 0.000}
	f.Joints[IndexDIP] = Point3D{X: -0.020, Y: 0.100, Z: 0.000}
	f.Joints[IndexTip] = Point3D{X: -0.022, Y: 0.112, Z: 0.000}

	// Middle finger extended (longest)
	f.Joints[MiddleMCP] = Point3D{X: 0.000, Y: 0.062, Z: 0.000}
	f.Joints[MiddlePIP] = Point3D{X: 0.000, Y: 0.090, Z: 0.000}
	f.Joints[MiddleDIP] = Point3D{X: 0.000, Y: 0.107, Z: 0.000}
	f.Joints[MiddleTip] = Point3D{X: 0.000, Y: 0.120, Z: 0.000}

	// Ring finger extended
	f.Joints[RingMCP] = Point3D{X: 0.015, Y: 0.060, Z: 0.000}
	f.Joints[RingPIP] = Point3D{X: 0.018, Y: 0.086, Z: 0.000}
	f.Joints[RingDIP] = Point3D{X: 0.020, Y: 0.101, Z: 0.000}
	f.Joints[RingTip] = Point3D{X: 0.022, Y: 0.113, Z: 0.000}

	// Pinky finger extended
	f.Joints[PinkyMCP] = Point3D{X: 0.030, Y: 0.055, Z: 0.000}
	f.Joints[PinkyPIP] = Point3D{X: 0.035, Y: 0.075, Z: 0.000}
	f.Joints[PinkyDIP] = Point3D{X: 0.038, Y: 0.088, Z: 0.000}
	f.Joints[PinkyTip] = Point3D{X: 0.040, Y: 0.098, Z: 0.000}

	return f
}

// PinchFrame returns a frame where the index fingertip sits exactly dist
// meters from the thumb tip, with the remaining fingers as in OpenHandFrame.
func PinchFrame(side Chirality, dist float64) Frame {
	f := OpenHandFrame(side)

	thumb := f.Joints[ThumbTip]
	f.Joints[IndexTip] = Point3D{X: thumb.X + dist, Y: thumb.Y, Z: thumb.Z}
	f.Joints[IndexDIP] = Point3D{X: thumb.X + dist + 0.010, Y: thumb.Y + 0.012, Z: thumb.Z}
	f.Joints[IndexPIP] = Point3D{X: thumb.X + dist + 0.018, Y: thumb.Y + 0.028, Z: thumb.Z}

	return f
}

// UntrackedFrame returns a frame whose skeleton is not being tracked.
func UntrackedFrame(side Chirality) Frame {
	return Frame{Chirality: side, Tracked: false}
}
