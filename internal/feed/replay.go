package feed

import (
	"fmt"
	"time"

	"github.com/ayusman/mudra/internal/hand"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tracking"
)

// ReplaySource streams a stored recording as tracking updates, preserving the
// recorded timestamps.
type ReplaySource struct {
	inner *ScriptedSource
}

// NewReplaySource loads a recording's frames from the store.
func NewReplaySource(s *store.Store, recordingID string, loop bool) (*ReplaySource, error) {
	if _, err := s.Recordings().GetByID(recordingID); err != nil {
		return nil, fmt.Errorf("failed to load recording %s: %w", recordingID, err)
	}

	frames, err := s.Recordings().Frames(recordingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load frames for recording %s: %w", recordingID, err)
	}

	updates := make([]tracking.Update, len(frames))
	for i, f := range frames {
		updates[i] = updateFromRecord(f)
	}

	return &ReplaySource{inner: NewScriptedSource(updates, loop)}, nil
}

// ReadUpdate returns the next recorded update.
func (r *ReplaySource) ReadUpdate() (tracking.Update, error) {
	return r.inner.ReadUpdate()
}

// Reset restarts playback from the beginning of the recording.
func (r *ReplaySource) Reset() {
	r.inner.Reset()
}

// updateFromRecord converts a stored frame into a tracking update.
func updateFromRecord(f *store.RecordedFrame) tracking.Update {
	return tracking.Update{
		Left:  frameFromRecord(f.Left),
		Right: frameFromRecord(f.Right),
		Time:  time.UnixMilli(f.TimestampMs),
	}
}

func frameFromRecord(h *store.RecordedHand) *hand.Frame {
	if h == nil {
		return nil
	}

	f := &hand.Frame{
		Chirality: hand.Chirality(h.Chirality),
		Tracked:   h.Tracked,
	}
	for i, p := range h.Joints {
		if i >= hand.NumJoints {
			break
		}
		f.Joints[i] = hand.Point3D{X: p[0], Y: p[1], Z: p[2]}
	}
	return f
}
