package feed

import (
	"github.com/ayusman/mudra/internal/hand"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tracking"
)

// Recorder persists tracking updates into a stored recording so sessions can
// be replayed later through a ReplaySource.
type Recorder struct {
	repo        *store.RecordingRepository
	recordingID string
	seq         int
}

// NewRecorder creates a recorder appending to the given recording.
func NewRecorder(s *store.Store, recordingID string) *Recorder {
	return &Recorder{repo: s.Recordings(), recordingID: recordingID}
}

// Record appends one update to the recording.
func (r *Recorder) Record(u tracking.Update) error {
	f := &store.RecordedFrame{
		Seq:         r.seq,
		TimestampMs: u.Time.UnixMilli(),
		Left:        recordFromFrame(u.Left),
		Right:       recordFromFrame(u.Right),
	}

	if err := r.repo.AppendFrame(r.recordingID, f); err != nil {
		return err
	}
	r.seq++
	return nil
}

func recordFromFrame(f *hand.Frame) *store.RecordedHand {
	if f == nil {
		return nil
	}

	h := &store.RecordedHand{
		Chirality: string(f.Chirality),
		Tracked:   f.Tracked,
		Joints:    make([][3]float64, hand.NumJoints),
	}
	for i, p := range f.Joints {
		h.Joints[i] = [3]float64{p.X, p.Y, p.Z}
	}
	return h
}
