package feed

import (
	"sync"

	"github.com/ayusman/mudra/internal/tracking"
)

// ScriptedSource plays back an in-memory sequence of updates, optionally
// looping. It is the test and demo stand-in for a live sensor.
type ScriptedSource struct {
	mu      sync.Mutex
	updates []tracking.Update
	index   int
	loop    bool
}

// NewScriptedSource creates a source over the given update sequence.
func NewScriptedSource(updates []tracking.Update, loop bool) *ScriptedSource {
	return &ScriptedSource{updates: updates, loop: loop}
}

// ReadUpdate returns the next scripted update, or ErrEndOfStream once the
// sequence is exhausted and looping is off.
func (s *ScriptedSource) ReadUpdate() (tracking.Update, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.updates) == 0 {
		return tracking.Update{}, ErrEndOfStream
	}

	if s.index >= len(s.updates) {
		if !s.loop {
			return tracking.Update{}, ErrEndOfStream
		}
		s.index = 0
	}

	u := s.updates[s.index]
	s.index++
	return u, nil
}

// Reset restarts playback from the beginning.
func (s *ScriptedSource) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = 0
}

// SetUpdates replaces the update sequence and restarts playback.
func (s *ScriptedSource) SetUpdates(updates []tracking.Update) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates = updates
	s.index = 0
}
