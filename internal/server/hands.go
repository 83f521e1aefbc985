package server

import (
	"encoding/json"
	"net/http"

	"github.com/ayusman/mudra/internal/hand"
)

// handSnapshot is the wire form of one hand in the latest update.
type handSnapshot struct {
	Tracked   bool                  `json:"tracked"`
	Positions map[string][3]float64 `json:"positions,omitempty"`
}

type handsResponse struct {
	Left      *handSnapshot `json:"left,omitempty"`
	Right     *handSnapshot `json:"right,omitempty"`
	Timestamp int64         `json:"timestamp"`
}

// handleHands serves GET /api/hands: the latest two-hand snapshot as joint
// positions keyed by joint name.
func (s *Server) handleHands(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	u := s.config.Tracker.Latest()
	resp := handsResponse{
		Left:      snapshotFor(s, hand.Left, u.Left != nil),
		Right:     snapshotFor(s, hand.Right, u.Right != nil),
		Timestamp: u.Time.UnixMilli(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func snapshotFor(s *Server, side hand.Chirality, present bool) *handSnapshot {
	if !present {
		return nil
	}

	positions := s.config.Tracker.FingerPositions(side)
	snap := &handSnapshot{Tracked: positions != nil}
	if positions == nil {
		return snap
	}

	snap.Positions = make(map[string][3]float64, len(positions))
	for j, p := range positions {
		snap.Positions[j.String()] = [3]float64{p.X, p.Y, p.Z}
	}
	return snap
}
