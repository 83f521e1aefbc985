package app

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ayusman/mudra/internal/feed"
	"github.com/ayusman/mudra/internal/hand"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tracking"
)

// TestPipeline_EndToEnd drives the full pipeline: gestures loaded from the
// database, frames pumped from a scripted source, and transitions observed on
// the coordinator.
func TestPipeline_EndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	st, err := store.New(filepath.Join(t.TempDir(), "mudra.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer st.Close()

	err = st.Gestures().Create(&store.GestureConfig{
		ID: "g-pinch", Name: "pinch", Kind: store.KindPinch,
		Finger1: int(hand.IndexTip), Finger2: int(hand.ThumbTip),
		MinDistance: 0.02, HandSide: "right", Enabled: true,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	a := New(Config{Store: st, RightHanded: true, TickRate: 200})
	if err := a.LoadGestures(); err != nil {
		t.Fatalf("LoadGestures() error = %v", err)
	}

	transitions := make(chan tracking.Transition, 16)
	a.Coordinator().OnTransition(func(tr tracking.Transition) {
		transitions <- tr
	})

	right := hand.PinchFrame(hand.Right, 0.01)
	a.SetSource(feed.NewScriptedSource([]tracking.Update{
		{Right: &right},
	}, true))
	a.SetEnabled(true)

	if err := a.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer a.Stop()

	select {
	case tr := <-transitions:
		if tr.Gesture != "pinch" {
			t.Errorf("transition gesture = %q, want %q", tr.Gesture, "pinch")
		}
		if tr.Side != hand.Right {
			t.Errorf("transition side = %q, want %q", tr.Side, hand.Right)
		}
		if !tr.Active {
			t.Error("first transition should be an activation")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a gesture transition")
	}
}

// TestPipeline_RecordsSession drives the pump with recording enabled and
// verifies the consumed frames land in the store.
func TestPipeline_RecordsSession(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	st, err := store.New(filepath.Join(t.TempDir(), "mudra.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer st.Close()

	rec := &store.Recording{ID: "rec-live", Name: "live session"}
	if err := st.Recordings().Create(rec); err != nil {
		t.Fatalf("Create recording error = %v", err)
	}

	a := New(Config{Store: st, TickRate: 200})
	if err := a.StartRecording(rec.ID); err != nil {
		t.Fatalf("StartRecording() error = %v", err)
	}
	if got := a.ActiveRecording(); got != rec.ID {
		t.Fatalf("ActiveRecording() = %q, want %q", got, rec.ID)
	}

	right := hand.OpenHandFrame(hand.Right)
	a.SetSource(feed.NewScriptedSource([]tracking.Update{
		{Right: &right, Time: time.UnixMilli(100)},
		{Right: &right, Time: time.UnixMilli(200)},
		{Right: &right, Time: time.UnixMilli(300)},
	}, false))
	a.SetEnabled(true)

	if err := a.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		frames, err := st.Recordings().Frames(rec.ID)
		if err != nil {
			t.Fatalf("Frames() error = %v", err)
		}
		if len(frames) == 3 {
			if frames[0].TimestampMs != 100 || frames[0].Right == nil {
				t.Errorf("first recorded frame = %+v, want t=100 with right hand", frames[0])
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("recorded %d frames, want 3", len(frames))
		}
		time.Sleep(10 * time.Millisecond)
	}

	a.StopRecording()
	if got := a.ActiveRecording(); got != "" {
		t.Errorf("ActiveRecording() after stop = %q, want empty", got)
	}
	a.Stop()
}

// TestPipeline_RestartAfterExhaustion verifies a fresh Start spins up a new
// pump after the previous one exited on its own.
func TestPipeline_RestartAfterExhaustion(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	a := New(Config{TickRate: 200})
	defer a.Stop()

	right := hand.OpenHandFrame(hand.Right)
	a.SetSource(feed.NewScriptedSource([]tracking.Update{
		{Right: &right, Time: time.UnixMilli(1)},
	}, false))
	a.SetEnabled(true)

	if err := a.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// Wait for the pump to drain the source and exit.
	time.Sleep(100 * time.Millisecond)

	left := hand.OpenHandFrame(hand.Left)
	a.SetSource(feed.NewScriptedSource([]tracking.Update{
		{Left: &left, Time: time.UnixMilli(2)},
	}, true))

	if err := a.Start(); err != nil {
		t.Fatalf("Start() after exhaustion error = %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for a.Coordinator().Latest().Left == nil {
		if time.Now().After(deadline) {
			t.Fatal("restarted pump never delivered frames")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// TestPipeline_SourceExhaustion verifies the pump halts cleanly when a
// non-looping source runs out of frames.
func TestPipeline_SourceExhaustion(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	a := New(Config{TickRate: 200})

	right := hand.OpenHandFrame(hand.Right)
	a.SetSource(feed.NewScriptedSource([]tracking.Update{
		{Right: &right},
		{Right: &right},
	}, false))
	a.SetEnabled(true)

	if err := a.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// Give the pump time to drain the source and exit on its own.
	time.Sleep(100 * time.Millisecond)
	a.Stop()

	if last := a.Coordinator().Latest(); last.Right == nil {
		t.Error("coordinator never saw the scripted frames")
	}
}
