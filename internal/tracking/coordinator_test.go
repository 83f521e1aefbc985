package tracking

import (
	"sync"
	"testing"
	"time"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/hand"
)

func mustDefinition(t *testing.T, name string, ev gesture.Evaluator, side gesture.Side, hold time.Duration) *gesture.Definition {
	t.Helper()
	def, err := gesture.NewDefinition(name, ev, side, hold)
	if err != nil {
		t.Fatalf("NewDefinition(%q) error = %v", name, err)
	}
	return def
}

// callbackRecorder collects callback invocations; reads are safe after the
// coordinator is closed, which drains the dispatch queue.
type callbackRecorder struct {
	mu    sync.Mutex
	calls []bool
}

func (r *callbackRecorder) record(active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, active)
}

func (r *callbackRecorder) snapshot() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]bool(nil), r.calls...)
}

func pinchUpdate(at time.Time, side hand.Chirality, dist float64) Update {
	f := hand.PinchFrame(side, dist)
	u := Update{Time: at}
	if side == hand.Left {
		u.Left = &f
	} else {
		u.Right = &f
	}
	return u
}

func openUpdate(at time.Time, side hand.Chirality) Update {
	f := hand.OpenHandFrame(side)
	u := Update{Time: at}
	if side == hand.Left {
		u.Left = &f
	} else {
		u.Right = &f
	}
	return u
}

func TestCoordinator_CallbackOncePerEdge(t *testing.T) {
	c := New(DefaultConfig())
	rec := &callbackRecorder{}

	def := mustDefinition(t, "pinch", gesture.NewPinch(), gesture.SideRight, 500*time.Millisecond)
	c.AddGesture(def, rec.record)

	base := time.Now()
	step := 50 * time.Millisecond

	// Hold the pinch well past the required duration, then release and keep
	// the hand open for several ticks.
	for i := 0; i < 15; i++ {
		c.ProcessUpdate(pinchUpdate(base.Add(time.Duration(i)*step), hand.Right, 0.01))
	}
	for i := 15; i < 20; i++ {
		c.ProcessUpdate(openUpdate(base.Add(time.Duration(i)*step), hand.Right))
	}
	c.Close()

	calls := rec.snapshot()
	if len(calls) != 2 {
		t.Fatalf("callback fired %d times, want 2 (one per edge): %v", len(calls), calls)
	}
	if !calls[0] || calls[1] {
		t.Errorf("callback sequence = %v, want [true false]", calls)
	}
}

func TestCoordinator_ActivatesAtHoldBoundary(t *testing.T) {
	c := New(DefaultConfig())
	rec := &callbackRecorder{}

	def := mustDefinition(t, "pinch", gesture.NewPinch(), gesture.SideRight, 500*time.Millisecond)
	c.AddGesture(def, rec.record)

	base := time.Now()
	step := 50 * time.Millisecond

	// Ten ticks span 0.45s of hold; the gesture must not be active yet.
	for i := 0; i < 10; i++ {
		c.ProcessUpdate(pinchUpdate(base.Add(time.Duration(i)*step), hand.Right, 0.01))
	}
	if def.Active() {
		t.Fatal("gesture active before hold duration elapsed")
	}

	// The boundary tick crosses 0.5s.
	c.ProcessUpdate(pinchUpdate(base.Add(10*step), hand.Right, 0.01))
	if !def.Active() {
		t.Fatal("gesture inactive at hold boundary tick")
	}

	c.Close()
	if calls := rec.snapshot(); len(calls) != 1 || !calls[0] {
		t.Errorf("callback calls = %v, want [true]", calls)
	}
}

func TestCoordinator_MissResetsHold(t *testing.T) {
	c := New(DefaultConfig())
	rec := &callbackRecorder{}

	def := mustDefinition(t, "pinch", gesture.NewPinch(), gesture.SideRight, 500*time.Millisecond)
	c.AddGesture(def, rec.record)

	base := time.Now()
	step := 50 * time.Millisecond

	// 5 matching ticks, one wide tick, then matching again: the hold timer
	// restarts and the gesture never activates.
	for i := 0; i < 5; i++ {
		c.ProcessUpdate(pinchUpdate(base.Add(time.Duration(i)*step), hand.Right, 0.01))
	}
	c.ProcessUpdate(pinchUpdate(base.Add(5*step), hand.Right, 0.03))
	for i := 6; i < 11; i++ {
		c.ProcessUpdate(pinchUpdate(base.Add(time.Duration(i)*step), hand.Right, 0.01))
	}
	c.Close()

	if calls := rec.snapshot(); len(calls) != 0 {
		t.Errorf("callback calls = %v, want none", calls)
	}
}

func TestCoordinator_NoCallbackWhileUnchanged(t *testing.T) {
	c := New(DefaultConfig())
	rec := &callbackRecorder{}

	def := mustDefinition(t, "pinch", gesture.NewPinch(), gesture.SideRight, 0)
	c.AddGesture(def, rec.record)

	base := time.Now()
	for i := 0; i < 10; i++ {
		c.ProcessUpdate(pinchUpdate(base.Add(time.Duration(i)*time.Millisecond), hand.Right, 0.01))
	}
	c.Close()

	if calls := rec.snapshot(); len(calls) != 1 {
		t.Errorf("callback fired %d times across 10 active ticks, want 1", len(calls))
	}
}

func TestCoordinator_SideFilter(t *testing.T) {
	c := New(DefaultConfig())
	rec := &callbackRecorder{}

	def := mustDefinition(t, "left-pinch", gesture.NewPinch(), gesture.SideLeft, 0)
	c.AddGesture(def, rec.record)

	// Only right-hand frames arrive: the gate must never advance.
	base := time.Now()
	for i := 0; i < 10; i++ {
		c.ProcessUpdate(pinchUpdate(base.Add(time.Duration(i)*time.Millisecond), hand.Right, 0.01))
	}
	c.Close()

	if def.Active() {
		t.Error("left-only gesture active from right-hand frames")
	}
	if calls := rec.snapshot(); len(calls) != 0 {
		t.Errorf("callback calls = %v, want none", calls)
	}
}

func TestCoordinator_DuplicateNameShadowsCallback(t *testing.T) {
	c := New(DefaultConfig())
	first := &callbackRecorder{}
	second := &callbackRecorder{}

	defA := mustDefinition(t, "pinch", gesture.NewPinch(), gesture.SideRight, 0)
	defB := mustDefinition(t, "pinch", gesture.NewPinch(), gesture.SideRight, 0)
	c.AddGesture(defA, first.record)
	c.AddGesture(defB, second.record)

	c.ProcessUpdate(pinchUpdate(time.Now(), hand.Right, 0.01))
	c.Close()

	// Both registrations stay evaluated.
	if !defA.Active() || !defB.Active() {
		t.Error("both gestures under the shared name should be evaluated")
	}

	// Only the most recent callback receives notifications, once per
	// evaluated entry's transition.
	if calls := first.snapshot(); len(calls) != 0 {
		t.Errorf("shadowed callback fired %d times, want 0", len(calls))
	}
	if calls := second.snapshot(); len(calls) != 2 {
		t.Errorf("latest callback fired %d times, want 2", len(calls))
	}
}

func TestCoordinator_RemoveGesture(t *testing.T) {
	c := New(DefaultConfig())
	rec := &callbackRecorder{}

	def := mustDefinition(t, "pinch", gesture.NewPinch(), gesture.SideRight, 0)
	c.AddGesture(def, rec.record)

	base := time.Now()
	c.ProcessUpdate(pinchUpdate(base, hand.Right, 0.01))

	// Removing while active must not deliver a retroactive false transition,
	// and later ticks must not reach the gesture at all.
	c.RemoveGesture("pinch")
	c.ProcessUpdate(openUpdate(base.Add(time.Millisecond), hand.Right))
	c.Close()

	if calls := rec.snapshot(); len(calls) != 1 || !calls[0] {
		t.Errorf("callback calls = %v, want [true]", calls)
	}
}

func TestCoordinator_RemoveUnknownGestureIsNoop(t *testing.T) {
	c := New(DefaultConfig())
	defer c.Close()

	c.RemoveGesture("missing") // must not panic or error
}

func TestCoordinator_TransitionOrderFollowsRegistration(t *testing.T) {
	c := New(DefaultConfig())

	var (
		mu    sync.Mutex
		order []string
	)
	c.OnTransition(func(tr Transition) {
		mu.Lock()
		defer mu.Unlock()
		order = append(order, tr.Gesture)
	})

	defA := mustDefinition(t, "first", gesture.NewPinch(), gesture.SideRight, 0)
	defB := mustDefinition(t, "second", gesture.NewPinch(), gesture.SideRight, 0)
	c.AddGesture(defA, nil)
	c.AddGesture(defB, nil)

	c.ProcessUpdate(pinchUpdate(time.Now(), hand.Right, 0.01))
	c.Close()

	mu.Lock()
	defer mu.Unlock()
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("transition order = %v, want [first second]", order)
	}
}

func TestCoordinator_BothSidesGesture(t *testing.T) {
	c := New(DefaultConfig())

	var (
		mu    sync.Mutex
		sides []hand.Chirality
	)
	c.OnTransition(func(tr Transition) {
		mu.Lock()
		defer mu.Unlock()
		sides = append(sides, tr.Side)
	})

	def := mustDefinition(t, "pinch", gesture.NewPinch(), gesture.SideBoth, 0)
	c.AddGesture(def, nil)

	c.ProcessUpdate(pinchUpdate(time.Now(), hand.Left, 0.01))
	c.Close()

	mu.Lock()
	defer mu.Unlock()
	if len(sides) != 1 || sides[0] != hand.Left {
		t.Errorf("transition sides = %v, want [left]", sides)
	}
}

func TestCoordinator_PullQueries(t *testing.T) {
	c := New(Config{RightHanded: true})
	defer c.Close()

	left := hand.OpenHandFrame(hand.Left)
	right := hand.PinchFrame(hand.Right, 0.01)
	c.ProcessUpdate(Update{Left: &left, Right: &right, Time: time.Now()})

	if got := c.DominantHand(); got != &right {
		t.Error("DominantHand() should return the right frame for a right-handed config")
	}
	if got := c.NonDominantHand(); got != &left {
		t.Error("NonDominantHand() should return the left frame for a right-handed config")
	}

	positions := c.FingerPositions(hand.Left)
	if len(positions) != hand.NumJoints {
		t.Fatalf("FingerPositions() returned %d joints, want %d", len(positions), hand.NumJoints)
	}
	if positions[hand.IndexTip] != left.Joints[hand.IndexTip] {
		t.Error("FingerPositions() returned wrong index tip position")
	}

	// One-shot pinch check bypasses duration gating entirely.
	if !c.CheckPinch(hand.Right, 0.02) {
		t.Error("CheckPinch(right, 0.02) = false, want true")
	}
	if c.CheckPinch(hand.Left, 0.02) {
		t.Error("CheckPinch(left, 0.02) = true, want false")
	}

	// Pull queries are pure reads: repeating them yields identical results.
	again := c.FingerPositions(hand.Left)
	if len(again) != len(positions) || again[hand.ThumbTip] != positions[hand.ThumbTip] {
		t.Error("repeated FingerPositions() calls differ")
	}
}

func TestCoordinator_PullQueries_LeftHanded(t *testing.T) {
	c := New(Config{RightHanded: false})
	defer c.Close()

	left := hand.OpenHandFrame(hand.Left)
	c.ProcessUpdate(Update{Left: &left, Time: time.Now()})

	if got := c.DominantHand(); got != &left {
		t.Error("DominantHand() should return the left frame for a left-handed config")
	}
	if got := c.NonDominantHand(); got != nil {
		t.Error("NonDominantHand() should be nil when the right hand is absent")
	}
}

func TestCoordinator_QueriesWithoutUpdates(t *testing.T) {
	c := New(DefaultConfig())
	defer c.Close()

	// No updates ever delivered: the coordinator degrades to "nothing
	// active" rather than failing.
	if c.DominantHand() != nil || c.NonDominantHand() != nil {
		t.Error("expected nil hands before any update")
	}
	if c.FingerPositions(hand.Left) != nil {
		t.Error("expected nil positions before any update")
	}
	if c.CheckPinch(hand.Right, 0.02) {
		t.Error("expected no pinch before any update")
	}
}

func TestCoordinator_UntrackedHandPositions(t *testing.T) {
	c := New(DefaultConfig())
	defer c.Close()

	untracked := hand.UntrackedFrame(hand.Right)
	c.ProcessUpdate(Update{Right: &untracked, Time: time.Now()})

	if c.FingerPositions(hand.Right) != nil {
		t.Error("expected nil positions for untracked hand")
	}
}

func TestCoordinator_ProcessAfterCloseIsIgnored(t *testing.T) {
	c := New(DefaultConfig())
	rec := &callbackRecorder{}

	def := mustDefinition(t, "pinch", gesture.NewPinch(), gesture.SideRight, 0)
	c.AddGesture(def, rec.record)
	c.Close()

	c.ProcessUpdate(pinchUpdate(time.Now(), hand.Right, 0.01))

	if calls := rec.snapshot(); len(calls) != 0 {
		t.Errorf("callback calls after close = %v, want none", calls)
	}
}

func TestDefaultCoordinator(t *testing.T) {
	c := New(DefaultConfig())
	defer c.Close()

	SetDefault(c)
	if Default() != c {
		t.Error("Default() should return the coordinator installed by SetDefault")
	}
	SetDefault(nil)
}
