// Package tracking coordinates per-frame gesture evaluation across two hands,
// turning raw joint frames into debounced gesture activations with transition
// callbacks.
package tracking

import (
	"sync"
	"time"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/hand"
)

// Config holds configuration options for the coordinator.
type Config struct {
	// RightHanded selects which physical hand counts as dominant for the
	// pull-query convenience methods.
	RightHanded bool

	// QueueSize is the capacity of the callback dispatch queue.
	QueueSize int
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		RightHanded: true,
		QueueSize:   64,
	}
}

// Update is one two-hand tick delivered by the tracking collaborator.
// Either frame may be nil when that hand was not observed. Time must be
// monotonic non-decreasing across updates; a zero Time means "now".
type Update struct {
	Left  *hand.Frame
	Right *hand.Frame
	Time  time.Time
}

// Transition is one gesture activation edge.
type Transition struct {
	Gesture string
	Side    hand.Chirality
	Active  bool
	At      time.Time
}

// entry pairs a registered gesture with its last published active state.
// Duplicate names are allowed; each entry keeps its own gate and state.
type entry struct {
	def        *gesture.Definition
	lastActive bool
}

// Coordinator is the per-frame entry point for gesture tracking. ProcessUpdate
// is safe to call from the producer goroutine; transition callbacks and
// observers run on a single dispatch goroutine so callback code never blocks
// frame processing and never runs reentrantly.
type Coordinator struct {
	config Config

	mu        sync.RWMutex
	entries   []*entry
	callbacks map[string]func(bool)
	observers []func(Transition)
	latest    Update
	closed    bool

	inflight sync.WaitGroup
	queue    chan notification
	done     chan struct{}
}

// New creates a Coordinator and starts its dispatch goroutine.
// Call Close to stop it.
func New(config Config) *Coordinator {
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultConfig().QueueSize
	}

	c := &Coordinator{
		config:    config,
		callbacks: make(map[string]func(bool)),
		queue:     make(chan notification, config.QueueSize),
		done:      make(chan struct{}),
	}
	go c.dispatch()
	return c
}

// AddGesture registers a gesture and an optional transition callback keyed by
// the gesture's name. Registering a second gesture under an existing name
// keeps both evaluated, but only the most recent callback for that name
// receives notifications.
func (c *Coordinator) AddGesture(def *gesture.Definition, onChange func(bool)) {
	if def == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = append(c.entries, &entry{def: def})
	c.callbacks[def.Name()] = onChange
}

// RemoveGesture removes all gestures registered under the given name and
// drops the associated callback. It is a no-op when the name is absent and
// takes effect before the next update tick. No false-transition callback is
// delivered for gestures that were active at removal.
func (c *Coordinator) RemoveGesture(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.entries[:0]
	for _, e := range c.entries {
		if e.def.Name() != name {
			kept = append(kept, e)
		}
	}
	c.entries = kept
	delete(c.callbacks, name)
}

// OnTransition registers an observer invoked on the dispatch goroutine for
// every gesture transition, regardless of per-gesture callbacks.
func (c *Coordinator) OnTransition(fn func(Transition)) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

// ProcessUpdate advances every applicable gesture with the tick's frames and
// enqueues callbacks for the transitions it produced. Gestures are evaluated
// in registration order, left hand before right. Callbacks for one tick are
// enqueued before the next tick is processed as long as updates come from a
// single producer.
func (c *Coordinator) ProcessUpdate(u Update) {
	if u.Time.IsZero() {
		u.Time = time.Now()
	}

	var pending []notification

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.inflight.Add(1)
	defer c.inflight.Done()
	c.latest = u

	for _, e := range c.entries {
		for _, f := range []*hand.Frame{u.Left, u.Right} {
			if f == nil || !e.def.Side().Accepts(f.Chirality) {
				continue
			}

			active := e.def.Advance(f, u.Time)
			if active == e.lastActive {
				continue
			}
			e.lastActive = active

			pending = append(pending, notification{
				callback: c.callbacks[e.def.Name()],
				transition: Transition{
					Gesture: e.def.Name(),
					Side:    f.Chirality,
					Active:  active,
					At:      u.Time,
				},
			})
		}
	}
	observers := c.observers
	c.mu.Unlock()

	for i := range pending {
		pending[i].observers = observers
		c.queue <- pending[i]
	}
}

// Latest returns the most recent two-hand update.
func (c *Coordinator) Latest() Update {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.latest
}

// DominantHand returns the latest frame for the dominant hand per the
// handedness configuration, or nil when that hand was not observed.
func (c *Coordinator) DominantHand() *hand.Frame {
	u := c.Latest()
	if c.config.RightHanded {
		return u.Right
	}
	return u.Left
}

// NonDominantHand returns the latest frame for the non-dominant hand,
// or nil when that hand was not observed.
func (c *Coordinator) NonDominantHand() *hand.Frame {
	u := c.Latest()
	if c.config.RightHanded {
		return u.Left
	}
	return u.Right
}

// FingerPositions returns every joint position for the requested hand from
// the latest update, or nil when the hand is absent or untracked.
func (c *Coordinator) FingerPositions(side hand.Chirality) map[hand.JointName]hand.Point3D {
	f := c.frameFor(side)
	if f == nil || !f.Tracked {
		return nil
	}

	positions := make(map[hand.JointName]hand.Point3D, hand.NumJoints)
	for j := hand.JointName(0); j < hand.NumJoints; j++ {
		positions[j] = f.Joints[j]
	}
	return positions
}

// CheckPinch performs a one-shot instantaneous pinch check (index tip against
// thumb tip) on the latest frame for the given hand. It bypasses duration
// gating entirely and has no effect on registered gestures.
func (c *Coordinator) CheckPinch(side hand.Chirality, minimumDistance float64) bool {
	f := c.frameFor(side)
	if f == nil {
		return false
	}
	p := gesture.Pinch{Finger1: hand.IndexTip, Finger2: hand.ThumbTip, MinimumDistance: minimumDistance}
	return p.Matches(f)
}

func (c *Coordinator) frameFor(side hand.Chirality) *hand.Frame {
	u := c.Latest()
	if side == hand.Left {
		return u.Left
	}
	return u.Right
}
