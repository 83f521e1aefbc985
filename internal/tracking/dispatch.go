package tracking

// notification is one queued transition delivery: the shadowed per-gesture
// callback (may be nil) plus the observers captured at enqueue time.
type notification struct {
	callback   func(bool)
	observers  []func(Transition)
	transition Transition
}

// dispatch drains the queue on a single goroutine so callbacks get a simple,
// non-reentrant execution model ordered by transition. It exits once the
// queue is closed and fully drained.
func (c *Coordinator) dispatch() {
	defer close(c.done)

	for n := range c.queue {
		for _, observer := range n.observers {
			observer(n.transition)
		}
		if n.callback != nil {
			n.callback(n.transition.Active)
		}
	}
}

// Close stops the coordinator. Updates processed afterwards are ignored;
// notifications already enqueued are delivered before Close returns.
func (c *Coordinator) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	// Wait for in-flight updates to finish enqueueing before closing the
	// queue; new updates are rejected by the closed flag.
	c.inflight.Wait()
	close(c.queue)
	<-c.done
}
