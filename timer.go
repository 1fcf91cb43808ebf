package actorfsm

import (
	"time"
)

// Scheduler is the timer facility of the actor a Machine is attached to.
// After must run fn once, after d, on the actor's own execution context.
type Scheduler interface {
	After(d time.Duration, fn func()) Timer
}

// Timer is a handle to a callback armed with Scheduler.After
type Timer interface {
	// Cancel stops the callback. It is idempotent and reports whether this
	// call prevented the callback from running.
	Cancel() bool
}

// pendingTransition tracks the one outstanding delayed transition
type pendingTransition struct {
	target StateID
	delay  time.Duration
	timer  Timer // nil until Scheduler.After returns
}

// schedule arms a delayed transition to target. The caller holds no lock.
func (m *Machine) schedule(s Scheduler, p *pendingTransition) {
	t := s.After(p.delay, func() {
		m.fire(p)
	})

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pending != p {
		// Superseded (or already fired) while the timer was being armed
		t.Cancel()
		return
	}
	p.timer = t
}

// cancelPendingLocked drops the pending delayed transition. Callers hold m.mu.
func (m *Machine) cancelPendingLocked() {
	p := m.pending
	if p == nil {
		return
	}
	m.pending = nil
	if p.timer != nil {
		p.timer.Cancel()
	}
	m.metrics.delayedCancelled()
	m.logger.Debug("delayed transition cancelled", "to", p.target)
}

// fire runs a delayed transition if it is still the pending one
func (m *Machine) fire(p *pendingTransition) {
	m.mu.Lock()
	if m.pending != p {
		m.mu.Unlock()
		m.logger.Warn("dropping superseded delayed transition", "to", p.target)
		return
	}
	m.pending = nil
	from := m.currentState
	m.currentState = p.target
	m.mu.Unlock()

	m.logger.Debug("delayed transition fired", "from", from, "to", p.target, "delay", p.delay)
	m.metrics.delayedFired()

	// Target was validated when scheduled
	if err := m.enter(from, p.target); err != nil {
		m.logger.Error("delayed transition entry failed", "to", p.target, "error", err)
	}
}

// Pending returns the target of the outstanding delayed transition
func (m *Machine) Pending() (StateID, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.pending == nil {
		return "", false
	}
	return m.pending.target, true
}
