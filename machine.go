package actorfsm

import (
	"fmt"
	"log/slog"
	"sync"
)

// Machine is the runtime FSM instance. It is meant to be driven from a single
// actor's execution context; CurrentState and Pending are safe to call from
// anywhere.
type Machine struct {
	definition   *Definition
	currentState StateID
	mu           sync.RWMutex

	scheduler Scheduler
	pending   *pendingTransition

	data                any
	logger              *slog.Logger
	stateChangeCallback func(from, to StateID)
	metrics             *Metrics
}

// MachineOption is a functional option for configuring a Machine
type MachineOption func(*Machine)

// WithLogger sets the logger for the machine
func WithLogger(logger *slog.Logger) MachineOption {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithData sets the application data accessible via Context
func WithData(data any) MachineOption {
	return func(m *Machine) {
		m.data = data
	}
}

// WithStateChangeCallback sets a callback invoked on each state change, before
// the entry action of the new state runs
func WithStateChangeCallback(fn func(from, to StateID)) MachineOption {
	return func(m *Machine) {
		m.stateChangeCallback = fn
	}
}

// WithMetrics records transitions in m
func WithMetrics(metrics *Metrics) MachineOption {
	return func(m *Machine) {
		m.metrics = metrics
	}
}

// New creates a Machine in the definition's default state
func New(def *Definition, opts ...MachineOption) *Machine {
	m := &Machine{
		definition:   def,
		currentState: def.DefaultState(),
		logger:       Logger,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Attach sets the actor used to schedule delayed transitions. It does not
// change the current state.
func (m *Machine) Attach(s Scheduler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scheduler = s
}

// Attached reports whether the machine can schedule delayed transitions
func (m *Machine) Attached() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.scheduler != nil
}

// CurrentState returns the current state
func (m *Machine) CurrentState() StateID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentState
}

// Definition returns the state table the machine was built from
func (m *Machine) Definition() *Definition {
	return m.definition
}

// Transition moves the machine to target.
//
// Passing DefaultState is a no-op. Otherwise target must be registered and
// admitted by the current state's constraint, or an *InvalidStateError is
// returned and nothing changes. A successful call cancels any pending delayed
// transition, then either enters target immediately or, with a positive
// WithDelay, schedules the entry on the attached actor.
func (m *Machine) Transition(target StateID, opts ...TransitionOption) error {
	var cfg transitionConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if m.isNoop(target) {
		m.logger.Debug("ignoring transition to default state", "to", target)
		return nil
	}

	m.mu.Lock()
	from := m.currentState

	if err := m.validateLocked(from, target); err != nil {
		m.mu.Unlock()
		m.metrics.rejected(reasonInvalidState)
		return err
	}

	if cfg.delay > 0 {
		s := m.scheduler
		if s == nil {
			m.mu.Unlock()
			m.metrics.rejected(reasonUnattached)
			return fmt.Errorf("transition to %q: %w", target, ErrUnattached)
		}
		m.cancelPendingLocked()
		p := &pendingTransition{target: target, delay: cfg.delay}
		m.pending = p
		m.mu.Unlock()

		m.logger.Debug("delayed transition scheduled", "from", from, "to", target, "delay", cfg.delay)
		m.metrics.delayedScheduled()
		m.schedule(s, p)
		return nil
	}

	m.cancelPendingLocked()
	m.currentState = target
	m.mu.Unlock()

	m.logger.Debug("executing transition", "from", from, "to", target)
	return m.enter(from, target)
}

// isNoop reports whether target is the default-state placeholder
func (m *Machine) isNoop(target StateID) bool {
	if target == DefaultState {
		return true
	}
	if target == m.definition.DefaultState() {
		_, registered := m.definition.lookup(target)
		return !registered
	}
	return false
}

func (m *Machine) validateLocked(from, to StateID) error {
	if _, ok := m.definition.lookup(to); !ok {
		return &InvalidStateError{From: from, To: to}
	}

	// An unregistered current state (the default) has no constraint
	if current, ok := m.definition.lookup(from); ok && !current.CanTransitionTo(to) {
		return &InvalidStateError{From: from, To: to, Allowed: current.AllowedTargets()}
	}
	return nil
}

// enter notifies observers and runs the entry action of a state that has just
// become current. m.mu must not be held.
func (m *Machine) enter(from, to StateID) error {
	m.metrics.transition(from, to)

	if m.stateChangeCallback != nil {
		m.stateChangeCallback(from, to)
	}

	state, ok := m.definition.lookup(to)
	if !ok || state.OnEnter == nil {
		return nil
	}

	m.logger.Debug("entering state", "state", to)
	if err := state.OnEnter(m.makeContext(from, to)); err != nil {
		m.metrics.entryFailed(to)
		return fmt.Errorf("entry action failed for %q: %w", to, err)
	}
	return nil
}

// makeContext creates a context for callbacks
func (m *Machine) makeContext(from, to StateID) *Context {
	return &Context{
		FSM:       m,
		FromState: from,
		ToState:   to,
		Data:      m.data,
		Logger:    m.logger,
	}
}
