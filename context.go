package actorfsm

import (
	"log/slog"
	"time"
)

// Context is passed to entry actions and gives them an explicit handle on the
// machine they run for
type Context struct {
	FSM       *Machine
	FromState StateID // State we're transitioning from
	ToState   StateID // State being entered
	Data      any     // User-provided application data
	Logger    *slog.Logger
}

// CurrentState returns the current state
func (c *Context) CurrentState() StateID {
	return c.FSM.CurrentState()
}

// Transition requests a follow-up transition from inside an entry action
func (c *Context) Transition(target StateID, opts ...TransitionOption) error {
	return c.FSM.Transition(target, opts...)
}

// TransitionAfter schedules a delayed follow-up transition
func (c *Context) TransitionAfter(target StateID, delay time.Duration) error {
	return c.FSM.Transition(target, WithDelay(delay))
}
