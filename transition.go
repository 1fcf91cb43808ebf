package actorfsm

import "time"

// TransitionOption is a functional option for a single Transition call
type TransitionOption func(*transitionConfig)

type transitionConfig struct {
	delay time.Duration
}

// WithDelay defers the transition by d on the attached actor. A zero or
// negative delay makes the transition immediate.
func WithDelay(d time.Duration) TransitionOption {
	return func(c *transitionConfig) {
		c.delay = d
	}
}
