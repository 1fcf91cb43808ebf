package actorfsm

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidState is returned when the target is unknown or not allowed
	// from the current state
	ErrInvalidState = errors.New("invalid state transition")

	// ErrUnattached is returned when a delayed transition is requested on a
	// machine with no scheduler
	ErrUnattached = errors.New("machine is not attached to an actor")
)

// InvalidStateError describes a rejected transition
type InvalidStateError struct {
	From    StateID
	To      StateID
	Allowed []StateID // nil when To is not registered at all
}

func (e *InvalidStateError) Error() string {
	if e.Allowed == nil {
		return fmt.Sprintf("%s: unknown state %q", ErrInvalidState, e.To)
	}
	allowed := make([]string, len(e.Allowed))
	for i, id := range e.Allowed {
		allowed[i] = string(id)
	}
	return fmt.Sprintf("%s: can't change state from %q to %q, only to: %s",
		ErrInvalidState, e.From, e.To, strings.Join(allowed, ", "))
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}
