package actor

import "errors"

var (
	// ErrNotStarted is returned by SendSync on an actor that has not started
	ErrNotStarted = errors.New("actor not started")

	// ErrAlreadyStarted is returned by a second call to Start
	ErrAlreadyStarted = errors.New("actor already started")

	// ErrStopped is returned when work is sent to a stopped actor
	ErrStopped = errors.New("actor stopped")

	// ErrPanic wraps a panic recovered from a task
	ErrPanic = errors.New("task panicked")
)
