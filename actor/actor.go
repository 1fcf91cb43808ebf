// Package actor provides a minimal serialized execution context for
// actorfsm machines: one goroutine draining a mailbox of tasks, with timers
// whose callbacks are delivered through that mailbox.
package actor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Logger is the default logger used when none is provided
var Logger = slog.Default()

const (
	statusNew int32 = iota
	statusRunning
	statusStopped
)

// task is a unit of work executed on the actor goroutine
type task struct {
	fn   func() error
	done chan error // nil for fire-and-forget tasks
}

// Actor runs tasks one at a time on its own goroutine
type Actor struct {
	id      string
	name    string
	mailbox chan task
	logger  *slog.Logger

	status   atomic.Int32
	stop     chan struct{}
	stopOnce sync.Once
	exited   chan struct{}

	timerMu sync.Mutex
	timers  map[*Timer]struct{}
}

// Option is a functional option for configuring an Actor
type Option func(*Actor)

// WithLogger sets the logger for the actor
func WithLogger(logger *slog.Logger) Option {
	return func(a *Actor) {
		a.logger = logger
	}
}

// WithMailboxSize sets the mailbox buffer size. Negative sizes are treated
// as zero (unbuffered).
func WithMailboxSize(size int) Option {
	return func(a *Actor) {
		a.mailbox = newMailbox(size)
	}
}

// WithName sets the name used in log lines
func WithName(name string) Option {
	return func(a *Actor) {
		a.name = name
	}
}

// WithConfig applies cfg, typically obtained from LoadConfig
func WithConfig(cfg Config) Option {
	return func(a *Actor) {
		a.name = cfg.Name
		a.mailbox = newMailbox(cfg.MailboxSize)
	}
}

func newMailbox(size int) chan task {
	return make(chan task, max(size, 0))
}

// New creates an actor. Tasks sent before Start are queued and run once the
// actor starts.
func New(opts ...Option) *Actor {
	cfg := DefaultConfig()
	a := &Actor{
		id:      uuid.NewString(),
		name:    cfg.Name,
		mailbox: newMailbox(cfg.MailboxSize),
		logger:  Logger,
		stop:    make(chan struct{}),
		exited:  make(chan struct{}),
		timers:  make(map[*Timer]struct{}),
	}

	for _, opt := range opts {
		opt(a)
	}

	a.logger = a.logger.With("actor", a.name, "actor_id", a.id)
	return a
}

// ID returns the actor's unique identifier
func (a *Actor) ID() string {
	return a.id
}

// Name returns the actor's name
func (a *Actor) Name() string {
	return a.name
}

// Start begins processing the mailbox. The actor stops when ctx is cancelled
// or Stop is called.
func (a *Actor) Start(ctx context.Context) error {
	if !a.status.CompareAndSwap(statusNew, statusRunning) {
		return ErrAlreadyStarted
	}

	go a.loop(ctx)

	a.logger.Debug("actor started")
	return nil
}

// Stop shuts the actor down and cancels all outstanding timers. Tasks still
// queued are discarded. It waits for the running task, if any, to finish and
// must not be called from the actor's own context.
func (a *Actor) Stop() {
	a.stopOnce.Do(func() { close(a.stop) })
	if a.status.Swap(statusStopped) == statusNew {
		close(a.exited)
	}
	<-a.exited
	a.stopAllTimers()
}

// Done is closed once the actor has stopped processing tasks
func (a *Actor) Done() <-chan struct{} {
	return a.exited
}

// Send queues fn for execution on the actor. It blocks while the mailbox is
// full. Tasks queued before Start run after it.
func (a *Actor) Send(fn func()) error {
	return a.enqueue(task{fn: func() error {
		fn()
		return nil
	}})
}

// SendSync runs fn on the actor and waits for its result. It fails with
// ErrNotStarted before Start. Calling it from the actor's own context
// deadlocks.
func (a *Actor) SendSync(fn func() error) error {
	if a.status.Load() == statusNew {
		return ErrNotStarted
	}

	done := make(chan error, 1)
	if err := a.enqueue(task{fn: fn, done: done}); err != nil {
		return err
	}

	select {
	case err := <-done:
		return err
	case <-a.exited:
		// The loop may have finished the task right before exiting
		select {
		case err := <-done:
			return err
		default:
			return ErrStopped
		}
	}
}

func (a *Actor) enqueue(t task) error {
	if a.status.Load() == statusStopped {
		return ErrStopped
	}

	select {
	case a.mailbox <- t:
		return nil
	case <-a.stop:
		return ErrStopped
	case <-a.exited:
		return ErrStopped
	}
}

// loop processes tasks from the mailbox
func (a *Actor) loop(ctx context.Context) {
	defer close(a.exited)
	for {
		select {
		case <-ctx.Done():
			a.status.Store(statusStopped)
			a.stopAllTimers()
			a.logger.Debug("actor stopped", "reason", ctx.Err())
			return
		case <-a.stop:
			a.logger.Debug("actor stopped")
			return
		case t := <-a.mailbox:
			err := a.run(t.fn)
			if t.done != nil {
				t.done <- err
			}
		}
	}
}

// run executes one task, recovering panics so that one failing task does not
// take the actor down
func (a *Actor) run(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("recovered panic in actor task", "panic", r)
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	return fn()
}
