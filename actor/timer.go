package actor

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/librescoot/actorfsm"
)

const (
	timerPending int32 = iota
	timerFired
	timerCancelled
)

// Timer is a callback armed with Actor.After
type Timer struct {
	id     string
	actor  *Actor
	status atomic.Int32
	timer  *time.Timer
}

var _ actorfsm.Scheduler = (*Actor)(nil)

// After runs fn once on the actor after d has elapsed. Expiry only enqueues a
// task; fn itself always runs on the actor goroutine, and not at all if the
// timer is cancelled before that task starts.
func (a *Actor) After(d time.Duration, fn func()) actorfsm.Timer {
	t := &Timer{
		id:    uuid.NewString(),
		actor: a,
	}

	a.timerMu.Lock()
	defer a.timerMu.Unlock()

	t.timer = time.AfterFunc(d, func() {
		err := a.Send(func() {
			if !t.status.CompareAndSwap(timerPending, timerFired) {
				return
			}
			a.forgetTimer(t)
			a.logger.Debug("timer fired", "timer", t.id)
			fn()
		})
		if err != nil {
			a.logger.Debug("timer expired on inactive actor", "timer", t.id, "error", err)
		}
	})
	a.timers[t] = struct{}{}

	a.logger.Debug("timer started", "timer", t.id, "duration", d)
	return t
}

// ID returns the timer's unique identifier
func (t *Timer) ID() string {
	return t.id
}

// Cancel stops the timer. Exactly one of Cancel and the callback wins: Cancel
// returns true only if the callback has not started and never will.
func (t *Timer) Cancel() bool {
	if !t.status.CompareAndSwap(timerPending, timerCancelled) {
		return false
	}
	t.timer.Stop()
	t.actor.forgetTimer(t)
	t.actor.logger.Debug("timer stopped", "timer", t.id)
	return true
}

// Active reports whether the timer is still waiting to fire
func (t *Timer) Active() bool {
	return t.status.Load() == timerPending
}

// ActiveTimers returns the number of timers that have neither fired nor been
// cancelled
func (a *Actor) ActiveTimers() int {
	a.timerMu.Lock()
	defer a.timerMu.Unlock()
	return len(a.timers)
}

func (a *Actor) forgetTimer(t *Timer) {
	a.timerMu.Lock()
	defer a.timerMu.Unlock()
	delete(a.timers, t)
}

// stopAllTimers cancels all outstanding timers
func (a *Actor) stopAllTimers() {
	a.timerMu.Lock()
	timers := make([]*Timer, 0, len(a.timers))
	for t := range a.timers {
		timers = append(timers, t)
	}
	a.timerMu.Unlock()

	for _, t := range timers {
		t.Cancel()
	}
}
