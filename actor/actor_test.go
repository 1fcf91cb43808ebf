package actor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startActor(t *testing.T, opts ...Option) *Actor {
	t.Helper()
	a := New(opts...)
	require.NoError(t, a.Start(context.Background()))
	t.Cleanup(a.Stop)
	return a
}

func TestTasksRunInOrder(t *testing.T) {
	a := startActor(t)

	var got []int
	for i := 0; i < 50; i++ {
		i := i
		require.NoError(t, a.Send(func() { got = append(got, i) }))
	}

	// SendSync is queued behind the tasks above
	require.NoError(t, a.SendSync(func() error { return nil }))

	require.Len(t, got, 50)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestTasksAreSerialized(t *testing.T) {
	a := startActor(t, WithMailboxSize(4))

	var (
		wg      sync.WaitGroup
		running int
		overlap bool
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = a.SendSync(func() error {
				running++
				if running > 1 {
					overlap = true
				}
				time.Sleep(time.Millisecond)
				running--
				return nil
			})
		}()
	}
	wg.Wait()

	assert.False(t, overlap)
}

func TestSendSyncReturnsError(t *testing.T) {
	a := startActor(t)
	boom := errors.New("boom")

	assert.ErrorIs(t, a.SendSync(func() error { return boom }), boom)
}

func TestPanicIsRecovered(t *testing.T) {
	a := startActor(t)

	err := a.SendSync(func() error { panic("kaboom") })
	require.ErrorIs(t, err, ErrPanic)
	assert.Contains(t, err.Error(), "kaboom")

	// Loop keeps running
	assert.NoError(t, a.SendSync(func() error { return nil }))
}

func TestSendBeforeStartIsQueued(t *testing.T) {
	a := New()
	t.Cleanup(a.Stop)

	var got []int
	require.NoError(t, a.Send(func() { got = append(got, 1) }))
	require.NoError(t, a.Send(func() { got = append(got, 2) }))
	assert.ErrorIs(t, a.SendSync(func() error { return nil }), ErrNotStarted)

	require.NoError(t, a.Start(context.Background()))
	require.NoError(t, a.SendSync(func() error { return nil }))
	assert.Equal(t, []int{1, 2}, got)
}

func TestNegativeMailboxSize(t *testing.T) {
	var a *Actor
	require.NotPanics(t, func() { a = New(WithMailboxSize(-5)) })
	assert.Zero(t, cap(a.mailbox))

	require.NoError(t, a.Start(context.Background()))
	t.Cleanup(a.Stop)
	assert.NoError(t, a.SendSync(func() error { return nil }))

	b := New(WithConfig(Config{Name: "b", MailboxSize: -1}))
	assert.Zero(t, cap(b.mailbox))
}

func TestStartTwice(t *testing.T) {
	a := startActor(t)

	assert.ErrorIs(t, a.Start(context.Background()), ErrAlreadyStarted)
}

func TestStop(t *testing.T) {
	a := New()
	require.NoError(t, a.Start(context.Background()))

	a.Stop()
	a.Stop()

	select {
	case <-a.Done():
	default:
		t.Fatal("Done not closed after Stop")
	}
	assert.ErrorIs(t, a.Send(func() {}), ErrStopped)
	assert.ErrorIs(t, a.SendSync(func() error { return nil }), ErrStopped)
}

func TestStopBeforeStart(t *testing.T) {
	a := New()
	a.Stop()

	assert.ErrorIs(t, a.Start(context.Background()), ErrAlreadyStarted)
	assert.ErrorIs(t, a.Send(func() {}), ErrStopped)
}

func TestContextCancelStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	a := New()
	require.NoError(t, a.Start(ctx))

	cancel()

	select {
	case <-a.Done():
	case <-time.After(time.Second):
		t.Fatal("actor did not stop on context cancel")
	}
	assert.ErrorIs(t, a.Send(func() {}), ErrStopped)
	a.Stop()
}

func TestIdentity(t *testing.T) {
	a := New(WithName("conn"))
	b := New()

	assert.Equal(t, "conn", a.Name())
	assert.Equal(t, "actor", b.Name())
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}
