package input

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptButton struct {
	mu      sync.Mutex
	pressed bool
	err     error
}

func (b *scriptButton) set(pressed bool) {
	b.mu.Lock()
	b.pressed = pressed
	b.mu.Unlock()
}

func (b *scriptButton) fail(err error) {
	b.mu.Lock()
	b.err = err
	b.mu.Unlock()
}

func (b *scriptButton) Pressed() (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pressed, b.err
}

// stepWatcher runs one sample then advances the mock clock one period
func stepWatcher(ctx context.Context, w *Watcher, mock *quartz.Mock) {
	w.step()
	mock.Advance(DefaultSamplePeriod).MustWait(ctx)
}

func TestWatcherNoisyBurstYieldsOneEvent(t *testing.T) {
	ctx := context.Background()
	mock := quartz.NewMock(t)
	btn := &scriptButton{}
	q := NewQueue(testLogger(), 8)
	w := NewWatcher(WatcherConfig{Kind: Hit, Button: btn, Queue: q, Clock: mock, Logger: testLogger()})

	// contact bounce: alternating reads shorter than the debounce window
	for _, pressed := range []bool{true, false, true, false, true, false} {
		btn.set(pressed)
		stepWatcher(ctx, w, mock)
	}
	assert.Zero(t, q.Len(), "no event while the line is bouncing")

	// the line settles pressed; one event after the window elapses
	btn.set(true)
	for i := 0; i < 10; i++ {
		stepWatcher(ctx, w, mock)
	}
	require.Equal(t, 1, q.Len(), "exactly one event for the whole burst")

	// holding the button must not repeat
	for i := 0; i < 20; i++ {
		stepWatcher(ctx, w, mock)
	}
	assert.Equal(t, 1, q.Len())

	e, err := q.Pop(ctx)
	require.NoError(t, err)
	assert.Equal(t, Hit, e.Kind)
	assert.False(t, e.At.IsZero())
}

func TestWatcherRearmsOnRelease(t *testing.T) {
	ctx := context.Background()
	mock := quartz.NewMock(t)
	btn := &scriptButton{}
	q := NewQueue(testLogger(), 8)
	w := NewWatcher(WatcherConfig{Kind: Start, Button: btn, Queue: q, Clock: mock, Logger: testLogger()})

	press := func() {
		btn.set(true)
		for i := 0; i < 10; i++ {
			stepWatcher(ctx, w, mock)
		}
		btn.set(false)
		stepWatcher(ctx, w, mock)
	}

	press()
	press()
	assert.Equal(t, 2, q.Len(), "one event per distinct press")
}

func TestWatcherShortTapBelowDebounceIsIgnored(t *testing.T) {
	ctx := context.Background()
	mock := quartz.NewMock(t)
	btn := &scriptButton{}
	q := NewQueue(testLogger(), 8)
	w := NewWatcher(WatcherConfig{Kind: Stand, Button: btn, Queue: q, Clock: mock, Logger: testLogger()})

	// pressed for three samples (15ms), released before the 30ms window
	btn.set(true)
	for i := 0; i < 3; i++ {
		stepWatcher(ctx, w, mock)
	}
	btn.set(false)
	for i := 0; i < 10; i++ {
		stepWatcher(ctx, w, mock)
	}
	assert.Zero(t, q.Len())
}

func TestWatcherToleratesReadErrors(t *testing.T) {
	ctx := context.Background()
	mock := quartz.NewMock(t)
	btn := &scriptButton{}
	q := NewQueue(testLogger(), 8)
	w := NewWatcher(WatcherConfig{Kind: Hit, Button: btn, Queue: q, Clock: mock, Logger: testLogger()})

	btn.fail(errors.New("line unreadable"))
	for i := 0; i < 10; i++ {
		stepWatcher(ctx, w, mock)
	}
	assert.Zero(t, q.Len())

	// line recovers, presses work again
	btn.fail(nil)
	btn.set(true)
	for i := 0; i < 10; i++ {
		stepWatcher(ctx, w, mock)
	}
	assert.Equal(t, 1, q.Len())
}

func TestWatcherRunDeliversPress(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mock := quartz.NewMock(t)
	btn := &scriptButton{}
	q := NewQueue(testLogger(), 8)
	w := NewWatcher(WatcherConfig{Kind: Hit, Button: btn, Queue: q, Clock: mock, Logger: testLogger()})

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// give the ticker a beat to register before advancing the mock
	time.Sleep(50 * time.Millisecond)

	btn.set(true)
	for i := 0; i < 10; i++ {
		mock.Advance(DefaultSamplePeriod).MustWait(ctx)
	}

	popCtx, popCancel := context.WithTimeout(ctx, 5*time.Second)
	defer popCancel()
	e, err := q.Pop(popCtx)
	require.NoError(t, err)
	assert.Equal(t, Hit, e.Kind)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err, "cancellation is a clean shutdown")
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop on cancellation")
	}
}
