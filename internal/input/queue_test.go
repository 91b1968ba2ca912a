package input

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func at(ms int) time.Time {
	return time.Unix(0, int64(ms)*int64(time.Millisecond))
}

func TestQueuePreservesOrder(t *testing.T) {
	q := NewQueue(testLogger(), 8)
	q.Push(Event{Kind: Start, At: at(1)})
	q.Push(Event{Kind: Hit, At: at(2)})
	q.Push(Event{Kind: Stand, At: at(3)})

	ctx := context.Background()
	for _, want := range []Kind{Start, Hit, Stand} {
		e, err := q.Pop(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, e.Kind)
	}
}

func TestQueueOverflowDisplacesOldestSameKind(t *testing.T) {
	q := NewQueue(testLogger(), 3)
	q.Push(Event{Kind: Start, At: at(1)})
	q.Push(Event{Kind: Hit, At: at(2)})
	q.Push(Event{Kind: Stand, At: at(3)})

	// full: the newest hit replaces the stale hit, everything else stays
	q.Push(Event{Kind: Hit, At: at(4)})
	assert.Equal(t, 3, q.Len())

	ctx := context.Background()
	first, _ := q.Pop(ctx)
	second, _ := q.Pop(ctx)
	third, _ := q.Pop(ctx)
	assert.Equal(t, Start, first.Kind)
	assert.Equal(t, Stand, second.Kind)
	assert.Equal(t, Hit, third.Kind)
	assert.Equal(t, at(4), third.At, "the fresher press survives")
}

func TestQueueOverflowFallsBackToOldestOverall(t *testing.T) {
	q := NewQueue(testLogger(), 2)
	q.Push(Event{Kind: Start, At: at(1)})
	q.Push(Event{Kind: Hit, At: at(2)})

	q.Push(Event{Kind: Stand, At: at(3)})
	assert.Equal(t, 2, q.Len())

	ctx := context.Background()
	first, _ := q.Pop(ctx)
	second, _ := q.Pop(ctx)
	assert.Equal(t, Hit, first.Kind, "oldest overall was displaced")
	assert.Equal(t, Stand, second.Kind)
}

func TestQueuePopBlocksUntilPush(t *testing.T) {
	q := NewQueue(testLogger(), 8)
	ctx := context.Background()

	got := make(chan Event, 1)
	go func() {
		e, err := q.Pop(ctx)
		if err == nil {
			got <- e
		}
	}()

	select {
	case <-got:
		t.Fatal("Pop returned before any push")
	case <-time.After(20 * time.Millisecond):
	}

	q.Push(Event{Kind: Hit, At: at(1)})
	select {
	case e := <-got:
		assert.Equal(t, Hit, e.Kind)
	case <-time.After(time.Second):
		t.Fatal("Pop did not wake on push")
	}
}

func TestQueuePopHonorsContext(t *testing.T) {
	q := NewQueue(testLogger(), 8)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := q.Pop(ctx)
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Pop did not honor cancellation")
	}
}

func TestQueueDrain(t *testing.T) {
	q := NewQueue(testLogger(), 8)
	q.Push(Event{Kind: Start, At: at(1)})
	q.Push(Event{Kind: Hit, At: at(2)})

	assert.Equal(t, 2, q.Drain())
	assert.Zero(t, q.Len())
	assert.Zero(t, q.Drain())
}

func TestQueuePushNeverBlocks(t *testing.T) {
	q := NewQueue(testLogger(), 2)
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			q.Push(Event{Kind: Hit, At: at(i)})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Push blocked on a full queue")
	}
	assert.Equal(t, 2, q.Len())
}
