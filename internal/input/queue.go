package input

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
)

// DefaultQueueCapacity bounds how many presses can wait for the engine
const DefaultQueueCapacity = 8

// Queue is the bounded press queue between the watchers and the engine.
// Producers never block: when the queue is full the newest press displaces
// the oldest event of the same kind, or failing that the oldest overall,
// so the freshest press always survives.
type Queue struct {
	mu     sync.Mutex
	events []Event
	cap    int
	ready  chan struct{}
	logger *log.Logger
}

// NewQueue creates a queue holding at most capacity events
func NewQueue(logger *log.Logger, capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	return &Queue{
		events: make([]Event, 0, capacity),
		cap:    capacity,
		ready:  make(chan struct{}, 1),
		logger: logger.WithPrefix("input"),
	}
}

// Push appends an event, displacing an older one when full. Never blocks.
func (q *Queue) Push(e Event) {
	q.mu.Lock()
	if len(q.events) >= q.cap {
		dropped := q.displace(e.Kind)
		q.logger.Debug("queue full, displaced event", "dropped", dropped.Kind, "pushed", e.Kind)
	}
	q.events = append(q.events, e)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// displace removes and returns the oldest event of kind, or the oldest
// overall when none matches. Callers hold q.mu.
func (q *Queue) displace(kind Kind) Event {
	idx := 0
	for i, e := range q.events {
		if e.Kind == kind {
			idx = i
			break
		}
	}
	dropped := q.events[idx]
	q.events = append(q.events[:idx], q.events[idx+1:]...)
	return dropped
}

// Pop blocks until an event is available or ctx is done
func (q *Queue) Pop(ctx context.Context) (Event, error) {
	for {
		q.mu.Lock()
		if len(q.events) > 0 {
			e := q.events[0]
			q.events = q.events[1:]
			q.mu.Unlock()
			return e, nil
		}
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return Event{}, ctx.Err()
		case <-q.ready:
		}
	}
}

// Drain discards all queued events and returns how many were dropped. The
// engine drains on entry to a waiting phase so presses made while it was
// busy do not fire stale actions.
func (q *Queue) Drain() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.events)
	q.events = q.events[:0]
	return n
}

// Len returns the number of waiting events
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
