package session

import (
	"sync"

	"github.com/roach88/homeslot/internal/zone"
)

// EventKind distinguishes gesture events.
type EventKind int

// Event kinds, one per Coordinator entry point.
const (
	EventStart EventKind = iota + 1
	EventEnter
	EventExit
	EventDrop
	EventEnd
	EventMove
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventEnter:
		return "enter"
	case EventExit:
		return "exit"
	case EventDrop:
		return "drop"
	case EventEnd:
		return "end"
	case EventMove:
		return "move"
	default:
		return "unknown"
	}
}

// Event is one gesture-layer call, queued for the owning goroutine.
type Event struct {
	Kind EventKind

	// Payload is used by EventStart.
	Payload zone.Payload

	// Zone is used by EventEnter, EventExit and EventDrop.
	Zone zone.ID

	// Target is the slot hint for EventDrop.
	Target int

	// Accepted is the host-reported drop result for EventEnd.
	Accepted bool

	// ItemID is used by EventMove.
	ItemID string

	reply chan Result
}

// Result is what processing an Event produced.
type Result struct {
	SessionID string
	Decision  zone.Decision
	Outcome   Outcome
	Slot      int
	Err       error
}

// eventQueue is a thread-safe unbounded FIFO of gesture events.
//
// The signal channel (buffered, size 1) lets the Run loop wait for work and
// for context cancellation in one select.
type eventQueue struct {
	mu     sync.Mutex
	events []Event
	closed bool
	signal chan struct{}
}

func newEventQueue() *eventQueue {
	return &eventQueue{
		events: make([]Event, 0, 16),
		signal: make(chan struct{}, 1),
	}
}

// Enqueue appends e. Returns false if the queue is closed.
func (q *eventQueue) Enqueue(e Event) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	q.events = append(q.events, e)

	// Non-blocking: the buffer of 1 coalesces signals.
	select {
	case q.signal <- struct{}{}:
	default:
	}
	return true
}

// TryDequeue removes the front event without blocking.
func (q *eventQueue) TryDequeue() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.events) == 0 {
		return Event{}, false
	}
	e := q.events[0]
	// Drop the reference so the reply channel can be collected.
	q.events[0] = Event{}
	if len(q.events) == 1 {
		q.events = q.events[:0]
	} else {
		q.events = q.events[1:]
	}
	return e, true
}

// Wait returns a channel that signals when events may be available.
// It is closed when the queue closes.
func (q *eventQueue) Wait() <-chan struct{} {
	return q.signal
}

// Len returns the number of queued events.
func (q *eventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// Close stops further enqueues and wakes waiters.
func (q *eventQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	close(q.signal)
}
