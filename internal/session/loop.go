package session

import (
	"context"
	"errors"
	"log/slog"
)

// ErrLoopStopped is returned by Post after Stop or context cancellation.
var ErrLoopStopped = errors.New("session loop stopped")

// Loop owns a Coordinator on a single goroutine.
//
// Gesture sources may call Enqueue or Post from any goroutine; Run applies
// the events in FIFO order on the goroutine that called it. This is the one
// place where cross-goroutine delivery is marshalled onto the single writer.
//
// Thread-safety model:
//   - Enqueue, Post, Stop: safe from any goroutine
//   - Run: must be called from exactly one goroutine
type Loop struct {
	coord   *Coordinator
	queue   *eventQueue
	onEnd   func(context.Context, Outcome)
	onEvent func(context.Context, Event, Result)
	logger  *slog.Logger
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithOutcomeSink registers a callback run on the loop goroutine after each
// session ends, e.g. to journal it. It may block; the coordinator has
// already returned to idle.
func WithOutcomeSink(fn func(context.Context, Outcome)) LoopOption {
	return func(l *Loop) {
		l.onEnd = fn
	}
}

// WithEventHook registers a callback run on the loop goroutine after every
// event, e.g. to persist the layout.
func WithEventHook(fn func(context.Context, Event, Result)) LoopOption {
	return func(l *Loop) {
		l.onEvent = fn
	}
}

// WithLoopLogger sets the logger. Defaults to slog.Default().
func WithLoopLogger(logger *slog.Logger) LoopOption {
	return func(l *Loop) {
		l.logger = logger
	}
}

// NewLoop wraps coord. The coordinator must not be used directly once Run starts.
func NewLoop(coord *Coordinator, opts ...LoopOption) *Loop {
	l := &Loop{
		coord:  coord,
		queue:  newEventQueue(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Enqueue submits ev without waiting. Returns false if the loop is stopped.
func (l *Loop) Enqueue(ev Event) bool {
	ev.reply = nil
	return l.queue.Enqueue(ev)
}

// Post submits ev and waits for its Result.
func (l *Loop) Post(ctx context.Context, ev Event) (Result, error) {
	ev.reply = make(chan Result, 1)
	if !l.queue.Enqueue(ev) {
		return Result{}, ErrLoopStopped
	}
	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case res, ok := <-ev.reply:
		if !ok {
			return Result{}, ErrLoopStopped
		}
		return res, nil
	}
}

// Run processes events until ctx is cancelled or Stop is called.
// Events still queued at Stop are processed before Run returns nil.
func (l *Loop) Run(ctx context.Context) error {
	l.logger.Info("session loop starting")
	for {
		if ev, ok := l.queue.TryDequeue(); ok {
			l.process(ctx, ev)
			continue
		}

		select {
		case <-ctx.Done():
			l.logger.Info("session loop stopping: context cancelled")
			l.queue.Close()
			l.drain()
			return ctx.Err()

		case <-l.queue.Wait():
			if l.queue.Len() == 0 && l.closed() {
				l.logger.Info("session loop stopping: queue closed")
				return nil
			}
		}
	}
}

// Stop closes the queue. Run returns once the queue is empty.
func (l *Loop) Stop() {
	l.queue.Close()
}

func (l *Loop) closed() bool {
	l.queue.mu.Lock()
	defer l.queue.mu.Unlock()
	return l.queue.closed
}

// drain releases Post callers still waiting after cancellation.
func (l *Loop) drain() {
	for {
		ev, ok := l.queue.TryDequeue()
		if !ok {
			return
		}
		if ev.reply != nil {
			close(ev.reply)
		}
	}
}

func (l *Loop) process(ctx context.Context, ev Event) {
	res := l.apply(ev)
	if res.Err != nil {
		l.logger.Debug("event not applied", "event", ev.Kind.String(), "error", res.Err)
	}
	if ev.Kind == EventEnd && res.Err == nil && l.onEnd != nil {
		l.onEnd(ctx, res.Outcome)
	}
	if l.onEvent != nil {
		l.onEvent(ctx, ev, res)
	}
	if ev.reply != nil {
		ev.reply <- res
	}
}

func (l *Loop) apply(ev Event) Result {
	var res Result
	switch ev.Kind {
	case EventStart:
		res.SessionID, res.Err = l.coord.Start(ev.Payload)
	case EventEnter:
		res.Err = l.coord.Enter(ev.Zone)
	case EventExit:
		res.Err = l.coord.Exit(ev.Zone)
	case EventDrop:
		res.Decision, res.Err = l.coord.DropAt(ev.Zone, ev.Target)
	case EventEnd:
		res.Outcome, res.Err = l.coord.End(ev.Accepted)
	case EventMove:
		res.Slot, res.Err = l.coord.MoveDockToGrid(ev.ItemID)
	default:
		res.Err = errors.New("unknown event kind")
	}
	if res.SessionID == "" {
		if s, ok := l.coord.Session(); ok {
			res.SessionID = s.ID
		} else {
			res.SessionID = res.Outcome.SessionID
		}
	}
	return res
}
