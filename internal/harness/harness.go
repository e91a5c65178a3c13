package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/homeslot/internal/dock"
	"github.com/roach88/homeslot/internal/grid"
	"github.com/roach88/homeslot/internal/session"
	"github.com/roach88/homeslot/internal/store"
	"github.com/roach88/homeslot/internal/testutil"
	"github.com/roach88/homeslot/internal/zone"
)

// Harness is the scenario execution engine.
// It runs one scenario with a deterministic clock and session ids.
type Harness struct {
	grid   *grid.Grid
	dock   *dock.Dock
	store  *store.Store
	clock  *testutil.DeterministicClock
	logger *slog.Logger
	result *Result

	// pending collects the live session's trace for the journal.
	pending []session.TraceEvent
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
//
// Execution flow:
// 1. Build the grid and dock and apply setup
// 2. Start a session loop owning the coordinator
// 3. Post each step and check its expectation and the invariants
// 4. Save the final layout and read back the journal
// 5. Evaluate assertions
//
// A non-nil error means the scenario could not be executed at all.
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // Suppress logs in tests

	size := scenario.Grid
	if size == 0 {
		size = grid.DefaultSize
	}
	capacity := scenario.Dock
	if capacity == 0 {
		capacity = dock.DefaultCapacity
	}

	g, err := grid.New(size, grid.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create grid: %w", err)
	}
	d, err := dock.New(capacity, dock.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create dock: %w", err)
	}

	h := &Harness{
		grid:   g,
		dock:   d,
		store:  st,
		clock:  testutil.NewDeterministicClock(),
		logger: logger,
		result: NewResult(),
	}
	if err := h.setup(scenario.Setup); err != nil {
		return nil, fmt.Errorf("failed to execute setup: %w", err)
	}

	coord := session.NewCoordinator(g, d, zone.Standard(g, d),
		session.WithIDGenerator(testutil.NewSequentialGenerator("s")),
		session.WithClock(h.clock),
		session.WithLogger(logger),
		session.WithTracer(h.record),
	)
	loop := session.NewLoop(coord,
		session.WithLoopLogger(logger),
		session.WithOutcomeSink(h.journal),
	)

	ctx := context.Background()
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	stepErr := h.executeSteps(ctx, loop, scenario.Steps)
	loop.Stop()
	if err := <-done; err != nil && stepErr == nil {
		stepErr = err
	}
	if stepErr != nil {
		return nil, fmt.Errorf("failed to execute steps: %w", stepErr)
	}

	if err := h.collect(ctx); err != nil {
		return nil, err
	}

	for _, msg := range EvaluateAssertions(h.result, scenario.Assertions) {
		h.result.AddError(msg)
	}
	return h.result, nil
}

func (h *Harness) setup(s Setup) error {
	for slot, id := range s.Grid {
		if err := h.grid.PlaceAt(slot, testutil.App(id)); err != nil {
			return fmt.Errorf("grid slot %d: %w", slot, err)
		}
	}
	for _, id := range s.Dock {
		if h.grid.Registry().Contains(id) {
			return fmt.Errorf("dock item %s is also on the grid", id)
		}
		if err := h.dock.Add(testutil.App(id)); err != nil {
			return fmt.Errorf("dock item %s: %w", id, err)
		}
	}
	return nil
}

// executeSteps posts every step to the loop in order.
func (h *Harness) executeSteps(ctx context.Context, loop *session.Loop, steps []Step) error {
	for i, step := range steps {
		ev, err := toEvent(step)
		if err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}

		res, err := loop.Post(ctx, ev)
		if err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}

		for _, msg := range checkExpect(step, res) {
			h.result.AddError(fmt.Sprintf("step %d (%s): %s", i, step.Kind(), msg))
		}
		if err := h.checkInvariants(); err != nil {
			h.result.AddError(fmt.Sprintf("step %d (%s): invariant violated: %v", i, step.Kind(), err))
		}

		h.logger.Info("step completed", "step", i, "event", step.Kind(), "error", res.Err)
	}
	return nil
}

// checkInvariants verifies the grid registry and that no item rests in
// both containers.
func (h *Harness) checkInvariants() error {
	if err := h.grid.Verify(); err != nil {
		return err
	}
	for _, it := range h.dock.Entries() {
		if h.grid.Registry().Contains(it.ID) {
			return fmt.Errorf("%s is in both the grid and the dock", it.ID)
		}
	}
	return nil
}

// record is the coordinator tracer. It runs on the loop goroutine.
func (h *Harness) record(ev session.TraceEvent) {
	h.result.Trace = append(h.result.Trace, ev)
	if ev.SessionID != "" {
		h.pending = append(h.pending, ev)
	}
}

// journal is the loop's outcome sink. It runs on the loop goroutine.
func (h *Harness) journal(ctx context.Context, out session.Outcome) {
	rec := store.NewSessionRecord(out, h.pending)
	h.pending = nil
	if err := h.store.AppendSession(ctx, rec); err != nil {
		h.result.AddError(fmt.Sprintf("journal session %s: %v", out.SessionID, err))
	}
}

// collect saves the final layout, reads it back with the journal and
// fills the result's final state.
func (h *Harness) collect(ctx context.Context) error {
	if err := h.store.SaveLayout(ctx, store.Capture(h.grid, h.dock, h.clock.Current())); err != nil {
		return fmt.Errorf("failed to save layout: %w", err)
	}
	layout, err := h.store.LoadLayout(ctx)
	if err != nil {
		return fmt.Errorf("failed to load layout: %w", err)
	}
	sessions, err := h.store.ReadSessions(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to read journal: %w", err)
	}

	r := h.result
	r.Grid = make([]string, len(layout.Slots))
	for i, it := range layout.Slots {
		r.Grid[i] = it.ID
	}
	for _, it := range layout.Dock {
		r.Dock = append(r.Dock, it.ID)
	}
	r.Registry = h.grid.Registry().IDs()
	r.Sessions = sessions
	return nil
}

func toEvent(step Step) (session.Event, error) {
	switch {
	case step.Start != nil:
		p, err := payload(step.Start)
		if err != nil {
			return session.Event{}, err
		}
		return session.Event{Kind: session.EventStart, Payload: p}, nil
	case step.Enter != "":
		return session.Event{Kind: session.EventEnter, Zone: zone.ID(step.Enter)}, nil
	case step.Exit != "":
		return session.Event{Kind: session.EventExit, Zone: zone.ID(step.Exit)}, nil
	case step.Drop != nil:
		target := zone.NoSlot
		if step.Drop.Target != nil {
			target = *step.Drop.Target
		}
		return session.Event{Kind: session.EventDrop, Zone: zone.ID(step.Drop.Zone), Target: target}, nil
	case step.End != nil:
		return session.Event{Kind: session.EventEnd, Accepted: step.End.Accepted}, nil
	case step.Move != "":
		return session.Event{Kind: session.EventMove, ItemID: step.Move}, nil
	default:
		return session.Event{}, errors.New("step has no event")
	}
}

func payload(s *StartStep) (zone.Payload, error) {
	origin, err := zone.ParseOrigin(s.From)
	if err != nil {
		return zone.Payload{}, err
	}
	it := testutil.App(s.Item)
	switch origin {
	case zone.OriginHomeGrid:
		return zone.FromGrid(it, *s.Slot), nil
	case zone.OriginDock:
		return zone.FromDock(it), nil
	case zone.OriginDockRef:
		return zone.FromDockRef(it), nil
	default:
		return zone.FromDrawer(it), nil
	}
}

// checkExpect compares a step result against its expectation. A step
// without an expectation must succeed.
func checkExpect(step Step, res session.Result) []string {
	var msgs []string
	got := errorCode(res.Err)

	exp := step.Expect
	if exp == nil {
		if got != "" {
			msgs = append(msgs, fmt.Sprintf("unexpected error: %v", res.Err))
		}
		return msgs
	}
	if exp.Error != got {
		msgs = append(msgs, fmt.Sprintf("expected error %q, got %q", exp.Error, got))
	}

	kind := step.Kind()
	if exp.Accepted != nil {
		var accepted bool
		switch kind {
		case "drop":
			accepted = res.Decision.Accepted
		case "end":
			accepted = res.Outcome.Accepted
		default:
			msgs = append(msgs, "accepted is only checked on drop and end")
		}
		if (kind == "drop" || kind == "end") && accepted != *exp.Accepted {
			msgs = append(msgs, fmt.Sprintf("expected accepted=%t, got %t", *exp.Accepted, accepted))
		}
	}
	if exp.Reason != "" && string(res.Decision.Reason) != exp.Reason {
		msgs = append(msgs, fmt.Sprintf("expected reason %s, got %q", exp.Reason, res.Decision.Reason))
	}
	if exp.Index != nil {
		var index int
		switch kind {
		case "drop":
			index = res.Decision.Index
		case "end":
			index = res.Outcome.RestoredAt
		case "move":
			index = res.Slot
		default:
			msgs = append(msgs, "index is only checked on drop, end and move")
			index = *exp.Index
		}
		if index != *exp.Index {
			msgs = append(msgs, fmt.Sprintf("expected index %d, got %d", *exp.Index, index))
		}
	}
	if exp.Restored != nil && res.Outcome.Restored != *exp.Restored {
		msgs = append(msgs, fmt.Sprintf("expected restored=%t, got %t", *exp.Restored, res.Outcome.Restored))
	}
	return msgs
}

// errorCode maps a step error onto its stable code, or "" for nil.
func errorCode(err error) string {
	if err == nil {
		return ""
	}
	var pe *session.ProtocolError
	if errors.As(err, &pe) {
		return string(pe.Code)
	}
	if code := grid.CodeOf(err); code != "" {
		return string(code)
	}
	var de *dock.Error
	if errors.As(err, &de) {
		return string(de.Code)
	}
	if errors.Is(err, session.ErrNotInDock) {
		return "NOT_IN_DOCK"
	}
	return "ERROR"
}
