package session

import (
	"fmt"
	"log/slog"

	"github.com/roach88/homeslot/internal/dock"
	"github.com/roach88/homeslot/internal/grid"
	"github.com/roach88/homeslot/internal/item"
	"github.com/roach88/homeslot/internal/zone"
)

// State is the coordinator's lifecycle state.
type State int

const (
	// StateIdle means no session is live.
	StateIdle State = iota
	// StateDragging means a session is live and unresolved.
	StateDragging
	// StateResolving means a zone accepted the drop and End is pending.
	StateResolving
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateDragging:
		return "DRAGGING"
	case StateResolving:
		return "RESOLVING"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Session is the live drag.
type Session struct {
	ID      string
	Payload zone.Payload

	// Hover is the zone the pointer is over, advisory only.
	Hover zone.ID

	// Drops counts DropAt calls dispatched to a handler.
	Drops int

	Accepted   bool
	AcceptedBy zone.ID

	// Landed is the grid slot an accepting grid zone used, else zone.NoSlot.
	Landed int

	// LastReason is the most recent rejection reason.
	LastReason zone.Reason
}

// Outcome summarizes a finished session.
type Outcome struct {
	SessionID  string
	Item       item.Item
	Origin     zone.Origin
	OriginSlot int
	Drops      int

	Accepted   bool
	AcceptedBy zone.ID
	Landed     int
	LastReason zone.Reason

	// Restored is true when the item was rolled back into its origin.
	Restored   bool
	RestoredAt int

	// RestoreFailed is true when rollback was required but impossible,
	// e.g. the origin slot and every other slot were filled mid-drag.
	RestoreFailed bool
}

// Coordinator drives drag sessions over one grid and one dock.
type Coordinator struct {
	grid   *grid.Grid
	dock   *dock.Dock
	zones  *zone.Table
	ids    IDGenerator
	clock  Sequencer
	logger *slog.Logger
	strict bool
	tracer func(TraceEvent)

	state   State
	current *Session
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithIDGenerator sets the session ID source. Defaults to UUIDv7Generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(c *Coordinator) {
		c.ids = gen
	}
}

// WithClock sets the trace sequencer. Defaults to a fresh Clock.
func WithClock(seq Sequencer) Option {
	return func(c *Coordinator) {
		c.clock = seq
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// WithStrict makes out-of-protocol calls panic instead of being ignored.
func WithStrict(strict bool) Option {
	return func(c *Coordinator) {
		c.strict = strict
	}
}

// WithTracer registers a callback receiving every processed event.
func WithTracer(fn func(TraceEvent)) Option {
	return func(c *Coordinator) {
		c.tracer = fn
	}
}

// NewCoordinator creates an idle coordinator. zones is usually
// zone.Standard(g, d).
func NewCoordinator(g *grid.Grid, d *dock.Dock, zones *zone.Table, opts ...Option) *Coordinator {
	c := &Coordinator{
		grid:   g,
		dock:   d,
		zones:  zones,
		ids:    UUIDv7Generator{},
		clock:  NewClock(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the lifecycle state.
func (c *Coordinator) State() State {
	return c.state
}

// Active reports whether a session is live.
func (c *Coordinator) Active() bool {
	return c.current != nil
}

// Session returns a copy of the live session.
func (c *Coordinator) Session() (Session, bool) {
	if c.current == nil {
		return Session{}, false
	}
	return *c.current, true
}

// Hover returns the zone currently under the pointer, or "".
func (c *Coordinator) Hover() zone.ID {
	if c.current == nil {
		return ""
	}
	return c.current.Hover
}

// Start begins a session for p and vacates its origin.
//
// A grid origin clears p.OriginSlot, which must hold p.Item. A dock origin
// removes the entry and records its position for rollback. Drawer and
// dock-reference origins mutate nothing. Returns the new session ID.
func (c *Coordinator) Start(p zone.Payload) (string, error) {
	const op = "start"
	if c.current != nil {
		return "", c.reject(&ProtocolError{
			Code: ErrCodeSessionActive, Op: op, SessionID: c.current.ID,
			Message: fmt.Sprintf("cannot start %s while a session is live", p.Item.ID),
		})
	}
	if p.Item.IsZero() {
		return "", c.reject(&ProtocolError{Code: ErrCodeBadOrigin, Op: op, Message: "payload has no item"})
	}

	switch p.Origin {
	case zone.OriginHomeGrid:
		held, ok := c.grid.ItemAt(p.OriginSlot)
		if !ok || held.ID != p.Item.ID {
			return "", c.reject(&ProtocolError{
				Code: ErrCodeBadOrigin, Op: op,
				Message: fmt.Sprintf("slot %d does not hold %s", p.OriginSlot, p.Item.ID),
			})
		}
		if _, err := c.grid.Clear(p.OriginSlot); err != nil {
			return "", fmt.Errorf("start: clear origin slot: %w", err)
		}

	case zone.OriginDock:
		pos := c.dock.IndexOf(p.Item.ID)
		if pos < 0 {
			return "", c.reject(&ProtocolError{
				Code: ErrCodeBadOrigin, Op: op,
				Message: fmt.Sprintf("dock does not hold %s", p.Item.ID),
			})
		}
		c.dock.Remove(p.Item.ID)
		p.OriginSlot = pos

	case zone.OriginDockRef:
		if !c.dock.Contains(p.Item.ID) {
			return "", c.reject(&ProtocolError{
				Code: ErrCodeBadOrigin, Op: op,
				Message: fmt.Sprintf("dock does not hold %s", p.Item.ID),
			})
		}
		p.OriginSlot = zone.NoSlot

	case zone.OriginDrawer:
		p.OriginSlot = zone.NoSlot

	default:
		return "", c.reject(&ProtocolError{
			Code: ErrCodeBadOrigin, Op: op, Message: fmt.Sprintf("unknown origin %s", p.Origin),
		})
	}

	c.current = &Session{
		ID:      c.ids.Generate(),
		Payload: p,
		Landed:  zone.NoSlot,
	}
	c.state = StateDragging

	c.logger.Info("drag started",
		"session", c.current.ID,
		"item", p.Item.ID,
		"origin", p.Origin.String(),
		"slot", p.OriginSlot,
	)
	c.emit(TraceEvent{
		Kind:   TraceStart,
		ItemID: p.Item.ID,
		Origin: p.Origin,
		Slot:   p.OriginSlot,
		Target: zone.NoSlot,
		Index:  zone.NoSlot,
	})
	return c.current.ID, nil
}

// Enter records that the pointer entered zone z. Advisory only.
func (c *Coordinator) Enter(z zone.ID) error {
	return c.hover(TraceEnter, z)
}

// Exit records that the pointer left zone z. Advisory only.
func (c *Coordinator) Exit(z zone.ID) error {
	return c.hover(TraceExit, z)
}

func (c *Coordinator) hover(kind TraceKind, z zone.ID) error {
	if c.current == nil {
		return c.reject(&ProtocolError{Code: ErrCodeNoSession, Op: string(kind), Message: fmt.Sprintf("zone %s", z)})
	}
	switch kind {
	case TraceEnter:
		c.current.Hover = z
	case TraceExit:
		if c.current.Hover == z {
			c.current.Hover = ""
		}
	}
	c.logger.Debug("drag hover", "session", c.current.ID, "event", string(kind), "zone", string(z))
	c.emit(TraceEvent{Kind: kind, Zone: z, Target: zone.NoSlot, Index: zone.NoSlot, Slot: zone.NoSlot})
	return nil
}

// DropAt delegates the drop to zone z's handler and returns its decision.
//
// target is the slot under the pointer for slot-addressed zones, else
// zone.NoSlot. Before dispatch the coordinator enforces that an item rests
// in at most one of the grid and the dock.
func (c *Coordinator) DropAt(z zone.ID, target int) (zone.Decision, error) {
	const op = "drop"
	if c.current == nil {
		return zone.Reject(zone.ReasonNoHandler, nil), c.reject(&ProtocolError{
			Code: ErrCodeNoSession, Op: op, Message: fmt.Sprintf("zone %s", z),
		})
	}
	s := c.current
	if s.Accepted {
		return zone.Reject(zone.ReasonNone, nil), c.reject(&ProtocolError{
			Code: ErrCodeAlreadyResolved, Op: op, SessionID: s.ID,
			Message: fmt.Sprintf("already accepted by %s", s.AcceptedBy),
		})
	}

	dec := c.dispatch(s.Payload, z, target)
	s.Drops++

	if dec.Accepted {
		s.Accepted = true
		s.AcceptedBy = z
		s.Landed = dec.Index
		c.state = StateResolving
		c.logger.Info("drop accepted", "session", s.ID, "item", s.Payload.Item.ID, "zone", string(z), "index", dec.Index)
	} else {
		s.LastReason = dec.Reason
		c.logger.Info("drop rejected", "session", s.ID, "item", s.Payload.Item.ID, "zone", string(z), "reason", string(dec.Reason))
	}

	c.emit(TraceEvent{
		Kind:     TraceDrop,
		Zone:     z,
		Target:   target,
		Accepted: dec.Accepted,
		Reason:   dec.Reason,
		Index:    dec.Index,
		Slot:     zone.NoSlot,
	})
	return dec, nil
}

func (c *Coordinator) dispatch(p zone.Payload, z zone.ID, target int) zone.Decision {
	h, ok := c.zones.Lookup(z)
	if !ok {
		return zone.Reject(zone.ReasonNoHandler, fmt.Errorf("no handler for zone %q", z))
	}

	switch h.Container() {
	case zone.ContainerDock:
		if c.grid.IsDuplicate(p.Item) {
			return zone.Reject(zone.ReasonDuplicate, fmt.Errorf("%s is on the home grid", p.Item.ID))
		}
	case zone.ContainerGrid:
		if p.Origin != zone.OriginDockRef && c.dock.Contains(p.Item.ID) {
			return zone.Reject(zone.ReasonDuplicate, fmt.Errorf("%s is in the dock", p.Item.ID))
		}
	}

	dec := h.Accept(p, target)
	if dec.Accepted && p.Origin == zone.OriginDockRef && h.Container() == zone.ContainerGrid {
		// The dock entry moves with the accept; it must not outlive it.
		c.dock.Remove(p.Item.ID)
	}
	return dec
}

// End closes the session.
//
// If no zone accepted the drop and the origin was the grid or the dock, the
// item is restored to its exact slot or position. The coordinator's own
// record of acceptance is authoritative: a caller reporting
// dropWasAccepted=false after a handler accepted never causes a restore, and
// a caller reporting true after every handler rejected still gets the
// rollback, so the item can neither be duplicated nor lost.
func (c *Coordinator) End(dropWasAccepted bool) (Outcome, error) {
	if c.current == nil {
		return Outcome{}, c.reject(&ProtocolError{Code: ErrCodeNoSession, Op: "end", Message: "no live session"})
	}
	s := c.current
	if dropWasAccepted != s.Accepted {
		c.logger.Warn("drop result disagrees with handler decisions",
			"session", s.ID,
			"reported", dropWasAccepted,
			"accepted", s.Accepted,
		)
	}

	out := Outcome{
		SessionID:  s.ID,
		Item:       s.Payload.Item,
		Origin:     s.Payload.Origin,
		OriginSlot: s.Payload.OriginSlot,
		Drops:      s.Drops,
		Accepted:   s.Accepted,
		AcceptedBy: s.AcceptedBy,
		Landed:     s.Landed,
		LastReason: s.LastReason,
		RestoredAt: zone.NoSlot,
	}

	if !s.Accepted && s.Payload.Origin.Restorable() {
		c.restore(s, &out)
	}

	c.emit(TraceEvent{
		Kind:     TraceEnd,
		Accepted: out.Accepted,
		Restored: out.Restored,
		Index:    out.RestoredAt,
		Target:   zone.NoSlot,
		Slot:     zone.NoSlot,
	})
	c.logger.Info("drag ended",
		"session", s.ID,
		"item", s.Payload.Item.ID,
		"accepted", out.Accepted,
		"restored", out.Restored,
	)

	c.current = nil
	c.state = StateIdle
	return out, nil
}

func (c *Coordinator) restore(s *Session, out *Outcome) {
	it := s.Payload.Item
	switch s.Payload.Origin {
	case zone.OriginHomeGrid:
		if c.grid.IsDuplicate(it) {
			c.logger.Warn("rollback skipped: item already on grid", "session", s.ID, "item", it.ID)
			return
		}
		slot := s.Payload.OriginSlot
		if _, occupied := c.grid.ItemAt(slot); occupied {
			next, ok := c.grid.FindNextEmptySlot(slot)
			if !ok {
				out.RestoreFailed = true
				c.logger.Error("rollback failed: grid full", "session", s.ID, "item", it.ID, "slot", slot)
				return
			}
			slot = next
		}
		if err := c.grid.PlaceAt(slot, it); err != nil {
			out.RestoreFailed = true
			c.logger.Error("rollback failed", "session", s.ID, "item", it.ID, "slot", slot, "error", err)
			return
		}
		out.Restored = true
		out.RestoredAt = slot

	case zone.OriginDock:
		if err := c.dock.Restore(s.Payload.OriginSlot, it); err != nil {
			if dock.IsAlreadyInDock(err) {
				c.logger.Warn("rollback skipped: item already in dock", "session", s.ID, "item", it.ID)
				return
			}
			out.RestoreFailed = true
			c.logger.Error("rollback failed", "session", s.ID, "item", it.ID, "error", err)
			return
		}
		out.Restored = true
		out.RestoredAt = c.dock.IndexOf(it.ID)
	}
}

// MoveDockToGrid moves a dock entry to the first empty grid slot outside of
// any drag (the long-press quick move). Either both containers change or
// neither does. Returns the slot used.
func (c *Coordinator) MoveDockToGrid(id string) (int, error) {
	if c.current != nil {
		return zone.NoSlot, c.reject(&ProtocolError{
			Code: ErrCodeSessionActive, Op: "move", SessionID: c.current.ID,
			Message: fmt.Sprintf("cannot move %s during a drag", id),
		})
	}
	pos := c.dock.IndexOf(id)
	if pos < 0 {
		return zone.NoSlot, fmt.Errorf("move %s: %w", id, ErrNotInDock)
	}
	it := c.dock.Entries()[pos]

	slot, err := c.grid.PlaceWithDuplicateGuard(0, it)
	if err != nil {
		return zone.NoSlot, fmt.Errorf("move %s: %w", id, err)
	}
	c.dock.Remove(id)

	c.logger.Info("moved dock item to grid", "item", id, "slot", slot)
	c.emit(TraceEvent{Kind: TraceMove, ItemID: id, Index: slot, Target: zone.NoSlot, Slot: pos})
	return slot, nil
}

// reject handles an out-of-protocol call: panic in strict mode, else log.
func (c *Coordinator) reject(err *ProtocolError) error {
	if c.strict {
		panic(err.Error())
	}
	c.logger.Warn("ignoring out-of-protocol call",
		"code", string(err.Code),
		"op", err.Op,
		"session", err.SessionID,
		"detail", err.Message,
	)
	return err
}

func (c *Coordinator) emit(ev TraceEvent) {
	ev.Seq = c.clock.Next()
	if ev.SessionID == "" && c.current != nil {
		ev.SessionID = c.current.ID
	}
	if c.tracer != nil {
		c.tracer(ev)
	}
}
