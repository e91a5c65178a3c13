package zone

import (
	"fmt"
	"sort"

	"github.com/roach88/homeslot/internal/dock"
	"github.com/roach88/homeslot/internal/grid"
)

// ID names a drop zone.
type ID string

// Standard zone IDs.
const (
	ZoneHome   ID = "home"
	ZoneCell   ID = "cell"
	ZoneDock   ID = "dock"
	ZoneRemove ID = "remove"
)

// Container identifies which data structure a zone writes to.
type Container int

const (
	ContainerNone Container = iota
	ContainerGrid
	ContainerDock
)

// Handler decides whether a zone accepts a drop and performs the zone's
// mutation when it does.
//
// target is the slot under the pointer for slot-addressed zones, else NoSlot.
type Handler interface {
	Zone() ID
	Container() Container
	Accept(p Payload, target int) Decision
}

// Table maps zone IDs to handlers.
type Table struct {
	handlers map[ID]Handler
}

// NewTable builds a table from handlers. A later handler with the same
// zone ID replaces an earlier one.
func NewTable(handlers ...Handler) *Table {
	t := &Table{handlers: make(map[ID]Handler, len(handlers))}
	for _, h := range handlers {
		t.Register(h)
	}
	return t
}

// Standard returns a table with the home, cell, dock and remove zones
// wired to g and d.
func Standard(g *grid.Grid, d *dock.Dock) *Table {
	return NewTable(
		&HomeSurface{Grid: g},
		&Cell{Grid: g},
		&DockZone{Dock: d},
		&Remove{},
	)
}

// Register adds or replaces the handler for h.Zone().
func (t *Table) Register(h Handler) {
	t.handlers[h.Zone()] = h
}

// Lookup returns the handler for id.
func (t *Table) Lookup(id ID) (Handler, bool) {
	h, ok := t.handlers[id]
	return h, ok
}

// IDs returns the registered zone IDs in sorted order.
func (t *Table) IDs() []ID {
	out := make([]ID, 0, len(t.handlers))
	for id := range t.handlers {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// HomeSurface handles drops onto the general home surface (not a cell).
type HomeSurface struct {
	Grid *grid.Grid
}

func (h *HomeSurface) Zone() ID             { return ZoneHome }
func (h *HomeSurface) Container() Container { return ContainerGrid }

// Accept places the item in the first empty slot from 0.
// Grid-origin drags are rejected: re-dropping onto the surface is not a move.
func (h *HomeSurface) Accept(p Payload, _ int) Decision {
	if p.Origin == OriginHomeGrid {
		return Reject(ReasonWrongOrigin, nil)
	}
	if h.Grid.IsDuplicate(p.Item) {
		return Reject(ReasonDuplicate, nil)
	}
	slot, ok := h.Grid.FindNextEmptySlot(0)
	if !ok {
		return Reject(ReasonFull, nil)
	}
	if err := h.Grid.PlaceAt(slot, p.Item); err != nil {
		return Reject(ReasonFor(err), err)
	}
	return Accept(slot)
}

// Cell handles drops onto a specific grid slot.
type Cell struct {
	Grid *grid.Grid
}

func (c *Cell) Zone() ID             { return ZoneCell }
func (c *Cell) Container() Container { return ContainerGrid }

// Accept runs the grid's duplicate-guarded placement at target.
// Grid-origin drags are allowed: the origin slot was vacated at drag start,
// so this is a move.
func (c *Cell) Accept(p Payload, target int) Decision {
	if target == NoSlot {
		return Reject(ReasonOutOfRange, fmt.Errorf("cell drop without a target slot"))
	}
	slot, err := c.Grid.PlaceWithDuplicateGuard(target, p.Item)
	if err != nil {
		return Reject(ReasonFor(err), err)
	}
	return Accept(slot)
}

// DockZone handles drops onto the dock.
type DockZone struct {
	Dock *dock.Dock
}

func (d *DockZone) Zone() ID             { return ZoneDock }
func (d *DockZone) Container() Container { return ContainerDock }

// Accept appends the item. For grid origins the slot was already vacated
// at drag start, so no grid mutation is needed.
func (d *DockZone) Accept(p Payload, _ int) Decision {
	if err := d.Dock.Add(p.Item); err != nil {
		return Reject(ReasonFor(err), err)
	}
	return Accept(NoSlot)
}

// Remove handles drops onto the remove zone.
type Remove struct{}

func (r *Remove) Zone() ID             { return ZoneRemove }
func (r *Remove) Container() Container { return ContainerNone }

// Accept accepts only grid-origin drags. Acceptance performs no mutation:
// the slot was vacated at drag start and is simply never restored.
func (r *Remove) Accept(p Payload, _ int) Decision {
	if p.Origin != OriginHomeGrid {
		return Reject(ReasonWrongOrigin, nil)
	}
	return Accept(NoSlot)
}
