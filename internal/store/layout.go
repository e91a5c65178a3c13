package store

import (
	"errors"
	"fmt"

	"github.com/roach88/homeslot/internal/dock"
	"github.com/roach88/homeslot/internal/grid"
	"github.com/roach88/homeslot/internal/item"
)

// ErrNoLayout is returned by LoadLayout when nothing has been saved yet.
var ErrNoLayout = errors.New("no saved layout")

// Layout is a persisted snapshot of the grid and the dock.
type Layout struct {
	GridSize     int
	DockCapacity int

	// Slots has GridSize entries; empty slots are zero Items.
	Slots []item.Item

	// Dock lists the dock entries in order.
	Dock []item.Item

	// Seq is the last trace sequence number issued when the layout was
	// saved, so a restarted session clock can resume after it.
	Seq int64
}

// Capture snapshots g and d.
func Capture(g *grid.Grid, d *dock.Dock, seq int64) Layout {
	return Layout{
		GridSize:     g.Size(),
		DockCapacity: d.Capacity(),
		Slots:        g.Snapshot(),
		Dock:         d.Entries(),
		Seq:          seq,
	}
}

// Apply loads the layout into g and d, replacing their contents.
// g must be at least GridSize slots. d must be empty.
func (l Layout) Apply(g *grid.Grid, d *dock.Dock) error {
	if err := g.Load(l.Slots); err != nil {
		return fmt.Errorf("apply layout: %w", err)
	}
	if d.Len() != 0 {
		return fmt.Errorf("apply layout: dock already holds %d entries", d.Len())
	}
	for _, it := range l.Dock {
		if err := d.Add(it); err != nil {
			return fmt.Errorf("apply layout: %w", err)
		}
	}
	return nil
}
