package grid

import (
	"fmt"
	"log/slog"

	"github.com/roach88/homeslot/internal/item"
)

// DefaultSize is one page of the launcher's 3x5 home grid.
const DefaultSize = 15

// Grid is the Home Grid: a fixed-length sequence of optional items.
// An empty slot is the zero item.Item.
type Grid struct {
	slots    []item.Item
	registry *Registry
	onChange func(index int)
	strict   bool
	logger   *slog.Logger
}

// Option configures a Grid.
type Option func(*Grid)

// WithObserver registers a callback invoked with the index of every slot
// whose content changed. Used by the rendering layer to redraw cells.
func WithObserver(fn func(index int)) Option {
	return func(g *Grid) {
		g.onChange = fn
	}
}

// WithStrict makes registry invariant violations panic instead of being
// logged and ignored. Intended for tests and debug builds.
func WithStrict(strict bool) Option {
	return func(g *Grid) {
		g.strict = strict
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(g *Grid) {
		g.logger = logger
	}
}

// New creates an empty grid with size slots.
func New(size int, opts ...Option) (*Grid, error) {
	if size < 1 {
		return nil, fmt.Errorf("grid size must be positive, got %d", size)
	}
	g := &Grid{
		slots:  make([]item.Item, size),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.registry = newRegistry(size, g.strict, g.logger)
	return g, nil
}

// Size returns the number of slots, N.
func (g *Grid) Size() int {
	return len(g.slots)
}

// Registry returns the read-only membership index.
func (g *Grid) Registry() *Registry {
	return g.registry
}

// ItemAt returns the item in slot index, and false if the slot is empty or
// the index is out of range.
func (g *Grid) ItemAt(index int) (item.Item, bool) {
	if !g.inRange(index) {
		return item.Item{}, false
	}
	it := g.slots[index]
	return it, !it.IsZero()
}

// IsDuplicate reports whether an item with the same ID is already on the grid.
func (g *Grid) IsDuplicate(it item.Item) bool {
	return g.registry.Contains(it.ID)
}

// IndexOf returns the slot holding id, or -1.
func (g *Grid) IndexOf(id string) int {
	if !g.registry.Contains(id) {
		return -1
	}
	for i, it := range g.slots {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// FindNextEmptySlot returns the first empty index scanning forward from
// start (inclusive) to the end, then backward from start-1 to 0.
// Returns false if the grid is full.
//
// Example with N=5 and only slot 2 occupied: FindNextEmptySlot(2) == 3.
func (g *Grid) FindNextEmptySlot(start int) (int, bool) {
	n := len(g.slots)
	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}
	for i := start; i < n; i++ {
		if g.slots[i].IsZero() {
			return i, true
		}
	}
	for i := start - 1; i >= 0; i-- {
		if g.slots[i].IsZero() {
			return i, true
		}
	}
	return -1, false
}

// PlaceAt unconditionally writes it into slot index, evicting any occupant.
//
// This is the low-level primitive for callers that already decided
// duplicate policy. It still refuses to create a duplicate: if the item is
// present at a different index it fails with DUPLICATE. Placing an item onto
// the slot it already occupies is a no-op.
func (g *Grid) PlaceAt(index int, it item.Item) error {
	if !g.inRange(index) {
		return outOfRange(index, it.ID)
	}
	if it.IsZero() {
		return fmt.Errorf("place at slot %d: %w", index, item.ErrEmptyID)
	}
	current := g.slots[index]
	if current.ID == it.ID {
		g.slots[index] = it
		return nil
	}
	if g.registry.Contains(it.ID) {
		return &PlacementError{
			Code:          ErrCodeDuplicate,
			Index:         index,
			ItemID:        it.ID,
			ExistingIndex: g.IndexOf(it.ID),
		}
	}
	if !current.IsZero() {
		g.logger.Debug("evicting slot occupant", "slot", index, "evicted", current.ID, "item", it.ID)
		g.registry.remove(current.ID)
	}
	g.slots[index] = it
	g.registry.add(it.ID)
	g.notify(index)
	return nil
}

// PlaceWithDuplicateGuard is the drop entry point.
//
// The duplicate guard runs first: if the item is anywhere on the grid the
// call fails with ALREADY_PLACED and no slot search happens. Otherwise the
// item lands in slot index if it is empty, else in FindNextEmptySlot(index),
// else the call fails with GRID_FULL. Returns the slot actually used.
func (g *Grid) PlaceWithDuplicateGuard(index int, it item.Item) (int, error) {
	if g.registry.Contains(it.ID) {
		return -1, &PlacementError{
			Code:          ErrCodeAlreadyPlaced,
			Index:         index,
			ItemID:        it.ID,
			ExistingIndex: g.IndexOf(it.ID),
		}
	}
	if !g.inRange(index) {
		return -1, outOfRange(index, it.ID)
	}

	target := index
	if !g.slots[index].IsZero() {
		next, ok := g.FindNextEmptySlot(index)
		if !ok {
			return -1, &PlacementError{Code: ErrCodeGridFull, Index: index, ItemID: it.ID, ExistingIndex: -1}
		}
		target = next
	}
	if err := g.PlaceAt(target, it); err != nil {
		return -1, err
	}
	return target, nil
}

// Clear empties slot index and returns what was there.
// Clearing an empty slot is a no-op.
func (g *Grid) Clear(index int) (item.Item, error) {
	if !g.inRange(index) {
		return item.Item{}, outOfRange(index, "")
	}
	current := g.slots[index]
	if current.IsZero() {
		return item.Item{}, nil
	}
	g.slots[index] = item.Item{}
	g.registry.remove(current.ID)
	g.notify(index)
	return current, nil
}

// Snapshot returns a copy of all slots. Empty slots are zero Items.
func (g *Grid) Snapshot() []item.Item {
	out := make([]item.Item, len(g.slots))
	copy(out, g.slots)
	return out
}

// Load replaces every slot with slots, e.g. when restoring a persisted
// layout. slots may be shorter than the grid; missing entries are empty.
// Fails without mutation if slots is longer than the grid or holds a duplicate.
func (g *Grid) Load(slots []item.Item) error {
	if len(slots) > len(g.slots) {
		return fmt.Errorf("load %d slots into grid of %d", len(slots), len(g.slots))
	}
	seen := make(map[string]int, len(slots))
	for i, it := range slots {
		if it.IsZero() {
			continue
		}
		if prev, dup := seen[it.ID]; dup {
			return &PlacementError{Code: ErrCodeDuplicate, Index: i, ItemID: it.ID, ExistingIndex: prev}
		}
		seen[it.ID] = i
	}

	for i := range g.slots {
		var next item.Item
		if i < len(slots) {
			next = slots[i]
		}
		changed := g.slots[i] != next
		g.slots[i] = next
		if changed {
			g.notify(i)
		}
	}
	g.registry.rebuild(g.slots)
	return nil
}

// RebuildRegistry recomputes the registry from a full slot scan.
func (g *Grid) RebuildRegistry() {
	g.registry.rebuild(g.slots)
}

// Verify checks the grid invariants: no duplicate IDs across slots and the
// registry equal to the scanned set of IDs.
func (g *Grid) Verify() error {
	scanned := make(map[string]int, len(g.slots))
	for i, it := range g.slots {
		if it.IsZero() {
			continue
		}
		if prev, dup := scanned[it.ID]; dup {
			return fmt.Errorf("item %s in slots %d and %d", it.ID, prev, i)
		}
		scanned[it.ID] = i
		if !g.registry.Contains(it.ID) {
			return fmt.Errorf("item %s in slot %d missing from registry", it.ID, i)
		}
	}
	if g.registry.Len() != len(scanned) {
		for _, id := range g.registry.IDs() {
			if _, ok := scanned[id]; !ok {
				return fmt.Errorf("registry holds %s which is in no slot", id)
			}
		}
	}
	return nil
}

// PageCount returns how many pages of perPage slots the grid spans.
func (g *Grid) PageCount(perPage int) int {
	if perPage < 1 {
		return 0
	}
	return (len(g.slots) + perPage - 1) / perPage
}

// Page returns a copy of the slots on page p (zero-based).
// Returns nil if p is out of range.
func (g *Grid) Page(p, perPage int) []item.Item {
	if perPage < 1 || p < 0 || p >= g.PageCount(perPage) {
		return nil
	}
	start := p * perPage
	end := min(start+perPage, len(g.slots))
	out := make([]item.Item, end-start)
	copy(out, g.slots[start:end])
	return out
}

func (g *Grid) inRange(index int) bool {
	return index >= 0 && index < len(g.slots)
}

func (g *Grid) notify(index int) {
	if g.onChange != nil {
		g.onChange(index)
	}
}
