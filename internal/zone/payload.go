package zone

import (
	"fmt"
	"strings"

	"github.com/roach88/homeslot/internal/item"
)

// NoSlot marks an absent slot index (drawer or dock origins, surface drops).
const NoSlot = -1

// Origin is the container a drag started from.
type Origin int

const (
	// OriginHomeGrid is a drag out of a grid slot. The slot is vacated at
	// drag start and restored if no zone accepts.
	OriginHomeGrid Origin = iota + 1

	// OriginDock is a drag out of the dock. The entry is removed at drag
	// start and restored to its position if no zone accepts.
	OriginDock

	// OriginDrawer is a drag from the unlimited drawer. Nothing is vacated
	// and nothing is restored.
	OriginDrawer

	// OriginDockRef is a drag that references a dock entry without vacating
	// it. If a grid zone accepts, the dock entry is removed in the same step.
	OriginDockRef
)

var originNames = map[Origin]string{
	OriginHomeGrid: "home",
	OriginDock:     "dock",
	OriginDrawer:   "drawer",
	OriginDockRef:  "dockref",
}

// String returns the short origin name used in traces and the CLI.
func (o Origin) String() string {
	if name, ok := originNames[o]; ok {
		return name
	}
	return fmt.Sprintf("origin(%d)", int(o))
}

// Restorable reports whether a drag from this origin vacates its container
// and therefore must be rolled back when nothing accepts it.
func (o Origin) Restorable() bool {
	return o == OriginHomeGrid || o == OriginDock
}

// ParseOrigin parses an origin name ("home", "dock", "drawer", "dockref").
func ParseOrigin(s string) (Origin, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for o, name := range originNames {
		if name == s {
			return o, nil
		}
	}
	return 0, fmt.Errorf("unknown origin %q", s)
}

// Payload is the drag-local state for one session.
// It is constructed once at drag start and passed by value to every handler.
type Payload struct {
	Item   item.Item
	Origin Origin

	// OriginSlot is the grid slot (OriginHomeGrid) or dock position
	// (OriginDock) the item left, else NoSlot.
	OriginSlot int
}

// FromGrid builds the payload for a drag out of grid slot.
func FromGrid(it item.Item, slot int) Payload {
	return Payload{Item: it, Origin: OriginHomeGrid, OriginSlot: slot}
}

// FromDock builds the payload for a drag out of the dock. The coordinator
// fills in the dock position when it removes the entry.
func FromDock(it item.Item) Payload {
	return Payload{Item: it, Origin: OriginDock, OriginSlot: NoSlot}
}

// FromDockRef builds the payload for a non-vacating drag of a dock entry.
func FromDockRef(it item.Item) Payload {
	return Payload{Item: it, Origin: OriginDockRef, OriginSlot: NoSlot}
}

// FromDrawer builds the payload for a drag out of the drawer.
func FromDrawer(it item.Item) Payload {
	return Payload{Item: it, Origin: OriginDrawer, OriginSlot: NoSlot}
}
