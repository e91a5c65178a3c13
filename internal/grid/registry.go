package grid

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/roach88/homeslot/internal/item"
)

// Registry is the O(1) membership index of IDs currently on the grid.
//
// It is derived state: Grid keeps it equal to the set of occupied slot IDs
// by updating it at every mutation point. Callers outside this package can
// only read it.
type Registry struct {
	ids    map[string]struct{}
	strict bool
	logger *slog.Logger
}

func newRegistry(capacity int, strict bool, logger *slog.Logger) *Registry {
	return &Registry{
		ids:    make(map[string]struct{}, capacity),
		strict: strict,
		logger: logger,
	}
}

// Contains reports whether some slot holds an item with this ID.
func (r *Registry) Contains(id string) bool {
	_, ok := r.ids[id]
	return ok
}

// Len returns the number of registered IDs.
func (r *Registry) Len() int {
	return len(r.ids)
}

// IDs returns the registered IDs in sorted order.
func (r *Registry) IDs() []string {
	out := make([]string, 0, len(r.ids))
	for id := range r.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (r *Registry) add(id string) {
	if _, ok := r.ids[id]; ok {
		r.violation("registry add of present id", id)
		return
	}
	r.ids[id] = struct{}{}
}

func (r *Registry) remove(id string) {
	if _, ok := r.ids[id]; !ok {
		r.violation("registry remove of absent id", id)
		return
	}
	delete(r.ids, id)
}

// rebuild replaces the registry contents with a full scan of slots.
// Used for recovery and verification, never in steady state.
func (r *Registry) rebuild(slots []item.Item) {
	clear(r.ids)
	for _, it := range slots {
		if !it.IsZero() {
			r.ids[it.ID] = struct{}{}
		}
	}
}

// violation fails fast in strict mode and is a logged no-op otherwise.
func (r *Registry) violation(msg, id string) {
	if r.strict {
		panic(fmt.Sprintf("grid: %s: %q", msg, id))
	}
	r.logger.Warn(msg, "item", id, "event", "invariant_violation")
}
