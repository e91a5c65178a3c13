// Package dock implements the launcher dock: a small, bounded, ordered list
// of items with its own duplicate and capacity rules.
//
// The dock's identifier namespace is separate from the home grid. The dock
// does not refuse items because they are on the grid; keeping an item in at
// most one container is the drag coordinator's job.
package dock

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/homeslot/internal/item"
)

// DefaultCapacity is the number of dock entries when none is configured.
const DefaultCapacity = 4

// ErrorCode categorizes dock failures.
type ErrorCode string

const (
	// ErrCodeDockFull indicates len(entries) == capacity.
	ErrCodeDockFull ErrorCode = "DOCK_FULL"

	// ErrCodeAlreadyInDock indicates an entry with the same ID exists.
	ErrCodeAlreadyInDock ErrorCode = "ALREADY_IN_DOCK"
)

// Error reports why a dock mutation was refused.
type Error struct {
	Code   ErrorCode
	ItemID string
}

func (e *Error) Error() string {
	switch e.Code {
	case ErrCodeDockFull:
		return fmt.Sprintf("%s: no room for %s", e.Code, e.ItemID)
	case ErrCodeAlreadyInDock:
		return fmt.Sprintf("%s: %s", e.Code, e.ItemID)
	default:
		return string(e.Code)
	}
}

// IsFull reports whether err is a DOCK_FULL error.
func IsFull(err error) bool {
	var de *Error
	return errors.As(err, &de) && de.Code == ErrCodeDockFull
}

// IsAlreadyInDock reports whether err is an ALREADY_IN_DOCK error.
func IsAlreadyInDock(err error) bool {
	var de *Error
	return errors.As(err, &de) && de.Code == ErrCodeAlreadyInDock
}

// Dock is a bounded ordered list of unique items. Not safe for concurrent use.
type Dock struct {
	entries  []item.Item
	capacity int
	onChange func()
	logger   *slog.Logger
}

// Option configures a Dock.
type Option func(*Dock)

// WithObserver registers a callback invoked after every change to the entries.
func WithObserver(fn func()) Option {
	return func(d *Dock) {
		d.onChange = fn
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dock) {
		d.logger = logger
	}
}

// New creates an empty dock holding at most capacity entries.
func New(capacity int, opts ...Option) (*Dock, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("dock capacity must be positive, got %d", capacity)
	}
	d := &Dock{
		entries:  make([]item.Item, 0, capacity),
		capacity: capacity,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Add appends it. Fails with DOCK_FULL or ALREADY_IN_DOCK without mutation.
func (d *Dock) Add(it item.Item) error {
	if err := d.check(it); err != nil {
		return err
	}
	d.entries = append(d.entries, it)
	d.notify()
	return nil
}

// Restore reinserts it at pos, the position it held before a drag removed it.
// pos is clamped to [0, Len()]. The same capacity and duplicate rules as Add
// apply. Used only for rollback.
func (d *Dock) Restore(pos int, it item.Item) error {
	if err := d.check(it); err != nil {
		return err
	}
	pos = max(0, min(pos, len(d.entries)))
	d.entries = append(d.entries, item.Item{})
	copy(d.entries[pos+1:], d.entries[pos:])
	d.entries[pos] = it
	d.notify()
	return nil
}

// Remove deletes the entry with id. Returns false (and does nothing) if absent.
func (d *Dock) Remove(id string) bool {
	idx := d.IndexOf(id)
	if idx < 0 {
		return false
	}
	d.entries = append(d.entries[:idx], d.entries[idx+1:]...)
	d.notify()
	return true
}

// Contains reports whether an entry has this id.
func (d *Dock) Contains(id string) bool {
	return d.IndexOf(id) >= 0
}

// IndexOf returns the position of id, or -1.
func (d *Dock) IndexOf(id string) int {
	for i, it := range d.entries {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// Entries returns a copy of the entries in order.
func (d *Dock) Entries() []item.Item {
	out := make([]item.Item, len(d.entries))
	copy(out, d.entries)
	return out
}

// Len returns the number of entries.
func (d *Dock) Len() int {
	return len(d.entries)
}

// Capacity returns M.
func (d *Dock) Capacity() int {
	return d.capacity
}

// Full reports whether no more entries fit.
func (d *Dock) Full() bool {
	return len(d.entries) >= d.capacity
}

func (d *Dock) check(it item.Item) error {
	if it.IsZero() {
		return item.ErrEmptyID
	}
	if len(d.entries) >= d.capacity {
		return &Error{Code: ErrCodeDockFull, ItemID: it.ID}
	}
	if d.Contains(it.ID) {
		return &Error{Code: ErrCodeAlreadyInDock, ItemID: it.ID}
	}
	return nil
}

func (d *Dock) notify() {
	d.logger.Debug("dock changed", "entries", len(d.entries))
	if d.onChange != nil {
		d.onChange()
	}
}
