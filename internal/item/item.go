package item

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrEmptyID is returned when an item is constructed without an identifier.
var ErrEmptyID = errors.New("item id is required")

// Item is an immutable launcher entry.
//
// Fields are exported for serialization, but callers should construct Items
// with New so the identifier is normalized.
type Item struct {
	// ID is the stable identifier (e.g. "com.android.settings").
	ID string `json:"id" yaml:"id"`

	// Label is the display name.
	Label string `json:"label" yaml:"label"`

	// IconRef is an opaque handle understood by the rendering layer.
	IconRef string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// New creates an Item with a normalized identifier and label.
// An empty label defaults to the identifier.
func New(id, label, iconRef string) (Item, error) {
	id = NormalizeID(id)
	if id == "" {
		return Item{}, ErrEmptyID
	}
	label = norm.NFC.String(strings.TrimSpace(label))
	if label == "" {
		label = id
	}
	return Item{ID: id, Label: label, IconRef: iconRef}, nil
}

// MustNew is like New but panics on error. Intended for tests and fixed tables.
func MustNew(id, label, iconRef string) Item {
	it, err := New(id, label, iconRef)
	if err != nil {
		panic(fmt.Sprintf("item.MustNew(%q): %v", id, err))
	}
	return it
}

// NormalizeID trims surrounding whitespace and applies NFC normalization.
func NormalizeID(id string) string {
	return norm.NFC.String(strings.TrimSpace(id))
}

// Same reports whether two items share an identifier.
func (it Item) Same(other Item) bool {
	return it.ID == other.ID
}

// IsZero reports whether the item is the zero value (an empty slot).
func (it Item) IsZero() bool {
	return it.ID == ""
}

// String returns "label (id)".
func (it Item) String() string {
	if it.Label == "" || it.Label == it.ID {
		return it.ID
	}
	return fmt.Sprintf("%s (%s)", it.Label, it.ID)
}
