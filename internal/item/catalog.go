package item

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
)

// ErrUnknownItem is returned by Resolve when the identifier is not in the catalog.
var ErrUnknownItem = errors.New("unknown item")

// Resolver maps an identifier to an Item.
// Callers resolve items before handing them to the grid, dock or a drag session;
// the placement core never builds Items itself.
type Resolver interface {
	Resolve(id string) (Item, error)
}

// Catalog is the drawer: an ordered allowlist of resolvable items.
//
// Catalog is read-only after construction and safe for concurrent use.
type Catalog struct {
	items []Item
	byID  map[string]int
}

// NewCatalog builds a catalog from items in display order.
// Duplicate identifiers are rejected.
func NewCatalog(items ...Item) (*Catalog, error) {
	c := &Catalog{
		items: make([]Item, 0, len(items)),
		byID:  make(map[string]int, len(items)),
	}
	for _, it := range items {
		if it.IsZero() {
			return nil, ErrEmptyID
		}
		if _, dup := c.byID[it.ID]; dup {
			return nil, fmt.Errorf("duplicate catalog item %q", it.ID)
		}
		c.byID[it.ID] = len(c.items)
		c.items = append(c.items, it)
	}
	return c, nil
}

// Resolve returns the catalog entry for id.
func (c *Catalog) Resolve(id string) (Item, error) {
	idx, ok := c.byID[NormalizeID(id)]
	if !ok {
		return Item{}, fmt.Errorf("%w: %q", ErrUnknownItem, id)
	}
	return c.items[idx], nil
}

// Allowed reports whether id is in the catalog.
func (c *Catalog) Allowed(id string) bool {
	_, ok := c.byID[NormalizeID(id)]
	return ok
}

// Items returns a copy of all entries in catalog order.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Search returns entries whose label contains query, ignoring case.
// An empty query returns every entry. Catalog order is preserved.
func (c *Catalog) Search(query string) []Item {
	query = strings.TrimSpace(query)
	if query == "" {
		return c.Items()
	}
	// Casers are stateful and must not be shared between goroutines.
	fold := cases.Fold()
	needle := fold.String(query)
	var out []Item
	for _, it := range c.items {
		if strings.Contains(fold.String(it.Label), needle) {
			out = append(out, it)
		}
	}
	return out
}

// Suggest returns the entry whose identifier is closest to id by edit
// distance, for "did you mean" hints. Only ids within a third of id's
// length (at least one edit) qualify; ties go to catalog order.
func (c *Catalog) Suggest(id string) (Item, bool) {
	id = NormalizeID(id)
	if id == "" {
		return Item{}, false
	}
	limit := max(1, len(id)/3)
	best, bestDist := -1, limit+1
	for i, it := range c.items {
		if d := levenshtein.ComputeDistance(id, it.ID); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return Item{}, false
	}
	return c.items[best], true
}
