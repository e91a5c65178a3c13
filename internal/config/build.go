package config

import (
	"fmt"
	"log/slog"

	"github.com/roach88/homeslot/internal/dock"
	"github.com/roach88/homeslot/internal/grid"
	"github.com/roach88/homeslot/internal/item"
)

// Catalog builds the drawer catalog. Labels default to ids.
func (c *Config) Catalog() (*item.Catalog, error) {
	items := make([]item.Item, 0, len(c.Drawer.Items))
	for _, d := range c.Drawer.Items {
		it, err := item.New(d.ID, d.Label, d.Icon)
		if err != nil {
			return nil, fmt.Errorf("drawer item %q: %w", d.ID, err)
		}
		items = append(items, it)
	}
	return item.NewCatalog(items...)
}

// NewGrid builds an empty grid of the configured size. Debug turns on
// strict registry assertions.
func (c *Config) NewGrid(opts ...grid.Option) (*grid.Grid, error) {
	opts = append([]grid.Option{grid.WithStrict(c.Debug)}, opts...)
	return grid.New(c.Grid.Slots, opts...)
}

// NewDock builds the dock and seeds it with the configured items, in order.
// Items the resolver does not know, or that no longer fit, are skipped
// with a warning.
func (c *Config) NewDock(r item.Resolver, logger *slog.Logger, opts ...dock.Option) (*dock.Dock, error) {
	if logger == nil {
		logger = slog.Default()
	}
	d, err := dock.New(c.Dock.Capacity, opts...)
	if err != nil {
		return nil, err
	}
	for _, id := range c.Dock.Items {
		it, err := r.Resolve(id)
		if err != nil {
			logger.Warn("skipping dock default", "id", id, "error", err)
			continue
		}
		if err := d.Add(it); err != nil {
			logger.Warn("skipping dock default", "id", id, "error", err)
		}
	}
	return d, nil
}
