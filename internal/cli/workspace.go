package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/roach88/homeslot/internal/config"
	"github.com/roach88/homeslot/internal/dock"
	"github.com/roach88/homeslot/internal/grid"
	"github.com/roach88/homeslot/internal/item"
	"github.com/roach88/homeslot/internal/session"
	"github.com/roach88/homeslot/internal/store"
	"github.com/roach88/homeslot/internal/zone"
)

// workspace is the launcher state one command operates on: the
// configuration, the persisted layout and the journal.
type workspace struct {
	cfg     *config.Config
	catalog *item.Catalog
	store   *store.Store
	grid    *grid.Grid
	dock    *dock.Dock
	clock   *session.Clock
	logger  *slog.Logger
}

// openWorkspace loads the configuration and opens the database at dbPath
// (the configured database when empty). A database without a saved layout
// starts from an empty grid and the configured dock defaults.
func openWorkspace(ctx context.Context, opts *RootOptions, dbPath string, cmd *cobra.Command) (*workspace, error) {
	logger := newLogger(opts, cmd.ErrOrStderr())

	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	catalog, err := cfg.Catalog()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to build drawer", err)
	}

	if dbPath == "" {
		dbPath = cfg.Database
	}
	if dbPath, err = homedir.Expand(dbPath); err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid database path", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}

	w := &workspace{cfg: cfg, catalog: catalog, store: st, logger: logger}
	if err := w.load(ctx); err != nil {
		st.Close()
		return nil, err
	}
	return w, nil
}

func (w *workspace) load(ctx context.Context) error {
	layout, err := w.store.LoadLayout(ctx)
	switch {
	case errors.Is(err, store.ErrNoLayout):
		w.logger.Debug("no saved layout, using config defaults")
		if w.grid, err = w.cfg.NewGrid(grid.WithLogger(w.logger)); err != nil {
			return WrapExitError(ExitCommandError, "failed to create grid", err)
		}
		if w.dock, err = w.cfg.NewDock(w.catalog, w.logger, dock.WithLogger(w.logger)); err != nil {
			return WrapExitError(ExitCommandError, "failed to create dock", err)
		}
	case err != nil:
		return WrapExitError(ExitCommandError, "failed to load layout", err)
	default:
		if w.grid, err = grid.New(layout.GridSize, grid.WithStrict(w.cfg.Debug), grid.WithLogger(w.logger)); err != nil {
			return WrapExitError(ExitCommandError, "failed to create grid", err)
		}
		if w.dock, err = dock.New(layout.DockCapacity, dock.WithLogger(w.logger)); err != nil {
			return WrapExitError(ExitCommandError, "failed to create dock", err)
		}
		if err := layout.Apply(w.grid, w.dock); err != nil {
			return WrapExitError(ExitCommandError, "failed to restore layout", err)
		}
	}

	seq, err := w.store.LastSeq(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read journal", err)
	}
	w.clock = session.NewClockAt(max(seq, layout.Seq))
	return nil
}

// coordinator returns a coordinator over the workspace containers whose
// trace events are appended to trace.
func (w *workspace) coordinator(trace *[]session.TraceEvent) *session.Coordinator {
	return session.NewCoordinator(w.grid, w.dock, zone.Standard(w.grid, w.dock),
		session.WithClock(w.clock),
		session.WithLogger(w.logger),
		session.WithStrict(false),
		session.WithTracer(func(ev session.TraceEvent) { *trace = append(*trace, ev) }),
	)
}

// lookup finds an item by id on the grid, in the dock, then in the drawer.
func (w *workspace) lookup(id string) (item.Item, error) {
	id = item.NormalizeID(id)
	if idx := w.grid.IndexOf(id); idx >= 0 {
		it, _ := w.grid.ItemAt(idx)
		return it, nil
	}
	if pos := w.dock.IndexOf(id); pos >= 0 {
		return w.dock.Entries()[pos], nil
	}
	it, err := w.catalog.Resolve(id)
	if err != nil {
		if near, ok := w.catalog.Suggest(id); ok {
			return it, fmt.Errorf("%w (did you mean %s?)", err, near.ID)
		}
	}
	return it, err
}

// save persists the layout.
func (w *workspace) save(ctx context.Context) error {
	if err := w.store.SaveLayout(ctx, store.Capture(w.grid, w.dock, w.clock.Current())); err != nil {
		return WrapExitError(ExitCommandError, "failed to save layout", err)
	}
	return nil
}

func (w *workspace) Close() error {
	return w.store.Close()
}

// render draws the layout as rows of the configured column count, one
// block per page, followed by the dock:
//
//	page 1
//	   0:com.android.settings  1:.  2:.
//	dock com.adobe.reader (1/4)
func (w *workspace) render() string {
	var b strings.Builder
	cols := w.cfg.Grid.Columns
	perPage := w.cfg.Grid.Slots

	for p := 0; p < w.grid.PageCount(perPage); p++ {
		fmt.Fprintf(&b, "page %d\n", p+1)
		slots := w.grid.Page(p, perPage)
		for row := 0; row < len(slots); row += cols {
			b.WriteString(" ")
			for i := row; i < min(row+cols, len(slots)); i++ {
				fmt.Fprintf(&b, " %2d:%s", p*perPage+i, cellID(slots[i]))
			}
			b.WriteString("\n")
		}
	}

	entries := w.dock.Entries()
	b.WriteString("dock")
	if len(entries) == 0 {
		b.WriteString(" -")
	}
	for _, it := range entries {
		b.WriteString(" " + it.ID)
	}
	fmt.Fprintf(&b, " (%d/%d)\n", len(entries), w.dock.Capacity())
	return b.String()
}

// LayoutView is the JSON form of a layout.
type LayoutView struct {
	Slots    []string `json:"slots"`
	Columns  int      `json:"columns"`
	Dock     []string `json:"dock"`
	Capacity int      `json:"capacity"`
}

func (w *workspace) view() LayoutView {
	v := LayoutView{
		Slots:    []string{},
		Columns:  w.cfg.Grid.Columns,
		Dock:     []string{},
		Capacity: w.dock.Capacity(),
	}
	for _, it := range w.grid.Snapshot() {
		v.Slots = append(v.Slots, it.ID)
	}
	for _, it := range w.dock.Entries() {
		v.Dock = append(v.Dock, it.ID)
	}
	return v
}

func cellID(it item.Item) string {
	if it.IsZero() {
		return "."
	}
	return it.ID
}
