package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/homeslot/internal/session"
	"github.com/roach88/homeslot/internal/store"
	"github.com/roach88/homeslot/internal/zone"
)

// DragOptions holds flags for the drag command.
type DragOptions struct {
	*RootOptions
	Database string
	From     string // home:N | dock | drawer | dockref
	To       string // home | cell:N | dock | remove | none
}

// DragResult is the output of one drag session.
type DragResult struct {
	Session store.SessionRecord `json:"session"`
	Layout  LayoutView          `json:"layout"`
}

// gesture is one complete drag: start, an optional drop, end.
type gesture struct {
	ItemID string
	Origin zone.Origin
	Slot   int
	Zone   zone.ID // empty: released over nothing
	Target int
}

// NewDragCommand creates the drag command.
func NewDragCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DragOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "drag <id>",
		Short: "Run one drag session",
		Long: `Run one complete drag session against the persisted layout.

The item is picked up from --from, dropped on --to and released. A
rejected drop rolls a grid or dock item back to where it came from.
The layout and the session journal are saved afterwards.

Origins: home:<slot>, dock, drawer, dockref
Targets: home, cell:<slot>, dock, remove, none

Exit codes:
  0 - Drop accepted, or released over nothing
  1 - Drop rejected or drag refused
  2 - Command error (bad flags, database errors)

Examples:
  homeslot drag com.adobe.reader --from drawer --to cell:4
  homeslot drag com.adobe.reader --from home:4 --to remove
  homeslot drag com.android.settings --from dock --to home --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDrag(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")
	cmd.Flags().StringVar(&opts.From, "from", "", "drag origin (required)")
	_ = cmd.MarkFlagRequired("from")
	cmd.Flags().StringVar(&opts.To, "to", "none", "drop target")

	return cmd
}

func runDrag(opts *DragOptions, id string, cmd *cobra.Command) error {
	origin, slot, err := parseOrigin(opts.From)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --from", err)
	}
	z, target, err := parseTarget(opts.To)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --to", err)
	}

	return runGesture(opts.RootOptions, opts.Database, gesture{
		ItemID: id,
		Origin: origin,
		Slot:   slot,
		Zone:   z,
		Target: target,
	}, cmd)
}

// parseOrigin parses "home:3", "dock", "drawer" or "dockref".
func parseOrigin(s string) (zone.Origin, int, error) {
	name, n, hasSlot := strings.Cut(s, ":")
	origin, err := zone.ParseOrigin(name)
	if err != nil {
		return 0, zone.NoSlot, err
	}
	if origin != zone.OriginHomeGrid {
		if hasSlot {
			return 0, zone.NoSlot, fmt.Errorf("origin %s takes no slot", origin)
		}
		return origin, zone.NoSlot, nil
	}
	if !hasSlot {
		return 0, zone.NoSlot, fmt.Errorf("origin home needs a slot, e.g. home:3")
	}
	slot, err := strconv.Atoi(n)
	if err != nil {
		return 0, zone.NoSlot, fmt.Errorf("bad slot %q: %w", n, err)
	}
	return origin, slot, nil
}

// parseTarget parses "cell:5", "none" or a bare zone name.
func parseTarget(s string) (zone.ID, int, error) {
	name, n, hasSlot := strings.Cut(strings.ToLower(strings.TrimSpace(s)), ":")
	if name == "" {
		return "", zone.NoSlot, fmt.Errorf("empty target")
	}
	if name == "none" {
		return "", zone.NoSlot, nil
	}
	if !hasSlot {
		return zone.ID(name), zone.NoSlot, nil
	}
	target, err := strconv.Atoi(n)
	if err != nil {
		return "", zone.NoSlot, fmt.Errorf("bad slot %q: %w", n, err)
	}
	return zone.ID(name), target, nil
}

// runGesture performs g on the workspace, persists the result and prints it.
func runGesture(opts *RootOptions, dbPath string, g gesture, cmd *cobra.Command) error {
	ctx := context.Background()

	w, err := openWorkspace(ctx, opts, dbPath, cmd)
	if err != nil {
		return err
	}
	defer w.Close()

	rec, dec, err := w.perform(ctx, g)
	if err != nil {
		return err
	}
	if err := w.save(ctx); err != nil {
		return err
	}

	result := DragResult{Session: rec, Layout: w.view()}
	rejected := g.Zone != "" && !dec.Accepted

	if opts.Format == "json" {
		response := CLIResponse{Status: "ok", Data: result, TraceID: rec.ID}
		if rejected {
			response.Status = "error"
			response.Error = &CLIError{Code: string(dec.Reason), Message: dec.Reason.Message()}
		}
		if err := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr()).Respond(response); err != nil {
			return err
		}
	} else {
		printDrag(cmd, opts, g, rec, dec)
		fmt.Fprint(cmd.OutOrStdout(), w.render())
	}

	if rejected {
		return NewExitError(ExitFailure, fmt.Sprintf("drop on %s rejected: %s", g.Zone, dec.Reason))
	}
	return nil
}

// perform runs g through a coordinator and journals the session.
func (w *workspace) perform(ctx context.Context, g gesture) (store.SessionRecord, zone.Decision, error) {
	dec := zone.Reject(zone.ReasonNone, nil)

	it, err := w.lookup(g.ItemID)
	if err != nil {
		return store.SessionRecord{}, dec, WrapExitError(ExitFailure, "drag refused", err)
	}

	var p zone.Payload
	switch g.Origin {
	case zone.OriginHomeGrid:
		p = zone.FromGrid(it, g.Slot)
	case zone.OriginDock:
		p = zone.FromDock(it)
	case zone.OriginDockRef:
		p = zone.FromDockRef(it)
	default:
		p = zone.FromDrawer(it)
	}

	var trace []session.TraceEvent
	coord := w.coordinator(&trace)
	if _, err := coord.Start(p); err != nil {
		return store.SessionRecord{}, dec, WrapExitError(ExitFailure, "drag refused", err)
	}

	if g.Zone != "" {
		if err := coord.Enter(g.Zone); err != nil {
			return store.SessionRecord{}, dec, err
		}
		if dec, err = coord.DropAt(g.Zone, g.Target); err != nil {
			return store.SessionRecord{}, dec, err
		}
	}

	out, err := coord.End(dec.Accepted)
	if err != nil {
		return store.SessionRecord{}, dec, err
	}

	rec := store.NewSessionRecord(out, trace)
	if err := w.store.AppendSession(ctx, rec); err != nil {
		return rec, dec, WrapExitError(ExitCommandError, "failed to journal session", err)
	}
	return rec, dec, nil
}

func printDrag(cmd *cobra.Command, opts *RootOptions, g gesture, rec store.SessionRecord, dec zone.Decision) {
	w := cmd.OutOrStdout()

	if opts.Verbose {
		for _, line := range rec.Trace {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}

	switch {
	case g.Zone == "":
		fmt.Fprintf(w, "- %s released over nothing\n", rec.ItemID)
	case dec.Accepted && dec.Index != zone.NoSlot:
		fmt.Fprintf(w, "✓ %s accepted by %s at slot %d\n", rec.ItemID, g.Zone, dec.Index)
	case dec.Accepted:
		fmt.Fprintf(w, "✓ %s accepted by %s\n", rec.ItemID, g.Zone)
	default:
		fmt.Fprintf(w, "✗ %s rejected by %s: %s (%s)\n", rec.ItemID, g.Zone, dec.Reason, dec.Reason.Message())
	}

	switch {
	case rec.Restored && rec.Origin == zone.OriginDock.String():
		fmt.Fprintf(w, "  restored to dock position %d\n", rec.RestoredAt)
	case rec.Restored:
		fmt.Fprintf(w, "  restored to slot %d\n", rec.RestoredAt)
	case rec.RestoreFailed:
		fmt.Fprintf(w, "  restore failed, %s was lost from the layout\n", rec.ItemID)
	}
}
