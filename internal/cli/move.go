package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/homeslot/internal/item"
	"github.com/roach88/homeslot/internal/session"
)

// MoveOptions holds flags for the move command.
type MoveOptions struct {
	*RootOptions
	Database string
}

// MoveResult is the output of a quick move.
type MoveResult struct {
	ItemID string     `json:"item_id"`
	Slot   int        `json:"slot"`
	Layout LayoutView `json:"layout"`
}

// NewMoveCommand creates the move command.
func NewMoveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MoveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "move <id>",
		Short: "Move a dock item to the home grid",
		Long: `Move a dock item to the first empty grid slot without a drag.

Either the item leaves the dock and lands on the grid, or nothing
changes. Moves are not journaled as sessions.

Examples:
  homeslot move com.android.settings`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMove(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")

	return cmd
}

func runMove(opts *MoveOptions, id string, cmd *cobra.Command) error {
	ctx := context.Background()

	w, err := openWorkspace(ctx, opts.RootOptions, opts.Database, cmd)
	if err != nil {
		return err
	}
	defer w.Close()

	var trace []session.TraceEvent
	id = item.NormalizeID(id)
	slot, err := w.coordinator(&trace).MoveDockToGrid(id)
	if err != nil {
		return WrapExitError(ExitFailure, "move refused", err)
	}
	if err := w.save(ctx); err != nil {
		return err
	}

	if opts.Format == "json" {
		return newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr()).
			Success(MoveResult{ItemID: id, Slot: slot, Layout: w.view()})
	}

	out := cmd.OutOrStdout()
	if opts.Verbose {
		for _, ev := range trace {
			fmt.Fprintf(out, "  %s\n", ev)
		}
	}
	fmt.Fprintf(out, "✓ %s moved from the dock to slot %d\n", id, slot)
	fmt.Fprint(out, w.render())
	return nil
}
