package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Database string
}

// CheckResult holds the invariant check outcome.
type CheckResult struct {
	OK       bool     `json:"ok"`
	Slots    int      `json:"slots"`
	Placed   int      `json:"placed"`
	Docked   int      `json:"docked"`
	Problems []string `json:"problems,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify layout invariants",
		Long: `Verify the persisted layout.

Checks that no item occupies two slots, that the registry matches a full
slot scan (rebuilding it if not), and that no item rests in both the grid
and the dock. Items missing from the drawer are reported as warnings.

Exit codes:
  0 - All invariants hold
  1 - One or more invariants are violated
  2 - Command error (database errors, etc.)`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")

	return cmd
}

func runCheck(opts *CheckOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	w, err := openWorkspace(ctx, opts.RootOptions, opts.Database, cmd)
	if err != nil {
		return err
	}
	defer w.Close()

	result := w.check()

	if opts.Format == "json" {
		formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		out := cmd.OutOrStdout()
		for _, p := range result.Problems {
			fmt.Fprintf(out, "✗ %s\n", p)
		}
		for _, warn := range result.Warnings {
			fmt.Fprintf(out, "! %s\n", warn)
		}
		if result.OK {
			fmt.Fprintf(out, "✓ Layout consistent: %d/%d slots used, %d docked\n", result.Placed, result.Slots, result.Docked)
		}
	}

	if !result.OK {
		return NewExitError(ExitFailure, fmt.Sprintf("%d invariant violation(s)", len(result.Problems)))
	}
	return nil
}

// check verifies the grid, rebuilding its registry by scan, and the
// grid/dock exclusivity.
func (w *workspace) check() CheckResult {
	result := CheckResult{
		Slots:  w.grid.Size(),
		Docked: w.dock.Len(),
	}

	if err := w.grid.Verify(); err != nil {
		result.Problems = append(result.Problems, err.Error())
		w.grid.RebuildRegistry()
		if err := w.grid.Verify(); err != nil {
			result.Problems = append(result.Problems, "after rebuild: "+err.Error())
		}
	}
	result.Placed = w.grid.Registry().Len()

	for _, it := range w.dock.Entries() {
		if w.grid.Registry().Contains(it.ID) {
			result.Problems = append(result.Problems, fmt.Sprintf("%s is in both the grid and the dock", it.ID))
		}
	}

	known := func(id string) bool {
		_, err := w.catalog.Resolve(id)
		return err == nil
	}
	for _, id := range w.grid.Registry().IDs() {
		if !known(id) {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s on the grid is not in the drawer", id))
		}
	}
	for _, it := range w.dock.Entries() {
		if !known(it.ID) {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s in the dock is not in the drawer", it.ID))
		}
	}

	result.OK = len(result.Problems) == 0
	return result
}
