package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// LayoutOptions holds flags for the layout command.
type LayoutOptions struct {
	*RootOptions
	Database string
}

// NewLayoutCommand creates the layout command.
func NewLayoutCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LayoutOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the persisted grid and dock",
		Long: `Print the persisted home grid, page by page in rows of the
configured column count, followed by the dock.

A database without a saved layout shows an empty grid and the configured
dock defaults.

Examples:
  homeslot layout --db ./homeslot.db
  homeslot layout --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")

	return cmd
}

func runLayout(opts *LayoutOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	w, err := openWorkspace(ctx, opts.RootOptions, opts.Database, cmd)
	if err != nil {
		return err
	}
	defer w.Close()

	if opts.Format == "json" {
		return newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr()).Success(w.view())
	}

	fmt.Fprint(cmd.OutOrStdout(), w.render())
	return nil
}
