package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/homeslot/internal/zone"
)

// PlaceOptions holds flags for the place command.
type PlaceOptions struct {
	*RootOptions
	Database string
}

// NewPlaceCommand creates the place command.
func NewPlaceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlaceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "place <id> [slot]",
		Short: "Place a drawer item on the home grid",
		Long: `Place a drawer item on the home grid.

Shorthand for "drag <id> --from drawer --to cell:<slot>". The item lands
in the slot if it is empty, else in the next empty slot. An item that is
already on the grid or in the dock is rejected. Slot defaults to 0.

Examples:
  homeslot place com.adobe.reader
  homeslot place com.adobe.reader 7`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			slot := 0
			if len(args) == 2 {
				n, err := strconv.Atoi(args[1])
				if err != nil {
					return WrapExitError(ExitCommandError, fmt.Sprintf("invalid slot %q", args[1]), err)
				}
				slot = n
			}
			return runGesture(opts.RootOptions, opts.Database, gesture{
				ItemID: args[0],
				Origin: zone.OriginDrawer,
				Slot:   zone.NoSlot,
				Zone:   zone.ZoneCell,
				Target: slot,
			}, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")

	return cmd
}
