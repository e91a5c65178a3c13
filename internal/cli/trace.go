package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/homeslot/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
	Limit    int
	Session  string // optional - show one session
}

// TraceResult holds the journal listing.
type TraceResult struct {
	Sessions []store.SessionRecord `json:"sessions"`
	Stats    TraceStats            `json:"stats"`
}

// TraceStats holds summary statistics for the listed sessions.
type TraceStats struct {
	Total    int `json:"total"`
	Accepted int `json:"accepted"`
	Restored int `json:"restored"`
	Failed   int `json:"restore_failed"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "List journaled drag sessions",
		Long: `List journaled drag sessions, oldest first.

Each session shows the item, where it came from, which zone accepted it
or why every drop was rejected, and whether it was rolled back.
With --verbose the full event trace of each session is printed.

Examples:
  homeslot trace --db ./homeslot.db
  homeslot trace --db ./homeslot.db --limit 5 --verbose
  homeslot trace --db ./homeslot.db --session 0192f0c4-... --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "show the last n sessions (0 for all)")
	cmd.Flags().StringVar(&opts.Session, "session", "", "show a single session")

	return cmd
}

func runTrace(opts *TraceOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	w, err := openWorkspace(ctx, opts.RootOptions, opts.Database, cmd)
	if err != nil {
		return err
	}
	defer w.Close()

	var sessions []store.SessionRecord
	if opts.Session != "" {
		rec, err := w.store.ReadSession(ctx, opts.Session)
		if errors.Is(err, sql.ErrNoRows) {
			return NewExitError(ExitCommandError, fmt.Sprintf("session not found: %s", opts.Session))
		}
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read session", err)
		}
		sessions = []store.SessionRecord{rec}
	} else {
		sessions, err = w.store.ReadSessions(ctx, opts.Limit)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read journal", err)
		}
	}

	result := TraceResult{Sessions: sessions, Stats: TraceStats{Total: len(sessions)}}
	for _, rec := range sessions {
		switch {
		case rec.Accepted:
			result.Stats.Accepted++
		case rec.Restored:
			result.Stats.Restored++
		case rec.RestoreFailed:
			result.Stats.Failed++
		}
	}

	if opts.Format == "json" {
		return outputTraceJSON(cmd, result)
	}
	return outputTraceText(cmd, result, opts.Verbose)
}

// outputTraceJSON outputs the trace result as JSON.
func outputTraceJSON(cmd *cobra.Command, result TraceResult) error {
	formatter := &OutputFormatter{Format: "json", Writer: cmd.OutOrStdout()}
	return formatter.Respond(CLIResponse{Status: "ok", Data: result})
}

// outputTraceText outputs the trace result as text.
func outputTraceText(cmd *cobra.Command, result TraceResult, verbose bool) error {
	w := cmd.OutOrStdout()

	if len(result.Sessions) == 0 {
		fmt.Fprintln(w, "No sessions journaled.")
		return nil
	}

	for _, rec := range result.Sessions {
		formatSession(w, rec, verbose)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d session(s): %d accepted, %d restored, %d lost\n",
		result.Stats.Total, result.Stats.Accepted, result.Stats.Restored, result.Stats.Failed)
	return nil
}

// formatSession writes one session summary line, e.g.
//
//	[12] 0192f0c4...8e1a3b2c com.adobe.reader home:4 -> remove
func formatSession(w io.Writer, rec store.SessionRecord, verbose bool) {
	from := rec.Origin
	if rec.OriginSlot >= 0 {
		from = fmt.Sprintf("%s:%d", rec.Origin, rec.OriginSlot)
	}

	var outcome string
	switch {
	case rec.Accepted && rec.Landed >= 0:
		outcome = fmt.Sprintf("%s:%d", rec.AcceptedBy, rec.Landed)
	case rec.Accepted:
		outcome = rec.AcceptedBy
	case rec.Restored:
		outcome = fmt.Sprintf("restored:%d", rec.RestoredAt)
	case rec.RestoreFailed:
		outcome = "lost"
	default:
		outcome = "dropped"
	}
	if !rec.Accepted && rec.LastReason != "" {
		outcome += fmt.Sprintf(" (%s)", rec.LastReason)
	}

	fmt.Fprintf(w, "[%d] %s %s %s -> %s\n", rec.Seq, truncateID(rec.ID), rec.ItemID, from, outcome)
	if verbose {
		for _, line := range rec.Trace {
			fmt.Fprintf(w, "       %s\n", line)
		}
	}
}

// truncateID truncates a long ID for display.
func truncateID(id string) string {
	if len(id) <= 16 {
		return id
	}
	return id[:8] + "..." + id[len(id)-8:]
}
