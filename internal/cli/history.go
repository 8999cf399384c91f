package cli

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/fissure/internal/ir"
	"github.com/roach88/fissure/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Digest   string // optional - only runs over this input digest
	RunID    string // optional - show one run with its rejected lines
	Limit    int
}

// RunDetail is the payload of history --run.
type RunDetail struct {
	Run        ir.RunRecord   `json:"run"`
	Rejections []ir.Rejection `json:"rejections"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List runs recorded in the ledger",
		Long: `List runs recorded with "fissure count --db", oldest first.

Examples:
  fissure history --db runs.db
  fissure history --db runs.db --limit 5
  fissure history --db runs.db --digest <input-digest>
  fissure history --db runs.db --run <run-id>`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Digest, "digest", "", "only runs over this input digest")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "show a single run and its rejected lines")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "show only the most recent N runs (0 = all)")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	out := newFormatter(opts.RootOptions, cmd)
	ctx := commandContext(cmd)

	if _, err := os.Stat(opts.Database); err != nil {
		return out.Fail(ExitCommandError, ErrCodeDatabase, "database not found", err)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return out.Fail(ExitCommandError, ErrCodeDatabase, "failed to open database", err)
	}
	defer st.Close()

	if opts.RunID != "" {
		run, err := st.ReadRun(ctx, opts.RunID)
		if errors.Is(err, store.ErrNotFound) {
			return out.Fail(ExitFailure, ErrCodeDatabase, "run not found", err)
		}
		if err != nil {
			return out.Fail(ExitCommandError, ErrCodeDatabase, "failed to read run", err)
		}
		rejections, err := st.ReadRejections(ctx, opts.RunID)
		if err != nil {
			return out.Fail(ExitCommandError, ErrCodeDatabase, "failed to read rejections", err)
		}
		if opts.Format == "json" {
			return out.SuccessWithRun(run.ID, RunDetail{Run: run, Rejections: rejections})
		}
		printRuns(cmd, []ir.RunRecord{run})
		for _, r := range rejections {
			fmt.Fprintf(cmd.OutOrStdout(), "  line %d: %s: %q\n", r.Line, r.Kind, r.Text)
		}
		return nil
	}

	var runs []ir.RunRecord
	if opts.Digest != "" {
		runs, err = st.RunsByDigest(ctx, opts.Digest)
		if err == nil && opts.Limit > 0 && len(runs) > opts.Limit {
			runs = runs[len(runs)-opts.Limit:]
		}
	} else {
		runs, err = st.ReadRuns(ctx, opts.Limit)
	}
	if err != nil {
		return out.Fail(ExitCommandError, ErrCodeDatabase, "failed to read runs", err)
	}

	if opts.Format == "json" {
		return out.Success(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
		return nil
	}
	printRuns(cmd, runs)
	return nil
}

func printRuns(cmd *cobra.Command, runs []ir.RunRecord) {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tRUN\tBOUND\tPOLICY\tSIZE\tKEPT\tDIAGONAL\tREJECTED\tOVERLAPS\tINPUT")
	for _, r := range runs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%s\n",
			r.Seq, r.ID, r.Bound, r.Policy, r.Size, r.Kept, r.Diagonal, r.Rejected, r.Overlaps, shortDigest(r.InputDigest))
	}
	tw.Flush()
}

// shortDigest abbreviates a digest for table output.
func shortDigest(d string) string {
	if len(d) > 12 {
		return d[:12]
	}
	return d
}
