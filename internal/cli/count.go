package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/fissure/internal/engine"
)

// CountOptions holds flags for the count command.
type CountOptions struct {
	*RootOptions
	Database string

	// RunIDs allows overriding the run ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	RunIDs engine.RunIDGenerator
}

// CountResult is the JSON payload of the count command.
type CountResult struct {
	RunID         string `json:"run_id"`
	InputDigest   string `json:"input_digest"`
	SegmentDigest string `json:"segment_digest"`
	Bound         string `json:"bound"`
	Policy        string `json:"policy"`
	Size          int    `json:"size"`
	Lines         int    `json:"lines"`
	Kept          int    `json:"kept"`
	Diagonal      int    `json:"diagonal"`
	Rejected      int    `json:"rejected"`
	Overlaps      int    `json:"overlaps"`
	Seq           int64  `json:"seq,omitempty"` // ledger seq when recorded
}

// NewCountCommand creates the count command.
func NewCountCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CountOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "count [input]",
		Short: "Count cells covered by two or more segments",
		Long: `Count the grid cells covered by at least two horizontal or vertical
segments.

The input is a file with one "x1,y1 -> x2,y2" segment per line, "-" for
standard input, or the built-in ten-line sample when omitted. Diagonal
segments are ignored. Malformed lines are dropped unless --strict is set.

Exit codes:
  0 - Success
  1 - Malformed line under --strict
  2 - Command error (unreadable input, bad config, bound overflow)

Examples:
  fissure count
  fissure count segments.txt
  cat segments.txt | fissure count -
  fissure count segments.txt --bound 1000 --strict
  fissure count segments.txt --db runs.db --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCount(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "record the run in this SQLite ledger")

	return cmd
}

func runCount(opts *CountOptions, args []string, cmd *cobra.Command) error {
	p, err := newPipeline(opts.RootOptions, opts.Database, opts.RunIDs, cmd)
	if err != nil {
		return err
	}

	res, err := p.run(cmd, args)
	if err != nil {
		return err
	}

	seq, err := p.record(commandContext(cmd), res)
	if err != nil {
		return err
	}

	if opts.Format == "json" {
		rec := res.Record()
		return p.out.SuccessWithRun(res.RunID, CountResult{
			RunID:         rec.ID,
			InputDigest:   rec.InputDigest,
			SegmentDigest: rec.SegmentDigest,
			Bound:         rec.Bound,
			Policy:        rec.Policy,
			Size:          rec.Size,
			Lines:         rec.Lines,
			Kept:          rec.Kept,
			Diagonal:      rec.Diagonal,
			Rejected:      rec.Rejected,
			Overlaps:      rec.Overlaps,
			Seq:           seq,
		})
	}

	p.out.VerboseLog("lines: %d, kept: %d, diagonal: %d, rejected: %d, grid: %dx%d",
		res.Lines, len(res.Filtered.Kept), len(res.Filtered.Diagonal), len(res.Filtered.Rejected),
		res.Grid.Size(), res.Grid.Size())
	fmt.Fprintf(cmd.OutOrStdout(), "Number of overlaps: %d\n", res.Overlaps)
	return nil
}
