package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/fissure/internal/engine"
	"github.com/roach88/fissure/internal/parser"
)

// ParseOptions holds flags for the parse command.
type ParseOptions struct {
	*RootOptions
	Diagonals bool // list skipped diagonal segments
}

// LineReport describes one rejected or skipped input line.
type LineReport struct {
	Line    int    `json:"line"`
	Text    string `json:"text"`
	Kind    string `json:"kind,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message,omitempty"`
}

// ParseResult is the payload of the parse command.
type ParseResult struct {
	Lines      int          `json:"lines"`
	Kept       int          `json:"kept"`
	Diagonal   int          `json:"diagonal"`
	Rejected   int          `json:"rejected"`
	Rejections []LineReport `json:"rejections"`
	Diagonals  []LineReport `json:"diagonals,omitempty"`
}

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ParseOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "parse [input]",
		Short: "Check input lines without counting",
		Long: `Decode the input and report every line that fails to parse, plus
how many segments would be kept or skipped as diagonal.

Exit codes:
  0 - Every line parsed
  1 - One or more lines were rejected
  2 - Command error (unreadable input)

Examples:
  fissure parse segments.txt
  fissure parse segments.txt --diagonals
  fissure parse - --format json < segments.txt`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Diagonals, "diagonals", false, "list skipped diagonal segments")

	return cmd
}

func runParse(opts *ParseOptions, args []string, cmd *cobra.Command) error {
	out := newFormatter(opts.RootOptions, cmd)

	r, _, err := openInput(args, cmd.InOrStdin())
	if err != nil {
		return out.Fail(ExitCommandError, ErrCodeInput, "failed to open input", err)
	}
	defer r.Close()

	lines, err := parser.Decode(r)
	if err != nil {
		return out.Fail(ExitCommandError, ErrCodeInput, "failed to read input", err)
	}
	filtered := engine.Filter(lines)

	result := ParseResult{
		Lines:      len(lines),
		Kept:       len(filtered.Kept),
		Diagonal:   len(filtered.Diagonal),
		Rejected:   len(filtered.Rejected),
		Rejections: make([]LineReport, 0, len(filtered.Rejected)),
	}
	for _, l := range filtered.Rejected {
		report := LineReport{Line: l.Number, Text: l.Text, Message: l.Err.Error()}
		var pe *parser.ParseError
		if errors.As(l.Err, &pe) {
			report.Kind = string(pe.Kind)
			report.Field = pe.Field()
		}
		result.Rejections = append(result.Rejections, report)
	}
	if opts.Diagonals {
		for _, l := range filtered.Diagonal {
			result.Diagonals = append(result.Diagonals, LineReport{Line: l.Number, Text: l.Segment.String()})
		}
	}

	var failure *ExitError
	if result.Rejected > 0 {
		failure = NewExitError(ExitFailure, fmt.Sprintf("%d line(s) rejected", result.Rejected))
		failure.Reported = true
	}

	if opts.Format == "json" {
		resp := CLIResponse{Status: "ok", Data: result}
		if failure != nil {
			resp.Status = "error"
			resp.Error = &CLIError{Code: ErrCodeRejectedLine, Message: failure.Message}
		}
		if err := out.encode(resp); err != nil {
			return err
		}
	} else {
		w := cmd.OutOrStdout()
		for _, rep := range result.Rejections {
			fmt.Fprintln(w, rep.Message)
		}
		for _, rep := range result.Diagonals {
			fmt.Fprintf(w, "line %d: diagonal: %s\n", rep.Line, rep.Text)
		}
		fmt.Fprintf(w, "lines: %d, kept: %d, diagonal: %d, rejected: %d\n",
			result.Lines, result.Kept, result.Diagonal, result.Rejected)
	}

	if failure != nil {
		return failure
	}
	return nil
}
