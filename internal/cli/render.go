package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/fissure/internal/grid"
)

// RenderResult is the JSON payload of the render command.
type RenderResult struct {
	Size     int      `json:"size"`
	Rows     []string `json:"rows"`
	Overlaps int      `json:"overlaps"`
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CountOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render [input]",
		Short: "Print the grid of hit counts",
		Long: fmt.Sprintf(`Run the pipeline and print the grid, one row per line with y
increasing downward: "." for an empty cell, the count for 1-9 and "#"
for 10 or more. Grids larger than %dx%d are not rendered.

Examples:
  fissure render
  fissure render segments.txt --bound 12`, grid.RenderLimit, grid.RenderLimit),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(opts, args, cmd)
		},
	}

	return cmd
}

func runRender(opts *CountOptions, args []string, cmd *cobra.Command) error {
	p, err := newPipeline(opts.RootOptions, "", opts.RunIDs, cmd)
	if err != nil {
		return err
	}

	res, err := p.run(cmd, args)
	if err != nil {
		return err
	}

	var sb strings.Builder
	if err := grid.Render(&sb, res.Grid); err != nil {
		if errors.Is(err, grid.ErrTooLargeToRender) {
			return p.out.Fail(ExitCommandError, ErrCodeRender, "grid too large to render", err)
		}
		return p.out.Fail(ExitCommandError, ErrCodeGeneric, "render failed", err)
	}

	if opts.Format == "json" {
		rows := strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n")
		if res.Grid.Size() == 0 {
			rows = []string{}
		}
		return p.out.SuccessWithRun(res.RunID, RenderResult{
			Size:     res.Grid.Size(),
			Rows:     rows,
			Overlaps: res.Overlaps,
		})
	}

	w := cmd.OutOrStdout()
	fmt.Fprint(w, sb.String())
	fmt.Fprintf(w, "Number of overlaps: %d\n", res.Overlaps)
	return nil
}
