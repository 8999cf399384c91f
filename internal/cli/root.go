package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/fissure/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	// Pipeline settings; empty values defer to the config file.
	Bound  string
	Policy string
	Strict bool
	Config string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the fissure CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "fissure",
		Short: "fissure - count overlapping axis-aligned line segments",
		Long: `Read line segments of the form "x1,y1 -> x2,y2", keep the horizontal
and vertical ones, draw them on a grid and count the cells covered by
at least two segments.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output (debug logs on stderr)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Bound, "bound", "", `grid bound: "auto" or a positive size (default from config, else auto)`)
	cmd.PersistentFlags().StringVar(&opts.Policy, "policy", "", `malformed line policy: "lenient" or "strict" (default from config, else lenient)`)
	cmd.PersistentFlags().BoolVar(&opts.Strict, "strict", false, "fail on the first malformed line instead of dropping it (same as --policy strict)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "path to a CUE config file")

	// Add subcommands
	cmd.AddCommand(NewCountCommand(opts))
	cmd.AddCommand(NewParseCommand(opts))
	cmd.AddCommand(NewRenderCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// newLogger builds the command logger: text handler on stderr,
// debug level under --verbose.
func newLogger(opts *RootOptions, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// newFormatter builds the output formatter for a command.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// resolveConfig loads --config (if any) and applies flag overrides.
func resolveConfig(opts *RootOptions, db string) (config.Config, error) {
	cfg := config.Default()
	if opts.Config != "" {
		loaded, err := config.Load(opts.Config)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	return cfg.Apply(config.Overrides{
		Bound:  opts.Bound,
		Policy: opts.Policy,
		Strict: opts.Strict,
		DB:     db,
	})
}
