package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/fissure/internal/config"
	"github.com/roach88/fissure/internal/engine"
	"github.com/roach88/fissure/internal/store"
)

// pipeline carries what count and render share: resolved config,
// output, logging and the run ID source.
type pipeline struct {
	cfg    config.Config
	out    *OutputFormatter
	logger *slog.Logger
	ids    engine.RunIDGenerator
}

func newPipeline(opts *RootOptions, db string, ids engine.RunIDGenerator, cmd *cobra.Command) (*pipeline, error) {
	p := &pipeline{
		out:    newFormatter(opts, cmd),
		logger: newLogger(opts, cmd.ErrOrStderr()),
		ids:    ids,
	}
	if p.ids == nil {
		p.ids = engine.UUIDv7Generator{}
	}

	cfg, err := resolveConfig(opts, db)
	if err != nil {
		return nil, p.out.Fail(ExitCommandError, ErrCodeConfig, "invalid configuration", err)
	}
	p.cfg = cfg
	return p, nil
}

// run executes the engine over the input named by args and maps failures
// onto exit codes.
func (p *pipeline) run(cmd *cobra.Command, args []string) (*engine.Result, error) {
	r, name, err := openInput(args, cmd.InOrStdin())
	if err != nil {
		return nil, p.out.Fail(ExitCommandError, ErrCodeInput, "failed to open input", err)
	}
	defer r.Close()

	p.logger.Debug("running pipeline",
		"input", name,
		"bound", p.cfg.Bound.String(),
		"policy", string(p.cfg.Policy))

	eng := engine.New(p.cfg.Engine(), engine.WithLogger(p.logger), engine.WithRunIDGenerator(p.ids))
	res, err := eng.Run(r)
	switch {
	case err == nil:
		return res, nil
	case engine.IsRejectedLineError(err):
		return nil, p.out.Fail(ExitFailure, ErrCodeRejectedLine, "malformed line rejected", err)
	case engine.IsBoundError(err):
		return nil, p.out.Fail(ExitCommandError, ErrCodeBound, "segment outside grid bound", err)
	case engine.IsInputError(err):
		return nil, p.out.Fail(ExitCommandError, ErrCodeInput, "failed to read input", err)
	default:
		return nil, p.out.Fail(ExitCommandError, ErrCodeGeneric, "run failed", err)
	}
}

// record appends the run to the ledger when a database is configured.
// Returns the assigned seq, or 0 when recording is disabled.
func (p *pipeline) record(ctx context.Context, res *engine.Result) (int64, error) {
	if p.cfg.DB == "" {
		return 0, nil
	}

	st, err := store.Open(p.cfg.DB)
	if err != nil {
		return 0, p.out.Fail(ExitCommandError, ErrCodeDatabase, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			p.logger.Error("error closing database", "error", closeErr)
		}
	}()

	seq, inserted, err := st.WriteRun(ctx, res.Record(), res.Rejections())
	if err != nil {
		return 0, p.out.Fail(ExitCommandError, ErrCodeDatabase, "failed to record run", err)
	}
	p.logger.Info("run recorded", "db", p.cfg.DB, "run_id", res.RunID, "seq", seq, "inserted", inserted)
	return seq, nil
}

// commandContext returns the command's context, or Background when unset.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
