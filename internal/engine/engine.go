package engine

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/fissure/internal/grid"
	"github.com/roach88/fissure/internal/ir"
	"github.com/roach88/fissure/internal/parser"
)

// RunIDGenerator generates unique run identifiers.
// Implemented by UUIDv7Generator (production) and FixedGenerator (tests).
type RunIDGenerator interface {
	Generate() string
}

// Config selects grid sizing and malformed-line handling for a run.
// The zero value is auto bound with the lenient policy.
type Config struct {
	Bound  grid.Bound
	Policy Policy
}

// Engine runs the decode, filter, rasterize, aggregate pipeline.
//
// An Engine holds configuration only; every Run allocates its own grid.
type Engine struct {
	cfg    Config
	ids    RunIDGenerator
	logger *slog.Logger
}

// Option allows configuration of engine parameters.
type Option func(*Engine)

// WithLogger sets the logger used for per-line diagnostics.
// Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithRunIDGenerator overrides the run ID source.
// Default: UUIDv7Generator.
func WithRunIDGenerator(g RunIDGenerator) Option {
	return func(e *Engine) {
		e.ids = g
	}
}

// New creates an Engine for cfg.
func New(cfg Config, opts ...Option) *Engine {
	if cfg.Policy == "" {
		cfg.Policy = PolicyLenient
	}

	e := &Engine{
		cfg:    cfg,
		ids:    UUIDv7Generator{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the engine's effective configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Result is the outcome of one pipeline run.
type Result struct {
	RunID         string
	InputDigest   string
	SegmentDigest string
	Config        Config

	// Lines is the number of non-blank input lines decoded.
	Lines int

	// Filtered partitions the decoded lines.
	Filtered FilterResult

	// Grid holds the final hit counts. Callers must treat it as read-only.
	Grid *grid.Grid

	// Overlaps is the number of cells with at least grid.OverlapThreshold hits.
	Overlaps int
}

// Record converts the result into a ledger entry. Seq is left for the store.
func (r *Result) Record() ir.RunRecord {
	return ir.RunRecord{
		ID:            r.RunID,
		InputDigest:   r.InputDigest,
		SegmentDigest: r.SegmentDigest,
		Bound:         r.Config.Bound.String(),
		Policy:        string(r.Config.Policy),
		Size:          r.Grid.Size(),
		Lines:         r.Lines,
		Kept:          len(r.Filtered.Kept),
		Diagonal:      len(r.Filtered.Diagonal),
		Rejected:      len(r.Filtered.Rejected),
		Overlaps:      r.Overlaps,
		EngineVersion: ir.EngineVersion,
	}
}

// Rejections lists the lines dropped for failing to parse, in input order.
func (r *Result) Rejections() []ir.Rejection {
	out := make([]ir.Rejection, 0, len(r.Filtered.Rejected))
	for _, l := range r.Filtered.Rejected {
		out = append(out, ir.Rejection{
			Line: l.Number,
			Kind: string(parser.KindOf(l.Err)),
			Text: l.Text,
		})
	}
	return out
}

// Run decodes r and executes the pipeline.
// A read failure on r is returned as an ErrCodeUnreadableInput RuntimeError.
func (e *Engine) Run(r io.Reader) (*Result, error) {
	lines, err := parser.Decode(r)
	if err != nil {
		return nil, &RuntimeError{
			Code:    ErrCodeUnreadableInput,
			Message: "failed to read input",
			Err:     err,
		}
	}
	return e.RunLines(lines)
}

// RunString executes the pipeline over in-memory text.
func (e *Engine) RunString(s string) (*Result, error) {
	return e.Run(strings.NewReader(s))
}

// RunLines executes the pipeline over already-decoded lines.
func (e *Engine) RunLines(lines []parser.Line) (*Result, error) {
	filtered := Filter(lines)

	for _, l := range filtered.Rejected {
		if e.cfg.Policy == PolicyStrict {
			return nil, NewRejectedLineError(l.Number, l.Err)
		}
		e.logger.Debug("dropped malformed line",
			"line", l.Number,
			"kind", parser.KindOf(l.Err),
			"error", l.Err)
	}
	for _, l := range filtered.Diagonal {
		e.logger.Debug("skipped diagonal segment", "line", l.Number, "segment", l.Segment.String())
	}

	limit := e.cfg.Bound.Cap()
	for _, l := range filtered.Kept {
		if l.Segment.MaxCoordinate() >= limit {
			return nil, NewBoundError(l.Number, &grid.OutOfBoundsError{Segment: l.Segment, Size: limit})
		}
	}

	segments := filtered.Segments()
	size, err := e.cfg.Bound.SizeFor(segments)
	if err != nil {
		return nil, NewBoundError(0, err)
	}

	g := grid.New(size)
	if err := grid.Rasterize(g, segments); err != nil {
		return nil, fmt.Errorf("rasterize: %w", err)
	}

	digest, err := ir.InputDigest(parser.Texts(lines))
	if err != nil {
		return nil, fmt.Errorf("digest input: %w", err)
	}
	segDigest, err := ir.SegmentsDigest(segments)
	if err != nil {
		return nil, fmt.Errorf("digest segments: %w", err)
	}

	res := &Result{
		RunID:         e.ids.Generate(),
		InputDigest:   digest,
		SegmentDigest: segDigest,
		Config:        e.cfg,
		Lines:         len(lines),
		Filtered:      filtered,
		Grid:          g,
		Overlaps:      grid.CountOverlaps(g),
	}

	e.logger.Debug("run complete",
		"run_id", res.RunID,
		"size", size,
		"sparse", g.Sparse(),
		"kept", len(filtered.Kept),
		"diagonal", len(filtered.Diagonal),
		"rejected", len(filtered.Rejected),
		"overlaps", res.Overlaps)

	return res, nil
}
