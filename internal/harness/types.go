package harness

import (
	"github.com/roach88/fissure/internal/engine"
	"github.com/roach88/fissure/internal/grid"
	"github.com/roach88/fissure/internal/ir"
)

// Summary is the deterministic part of a run: no run ID, no digests.
type Summary struct {
	Bound      string         `json:"bound"`
	Policy     string         `json:"policy"`
	Size       int            `json:"size"`
	Lines      int            `json:"lines"`
	Kept       int            `json:"kept"`
	Diagonal   int            `json:"diagonal"`
	Rejected   int            `json:"rejected"`
	Overlaps   int            `json:"overlaps"`
	Rejections []ir.Rejection `json:"rejections"`

	// Error is the engine error code when the run failed.
	Error string `json:"error,omitempty"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if all expect clauses and assertions match.
	Pass bool `json:"pass"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Summary describes the run.
	Summary Summary `json:"summary"`

	// Grid is the final grid; nil when the run failed.
	Grid *grid.Grid `json:"-"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

func summarize(cfg engine.Config, run *engine.Result) Summary {
	rec := run.Record()
	return Summary{
		Bound:      cfg.Bound.String(),
		Policy:     string(cfg.Policy),
		Size:       rec.Size,
		Lines:      rec.Lines,
		Kept:       rec.Kept,
		Diagonal:   rec.Diagonal,
		Rejected:   rec.Rejected,
		Overlaps:   rec.Overlaps,
		Rejections: run.Rejections(),
	}
}
