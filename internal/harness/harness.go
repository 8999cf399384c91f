package harness

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/fissure/internal/engine"
	"github.com/roach88/fissure/internal/ir"
	"github.com/roach88/fissure/internal/testutil"
)

// Harness executes scenarios with deterministic run IDs.
type Harness struct {
	ids    *testutil.CountingRunIDGenerator
	logger *slog.Logger
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger routes engine diagnostics to l. Default: discarded.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) {
		h.logger = l
	}
}

// New creates a harness.
func New(opts ...Option) *Harness {
	h := &Harness{
		ids:    testutil.NewCountingRunIDGenerator("scenario"),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run executes a scenario with a fresh harness.
func Run(scenario *Scenario) (*Result, error) {
	return New().Run(scenario)
}

// Run executes a test scenario and returns the result.
//
// Execution flow:
//  1. Resolve the engine configuration from the scenario
//  2. Run the pipeline on the scenario input (or the built-in sample)
//  3. Check expect.error, or the expected summary values and assertions
//
// An error is returned only when the scenario itself cannot be executed;
// mismatches are reported in Result.Errors.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	cfg, err := scenario.EngineConfig()
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	input := scenario.Input
	if input == "" && scenario.InputFile == "" {
		input = engine.SampleInput
	}

	eng := engine.New(cfg, engine.WithLogger(h.logger), engine.WithRunIDGenerator(h.ids))
	run, runErr := eng.RunString(input)

	result := NewResult()
	if runErr != nil {
		code := engine.CodeOf(runErr)
		if code == "" || code == engine.ErrCodeUnreadableInput {
			return nil, fmt.Errorf("scenario %s: %w", scenario.Name, runErr)
		}
		result.Summary = Summary{
			Bound:      cfg.Bound.String(),
			Policy:     string(cfg.Policy),
			Rejections: []ir.Rejection{},
			Error:      string(code),
		}
		if scenario.Expect.Error == "" {
			result.AddError(fmt.Sprintf("unexpected error: %v", runErr))
		} else if string(code) != scenario.Expect.Error {
			result.AddError(fmt.Sprintf("error: expected %s, got %s", scenario.Expect.Error, code))
		}
		return result, nil
	}

	result.Summary = summarize(eng.Config(), run)
	result.Grid = run.Grid

	if scenario.Expect.Error != "" {
		result.AddError(fmt.Sprintf("error: expected %s, run succeeded", scenario.Expect.Error))
		return result, nil
	}

	checkExpect(result, scenario.Expect)
	for i, a := range scenario.Assertions {
		if err := evaluateAssertion(run, a); err != nil {
			result.AddError(fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}

	return result, nil
}

func checkExpect(result *Result, want Expect) {
	s := result.Summary
	check := func(field string, want *int, got int) {
		if want != nil && *want != got {
			result.AddError(fmt.Sprintf("%s: expected %d, got %d", field, *want, got))
		}
	}
	check("overlaps", want.Overlaps, s.Overlaps)
	check("kept", want.Kept, s.Kept)
	check("diagonal", want.Diagonal, s.Diagonal)
	check("rejected", want.Rejected, s.Rejected)
	check("size", want.Size, s.Size)
}
