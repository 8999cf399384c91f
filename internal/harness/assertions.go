package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/fissure/internal/engine"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Type, e.Expected, e.Actual)
}

func evaluateAssertion(run *engine.Result, a Assertion) error {
	switch a.Type {
	case AssertCell:
		return assertCell(run, a)
	case AssertThreshold:
		return assertThreshold(run, a)
	case AssertRejectedLine:
		return assertRejectedLine(run, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

// assertCell checks the hit count of one cell. Cells outside the grid hold 0.
func assertCell(run *engine.Result, a Assertion) error {
	got := 0
	if run.Grid.Contains(a.X, a.Y) {
		got = run.Grid.At(a.X, a.Y)
	}
	if got != a.Count {
		return &AssertionError{
			Type:     AssertCell,
			Expected: fmt.Sprintf("%d at (%d,%d)", a.Count, a.X, a.Y),
			Actual:   fmt.Sprintf("%d", got),
		}
	}
	return nil
}

// assertThreshold checks how many cells reach a threshold.
func assertThreshold(run *engine.Result, a Assertion) error {
	got := run.Grid.Count(a.Threshold)
	if got != a.Count {
		return &AssertionError{
			Type:     AssertThreshold,
			Expected: fmt.Sprintf("%d cells >= %d", a.Count, a.Threshold),
			Actual:   fmt.Sprintf("%d", got),
		}
	}
	return nil
}

// assertRejectedLine checks that a line was rejected, optionally with a kind.
func assertRejectedLine(run *engine.Result, a Assertion) error {
	var rejected []string
	for _, r := range run.Rejections() {
		if r.Line == a.Line && (a.Kind == "" || r.Kind == a.Kind) {
			return nil
		}
		rejected = append(rejected, fmt.Sprintf("%d:%s", r.Line, r.Kind))
	}

	expected := fmt.Sprintf("line %d rejected", a.Line)
	if a.Kind != "" {
		expected += " as " + a.Kind
	}
	actual := "no rejected lines"
	if len(rejected) > 0 {
		actual = "rejected " + strings.Join(rejected, ", ")
	}
	return &AssertionError{
		Type:     AssertRejectedLine,
		Expected: expected,
		Actual:   actual,
	}
}
