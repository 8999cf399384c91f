package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/fissure/internal/grid"
	"github.com/roach88/fissure/internal/ir"
)

// Snapshot renders the deterministic output of a scenario run: the summary
// as canonical JSON on the first line, then the rendered grid.
// Grids larger than grid.RenderLimit are noted instead of drawn.
func Snapshot(scenarioName string, result *Result) ([]byte, error) {
	s := result.Summary

	rejections := make([]any, len(s.Rejections))
	for i, r := range s.Rejections {
		rejections[i] = map[string]any{
			"line": r.Line,
			"kind": r.Kind,
			"text": r.Text,
		}
	}

	summary := map[string]any{
		"scenario":   scenarioName,
		"bound":      s.Bound,
		"policy":     s.Policy,
		"size":       s.Size,
		"lines":      s.Lines,
		"kept":       s.Kept,
		"diagonal":   s.Diagonal,
		"rejected":   s.Rejected,
		"overlaps":   s.Overlaps,
		"rejections": rejections,
	}
	if s.Error != "" {
		summary["error"] = s.Error
	}

	data, err := ir.MarshalCanonical(summary)
	if err != nil {
		return nil, fmt.Errorf("marshal summary: %w", err)
	}

	var buf bytes.Buffer
	buf.Write(data)
	buf.WriteByte('\n')

	if result.Grid != nil {
		if err := grid.Render(&buf, result.Grid); err != nil {
			fmt.Fprintf(&buf, "grid %dx%d not rendered\n", result.Grid.Size(), result.Grid.Size())
		}
	}
	return buf.Bytes(), nil
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against its golden file.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := Snapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}

// GoldenPath returns the golden file for a scenario file: a golden/
// directory next to it, named after the scenario file.
func GoldenPath(scenarioFile string) string {
	dir := filepath.Dir(scenarioFile)
	base := filepath.Base(scenarioFile)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, "golden", name+".golden")
}

// WriteGolden writes the snapshot of result to goldenPath.
func WriteGolden(goldenPath, scenarioName string, result *Result) error {
	data, err := Snapshot(scenarioName, result)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(goldenPath), 0o755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}
	if err := os.WriteFile(goldenPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write golden file: %w", err)
	}
	return nil
}

// CompareGolden reports whether result matches goldenPath.
// A missing golden file returns os.ErrNotExist.
func CompareGolden(goldenPath, scenarioName string, result *Result) (bool, error) {
	want, err := os.ReadFile(goldenPath)
	if err != nil {
		return false, err
	}
	got, err := Snapshot(scenarioName, result)
	if err != nil {
		return false, err
	}
	return bytes.Equal(want, got), nil
}
