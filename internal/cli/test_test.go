package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingScenario = `name: crossing
description: "Two segments crossing once"
input: |
  0,0 -> 0,2
  0,1 -> 2,1
expect:
  overlaps: 1
  kept: 2
assertions:
  - type: cell
    x: 0
    y: 1
    count: 2
`

const failingScenario = `name: wrong_count
description: "Expects the wrong overlap count"
input: |
  0,0 -> 0,2
  0,1 -> 2,1
expect:
  overlaps: 3
`

// writeScenarios creates a scenarios directory holding the given files.
func writeScenarios(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestTest_AllPass(t *testing.T) {
	dir := writeScenarios(t, map[string]string{"crossing.yaml": passingScenario})

	out, _, err := executeRoot(t, "test", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "ok   crossing\n")
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")
}

func TestTest_Failure(t *testing.T) {
	dir := writeScenarios(t, map[string]string{
		"crossing.yaml":    passingScenario,
		"wrong_count.yaml": failingScenario,
	})

	out, _, err := executeRoot(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.True(t, IsReported(err))
	assert.Contains(t, out, "FAIL wrong_count\n")
	assert.Contains(t, out, "overlaps: expected 3, got 1")
	assert.Contains(t, out, "1 passed, 1 failed, 2 total")
}

func TestTest_Filter(t *testing.T) {
	dir := writeScenarios(t, map[string]string{
		"crossing.yaml":    passingScenario,
		"wrong_count.yaml": failingScenario,
	})

	out, _, err := executeRoot(t, "test", dir, "--filter", "cross*")
	require.NoError(t, err)
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")
	assert.NotContains(t, out, "wrong_count")
}

func TestTest_NoScenarios(t *testing.T) {
	out, _, err := executeRoot(t, "test", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "No scenarios found.\n", out)
}

func TestTest_MissingDirectory(t *testing.T) {
	_, _, err := executeRoot(t, "test", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTest_UpdateThenCompareGolden(t *testing.T) {
	dir := writeScenarios(t, map[string]string{"crossing.yaml": passingScenario})

	out, _, err := executeRoot(t, "test", dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "ok   crossing (golden updated)")

	goldenPath := filepath.Join(dir, "golden", "crossing.golden")
	data, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"scenario":"crossing"`)
	assert.Contains(t, string(data), "1..\n")

	out, _, err = executeRoot(t, "test", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "ok   crossing\n")

	// A stale golden file fails the scenario.
	require.NoError(t, os.WriteFile(goldenPath, []byte("stale\n"), 0o644))
	out, _, err = executeRoot(t, "test", dir)
	require.Error(t, err)
	assert.Contains(t, out, "does not match golden file")
}

func TestTest_JSON(t *testing.T) {
	dir := writeScenarios(t, map[string]string{
		"crossing.yaml":    passingScenario,
		"wrong_count.yaml": failingScenario,
	})

	out, _, err := executeRoot(t, "test", dir, "--format", "json")
	require.Error(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
		Error  *CLIError  `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeTestFailed, resp.Error.Code)
	assert.Equal(t, 2, resp.Data.Total)
	assert.Equal(t, 1, resp.Data.Passed)
	assert.Equal(t, 1, resp.Data.Failed)
}

func TestTest_HarnessScenarios(t *testing.T) {
	out, _, err := executeRoot(t, "test", "../harness/testdata/scenarios")
	require.NoError(t, err)
	assert.Contains(t, out, "ok   sample\n")
	assert.Contains(t, out, "0 failed")
}
