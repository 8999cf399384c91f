package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fissure/internal/engine"
)

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "segments.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCount_Sample(t *testing.T) {
	out, _, err := executeRoot(t, "count")
	require.NoError(t, err)
	assert.Equal(t, "Number of overlaps: 5\n", out)
}

func TestCount_File(t *testing.T) {
	path := writeInput(t, "0,0 -> 0,4\n0,2 -> 3,2\n0,3 -> 2,3\n")

	out, _, err := executeRoot(t, "count", path)
	require.NoError(t, err)
	assert.Equal(t, "Number of overlaps: 2\n", out)
}

func TestCount_Stdin(t *testing.T) {
	cmd, out, _ := newTestCommand("1,1 -> 1,3\n0,2 -> 2,2\n")
	opts := &CountOptions{RootOptions: &RootOptions{Format: "text"}}

	require.NoError(t, runCount(opts, []string{"-"}, cmd))
	assert.Equal(t, "Number of overlaps: 1\n", out.String())
}

func TestCount_LenientDropsMalformedLines(t *testing.T) {
	path := writeInput(t, "0,0 -> 0,2\nnot a segment\n0,1 -> 3,1\n")

	out, _, err := executeRoot(t, "count", path)
	require.NoError(t, err)
	assert.Equal(t, "Number of overlaps: 1\n", out)
}

func TestCount_StrictRejectsMalformedLine(t *testing.T) {
	path := writeInput(t, "0,0 -> 0,2\nnot a segment\n0,1 -> 3,1\n")

	out, errOut, err := executeRoot(t, "count", path, "--strict")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.True(t, IsReported(err))
	assert.Empty(t, out)
	assert.Contains(t, errOut, "Error [E101]")
	assert.Contains(t, err.Error(), "line 2")
}

func TestCount_PolicyFlag(t *testing.T) {
	path := writeInput(t, "0,0 -> 0,2\nnot a segment\n0,1 -> 3,1\n")

	_, errOut, err := executeRoot(t, "count", path, "--policy", "strict")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, errOut, "Error [E101]")

	out, _, err := executeRoot(t, "count", path, "--policy", "lenient")
	require.NoError(t, err)
	assert.Equal(t, "Number of overlaps: 1\n", out)

	_, errOut, err = executeRoot(t, "count", path, "--policy", "paranoid")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, errOut, "Error [E003]")
}

func TestCount_PolicyFlagOverridesConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "fissure.cue")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`policy: "strict"`+"\n"), 0o644))
	path := writeInput(t, "0,0 -> 0,2\nnot a segment\n0,1 -> 3,1\n")

	_, _, err := executeRoot(t, "count", path, "--config", cfgPath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	out, _, err := executeRoot(t, "count", path, "--config", cfgPath, "--policy", "lenient")
	require.NoError(t, err)
	assert.Equal(t, "Number of overlaps: 1\n", out)
}

func TestCount_AutoBoundCap(t *testing.T) {
	path := writeInput(t, "0,0 -> 0,2000000000\n")

	_, errOut, err := executeRoot(t, "count", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, errOut, "Error [E102]")
}

func TestCount_LenientDropsOutOfRangeCoordinate(t *testing.T) {
	path := writeInput(t, "9223372036854775807,0 -> 9223372036854775807,0\n0,0 -> 0,1\n0,0 -> 0,1\n")

	out, _, err := executeRoot(t, "count", path)
	require.NoError(t, err)
	assert.Equal(t, "Number of overlaps: 2\n", out)
}

func TestCount_BoundExceeded(t *testing.T) {
	_, errOut, err := executeRoot(t, "count", "--bound", "9")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, errOut, "Error [E102]")
}

func TestCount_FixedBound(t *testing.T) {
	out, _, err := executeRoot(t, "count", "--bound", "10")
	require.NoError(t, err)
	assert.Equal(t, "Number of overlaps: 5\n", out)
}

func TestCount_InvalidBound(t *testing.T) {
	_, errOut, err := executeRoot(t, "count", "--bound", "zero")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, errOut, "Error [E003]")
}

func TestCount_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.txt")

	_, errOut, err := executeRoot(t, "count", missing)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, errOut, "Error [E002]")
}

func TestCount_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "fissure.cue")
	require.NoError(t, os.WriteFile(cfgPath, []byte("bound: 9\n"), 0o644))

	_, _, err := executeRoot(t, "count", "--config", cfgPath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	// Flags override the file.
	out, _, err := executeRoot(t, "count", "--config", cfgPath, "--bound", "auto")
	require.NoError(t, err)
	assert.Equal(t, "Number of overlaps: 5\n", out)
}

func TestCount_JSON(t *testing.T) {
	cmd, out, _ := newTestCommand("")
	opts := &CountOptions{
		RootOptions: &RootOptions{Format: "json"},
		RunIDs:      engine.NewFixedGenerator("run-1"),
	}

	require.NoError(t, runCount(opts, nil, cmd))

	var resp struct {
		Status string      `json:"status"`
		RunID  string      `json:"run_id"`
		Data   CountResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "run-1", resp.RunID)
	assert.Equal(t, "run-1", resp.Data.RunID)
	assert.Equal(t, 5, resp.Data.Overlaps)
	assert.Equal(t, 10, resp.Data.Size)
	assert.Equal(t, 10, resp.Data.Lines)
	assert.Equal(t, 6, resp.Data.Kept)
	assert.Equal(t, 4, resp.Data.Diagonal)
	assert.Equal(t, 0, resp.Data.Rejected)
	assert.Equal(t, "auto", resp.Data.Bound)
	assert.Equal(t, "lenient", resp.Data.Policy)
	assert.Len(t, resp.Data.InputDigest, 64)
	assert.Zero(t, resp.Data.Seq)
}

func TestCount_RecordsRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	cmd, out, _ := newTestCommand("")
	opts := &CountOptions{
		RootOptions: &RootOptions{Format: "json"},
		Database:    dbPath,
		RunIDs:      engine.NewFixedGenerator("run-1", "run-2"),
	}
	require.NoError(t, runCount(opts, nil, cmd))

	var resp struct {
		Data CountResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Data.Seq)

	cmd, out, _ = newTestCommand("")
	require.NoError(t, runCount(opts, nil, cmd))
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "run-2", resp.Data.RunID)
	assert.Equal(t, int64(2), resp.Data.Seq)
}
