package cli

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fissure/internal/engine"
	"github.com/roach88/fissure/internal/ir"
)

// recordRuns runs count against each input with the given run IDs and
// returns the ledger path.
func recordRuns(t *testing.T, inputs []string, ids ...string) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	gen := engine.NewFixedGenerator(ids...)

	for _, input := range inputs {
		cmd, _, _ := newTestCommand(input)
		opts := &CountOptions{
			RootOptions: &RootOptions{Format: "text"},
			Database:    dbPath,
			RunIDs:      gen,
		}
		require.NoError(t, runCount(opts, []string{"-"}, cmd))
	}
	return dbPath
}

func TestHistory_Text(t *testing.T) {
	dbPath := recordRuns(t, []string{engine.SampleInput, "0,0 -> 0,2\n"}, "run-a", "run-b")

	out, _, err := executeRoot(t, "history", "--db", dbPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "SEQ")
	assert.Contains(t, lines[0], "OVERLAPS")
	assert.Contains(t, lines[1], "run-a")
	assert.Contains(t, lines[2], "run-b")
}

func TestHistory_JSONLimit(t *testing.T) {
	dbPath := recordRuns(t, []string{engine.SampleInput, "0,0 -> 0,2\n", "1,1 -> 1,1\n"}, "run-a", "run-b", "run-c")

	out, _, err := executeRoot(t, "history", "--db", dbPath, "--limit", "2", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Data []ir.RunRecord `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "run-b", resp.Data[0].ID)
	assert.Equal(t, int64(2), resp.Data[0].Seq)
	assert.Equal(t, "run-c", resp.Data[1].ID)
}

func TestHistory_Digest(t *testing.T) {
	dbPath := recordRuns(t, []string{engine.SampleInput, "0,0 -> 0,2\n", engine.SampleInput}, "run-a", "run-b", "run-c")

	out, _, err := executeRoot(t, "history", "--db", dbPath, "--format", "json")
	require.NoError(t, err)
	var all struct {
		Data []ir.RunRecord `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &all))
	require.Len(t, all.Data, 3)
	digest := all.Data[0].InputDigest
	assert.Equal(t, digest, all.Data[2].InputDigest)

	out, _, err = executeRoot(t, "history", "--db", dbPath, "--digest", digest, "--format", "json")
	require.NoError(t, err)
	var byDigest struct {
		Data []ir.RunRecord `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &byDigest))
	require.Len(t, byDigest.Data, 2)
	assert.Equal(t, "run-a", byDigest.Data[0].ID)
	assert.Equal(t, "run-c", byDigest.Data[1].ID)
}

func TestHistory_RunWithRejections(t *testing.T) {
	dbPath := recordRuns(t, []string{"0,0 -> 0,2\nbogus\n"}, "run-a")

	out, _, err := executeRoot(t, "history", "--db", dbPath, "--run", "run-a")
	require.NoError(t, err)
	assert.Contains(t, out, "run-a")
	assert.Contains(t, out, `line 2: missing_arrow: "bogus"`)

	out, _, err = executeRoot(t, "history", "--db", dbPath, "--run", "run-a", "--format", "json")
	require.NoError(t, err)
	var resp struct {
		Data RunDetail `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 1, resp.Data.Run.Rejected)
	require.Len(t, resp.Data.Rejections, 1)
	assert.Equal(t, ir.Rejection{Line: 2, Kind: "missing_arrow", Text: "bogus"}, resp.Data.Rejections[0])
}

func TestHistory_UnknownRun(t *testing.T) {
	dbPath := recordRuns(t, []string{engine.SampleInput}, "run-a")

	_, _, err := executeRoot(t, "history", "--db", dbPath, "--run", "missing")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestHistory_MissingDatabase(t *testing.T) {
	_, errOut, err := executeRoot(t, "history", "--db", filepath.Join(t.TempDir(), "none.db"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, errOut, "database not found")
}

func TestHistory_RequiresDB(t *testing.T) {
	_, _, err := executeRoot(t, "history")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db")
}
