package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fissure/internal/engine"
	"github.com/roach88/fissure/internal/grid"
)

func TestLoadScenario_Sample(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/sample.yaml")
	require.NoError(t, err)

	assert.Equal(t, "sample", s.Name)
	assert.Empty(t, s.Input)
	require.NotNil(t, s.Expect.Overlaps)
	assert.Equal(t, 5, *s.Expect.Overlaps)
	require.NotNil(t, s.Expect.Size)
	assert.Equal(t, 10, *s.Expect.Size)
	assert.Empty(t, s.Expect.Error)
	assert.Len(t, s.Assertions, 5)
}

func TestLoadScenario_Config(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/fixed_bound.yaml")
	require.NoError(t, err)

	cfg, err := s.EngineConfig()
	require.NoError(t, err)
	assert.Equal(t, engine.Config{Bound: grid.Fixed(12), Policy: engine.PolicyLenient}, cfg)
}

func TestLoadScenario_InputFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "input.txt"), []byte("1,1 -> 1,3\n0,2 -> 2,2\n"), 0o644))
	path := filepath.Join(dir, "file.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: file
description: "input read from a sibling file"
input_file: input.txt
expect:
  overlaps: 1
`), 0o644))

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "1,1 -> 1,3\n0,2 -> 2,2\n", s.Input)

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestLoadScenario_EmptyInputFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.txt"), nil, 0o644))
	path := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: empty
description: "an empty input file is an empty run, not the sample"
input_file: empty.txt
expect:
  overlaps: 0
  kept: 0
  size: 0
`), 0o644))

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Empty(t, s.Input)

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, 0, result.Summary.Lines)
	assert.Equal(t, 0, result.Summary.Kept)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("testdata/scenarios/nope.yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "unknown field",
			yaml:    "name: x\ndescription: y\nexpects:\n  overlaps: 1\n",
			wantErr: "field expects not found",
		},
		{
			name:    "missing name",
			yaml:    "description: y\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			yaml:    "name: x\n",
			wantErr: "description is required",
		},
		{
			name:    "input and input_file",
			yaml:    "name: x\ndescription: y\ninput: a\ninput_file: b\n",
			wantErr: "mutually exclusive",
		},
		{
			name:    "bad bound",
			yaml:    "name: x\ndescription: y\nbound: \"-1\"\n",
			wantErr: "invalid bound",
		},
		{
			name:    "bad policy",
			yaml:    "name: x\ndescription: y\npolicy: loose\n",
			wantErr: "invalid policy",
		},
		{
			name:    "unknown error code",
			yaml:    "name: x\ndescription: y\nexpect:\n  error: BOOM\n",
			wantErr: "unknown error code",
		},
		{
			name:    "assertions with error",
			yaml:    "name: x\ndescription: y\nexpect:\n  error: BOUND_EXCEEDED\nassertions:\n  - type: cell\n    count: 0\n",
			wantErr: "cannot be combined",
		},
		{
			name:    "unknown assertion",
			yaml:    "name: x\ndescription: y\nassertions:\n  - type: row\n",
			wantErr: "unknown assertion type",
		},
		{
			name:    "missing assertion type",
			yaml:    "name: x\ndescription: y\nassertions:\n  - count: 1\n",
			wantErr: "type is required",
		},
		{
			name:    "threshold zero",
			yaml:    "name: x\ndescription: y\nassertions:\n  - type: threshold\n    count: 1\n",
			wantErr: "threshold must be at least 1",
		},
		{
			name:    "rejected_line without line",
			yaml:    "name: x\ndescription: y\nassertions:\n  - type: rejected_line\n    kind: missing_arrow\n",
			wantErr: "line is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
