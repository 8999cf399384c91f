package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fissure/internal/ir"
	"github.com/roach88/fissure/internal/parser"
)

func decode(t *testing.T, s string) []parser.Line {
	t.Helper()
	lines, err := parser.Decode(strings.NewReader(s))
	require.NoError(t, err)
	return lines
}

func TestFilterPartitionsInOrder(t *testing.T) {
	res := Filter(decode(t, "1,1 -> 1,4\n2,2 -> 3,3\nnope\n5,0 -> 0,0\n"))

	require.Len(t, res.Kept, 2)
	assert.Equal(t, "1,1 -> 1,4", res.Kept[0].Text)
	assert.Equal(t, "5,0 -> 0,0", res.Kept[1].Text)

	require.Len(t, res.Diagonal, 1)
	assert.Equal(t, 2, res.Diagonal[0].Number)

	require.Len(t, res.Rejected, 1)
	assert.Equal(t, "nope", res.Rejected[0].Text)

	assert.Equal(t, []ir.Segment{
		{P1: ir.Point{X: 1, Y: 1}, P2: ir.Point{X: 1, Y: 4}},
		{P1: ir.Point{X: 5, Y: 0}, P2: ir.Point{X: 0, Y: 0}},
	}, res.Segments())
}

func TestFilterSampleDropsDiagonals(t *testing.T) {
	res := Filter(decode(t, SampleInput))
	var kept []string
	for _, s := range res.Segments() {
		kept = append(kept, s.String())
	}
	assert.Equal(t, []string{
		"0,9 -> 5,9",
		"9,4 -> 3,4",
		"2,2 -> 2,1",
		"7,0 -> 7,4",
		"0,9 -> 2,9",
		"3,4 -> 1,4",
	}, kept)
}

func TestFilterSegmentsIdempotent(t *testing.T) {
	var all []ir.Segment
	for _, l := range decode(t, SampleInput) {
		all = append(all, l.Segment)
	}

	once := FilterSegments(all)
	twice := FilterSegments(once)
	assert.Equal(t, once, twice)
	assert.Len(t, once, 6)
}

func TestFilterEmpty(t *testing.T) {
	res := Filter(nil)
	assert.Empty(t, res.Kept)
	assert.Empty(t, res.Segments())
	assert.Empty(t, FilterSegments(nil))
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyLenient, p)

	p, err = ParsePolicy("STRICT")
	require.NoError(t, err)
	assert.Equal(t, PolicyStrict, p)

	_, err = ParsePolicy("paranoid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid policy")
}
