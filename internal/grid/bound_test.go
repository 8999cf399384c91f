package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fissure/internal/ir"
)

func TestParseBound(t *testing.T) {
	tests := []struct {
		input   string
		want    Bound
		wantErr string
	}{
		{"auto", Auto(), ""},
		{"AUTO", Auto(), ""},
		{"", Auto(), ""},
		{"10", Fixed(10), ""},
		{" 42 ", Fixed(42), ""},
		{"0", Bound{}, "at least 1"},
		{"-5", Bound{}, "at least 1"},
		{"ten", Bound{}, "must be \"auto\" or a positive integer"},
		{"1048576", Fixed(MaxSize), ""},
		{"1048577", Bound{}, "at most 1048576"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBound(tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBoundString(t *testing.T) {
	assert.Equal(t, "auto", Auto().String())
	assert.Equal(t, "10", Fixed(10).String())
	assert.True(t, Bound{}.IsAuto(), "zero value is auto")
	assert.Equal(t, 10, Fixed(10).Cap())
	assert.Equal(t, MaxSize, Auto().Cap())
}

func TestSizeForAuto(t *testing.T) {
	size, err := Auto().SizeFor(sampleSegments)
	require.NoError(t, err)
	assert.Equal(t, 10, size, "sample input spans 0..9")

	size, err = Auto().SizeFor(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, size)

	size, err = Auto().SizeFor([]ir.Segment{seg(0, 0, 0, 0)})
	require.NoError(t, err)
	assert.Equal(t, 1, size)
}

func TestSizeForFixed(t *testing.T) {
	size, err := Fixed(10).SizeFor(sampleSegments)
	require.NoError(t, err)
	assert.Equal(t, 10, size)

	size, err = Fixed(50).SizeFor(nil)
	require.NoError(t, err)
	assert.Equal(t, 50, size)

	_, err = Fixed(9).SizeFor(sampleSegments)
	var oob *OutOfBoundsError
	require.ErrorAs(t, err, &oob)
	assert.Equal(t, seg(0, 9, 5, 9), oob.Segment, "first offending segment reported")
	assert.Equal(t, 9, oob.Size)
}

func TestSizeForAutoCap(t *testing.T) {
	size, err := Auto().SizeFor([]ir.Segment{seg(0, 0, 0, MaxSize-1)})
	require.NoError(t, err)
	assert.Equal(t, MaxSize, size)

	huge := seg(0, 0, 0, 2000000000)
	_, err = Auto().SizeFor([]ir.Segment{seg(1, 1, 1, 3), huge})
	var oob *OutOfBoundsError
	require.ErrorAs(t, err, &oob)
	assert.Equal(t, huge, oob.Segment)
	assert.Equal(t, MaxSize, oob.Size)
}
