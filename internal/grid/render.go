package grid

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// RenderLimit is the largest grid size Render will print.
const RenderLimit = 256

// Render writes the grid one row per line, y increasing downward.
// Empty cells print as '.', counts 1-9 as the digit, and anything
// higher as '#'.
func Render(w io.Writer, g *Grid) error {
	if g.size > RenderLimit {
		return fmt.Errorf("%w: size %d exceeds %d", ErrTooLargeToRender, g.size, RenderLimit)
	}

	bw := bufio.NewWriter(w)
	row := make([]byte, g.size+1)
	row[g.size] = '\n'
	for y := 0; y < g.size; y++ {
		for x := 0; x < g.size; x++ {
			row[x] = cellGlyph(g.At(x, y))
		}
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// String renders the grid, or a short description if it is too large.
func (g *Grid) String() string {
	var sb strings.Builder
	if err := Render(&sb, g); err != nil {
		return fmt.Sprintf("grid(%dx%d)", g.size, g.size)
	}
	return sb.String()
}

func cellGlyph(v int) byte {
	switch {
	case v <= 0:
		return '.'
	case v < 10:
		return byte('0' + v)
	default:
		return '#'
	}
}
