package grid

import (
	"fmt"

	"github.com/roach88/fissure/internal/ir"
)

// Draw increments every cell covered by s, endpoints included.
// Horizontal segments walk their row and vertical segments their column,
// so a zero-length segment hits exactly one cell.
// The grid is left unchanged when an error is returned.
func (g *Grid) Draw(s ir.Segment) error {
	if !s.IsAxisAligned() {
		return fmt.Errorf("draw %s: %w", s, ErrNotAxisAligned)
	}
	if !g.Contains(s.P1.X, s.P1.Y) || !g.Contains(s.P2.X, s.P2.Y) {
		return &OutOfBoundsError{Segment: s, Size: g.size}
	}

	if s.IsHorizontal() {
		y := s.P1.Y
		for x := min(s.P1.X, s.P2.X); x <= max(s.P1.X, s.P2.X); x++ {
			g.inc(x, y)
		}
		return nil
	}

	x := s.P1.X
	for y := min(s.P1.Y, s.P2.Y); y <= max(s.P1.Y, s.P2.Y); y++ {
		g.inc(x, y)
	}
	return nil
}

// Rasterize draws every segment onto g in order. It stops at the first
// segment that cannot be drawn; segments before it remain applied.
func Rasterize(g *Grid, segments []ir.Segment) error {
	for i, s := range segments {
		if err := g.Draw(s); err != nil {
			return fmt.Errorf("segment %d: %w", i, err)
		}
	}
	return nil
}
