package grid

import (
	"errors"
	"fmt"

	"github.com/roach88/fissure/internal/ir"
)

// ErrNotAxisAligned is returned when a diagonal segment is drawn.
var ErrNotAxisAligned = errors.New("segment is not axis-aligned")

// ErrTooLargeToRender is returned by Render for grids wider than RenderLimit.
var ErrTooLargeToRender = errors.New("grid too large to render")

// OutOfBoundsError reports a segment that references a cell outside the grid.
type OutOfBoundsError struct {
	Segment ir.Segment
	Size    int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("segment %s exceeds grid bound %d (coordinates must be < %d)",
		e.Segment, e.Size, e.Size)
}
