package engine

import (
	"github.com/roach88/fissure/internal/ir"
	"github.com/roach88/fissure/internal/parser"
)

// FilterResult partitions decoded lines. Each slice preserves input order.
type FilterResult struct {
	// Kept holds lines whose segment is axis-aligned.
	Kept []parser.Line

	// Diagonal holds lines that parsed but are neither horizontal nor vertical.
	Diagonal []parser.Line

	// Rejected holds lines that failed to parse.
	Rejected []parser.Line
}

// Segments returns the kept segments in input order.
func (f FilterResult) Segments() []ir.Segment {
	segs := make([]ir.Segment, len(f.Kept))
	for i, l := range f.Kept {
		segs[i] = l.Segment
	}
	return segs
}

// Filter splits decoded lines into kept, diagonal and rejected.
func Filter(lines []parser.Line) FilterResult {
	var res FilterResult
	for _, l := range lines {
		switch {
		case !l.OK():
			res.Rejected = append(res.Rejected, l)
		case !l.Segment.IsAxisAligned():
			res.Diagonal = append(res.Diagonal, l)
		default:
			res.Kept = append(res.Kept, l)
		}
	}
	return res
}

// FilterSegments returns the axis-aligned segments of segs in order.
// Applying it to its own output returns the same sequence.
func FilterSegments(segs []ir.Segment) []ir.Segment {
	out := make([]ir.Segment, 0, len(segs))
	for _, s := range segs {
		if s.IsAxisAligned() {
			out = append(out, s)
		}
	}
	return out
}
