package grid

import (
	"github.com/roach88/fissure/internal/ir"
)

// OverlapThreshold is the hit count at which a cell counts as an overlap.
const OverlapThreshold = 2

// DenseCellLimit is the largest cell count stored as a dense slice.
// Larger grids switch to sparse storage.
const DenseCellLimit = 1 << 24

// Grid is a square accumulator of per-cell hit counts.
// A Grid is not safe for concurrent use.
type Grid struct {
	size   int
	dense  []int
	sparse map[ir.Point]int
}

// New creates an all-zero size x size grid, choosing dense or sparse
// storage from the cell count.
func New(size int) *Grid {
	if size < 0 {
		size = 0
	}
	if size > 0 && size > DenseCellLimit/size {
		return NewSparse(size)
	}
	return &Grid{size: size, dense: make([]int, size*size)}
}

// NewSparse creates an all-zero grid backed by a map regardless of size.
func NewSparse(size int) *Grid {
	if size < 0 {
		size = 0
	}
	return &Grid{size: size, sparse: make(map[ir.Point]int)}
}

// Size returns the width and height of the grid.
func (g *Grid) Size() int {
	return g.size
}

// Sparse reports whether the grid uses map storage.
func (g *Grid) Sparse() bool {
	return g.sparse != nil
}

// Contains reports whether (x, y) is inside the grid.
func (g *Grid) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.size && y < g.size
}

// At returns the hit count at (x, y). Cells outside the grid read as 0.
func (g *Grid) At(x, y int) int {
	if !g.Contains(x, y) {
		return 0
	}
	if g.sparse != nil {
		return g.sparse[ir.Point{X: x, Y: y}]
	}
	return g.dense[y*g.size+x]
}

// inc adds one hit at (x, y). Callers check bounds.
func (g *Grid) inc(x, y int) {
	if g.sparse != nil {
		g.sparse[ir.Point{X: x, Y: y}]++
		return
	}
	g.dense[y*g.size+x]++
}

// Count returns the number of cells whose hit count is >= threshold.
func (g *Grid) Count(threshold int) int {
	n := 0
	if g.sparse != nil {
		if threshold <= 0 {
			return g.size * g.size
		}
		for _, v := range g.sparse {
			if v >= threshold {
				n++
			}
		}
		return n
	}
	for _, v := range g.dense {
		if v >= threshold {
			n++
		}
	}
	return n
}

// Max returns the highest hit count in the grid.
func (g *Grid) Max() int {
	m := 0
	if g.sparse != nil {
		for _, v := range g.sparse {
			m = max(m, v)
		}
		return m
	}
	for _, v := range g.dense {
		m = max(m, v)
	}
	return m
}

// Equal reports whether two grids have the same size and identical counts,
// regardless of storage.
func (g *Grid) Equal(other *Grid) bool {
	if g.size != other.size {
		return false
	}
	if g.filled() != other.filled() {
		return false
	}
	equal := true
	g.each(func(p ir.Point, v int) {
		if equal && other.At(p.X, p.Y) != v {
			equal = false
		}
	})
	return equal
}

// filled returns the number of cells with at least one hit.
func (g *Grid) filled() int {
	n := 0
	g.each(func(ir.Point, int) { n++ })
	return n
}

// each visits every cell with a non-zero count. Sparse grids are visited
// in map order.
func (g *Grid) each(fn func(p ir.Point, v int)) {
	if g.sparse != nil {
		for p, v := range g.sparse {
			fn(p, v)
		}
		return
	}
	for i, v := range g.dense {
		if v != 0 {
			fn(ir.Point{X: i % g.size, Y: i / g.size}, v)
		}
	}
}

// CountOverlaps returns the number of cells covered by two or more segments.
func CountOverlaps(g *Grid) int {
	return g.Count(OverlapThreshold)
}
