package grid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/fissure/internal/ir"
)

// MaxSize is the largest grid side any bound allows. Auto-sized runs whose
// coordinates reach it fail instead of allocating.
const MaxSize = 1 << 20

// Bound selects how a grid is sized for a run.
// The zero value is Auto.
type Bound struct {
	fixed int
}

// Auto sizes the grid from the largest coordinate referenced.
func Auto() Bound {
	return Bound{}
}

// Fixed sizes the grid to n x n. Segments reaching outside it are rejected.
func Fixed(n int) Bound {
	return Bound{fixed: n}
}

// IsAuto reports whether the bound is auto-detected.
func (b Bound) IsAuto() bool {
	return b.fixed == 0
}

// Cap returns the largest grid size b allows: the fixed size, or MaxSize
// for Auto.
func (b Bound) Cap() int {
	if b.IsAuto() {
		return MaxSize
	}
	return b.fixed
}

// String renders the bound as accepted by ParseBound.
func (b Bound) String() string {
	if b.IsAuto() {
		return "auto"
	}
	return strconv.Itoa(b.fixed)
}

// ParseBound accepts "auto" or an integer in [1, MaxSize].
func ParseBound(s string) (Bound, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "auto") {
		return Auto(), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return Bound{}, fmt.Errorf("invalid bound %q: must be \"auto\" or a positive integer", s)
	}
	if n < 1 {
		return Bound{}, fmt.Errorf("invalid bound %d: must be at least 1", n)
	}
	if n > MaxSize {
		return Bound{}, fmt.Errorf("invalid bound %d: must be at most %d", n, MaxSize)
	}
	return Fixed(n), nil
}

// SizeFor returns the grid size needed to hold every segment under b.
// Auto returns max coordinate + 1 (0 for no segments). Fixed returns the
// limit. Either way the first segment reaching Cap() is reported as an
// *OutOfBoundsError.
func (b Bound) SizeFor(segments []ir.Segment) (int, error) {
	limit := b.Cap()
	size := 0
	for _, s := range segments {
		m := s.MaxCoordinate()
		if m >= limit {
			return 0, &OutOfBoundsError{Segment: s, Size: limit}
		}
		size = max(size, m+1)
	}
	if b.IsAuto() {
		return size, nil
	}
	return b.fixed, nil
}
