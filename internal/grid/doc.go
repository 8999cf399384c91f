// Package grid holds the hit-count accumulator segments are rasterized onto.
//
// A Grid is square and covers every integer coordinate in [0, Size()).
// Storage is a dense row-major slice unless the cell count would exceed
// DenseCellLimit, in which case a sparse map keyed by point is used. Both
// representations behave identically through the Grid methods.
package grid
