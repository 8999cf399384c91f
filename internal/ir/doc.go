// Package ir provides the foundational types for fissure.
//
// This package holds the segment model and the canonical JSON encoding
// used for content-addressed digests. All other internal packages import
// ir; ir imports nothing internal.
//
// Key design constraints:
//   - Coordinates are plain ints; retained points never go below zero
//   - Canonical JSON has no floats and no nulls
//   - All JSON tags use snake_case
package ir
