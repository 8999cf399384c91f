// Package engine runs the segment overlap pipeline.
//
// A run has four stages, executed in order on a single goroutine:
//
//  1. Decode: input text is split into lines and parsed (internal/parser)
//  2. Filter: rejected lines and diagonal segments are set aside
//  3. Rasterize: kept segments are drawn onto a grid sized by the Bound
//  4. Aggregate: cells at or above grid.OverlapThreshold are counted
//
// The grid is created inside Run and belongs to that run alone. Nothing is
// shared between runs, so an Engine may be reused sequentially.
//
// Rejected lines are handled by the configured Policy. PolicyLenient drops
// them (logged at debug level) and carries on; PolicyStrict fails the run
// on the first one.
package engine
