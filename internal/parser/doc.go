// Package parser decodes segment text into ir.Segment values.
//
// The grammar is one segment per line:
//
//	x1,y1 -> x2,y2
//
// where every coordinate is a base-10 integer. ParseSegment is a pure
// function; Decode wraps it for a whole io.Reader and keeps per-line
// results so callers can decide what to do with rejected lines.
package parser
