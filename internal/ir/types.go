package ir

import "fmt"

// Point is an integer grid coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String renders the point in input form: "x,y".
func (p Point) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// Segment is a line between two endpoints. Endpoint order is preserved
// from the input but has no effect on the cells a segment covers.
type Segment struct {
	P1 Point `json:"p1"`
	P2 Point `json:"p2"`
}

// String renders the segment in input form: "x1,y1 -> x2,y2".
func (s Segment) String() string {
	return s.P1.String() + " -> " + s.P2.String()
}

// IsAxisAligned reports whether the segment is horizontal or vertical.
func (s Segment) IsAxisAligned() bool {
	return s.P1.X == s.P2.X || s.P1.Y == s.P2.Y
}

// IsHorizontal reports whether both endpoints share a row.
func (s Segment) IsHorizontal() bool {
	return s.P1.Y == s.P2.Y
}

// IsVertical reports whether both endpoints share a column.
func (s Segment) IsVertical() bool {
	return s.P1.X == s.P2.X
}

// IsPoint reports whether the segment has zero length.
func (s Segment) IsPoint() bool {
	return s.P1 == s.P2
}

// MaxCoordinate returns the largest x or y referenced by either endpoint.
func (s Segment) MaxCoordinate() int {
	return max(s.P1.X, s.P1.Y, s.P2.X, s.P2.Y)
}

// Len returns the number of cells the segment covers when it is axis-aligned.
// Diagonal segments return 0.
func (s Segment) Len() int {
	switch {
	case s.IsHorizontal():
		return abs(s.P1.X-s.P2.X) + 1
	case s.IsVertical():
		return abs(s.P1.Y-s.P2.Y) + 1
	default:
		return 0
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// RunRecord is the ledger entry for one completed pipeline run.
type RunRecord struct {
	ID            string `json:"id"`             // UUIDv7 run identifier
	Seq           int64  `json:"seq"`            // Logical clock assigned by the store
	InputDigest   string `json:"input_digest"`   // InputDigest of the decoded lines
	SegmentDigest string `json:"segment_digest"` // SegmentsDigest of the kept segments
	Bound         string `json:"bound"`          // "auto" or the fixed size
	Policy        string `json:"policy"`         // "lenient" or "strict"
	Size          int    `json:"size"`           // Grid width and height
	Lines         int    `json:"lines"`          // Non-blank input lines
	Kept          int    `json:"kept"`           // Axis-aligned segments rasterized
	Diagonal      int    `json:"diagonal"`       // Parsed but filtered segments
	Rejected      int    `json:"rejected"`       // Lines that failed to parse
	Overlaps      int    `json:"overlaps"`       // Cells with count >= threshold
	EngineVersion string `json:"engine_version"` // Engine version that produced it
}

// Rejection records one input line that failed to parse during a run.
type Rejection struct {
	Line int    `json:"line"` // 1-based input line number
	Kind string `json:"kind"` // parser error kind
	Text string `json:"text"` // raw line text
}
