package parser

import (
	"strconv"
	"strings"

	"github.com/roach88/fissure/internal/ir"
)

const (
	arrow = " -> "
	comma = ","
)

// ParseSegment decodes a single "x1,y1 -> x2,y2" line.
// The returned error is always a *ParseError.
func ParseSegment(line string) (ir.Segment, error) {
	left, right, ok := strings.Cut(line, arrow)
	if !ok {
		return ir.Segment{}, &ParseError{Kind: KindMissingArrow, Text: line}
	}

	p1, err := parsePoint("p1", left)
	if err != nil {
		return ir.Segment{}, err
	}
	p2, err := parsePoint("p2", right)
	if err != nil {
		return ir.Segment{}, err
	}

	return ir.Segment{P1: p1, P2: p2}, nil
}

// ParsePoint decodes a single "x,y" endpoint.
func ParsePoint(s string) (ir.Point, error) {
	return parsePoint("", s)
}

func parsePoint(name, s string) (ir.Point, error) {
	xs, ys, ok := strings.Cut(s, comma)
	if !ok {
		return ir.Point{}, &ParseError{Kind: KindMissingComma, Point: name, Text: s}
	}

	x, err := parseCoordinate(name, "x", xs)
	if err != nil {
		return ir.Point{}, err
	}
	y, err := parseCoordinate(name, "y", ys)
	if err != nil {
		return ir.Point{}, err
	}

	return ir.Point{X: x, Y: y}, nil
}

// parseCoordinate reads one signed 32-bit component. Values outside the
// int32 range fail as KindInvalidInteger wrapping strconv.ErrRange.
func parseCoordinate(point, component, s string) (int, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, &ParseError{
			Kind:      KindInvalidInteger,
			Point:     point,
			Component: component,
			Text:      s,
			Err:       err,
		}
	}
	if n < 0 {
		return 0, &ParseError{
			Kind:      KindNegativeCoordinate,
			Point:     point,
			Component: component,
			Text:      s,
		}
	}
	return int(n), nil
}
