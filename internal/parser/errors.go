package parser

import (
	"errors"
	"fmt"
	"strconv"
)

// Kind categorizes parse failures.
type Kind string

const (
	// KindMissingArrow indicates the line has no " -> " separator.
	KindMissingArrow Kind = "missing_arrow"

	// KindMissingComma indicates an endpoint has no "," separator.
	KindMissingComma Kind = "missing_comma"

	// KindInvalidInteger indicates a coordinate is not a base-10 integer.
	KindInvalidInteger Kind = "invalid_integer"

	// KindNegativeCoordinate indicates a coordinate parsed but is below zero.
	KindNegativeCoordinate Kind = "negative_coordinate"
)

// ParseError describes why a line could not be decoded into a segment.
type ParseError struct {
	// Kind identifies the failure category.
	Kind Kind

	// Line is the 1-based input line number, or 0 when parsing a lone string.
	Line int

	// Point names the endpoint that failed ("p1" or "p2"), if any.
	Point string

	// Component names the coordinate that failed ("x" or "y"), if any.
	Component string

	// Text is the offending input fragment.
	Text string

	// Err is the underlying cause (e.g. a *strconv.NumError).
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	msg := e.message()
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	return msg
}

func (e *ParseError) message() string {
	switch e.Kind {
	case KindMissingArrow:
		return fmt.Sprintf("%s: expected %q in %q", e.Kind, arrow, e.Text)
	case KindMissingComma:
		return fmt.Sprintf("%s: %s: expected \"x,y\", got %q", e.Kind, e.Point, e.Text)
	case KindInvalidInteger:
		if errors.Is(e.Err, strconv.ErrRange) {
			return fmt.Sprintf("%s: %s.%s: %q is out of range", e.Kind, e.Point, e.Component, e.Text)
		}
		return fmt.Sprintf("%s: %s.%s: %q is not an integer", e.Kind, e.Point, e.Component, e.Text)
	case KindNegativeCoordinate:
		return fmt.Sprintf("%s: %s.%s: %q is below zero", e.Kind, e.Point, e.Component, e.Text)
	default:
		return fmt.Sprintf("%s: %q", e.Kind, e.Text)
	}
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Field returns the dotted location of the failure, e.g. "p1.x".
func (e *ParseError) Field() string {
	switch {
	case e.Point != "" && e.Component != "":
		return e.Point + "." + e.Component
	case e.Point != "":
		return e.Point
	default:
		return "line"
	}
}

// IsParseError reports whether err is or wraps a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// KindOf returns the Kind of a wrapped *ParseError, or "" if err is not one.
func KindOf(err error) Kind {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}
