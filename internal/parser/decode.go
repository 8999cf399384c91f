package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/roach88/fissure/internal/ir"
)

// Line is the decode result for one input line.
type Line struct {
	// Number is the 1-based line number in the source.
	Number int

	// Text is the raw line with any trailing carriage return removed.
	Text string

	// Segment is valid only when Err is nil.
	Segment ir.Segment

	// Err is a *ParseError when the line was rejected.
	Err error
}

// OK reports whether the line decoded into a segment.
func (l Line) OK() bool {
	return l.Err == nil
}

// Decode reads newline-separated segment text from r.
//
// Every non-blank line yields one Line, in input order. Blank lines are
// skipped but still advance the line counter. Malformed lines are not an
// error here: they come back with Err set. Decode only fails when r itself
// cannot be read.
func Decode(r io.Reader) ([]Line, error) {
	var lines []Line
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		text := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		lines = append(lines, decodeLine(n, text))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	if lines == nil {
		lines = []Line{}
	}
	return lines, nil
}

func decodeLine(n int, text string) Line {
	seg, err := ParseSegment(text)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Line = n
		}
		return Line{Number: n, Text: text, Err: err}
	}
	return Line{Number: n, Text: text, Segment: seg}
}

// Texts returns the raw text of every decoded line, in order.
func Texts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}
