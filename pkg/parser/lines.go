// Package parser splits a PSS/E RAW buffer into lines, tokens, sections and
// logical record groups.
package parser

import (
	"bytes"
)

// Lines is a read-only line index over a RAW buffer. Each line is a subslice
// of the buffer with the newline and any trailing carriage return removed.
type Lines struct {
	lines [][]byte
}

// NewLines indexes data by newline. The buffer must not be modified while the
// returned Lines is in use.
func NewLines(data []byte) *Lines {
	l := &Lines{lines: make([][]byte, 0, bytes.Count(data, []byte{'\n'})+1)}
	for len(data) > 0 {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			l.lines = append(l.lines, trimCR(data))
			break
		}
		l.lines = append(l.lines, trimCR(data[:i]))
		data = data[i+1:]
	}
	return l
}

func trimCR(b []byte) []byte {
	if n := len(b); n > 0 && b[n-1] == '\r' {
		return b[:n-1]
	}
	return b
}

// Len returns the number of lines.
func (l *Lines) Len() int {
	return len(l.lines)
}

// At returns line i, or nil when i is out of range.
func (l *Lines) At(i int) []byte {
	if i < 0 || i >= len(l.lines) {
		return nil
	}
	return l.lines[i]
}

// Tokens splits line i into fields. It returns false when the line is out of
// range or is not valid UTF-8.
func (l *Lines) Tokens(i int) ([]string, bool) {
	if i < 0 || i >= len(l.lines) {
		return nil, false
	}
	return Fields(l.lines[i])
}

// lineClass is the structural role of a physical line.
type lineClass int

const (
	lineData lineClass = iota
	lineBlank
	lineComment
	lineMarker
	lineEnd
)

// classify inspects only the leading bytes of a line.
//
// Markers are "0 /", "0/" or a bare "0". "Q" ends the case data.
// Lines starting with "/" are comments and "@" lines are column legends.
func classify(line []byte) lineClass {
	t := bytes.TrimSpace(line)
	if len(t) == 0 {
		return lineBlank
	}
	switch t[0] {
	case '/', '@':
		return lineComment
	case 'Q':
		if len(t) == 1 || t[1] == ' ' || t[1] == '\t' || t[1] == '/' {
			return lineEnd
		}
	case '0':
		rest := bytes.TrimLeft(t[1:], " \t")
		if len(rest) == 0 || rest[0] == '/' {
			return lineMarker
		}
	}
	return lineData
}

// IsMarker reports whether a line closes a section.
func IsMarker(line []byte) bool {
	return classify(line) == lineMarker
}
