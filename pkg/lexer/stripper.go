// Package lexer turns raw Objective-C and Swift source lines into classified tokens.
package lexer

import "strings"

const (
	lineComment  = "//"
	blockStart   = "/*"
	blockEnd     = "*/"
	markerLength = 2
)

// Stripper removes comment text from source lines one line at a time.
// It carries block comment state across lines, so a single Stripper must be
// used for a single file, in line order.
type Stripper struct {
	// depth is the number of open block comments. Without nesting it is 0 or 1.
	depth int

	// nesting reports whether block comments nest (Swift) or not (Objective-C).
	nesting bool
}

// NewStripper creates a stripper. Nesting should be true for languages whose
// block comments nest.
func NewStripper(nesting bool) *Stripper {
	return &Stripper{nesting: nesting}
}

// InComment reports whether the next line starts inside a block comment.
func (s *Stripper) InComment() bool {
	return s.depth > 0
}

// Strip returns the code-only part of line with every comment span removed,
// trimmed of surrounding whitespace.
func (s *Stripper) Strip(line string) string {
	var out strings.Builder
	rest := line

	for rest != "" {
		if s.depth > 0 {
			rest = s.skipComment(rest)
			continue
		}

		lc := strings.Index(rest, lineComment)
		bc := strings.Index(rest, blockStart)

		switch {
		case bc >= 0 && (lc < 0 || bc < lc):
			// Keep a separator so code around the comment does not glue together.
			out.WriteString(rest[:bc])
			out.WriteByte(' ')
			s.depth = 1
			rest = rest[bc+markerLength:]
		case lc >= 0:
			out.WriteString(rest[:lc])
			rest = ""
		default:
			out.WriteString(rest)
			rest = ""
		}
	}

	return strings.TrimSpace(out.String())
}

// skipComment consumes text inside a block comment and returns what remains
// after the next state change. It returns "" when the comment runs to the end
// of the line.
func (s *Stripper) skipComment(rest string) string {
	end := strings.Index(rest, blockEnd)

	if s.nesting {
		start := strings.Index(rest, blockStart)
		if start >= 0 && (end < 0 || start < end) {
			s.depth++
			return rest[start+markerLength:]
		}
	}

	if end < 0 {
		return ""
	}

	if s.nesting {
		s.depth--
	} else {
		s.depth = 0
	}
	return rest[end+markerLength:]
}
