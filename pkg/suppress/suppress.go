// Package suppress implements comment-based suppression of unused findings.
package suppress

import (
	"regexp"
	"strings"
)

// Checker collects suppression directives from the raw lines of one file.
// Directives live in comments, so lines must be observed before comment
// stripping.
type Checker struct {
	// byLine maps a line number to the directive found on it
	byLine map[int]*Suppression

	// file is set by an ignore-file directive anywhere in the file
	file *Suppression
}

// Suppression represents a parsed suppression directive.
type Suppression struct {
	Line   int
	Reason string
	Type   SuppressionType
}

// SuppressionType represents different types of suppression comments.
type SuppressionType int

const (
	// SuppressionNolint represents //nolint:unusedsrc comments.
	SuppressionNolint SuppressionType = iota

	// SuppressionLintIgnore represents //lint:ignore unusedsrc comments.
	SuppressionLintIgnore

	// SuppressionIgnore represents //unusedsrc:ignore comments.
	SuppressionIgnore

	// SuppressionFile represents //unusedsrc:ignore-file comments.
	SuppressionFile
)

const ruleName = "unusedsrc"

// Suppression patterns for different comment styles.
var (
	// ignoreFilePattern matches //unusedsrc:ignore-file comments
	ignoreFilePattern = regexp.MustCompile(`//\s*unusedsrc:ignore-file(?:\s+(.+))?$`)

	// ignorePattern matches //unusedsrc:ignore comments
	ignorePattern = regexp.MustCompile(`//\s*unusedsrc:ignore(?:\s+(.+))?$`)

	// nolintPattern matches //nolint:unusedsrc comments
	nolintPattern = regexp.MustCompile(`//\s*nolint:unusedsrc(?:\s+//\s*(.+))?$`)

	// lintIgnorePattern matches //lint:ignore unusedsrc comments
	lintIgnorePattern = regexp.MustCompile(`//\s*lint:ignore\s+unusedsrc(?:\s+(.+))?$`)

	// genericNolintPattern matches //nolint comments without specific linter
	genericNolintPattern = regexp.MustCompile(`//\s*nolint(?:\s|$)`)

	// nolintWithMultipleRules matches nolint with multiple comma-separated rules
	nolintWithMultipleRules = regexp.MustCompile(`//\s*nolint:([^/\s]+)(?:\s+//\s*(.+))?`)
)

// NewChecker creates a new suppression checker.
func NewChecker() *Checker {
	return &Checker{
		byLine: make(map[int]*Suppression),
	}
}

// Observe records a directive found in the raw text of line n.
func (c *Checker) Observe(n int, raw string) {
	if !strings.Contains(raw, "//") {
		return
	}
	s := ParseLine(raw)
	if s == nil {
		return
	}
	s.Line = n
	if s.Type == SuppressionFile {
		c.file = s
		return
	}
	c.byLine[n] = s
}

// ParseLine parses a raw source line to check if it carries a suppression directive.
func ParseLine(raw string) *Suppression {
	if m := ignoreFilePattern.FindStringSubmatch(raw); m != nil {
		return &Suppression{Reason: reason(m, 1), Type: SuppressionFile}
	}

	if m := ignorePattern.FindStringSubmatch(raw); m != nil {
		return &Suppression{Reason: reason(m, 1), Type: SuppressionIgnore}
	}

	if m := nolintPattern.FindStringSubmatch(raw); m != nil {
		return &Suppression{Reason: reason(m, 1), Type: SuppressionNolint}
	}

	if m := lintIgnorePattern.FindStringSubmatch(raw); m != nil {
		return &Suppression{Reason: reason(m, 1), Type: SuppressionLintIgnore}
	}

	if genericNolintPattern.MatchString(raw) {
		return &Suppression{Type: SuppressionNolint}
	}

	if m := nolintWithMultipleRules.FindStringSubmatch(raw); m != nil {
		for rule := range strings.SplitSeq(m[1], ",") {
			if strings.TrimSpace(rule) == ruleName {
				return &Suppression{Reason: reason(m, 2), Type: SuppressionNolint}
			}
		}
	}

	return nil
}

func reason(m []string, idx int) string {
	if len(m) > idx {
		return strings.TrimSpace(m[idx])
	}
	return ""
}

// IsSuppressed reports whether a declaration on line n is suppressed, either
// by a directive on the same line, on the line immediately before it, or by a
// file-level directive.
func (c *Checker) IsSuppressed(n int) (bool, string) {
	if s, ok := c.byLine[n]; ok {
		return true, reasonOrDefault(s)
	}
	if s, ok := c.byLine[n-1]; ok {
		return true, reasonOrDefault(s)
	}
	return c.FileSuppressed()
}

// FileSuppressed reports whether the whole file carries an ignore-file directive.
func (c *Checker) FileSuppressed() (bool, string) {
	if c.file == nil {
		return false, ""
	}
	return true, reasonOrDefault(c.file)
}

func reasonOrDefault(s *Suppression) string {
	if s.Reason == "" {
		return "suppressed"
	}
	return s.Reason
}
