package lexer

import (
	"regexp"
	"strings"
)

var (
	letterRun      = regexp.MustCompile(`[A-Za-z]+`)
	typeIdentifier = regexp.MustCompile(`^[A-Z][A-Za-z]*$`)
)

const wildcard = "*"

// Patterns matches identifiers against exact names and trailing-wildcard
// prefixes such as "Mock*".
type Patterns struct {
	exact    map[string]struct{}
	prefixes []string
}

// NewPatterns compiles a list of exclude patterns.
func NewPatterns(patterns []string) *Patterns {
	p := &Patterns{exact: make(map[string]struct{})}
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if prefix, ok := strings.CutSuffix(pattern, wildcard); ok {
			p.prefixes = append(p.prefixes, prefix)
			continue
		}
		p.exact[pattern] = struct{}{}
	}
	return p
}

// Match reports whether name is excluded.
func (p *Patterns) Match(name string) bool {
	if p == nil {
		return false
	}
	if _, ok := p.exact[name]; ok {
		return true
	}
	for _, prefix := range p.prefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// TypeIdentifiers extracts every maximal run of letters from line that looks
// like a type name (uppercase initial) and is not excluded. Order follows the
// line; duplicates are kept.
func TypeIdentifiers(line string, exclude *Patterns) []string {
	var names []string
	for _, run := range letterRun.FindAllString(line, -1) {
		if !typeIdentifier.MatchString(run) || exclude.Match(run) {
			continue
		}
		names = append(names, run)
	}
	return names
}
