package graph

import (
	"regexp"
	"strings"

	"github.com/puzpuzpuz/xsync/v4"
)

// Delimiters that may surround a bare-word mention of a Source name.
const (
	leadingDelims  = `[ \[(<.:,=]`
	trailingDelims = `[ \])(<>*!?.:,;=]`
)

// MatcherCache compiles word-boundary matchers lazily and shares them across
// goroutines scanning files in parallel.
type MatcherCache struct {
	cache *xsync.Map[string, *regexp.Regexp]
}

// NewMatcherCache creates an empty cache.
func NewMatcherCache() *MatcherCache {
	return &MatcherCache{
		cache: xsync.NewMap[string, *regexp.Regexp](),
	}
}

// Matcher returns the compiled matcher for name.
func (c *MatcherCache) Matcher(name string) *regexp.Regexp {
	rx, ok := c.cache.Load(name)
	if ok {
		return rx
	}
	rx = compileMatcher(name)
	c.cache.Store(name, rx)
	return rx
}

// Matches reports whether line mentions name as a whole word: preceded by a
// delimiter and followed by a delimiter or the end of the line.
func (c *MatcherCache) Matches(name, line string) bool {
	// Most lines never contain the name; skip the regex for them.
	if !strings.Contains(line, name) {
		return false
	}
	return c.Matcher(name).MatchString(line)
}

// Size returns the number of compiled matchers.
func (c *MatcherCache) Size() int {
	return c.cache.Size()
}

func compileMatcher(name string) *regexp.Regexp {
	return regexp.MustCompile(leadingDelims + regexp.QuoteMeta(name) + `(?:` + trailingDelims + `|$)`)
}
