package graph

import (
	"errors"
	"log/slog"
)

// ErrNoConvergence is returned when Resolve exceeds its pass limit.
var ErrNoConvergence = errors.New("closure did not converge")

// Resolve propagates usage through chains of internal imports until no usage
// set grows. A Source S gains the usage location L when L imports or
// forward-declares S and L is a defining file of another Source that is
// already usable.
//
// Usable state is read as of the start of each pass; locations found during a
// pass are applied after it. maxPasses bounds the loop; zero derives the bound
// from the graph size. Resolve returns the number of passes run.
func (g *Graph) Resolve(maxPasses int) (int, error) {
	sources := g.Sources()
	byPath := make(map[string][]*Source)
	for _, s := range sources {
		for f := range s.files {
			byPath[f] = append(byPath[f], s)
		}
	}

	if maxPasses <= 0 {
		// Each productive pass adds at least one (Source, location) pair.
		maxPasses = len(sources)*(len(byPath)+1) + 1
	}

	for pass := 1; pass <= maxPasses; pass++ {
		pending := make(map[*Source][]string)

		for _, s := range sources {
			for _, d := range g.sameNamed(s) {
				for _, loc := range d.Locations() {
					if s.usages.has(loc) {
						continue
					}
					if usedElsewhere(s, byPath[loc]) {
						pending[s] = append(pending[s], loc)
					}
				}
			}
		}

		changed := false
		for _, s := range sources {
			for _, loc := range pending[s] {
				if g.MarkUsed(s, loc) {
					changed = true
				}
			}
		}

		slog.Debug("closure pass", "pass", pass, "sources", len(pending), "changed", changed)
		if !changed {
			return pass, nil
		}
	}

	return maxPasses, ErrNoConvergence
}

// usedElsewhere reports whether any Source other than s defined at a location
// is usable.
func usedElsewhere(s *Source, definers []*Source) bool {
	for _, t := range definers {
		if t != s && t.Usable() {
			return true
		}
	}
	return false
}
