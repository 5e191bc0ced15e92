package graph

import "slices"

// Partition is the final classification of the graph.
type Partition struct {
	// Usable are Sources with at least one usage.
	Usable []*Source

	// UnusedDirs are target directories without a single usable or suppressed Source.
	UnusedDirs []string

	// Unused are unused Sources outside UnusedDirs.
	Unused []*Source

	// Suppressed are unused Sources silenced by a directive.
	Suppressed []*Source

	// UnusedDeps are Dependencies neither consumed from outside the targets
	// nor shadowed by a Source.
	UnusedDeps []*Dependency

	// ExternalDeps are Dependencies consumed from outside the targets.
	ExternalDeps []*Dependency
}

// Partition splits the graph into used and unused parts. targets are the
// root-relative target directories, used to detect wholly unused directories.
func (g *Graph) Partition(targets []string) *Partition {
	p := &Partition{}
	var unused []*Source

	unusedDirs := slices.Clone(targets)
	for _, s := range g.Sources() {
		switch {
		case s.Usable():
			p.Usable = append(p.Usable, s)
		case s.IsSuppressed:
			p.Suppressed = append(p.Suppressed, s)
		default:
			unused = append(unused, s)
			continue
		}
		unusedDirs = slices.DeleteFunc(unusedDirs, s.InDir)
	}
	p.UnusedDirs = unusedDirs

	for _, s := range unused {
		if slices.ContainsFunc(p.UnusedDirs, s.InDir) {
			continue
		}
		p.Unused = append(p.Unused, s)
	}

	for _, d := range g.Dependencies() {
		if _, ok := g.external[d.Name]; ok || g.Shadowed(d) {
			continue
		}
		p.UnusedDeps = append(p.UnusedDeps, d)
	}
	p.ExternalDeps = g.External()

	return p
}
