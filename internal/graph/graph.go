package graph

import (
	"maps"
	"path"
	"slices"
	"strings"
)

// Implementation file extensions; a file with one of these joins the header
// with the same stem.
var implExtensions = []string{".m", ".mm"}

// headerExtension marks files whose type definitions are authoritative.
const headerExtension = ".h"

// swiftExtension files declare and implement types in one place, so their
// definitions are authoritative too.
const swiftExtension = ".swift"

// Graph holds Sources keyed by file name and by type name in two separate
// collections, plus the Dependencies seen in the target directories.
//
// The graph is not safe for concurrent mutation. Concurrent readers may call
// Match while no writer is active.
type Graph struct {
	files map[string]*Source
	types map[string]*Source

	deps       map[string]*Dependency
	depsByBase map[string][]*Dependency

	// external are Dependencies consumed from outside the target directories.
	external map[string]*Dependency

	matchers *MatcherCache
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		files:      make(map[string]*Source),
		types:      make(map[string]*Source),
		deps:       make(map[string]*Dependency),
		depsByBase: make(map[string][]*Dependency),
		external:   make(map[string]*Dependency),
		matchers:   NewMatcherCache(),
	}
}

// AddFile registers the file at relPath as a Source keyed by its base name.
func (g *Graph) AddFile(relPath string) *Source {
	name := path.Base(relPath)
	s, ok := g.files[name]
	if !ok {
		s = newSource(name, KindFile)
		g.files[name] = s
	}
	s.files.add(relPath)
	return s
}

// AddType registers a type defined in the file at relPath. Definitions in
// headers and Swift files are authoritative: the type and its file share usage.
func (g *Graph) AddType(name, relPath string) *Source {
	s, ok := g.types[name]
	if !ok {
		s = newSource(name, KindType)
		g.types[name] = s
	}
	s.files.add(relPath)

	if isAuthoritative(relPath) {
		file := g.AddFile(relPath)
		s.addAuthority(file)
	}
	return s
}

// AddDependency records that name is imported or forward-declared at relPath.
func (g *Graph) AddDependency(name, relPath string) *Dependency {
	d, ok := g.deps[name]
	if !ok {
		d = newDependency(name)
		g.deps[name] = d
		g.depsByBase[d.Base()] = append(g.depsByBase[d.Base()], d)
	}
	d.locations.add(relPath)
	return d
}

// Consume records an import of a known Dependency from outside the target
// directories. It reports false when name is not a known Dependency.
func (g *Graph) Consume(name, relPath string) bool {
	if _, ok := g.deps[name]; !ok {
		return false
	}
	d, ok := g.external[name]
	if !ok {
		d = newDependency(name)
		g.external[name] = d
	}
	d.locations.add(relPath)
	return true
}

// LinkCompanions joins every implementation file to the header with the
// same stem, so usage of the header also marks its implementation.
func (g *Graph) LinkCompanions() {
	for _, name := range slices.Sorted(maps.Keys(g.files)) {
		ext := path.Ext(name)
		if !slices.Contains(implExtensions, ext) {
			continue
		}
		header, ok := g.files[strings.TrimSuffix(name, ext)+headerExtension]
		if !ok {
			continue
		}
		header.addCompanion(g.files[name])
	}
}

// File returns the file Source with the given base name.
func (g *Graph) File(name string) (*Source, bool) {
	s, ok := g.files[name]
	return s, ok
}

// Type returns the type Source with the given name.
func (g *Graph) Type(name string) (*Source, bool) {
	s, ok := g.types[name]
	return s, ok
}

// ResolveImport finds the file Source an import path refers to, by base name.
func (g *Graph) ResolveImport(importPath string) (*Source, bool) {
	return g.File(path.Base(importPath))
}

// Sources returns every Source, files first, each group sorted by name.
func (g *Graph) Sources() []*Source {
	out := make([]*Source, 0, len(g.files)+len(g.types))
	for _, name := range slices.Sorted(maps.Keys(g.files)) {
		out = append(out, g.files[name])
	}
	for _, name := range slices.Sorted(maps.Keys(g.types)) {
		out = append(out, g.types[name])
	}
	return out
}

// Dependencies returns every Dependency sorted by name.
func (g *Graph) Dependencies() []*Dependency {
	out := make([]*Dependency, 0, len(g.deps))
	for _, name := range slices.Sorted(maps.Keys(g.deps)) {
		out = append(out, g.deps[name])
	}
	return out
}

// External returns the externally consumed Dependencies sorted by name.
func (g *Graph) External() []*Dependency {
	out := make([]*Dependency, 0, len(g.external))
	for _, name := range slices.Sorted(maps.Keys(g.external)) {
		out = append(out, g.external[name])
	}
	return out
}

// Shadowed reports whether a Dependency names a Source of the project, either
// a type of the same name or a file with the same base name.
func (g *Graph) Shadowed(d *Dependency) bool {
	if _, ok := g.types[d.Name]; ok {
		return true
	}
	_, ok := g.files[d.Base()]
	return ok
}

// MarkUsed records loc as a usage of s and of the Sources joined to it.
// It reports whether any usage set grew.
func (g *Graph) MarkUsed(s *Source, loc string) bool {
	grew := s.use(loc)

	switch s.Kind {
	case KindFile:
		for _, t := range s.declares {
			grew = t.use(loc) || grew
		}
		for _, impl := range s.companions {
			grew = impl.use(loc) || grew
		}
	case KindType:
		for _, file := range s.authorities {
			grew = file.use(loc) || grew
			for _, impl := range file.companions {
				grew = impl.use(loc) || grew
			}
		}
	}
	return grew
}

// MatchLine returns every Source whose word-boundary matcher finds its name
// in line. It only reads the graph.
func (g *Graph) MatchLine(line string, sources []*Source) []*Source {
	var matched []*Source
	for _, s := range sources {
		if g.matchers.Matches(s.Name, line) {
			matched = append(matched, s)
		}
	}
	return matched
}

// Matchers returns the graph's matcher cache.
func (g *Graph) Matchers() *MatcherCache {
	return g.matchers
}

// sameNamed returns the Dependencies that name s: imports whose base name is
// the file name, or forward declarations and identifiers equal to the type name.
func (g *Graph) sameNamed(s *Source) []*Dependency {
	if s.Kind == KindFile {
		return g.depsByBase[s.Name]
	}
	if d, ok := g.deps[s.Name]; ok {
		return []*Dependency{d}
	}
	return nil
}

func isAuthoritative(relPath string) bool {
	ext := strings.ToLower(path.Ext(relPath))
	return ext == headerExtension || ext == swiftExtension
}
