// Package graph holds the cross-file usage graph and resolves indirect usage.
package graph

import (
	"maps"
	"path"
	"slices"
	"strings"
)

// Kind tells whether a Source is keyed by file name or by type name.
type Kind int

const (
	// KindFile is a source file keyed by its base name, e.g. "Widget.h".
	KindFile Kind = iota
	// KindType is a named type: an Objective-C class or protocol, or a Swift declaration.
	KindType
)

func (k Kind) String() string {
	if k == KindType {
		return "type"
	}
	return "file"
}

// set is an append-only string set.
type set map[string]struct{}

func (s set) add(v string) bool {
	if _, ok := s[v]; ok {
		return false
	}
	s[v] = struct{}{}
	return true
}

func (s set) has(v string) bool {
	_, ok := s[v]
	return ok
}

func (s set) sorted() []string {
	return slices.Sorted(maps.Keys(s))
}

// Source is one unit defined inside the target directories.
type Source struct {
	// Name is the key within the Source's kind.
	Name string

	// Kind separates file names from type names.
	Kind Kind

	// IsSuppressed is set by a suppression directive on the definition.
	IsSuppressed   bool
	SuppressReason string

	// IsEntryPoint is set when the runtime reaches the Source directly.
	IsEntryPoint bool

	// files are the root-relative paths where the Source is defined.
	files set

	// usages are the root-relative paths where the Source is used.
	usages set

	// authorities are the file Sources that authoritatively define a type.
	authorities []*Source

	// declares are the types this file authoritatively defines.
	declares []*Source

	// companions are the implementation files that belong to this header.
	companions []*Source
}

func newSource(name string, kind Kind) *Source {
	return &Source{
		Name:   name,
		Kind:   kind,
		files:  make(set),
		usages: make(set),
	}
}

// Known reports whether the Source has at least one defining file.
func (s *Source) Known() bool {
	return len(s.files) > 0
}

// Usable reports whether the Source has at least one usage.
func (s *Source) Usable() bool {
	return len(s.usages) > 0
}

// Files returns the defining paths, sorted.
func (s *Source) Files() []string {
	return s.files.sorted()
}

// Usages returns the usage locations, sorted.
func (s *Source) Usages() []string {
	return s.usages.sorted()
}

// InDir reports whether any defining file lies under dir.
func (s *Source) InDir(dir string) bool {
	for f := range s.files {
		if underDir(f, dir) {
			return true
		}
	}
	return false
}

// Authorities returns the names of the files that authoritatively define a type.
func (s *Source) Authorities() []string {
	names := make([]string, 0, len(s.authorities))
	for _, a := range s.authorities {
		names = append(names, a.Name)
	}
	return names
}

// use records loc as a usage. A file is never a usage of itself.
func (s *Source) use(loc string) bool {
	if s.Kind == KindFile && s.files.has(loc) {
		return false
	}
	return s.usages.add(loc)
}

func (s *Source) addAuthority(file *Source) {
	if slices.Contains(s.authorities, file) {
		return
	}
	s.authorities = append(s.authorities, file)
	file.declares = append(file.declares, s)
}

func (s *Source) addCompanion(impl *Source) {
	if impl == s || slices.Contains(s.companions, impl) {
		return
	}
	s.companions = append(s.companions, impl)
}

// Dependency is a name imported or forward-declared somewhere in the
// target directories.
type Dependency struct {
	// Name is the captured import path, forward-declared name or Swift identifier.
	Name string

	// locations are the root-relative paths that mention Name.
	locations set
}

func newDependency(name string) *Dependency {
	return &Dependency{Name: name, locations: make(set)}
}

// Locations returns the paths that mention the dependency, sorted.
func (d *Dependency) Locations() []string {
	return d.locations.sorted()
}

// Base is the last path element of the dependency name, used to match
// imports such as "Kit/Widget.h" against the file Source "Widget.h".
func (d *Dependency) Base() string {
	return path.Base(d.Name)
}

// underDir reports whether p equals dir or lies below it.
func underDir(p, dir string) bool {
	dir = strings.TrimSuffix(dir, "/")
	return p == dir || strings.HasPrefix(p, dir+"/")
}
