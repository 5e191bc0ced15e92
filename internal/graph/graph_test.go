package graph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGraph_AddFileAndType(t *testing.T) {
	g := New()
	g.AddFile("Feature/X.h")
	g.AddFile("Feature/X.m")
	x := g.AddType("X", "Feature/X.h")
	g.AddType("X", "Feature/X.m")

	require.Equal(t, []string{"Feature/X.h", "Feature/X.m"}, x.Files())
	require.Equal(t, []string{"X.h"}, x.Authorities(), "only the header is authoritative")

	header, ok := g.File("X.h")
	require.True(t, ok)
	require.True(t, header.Known())
	require.False(t, header.Usable())

	_, ok = g.File("X")
	require.False(t, ok, "type and file names live in separate collections")
}

func TestGraph_SameFileInSeveralDirs(t *testing.T) {
	g := New()
	g.AddFile("A/Utils.h")
	s := g.AddFile("B/Utils.h")
	require.Equal(t, []string{"A/Utils.h", "B/Utils.h"}, s.Files())
	require.Len(t, g.Sources(), 1)
}

func TestGraph_MarkUsedPropagation(t *testing.T) {
	g := New()
	g.AddFile("F/X.h")
	g.AddFile("F/X.m")
	x := g.AddType("X", "F/X.h")
	delegate := g.AddType("XDelegate", "F/X.h")
	g.LinkCompanions()

	header, _ := g.File("X.h")
	impl, _ := g.File("X.m")

	// Importing the header marks its types and its implementation.
	require.True(t, g.MarkUsed(header, "App/a.m"))
	require.Equal(t, []string{"App/a.m"}, x.Usages())
	require.Equal(t, []string{"App/a.m"}, delegate.Usages())
	require.Equal(t, []string{"App/a.m"}, impl.Usages())
	require.False(t, g.MarkUsed(header, "App/a.m"), "second mark is a no-op")

	// Naming a type marks its header but not the header's other types.
	require.True(t, g.MarkUsed(x, "App/b.m"))
	require.Equal(t, []string{"App/a.m", "App/b.m"}, header.Usages())
	require.Equal(t, []string{"App/a.m", "App/b.m"}, impl.Usages())
	require.Equal(t, []string{"App/a.m"}, delegate.Usages())
}

func TestGraph_ConsumeAndShadow(t *testing.T) {
	g := New()
	g.AddFile("F/X.h")
	g.AddType("Widget", "F/X.h")
	g.AddDependency("X.h", "F/X.m")
	g.AddDependency("Kit/X.h", "F/Y.m")
	g.AddDependency("Widget", "F/Y.h")
	ext := g.AddDependency("UIKit/UIKit.h", "F/X.h")

	require.False(t, g.Consume("Unknown.h", "App/main.m"))
	require.True(t, g.Consume("UIKit/UIKit.h", "App/main.m"))
	require.Len(t, g.External(), 1)
	require.Equal(t, []string{"App/main.m"}, g.External()[0].Locations())
	require.Equal(t, []string{"F/X.h"}, ext.Locations(), "target locations are kept apart")

	for _, d := range g.Dependencies() {
		switch d.Name {
		case "X.h", "Kit/X.h", "Widget":
			require.True(t, g.Shadowed(d), d.Name)
		default:
			require.False(t, g.Shadowed(d), d.Name)
		}
	}
}

func TestGraph_ResolveImport(t *testing.T) {
	g := New()
	g.AddFile("Feature/X.h")

	s, ok := g.ResolveImport("Feature/X.h")
	require.True(t, ok)
	require.Equal(t, "X.h", s.Name)

	_, ok = g.ResolveImport("<Y.h>")
	require.False(t, ok)
}

func TestGraph_MatchLine(t *testing.T) {
	g := New()
	g.AddFile("F/Widget.h")
	g.AddType("Widget", "F/Widget.h")
	g.AddType("Gadget", "F/Widget.h")

	matched := g.MatchLine("[[Widget alloc] initWithGadget:g];", g.Sources())
	require.Len(t, matched, 1)
	require.Equal(t, "Widget", matched[0].Name)
	require.Equal(t, KindType, matched[0].Kind)
}

func TestGraph_FileNeverUsesItself(t *testing.T) {
	g := New()
	header := g.AddFile("F/X.h")
	impl := g.AddFile("F/X.m")
	x := g.AddType("X", "F/X.h")
	g.LinkCompanions()

	require.True(t, g.MarkUsed(header, "F/X.m"))
	require.Equal(t, []string{"F/X.m"}, header.Usages())
	require.Equal(t, []string{"F/X.m"}, x.Usages())
	require.Empty(t, impl.Usages())
}
