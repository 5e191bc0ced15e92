package graph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func names(sources []*Source) []string {
	out := make([]string, 0, len(sources))
	for _, s := range sources {
		out = append(out, s.Kind.String()+":"+s.Name)
	}
	return out
}

func depNames(deps []*Dependency) []string {
	out := make([]string, 0, len(deps))
	for _, d := range deps {
		out = append(out, d.Name)
	}
	return out
}

func TestPartition(t *testing.T) {
	g := New()
	g.AddFile("Feature/X.h")
	g.AddFile("Feature/X.m")
	x := g.AddType("X", "Feature/X.h")
	g.AddFile("Feature/Stale.h")
	g.AddType("Stale", "Feature/Stale.h")
	g.AddFile("Legacy/Old.h")
	g.AddType("Old", "Legacy/Old.h")
	g.AddFile("Legacy/Older.m")
	g.AddDependency("X.h", "Feature/X.m")
	g.AddDependency("UIKit/UIKit.h", "Feature/X.h")
	g.AddDependency("Foundation/Foundation.h", "Feature/X.h")
	g.LinkCompanions()

	g.MarkUsed(x, "App/main.m")
	require.True(t, g.Consume("UIKit/UIKit.h", "App/main.m"))

	p := g.Partition([]string{"Feature", "Legacy"})

	require.Equal(t, []string{"file:X.h", "file:X.m", "type:X"}, names(p.Usable))
	require.Equal(t, []string{"Legacy"}, p.UnusedDirs)
	require.Equal(t, []string{"file:Stale.h", "type:Stale"}, names(p.Unused),
		"sources inside unused dirs are reported only as the dir")
	require.Empty(t, p.Suppressed)
	require.Equal(t, []string{"Foundation/Foundation.h"}, depNames(p.UnusedDeps))
	require.Equal(t, []string{"UIKit/UIKit.h"}, depNames(p.ExternalDeps))
}

func TestPartition_Suppressed(t *testing.T) {
	g := New()
	s := g.AddFile("Kit/Debug.h")
	s.IsSuppressed = true
	s.SuppressReason = "used from a script"
	g.AddFile("Kit/Unused.h")

	p := g.Partition([]string{"Kit"})

	require.Empty(t, p.UnusedDirs, "a suppressed source keeps its dir alive")
	require.Equal(t, []string{"file:Debug.h"}, names(p.Suppressed))
	require.Equal(t, []string{"file:Unused.h"}, names(p.Unused))
}

func TestPartition_NoFindings(t *testing.T) {
	g := New()
	s := g.AddFile("Kit/Used.h")
	g.MarkUsed(s, "App/main.m")

	p := g.Partition([]string{"Kit"})
	require.Empty(t, p.Unused)
	require.Empty(t, p.UnusedDeps)
	require.Empty(t, p.UnusedDirs)
}

func TestPartition_DirPrefixIsNotParent(t *testing.T) {
	g := New()
	s := g.AddFile("KitExtras/Used.h")
	g.MarkUsed(s, "App/main.m")

	p := g.Partition([]string{"Kit", "KitExtras"})
	require.Equal(t, []string{"Kit"}, p.UnusedDirs)
}
