package unusedsrc

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	goruntime "runtime"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/715d/unusedsrc/internal/graph"
	"github.com/715d/unusedsrc/pkg/lexer"
	"github.com/715d/unusedsrc/pkg/runtime"
	"github.com/715d/unusedsrc/pkg/suppress"
)

// DefaultExtensions are the source file extensions scanned for definitions.
var DefaultExtensions = []string{"h", "m", "mm", "swift"}

// AnalyzerOptions holds configuration options for the analyzer.
type AnalyzerOptions struct {
	// Targets are the project's own directories, relative to the root.
	Targets []string

	// Excludes are directories skipped by every pass.
	Excludes []string

	// ExcludeImports are import paths never tracked.
	ExcludeImports []string

	// ExcludeSwift are Swift identifier patterns ignored by the bare
	// identifier heuristic, exact or "Prefix*".
	ExcludeSwift []string

	// Extensions qualify target files for the definition pass, without the dot.
	Extensions []string

	// EntryPoints seeds runtime entry points as used.
	EntryPoints bool

	// Workers bounds concurrent file scans. Zero means NumCPU.
	Workers int

	// MaxClosurePasses bounds closure resolution. Zero derives it from the graph.
	MaxClosurePasses int
}

// Analyzer finds unused sources and dependencies in two passes: a definition
// pass over the targets and a usage pass over the rest of the project,
// followed by closure resolution.
type Analyzer struct {
	source FileSource
	opts   AnalyzerOptions

	swiftExclude *lexer.Patterns

	// Scanners per language, indexed by lexer.Language.
	defScanners   [2]*lexer.Scanner
	usageScanners [2]*lexer.Scanner
}

// NewAnalyzer creates a new analyzer reading files from source.
func NewAnalyzer(source FileSource, opts AnalyzerOptions) *Analyzer {
	if opts.Workers <= 0 {
		opts.Workers = goruntime.NumCPU()
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = DefaultExtensions
	}

	usageIgnored := lexer.Kinds(lexer.KindDefinition, lexer.KindLangDef)
	return &Analyzer{
		source:       source,
		opts:         opts,
		swiftExclude: lexer.NewPatterns(opts.ExcludeSwift),
		defScanners: [2]*lexer.Scanner{
			lexer.ObjC:  lexer.NewScanner(lexer.ObjC, opts.ExcludeImports, lexer.Kinds(lexer.KindUnclassified)),
			lexer.Swift: lexer.NewScanner(lexer.Swift, opts.ExcludeImports, 0),
		},
		usageScanners: [2]*lexer.Scanner{
			lexer.ObjC:  lexer.NewScanner(lexer.ObjC, opts.ExcludeImports, usageIgnored),
			lexer.Swift: lexer.NewScanner(lexer.Swift, opts.ExcludeImports, usageIgnored),
		},
	}
}

// Analyze runs both passes and closure resolution and partitions the result.
func (a *Analyzer) Analyze(ctx context.Context) (*Result, error) {
	if len(a.opts.Targets) == 0 {
		return nil, fmt.Errorf("no target directories provided")
	}

	start := time.Now()
	var stats Stats
	g := graph.New()

	// Step 1: Definition pass over the targets.
	targetFiles := a.listTargets(&stats)
	defs, err := forEachFile(ctx, a.opts.Workers, targetFiles, a.scanDefinitions)
	if err != nil {
		return nil, fmt.Errorf("definition pass: %w", err)
	}
	a.mergeDefinitions(g, defs, &stats)

	slog.Info("definitions collected",
		"sources", humanize.Comma(int64(len(g.Sources()))),
		"dependencies", humanize.Comma(int64(len(g.Dependencies()))))

	// Step 2: Usage pass over the rest of the project.
	excludes := append(append([]string(nil), a.opts.Excludes...), a.opts.Targets...)
	projectFiles, err := a.source.ListFiles("", excludes)
	if err != nil {
		return nil, fmt.Errorf("list project files: %w", err)
	}
	slog.Info("processing root", "files", humanize.Comma(int64(len(projectFiles))))

	sources := g.Sources()
	uses, err := forEachFile(ctx, a.opts.Workers, projectFiles, func(p string) *usages {
		return a.scanUsages(g, sources, p)
	})
	if err != nil {
		return nil, fmt.Errorf("usage pass: %w", err)
	}
	mergeUsages(g, uses, &stats)
	slog.Debug("usages collected",
		"external", len(g.External()),
		"matchers", g.Matchers().Size())

	// Step 3: Propagate usage through internal imports.
	passes, err := g.Resolve(a.opts.MaxClosurePasses)
	if err != nil {
		return nil, fmt.Errorf("resolve closure: %w", err)
	}
	stats.ClosurePasses = passes

	// Step 4: Partition.
	result := buildResult(g.Partition(a.opts.Targets))
	stats.Sources = len(sources)
	stats.Dependencies = len(g.Dependencies())
	stats.Duration = time.Since(start)
	result.Stats = stats

	slog.Info("analysis complete",
		"usable", len(result.Usable),
		"unused", len(result.Unused),
		"unused_dirs", len(result.UnusedDirs),
		"bytes", humanize.Bytes(uint64(stats.BytesRead)),
		"duration", stats.Duration)

	return result, nil
}

// listTargets returns the qualifying files of every target, without
// duplicates from overlapping targets. Unreadable targets are logged and
// treated as empty.
func (a *Analyzer) listTargets(stats *Stats) []string {
	seen := make(map[string]struct{})
	var files []string
	for _, dir := range a.opts.Targets {
		listed, err := a.source.ListFiles(dir, a.opts.Excludes)
		if err != nil {
			slog.Warn("listing target", "dir", dir, "error", err)
			continue
		}

		n := 0
		for _, p := range listed {
			if !hasExtension(p, a.opts.Extensions) {
				continue
			}
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			files = append(files, p)
			n++
		}
		slog.Info("processing target", "dir", dir, "files", humanize.Comma(int64(n)))
	}
	stats.TargetFiles = len(files)
	return files
}

// typeDef is a type declared in a target file.
type typeDef struct {
	name       string
	line       int
	entry      bool
	suppressed bool
	reason     string
}

// definitions is what the definition pass learns from one file.
type definitions struct {
	path  string
	types []typeDef
	deps  []string

	// entry is set when the file hands control to the runtime.
	entry bool

	suppressed bool
	reason     string

	bytes int64
	err   error
}

func (a *Analyzer) scanDefinitions(relPath string) *definitions {
	defs := &definitions{path: relPath}
	scanner := a.defScanners[lexer.LanguageFor(relPath)]
	checker := suppress.NewChecker()
	pendingEntry := false

	defs.bytes, _, defs.err = readFile(a.source, relPath, false, func(r io.Reader) error {
		return scanner.Scan(r, func(line lexer.Line) {
			checker.Observe(line.Number, line.Raw)

			if a.opts.EntryPoints && line.Code != "" {
				if d := runtime.ParseDirective(line.Code); d.Valid {
					if d.MarksType() {
						pendingEntry = true
					} else {
						defs.entry = true
					}
				}
			}

			if !line.HasToken {
				return
			}
			switch tok := line.Token; tok.Kind {
			case lexer.KindImport:
				defs.deps = append(defs.deps, tok.Text)
			case lexer.KindForward:
				defs.deps = append(defs.deps, lexer.SplitNames(tok.Text)...)
			case lexer.KindDefinition, lexer.KindLangDef:
				defs.types = append(defs.types, typeDef{name: tok.Text, line: line.Number, entry: pendingEntry})
				pendingEntry = false
			case lexer.KindUnclassified:
				// Only Swift files get here; bare type names count as references.
				defs.deps = append(defs.deps, lexer.TypeIdentifiers(tok.Text, a.swiftExclude)...)
			}
		})
	})
	if defs.err != nil {
		return defs
	}

	// Directives apply once the whole file is known.
	for i := range defs.types {
		defs.types[i].suppressed, defs.types[i].reason = checker.IsSuppressed(defs.types[i].line)
	}
	defs.suppressed, defs.reason = checker.FileSuppressed()
	return defs
}

func (a *Analyzer) mergeDefinitions(g *graph.Graph, defs []*definitions, stats *Stats) {
	var entries []*graph.Source
	for _, d := range defs {
		stats.BytesRead += d.bytes
		if d.err != nil {
			slog.Warn("skipping file", "path", d.path, "error", d.err)
			stats.SkippedFiles++
			continue
		}

		file := g.AddFile(d.path)
		if d.suppressed {
			file.IsSuppressed = true
			file.SuppressReason = d.reason
		}
		if d.entry {
			entries = append(entries, file)
		}

		for _, t := range d.types {
			s := g.AddType(t.name, d.path)
			if t.suppressed {
				s.IsSuppressed = true
				s.SuppressReason = t.reason
			}
			if t.entry {
				entries = append(entries, s)
			}
		}

		for _, name := range d.deps {
			g.AddDependency(name, d.path)
		}
	}

	g.LinkCompanions()

	for _, s := range entries {
		s.IsEntryPoint = true
		g.MarkUsed(s, runtime.Location)
		slog.Debug("runtime entry point", "kind", s.Kind, "name", s.Name)
	}
}

// usages is what the usage pass learns from one file.
type usages struct {
	path     string
	imports  []string
	forwards []string
	matched  map[*graph.Source]struct{}

	bytes  int64
	binary bool
	err    error
}

// scanUsages only reads the graph, so it runs concurrently with itself.
func (a *Analyzer) scanUsages(g *graph.Graph, sources []*graph.Source, relPath string) *usages {
	u := &usages{path: relPath, matched: make(map[*graph.Source]struct{})}
	scanner := a.usageScanners[lexer.LanguageFor(relPath)]

	u.bytes, u.binary, u.err = readFile(a.source, relPath, true, func(r io.Reader) error {
		return scanner.Scan(r, func(line lexer.Line) {
			if !line.HasToken {
				return
			}
			switch tok := line.Token; tok.Kind {
			case lexer.KindImport:
				u.imports = append(u.imports, tok.Text)
			case lexer.KindForward:
				u.forwards = append(u.forwards, lexer.SplitNames(tok.Text)...)
			case lexer.KindUnclassified:
				for _, s := range g.MatchLine(tok.Text, sources) {
					u.matched[s] = struct{}{}
				}
			}
		})
	})
	return u
}

func mergeUsages(g *graph.Graph, uses []*usages, stats *Stats) {
	for _, u := range uses {
		stats.BytesRead += u.bytes
		switch {
		case u.err != nil:
			slog.Warn("skipping file", "path", u.path, "error", u.err)
			stats.SkippedFiles++
			continue
		case u.binary:
			stats.BinaryFiles++
			continue
		}
		stats.ProjectFiles++

		for _, name := range u.imports {
			if s, ok := g.ResolveImport(name); ok {
				g.MarkUsed(s, u.path)
				continue
			}
			g.Consume(name, u.path)
		}
		for _, name := range u.forwards {
			if s, ok := g.Type(name); ok {
				g.MarkUsed(s, u.path)
				continue
			}
			g.Consume(name, u.path)
		}
		for s := range u.matched {
			g.MarkUsed(s, u.path)
		}
	}
}

// forEachFile runs fn for every path on at most workers goroutines. Each call
// owns its index of the result slice, which is read only after all calls
// return.
func forEachFile[T any](ctx context.Context, workers int, paths []string, fn func(string) T) ([]T, error) {
	results := make([]T, len(paths))

	wg, ctx := errgroup.WithContext(ctx)
	wg.SetLimit(workers)
	for idx, p := range paths {
		wg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[idx] = fn(p)
			return nil
		})
	}

	if err := wg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func buildResult(p *graph.Partition) *Result {
	r := &Result{UnusedDirs: p.UnusedDirs}

	for _, s := range p.Usable {
		r.Usable = append(r.Usable, UsableSource{
			Name:       s.Name,
			Kind:       s.Kind.String(),
			Files:      s.Files(),
			Usages:     s.Usages(),
			EntryPoint: s.IsEntryPoint,
		})
	}
	for _, s := range p.Unused {
		r.Unused = append(r.Unused, UnusedSource{Name: s.Name, Kind: s.Kind.String(), Files: s.Files()})
	}
	for _, s := range p.Suppressed {
		r.Suppressed = append(r.Suppressed, UnusedSource{
			Name:       s.Name,
			Kind:       s.Kind.String(),
			Files:      s.Files(),
			Suppressed: true,
			Reason:     s.SuppressReason,
		})
	}
	r.UnusedDependencies = dependencyUsages(p.UnusedDeps)
	r.ExternalDependencies = dependencyUsages(p.ExternalDeps)
	return r
}

func dependencyUsages(deps []*graph.Dependency) []DependencyUsage {
	var out []DependencyUsage
	for _, d := range deps {
		out = append(out, DependencyUsage{Name: d.Name, Locations: d.Locations()})
	}
	return out
}
