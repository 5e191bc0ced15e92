// Package main implements the CLI driver for the unusedsrc analyzer.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/715d/unusedsrc/internal/config"
	"github.com/715d/unusedsrc/pkg/unusedsrc"
)

// Options holds the command-line options that do not belong to the analysis
// configuration.
type Options struct {
	ConfigPath string // properties file; local.properties when empty
	Verbose    bool   // enables logging and the detailed report
	JSON       bool   // shorthand for --format json; also switches logs to JSON
	Format     string // text, json or yaml
	Profile    bool   // enables CPU and memory profiling
	NoColor    bool   // disables colored text output
}

const (
	exitUnusedFound = 1
	exitError       = 2
)

var (
	// Set via ldflags during build.
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

var opts Options

func main() {
	var rootCmd = &cobra.Command{
		Use:   "unusedsrc",
		Short: "Find unused Objective-C and Swift sources",
		Long: `unusedsrc reports source files, types and imports of an Objective-C or
Swift project that nothing else in the project refers to.

Settings are read from local.properties in the working directory (or --config),
then from UNUSEDSRC_* environment variables, then from flags.

It reports:
- Target directories without a single used source
- Unused files and types inside the target directories
- Imported or forward-declared names that nothing resolves
- In images mode, asset catalog images never mentioned by name`,
		Example: `  unusedsrc                                   # Use ./local.properties
  unusedsrc --root ~/src/App --targets Feature  # Override root and targets
  unusedsrc --targets 'Modules/*' -v           # Every module, detailed report
  unusedsrc --mode images                      # Unused asset catalog images
  unusedsrc --json > report.json               # JSON output to file`,
		Args:               cobra.NoArgs,
		RunE:               runCommand,
		PersistentPreRunE:  setup,
		PersistentPostRunE: teardown,
		SilenceUsage:       true,
		SilenceErrors:      true,
		Version:            version,
	}

	// Set custom version template to include build info.
	rootCmd.SetVersionTemplate(fmt.Sprintf("unusedsrc version %s\n  commit: %s\n  built:  %s\n", version, gitCommit, buildTime))

	// Define flags.
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "Path to a properties config file (default ./"+config.DefaultConfigFile+")")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable debug logging; also list suppressed sources and used images")
	flags.BoolVar(&opts.JSON, "json", false, "Output in JSON format")
	flags.StringVar(&opts.Format, "format", formatText, "Output format: text, json or yaml")
	flags.BoolVar(&opts.Profile, "profile", false, "Enable CPU and memory profiling (writes cpu.prof and mem.prof to current directory)")
	flags.BoolVar(&opts.NoColor, "no-color", false, "Disable colored output")

	// Flags below override the config file; see config.FlagKeys.
	flags.String("root", "", "Project root directory ("+config.KeyRoot+")")
	flags.String("targets", "", "Colon-separated target directories; 'Dir/*' expands to subdirectories ("+config.KeyTargets+")")
	flags.String("mode", "", "Search mode: code or images ("+config.KeyMode+")")
	flags.Bool("skip-vendor", false, "Skip vendored directories such as Pods/ and Carthage/ ("+config.KeySkipVendor+")")
	flags.Int("workers", 0, "Concurrent file scans, 0 for one per CPU ("+config.KeyWorkers+")")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		_ = teardown(nil, nil)
		if err.Error() != "" {
			fmt.Fprintln(os.Stderr, err.Error())
		}
		var cErr *codedError
		if errors.As(err, &cErr) {
			os.Exit(cErr.code)
		}
		os.Exit(exitError)
	}
}

func runCommand(cmd *cobra.Command, _ []string) error {
	format, err := outputFormat(&opts)
	if err != nil {
		return errWithCode(err, exitError)
	}

	cfg, err := config.LoadConfig(opts.ConfigPath, cmd.Flags())
	if err != nil {
		return errWithCode(fmt.Errorf("load config: %w", err), exitError)
	}

	slog.Info("starting analysis",
		"mode", cfg.Mode,
		"root", cfg.RootPath,
		"targets", cfg.TargetPaths,
		"workers", cfg.Workers)

	source := unusedsrc.NewOSFileSource(cfg.RootPath, cfg.SkipVendor)
	analyzerOpts := analyzerOptions(cfg)
	w := cmd.OutOrStdout()

	var findings bool
	switch cfg.Mode {
	case config.ModeImages:
		result, err := unusedsrc.NewImageAnalyzer(source, analyzerOpts).Analyze(cmd.Context())
		if err != nil {
			return errWithCode(fmt.Errorf("analyze: %w", err), exitError)
		}
		if err := writeImageResult(w, result, format, opts.Verbose); err != nil {
			return errWithCode(fmt.Errorf("format results: %w", err), exitError)
		}
		findings = result.HasFindings()
	default:
		result, err := unusedsrc.NewAnalyzer(source, analyzerOpts).Analyze(cmd.Context())
		if err != nil {
			return errWithCode(fmt.Errorf("analyze: %w", err), exitError)
		}
		if err := writeResult(w, result, format, opts.Verbose); err != nil {
			return errWithCode(fmt.Errorf("format results: %w", err), exitError)
		}
		findings = result.HasFindings()
	}

	if findings {
		return errWithCode(nil, exitUnusedFound)
	}
	return nil
}

func analyzerOptions(cfg *config.Config) unusedsrc.AnalyzerOptions {
	return unusedsrc.AnalyzerOptions{
		Targets:        cfg.TargetPaths,
		Excludes:       cfg.ExcludePaths,
		ExcludeImports: cfg.ExcludeImports,
		ExcludeSwift:   cfg.ExcludeSwift,
		Extensions:     cfg.SourceExtensions,
		EntryPoints:    cfg.EntryPoints,
		Workers:        cfg.Workers,
	}
}

var cpuProfile *os.File

func setup(_ *cobra.Command, _ []string) error {
	// Disable logger unless verbose flag is set.
	slog.SetDefault(slog.New(slog.DiscardHandler))
	if opts.Verbose {
		handlerOpts := &slog.HandlerOptions{Level: slog.LevelDebug}
		var handler slog.Handler = slog.NewTextHandler(os.Stderr, handlerOpts)
		if opts.JSON {
			handler = slog.NewJSONHandler(os.Stderr, handlerOpts)
		}
		slog.SetDefault(slog.New(handler))
	}

	if opts.NoColor {
		color.NoColor = true
	}

	if !opts.Profile {
		return nil
	}

	// Start CPU profiling.
	var err error
	cpuProfile, err = os.Create("cpu.prof")
	if err != nil {
		return fmt.Errorf("creating cpu.prof: %w", err)
	}
	if err := pprof.StartCPUProfile(cpuProfile); err != nil {
		_ = cpuProfile.Close()
		return fmt.Errorf("starting CPU profile: %w", err)
	}
	slog.Info("cpu profiling started", "file", "cpu.prof")
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if !opts.Profile || cpuProfile == nil {
		return nil
	}

	// Stop CPU profiling and close file.
	pprof.StopCPUProfile()
	defer cpuProfile.Close()
	cpuProfile = nil
	slog.Info("cpu profiling stopped", "file", "cpu.prof")

	// Write memory profile.
	memFile, err := os.Create("mem.prof")
	if err != nil {
		return fmt.Errorf("creating mem.prof: %w", err)
	}
	defer memFile.Close()
	runtime.GC() // Get up-to-date statistics
	if err := pprof.WriteHeapProfile(memFile); err != nil {
		return fmt.Errorf("writing memory profile: %w", err)
	}
	slog.Info("memory profiling completed", "file", "mem.prof")
	return nil
}

func errWithCode(err error, code int) error {
	return &codedError{err: err, code: code}
}

type codedError struct {
	err  error
	code int
}

func (e *codedError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return ""
}

func (e *codedError) Unwrap() error {
	return e.err
}
