package harness

import (
	"fmt"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/715d/unusedsrc/internal/config"
	"github.com/715d/unusedsrc/pkg/unusedsrc"
)

// TestCase represents a single test scenario.
type TestCase struct {
	// Dir is the directory containing the test case, relative to the testdata root.
	Dir string `yaml:"-"`

	// Description says what the case exercises.
	Description string `yaml:"description"`

	// Configurations defines the analyzer runs to check.
	Configurations []Configuration `yaml:"configurations"`
}

// TestHarness manages test execution.
type TestHarness struct {
	// root is the root directory for test data
	root string
}

// NewHarness creates a new test harness.
func NewHarness(root string) *TestHarness {
	return &TestHarness{root: root}
}

// Run executes a test case with all its configurations.
func (h *TestHarness) Run(t *testing.T, tc *TestCase) *TestResult {
	t.Helper()
	require.NotEmpty(t, tc.Configurations, "test case has no configurations")

	var results []ConfigurationResult
	var allSuccess = true

	// Run each configuration.
	for _, cfg := range tc.Configurations {
		cfgResult := h.runConfiguration(t, tc, cfg)
		results = append(results, *cfgResult)
		if !cfgResult.Success {
			allSuccess = false
		}
	}

	// Create overall result message.
	var resultMsg string
	if allSuccess {
		resultMsg = fmt.Sprintf("All %d configurations passed", len(tc.Configurations))
	} else {
		failedCount := 0
		var msgs []string
		for _, cr := range results {
			if !cr.Success {
				failedCount++
				msgs = append(msgs, fmt.Sprintf("[%s] %s:\n  %s",
					cr.Configuration.Name, cr.Message, strings.Join(cr.Details, "\n  ")))
			}
		}
		resultMsg = fmt.Sprintf("%d/%d configurations failed:\n%s",
			failedCount, len(tc.Configurations), strings.Join(msgs, "\n"))
	}

	return &TestResult{
		TestCase:             tc,
		ConfigurationResults: results,
		Success:              allSuccess,
		Message:              resultMsg,
	}
}

// runConfiguration executes analysis for a single configuration
func (h *TestHarness) runConfiguration(t *testing.T, tc *TestCase, cfg Configuration) *ConfigurationResult {
	t.Helper()
	caseDir := filepath.Join(h.root, tc.Dir)

	settings, err := LoadConfig(t, caseDir, cfg)
	if err == nil {
		var cfgResult *ConfigurationResult
		cfgResult, err = h.analyze(t, settings, cfg)
		if err == nil {
			if len(cfg.ExpectedErrors) > 0 {
				cfgResult.Success = false
				cfgResult.Message = fmt.Sprintf("Expected an error containing one of %q", cfg.ExpectedErrors)
			}
			return cfgResult
		}
	}

	// Check if this error was expected.
	for _, expectedErr := range cfg.ExpectedErrors {
		if strings.Contains(err.Error(), expectedErr) {
			return &ConfigurationResult{
				Configuration: cfg,
				Success:       true,
				Message:       fmt.Sprintf("Got expected error: %v", err),
			}
		}
	}
	require.NoError(t, err)
	return nil
}

func (h *TestHarness) analyze(t *testing.T, settings *config.Config, cfg Configuration) (*ConfigurationResult, error) {
	t.Helper()
	source := unusedsrc.NewOSFileSource(settings.RootPath, settings.SkipVendor)
	opts := unusedsrc.AnalyzerOptions{
		Targets:        settings.TargetPaths,
		Excludes:       settings.ExcludePaths,
		ExcludeImports: settings.ExcludeImports,
		ExcludeSwift:   settings.ExcludeSwift,
		Extensions:     settings.SourceExtensions,
		EntryPoints:    settings.EntryPoints,
		Workers:        settings.Workers,
	}

	cfgResult := &ConfigurationResult{Configuration: cfg}
	if err := validateExpectedSources(cfg); err != nil {
		cfgResult.Message = fmt.Sprintf("Invalid expected.yaml: %v", err)
		cfgResult.Details = []string{err.Error()}
		return cfgResult, nil
	}

	if settings.Mode == config.ModeImages {
		result, err := unusedsrc.NewImageAnalyzer(source, opts).Analyze(t.Context())
		if err != nil {
			return nil, err
		}
		cfgResult.Images = result
		validateImages(cfgResult, cfg, result)
		return cfgResult, nil
	}

	result, err := unusedsrc.NewAnalyzer(source, opts).Analyze(t.Context())
	if err != nil {
		return nil, err
	}
	cfgResult.Result = result
	validateResults(cfgResult, cfg, result)
	return cfgResult, nil
}

// ConfigurationResult represents the result of running a single configuration.
type ConfigurationResult struct {
	// Configuration is the configuration that was run.
	Configuration Configuration

	// Result is the raw result of a code analysis.
	Result *unusedsrc.Result

	// Images is the raw result of an image analysis.
	Images *unusedsrc.ImageResult

	// Success indicates if this configuration passed.
	Success bool

	// Message provides a summary of the result for this configuration.
	Message string

	// Details provides detailed information about failures for this configuration.
	Details []string
}

// TestResult represents the result of running a test case.
type TestResult struct {
	// TestCase is the test case that was run.
	TestCase *TestCase

	// ConfigurationResults contains results for each configuration.
	ConfigurationResults []ConfigurationResult

	// Success indicates if the test passed (all configurations passed)
	Success bool

	// Message provides a summary of the result.
	Message string
}

// validateExpectedSources validates that expected sources have required fields
func validateExpectedSources(cfg Configuration) error {
	for i, exp := range slices.Concat(cfg.ExpectedUnused, cfg.ExpectedSuppressed) {
		if strings.TrimSpace(exp.Name) == "" {
			return fmt.Errorf("expected source at index %d has empty or missing 'name' field", i)
		}
		if exp.Kind != "file" && exp.Kind != "type" {
			return fmt.Errorf("expected source %q has kind %q, want file or type", exp.Name, exp.Kind)
		}
	}
	return nil
}

func validateResults(cfgResult *ConfigurationResult, cfg Configuration, result *unusedsrc.Result) {
	var details []string
	details = append(details, compareSources("unused", cfg.ExpectedUnused, result.Unused)...)
	details = append(details, compareSources("suppressed", cfg.ExpectedSuppressed, result.Suppressed)...)
	details = append(details, compareNames("unused directory", cfg.ExpectedUnusedDirs, result.UnusedDirs)...)

	var deps []string
	for _, d := range result.UnusedDependencies {
		deps = append(deps, d.Name)
	}
	details = append(details, compareNames("unused dependency", cfg.ExpectedUnusedDependencies, deps)...)

	finish(cfgResult, details, len(cfg.ExpectedUnused)+len(cfg.ExpectedUnusedDirs)+len(cfg.ExpectedUnusedDependencies))
}

func validateImages(cfgResult *ConfigurationResult, cfg Configuration, result *unusedsrc.ImageResult) {
	var names []string
	for _, img := range result.Unused {
		names = append(names, img.Name)
	}
	finish(cfgResult, compareNames("unused image", cfg.ExpectedUnusedImages, names), len(cfg.ExpectedUnusedImages))
}

func finish(cfgResult *ConfigurationResult, details []string, expected int) {
	cfgResult.Success = len(details) == 0
	cfgResult.Details = details
	if cfgResult.Success {
		cfgResult.Message = fmt.Sprintf("All %d expected findings reported", expected)
	} else {
		cfgResult.Message = fmt.Sprintf("Test failed: %d mismatches", len(details))
	}
}

func compareSources(label string, expected []ExpectedSource, actual []unusedsrc.UnusedSource) []string {
	expectedMap := make(map[string]ExpectedSource)
	for _, e := range expected {
		expectedMap[e.key()] = e
	}

	actualMap := make(map[string]unusedsrc.UnusedSource)
	for _, a := range actual {
		actualMap[a.Kind+":"+a.Name] = a
	}

	var missing, unexpected, details []string

	// Check for missing expected sources.
	for key, exp := range expectedMap {
		act, found := actualMap[key]
		if !found {
			missing = append(missing, fmt.Sprintf("%s (%s)", key, exp.Reason))
			continue
		}
		if exp.File != "" && !slices.Contains(act.Files, exp.File) {
			details = append(details, fmt.Sprintf(
				"File mismatch for %s: expected %q among %v", key, exp.File, act.Files))
		}
	}

	// Check for unexpected sources.
	for key := range actualMap {
		if _, found := expectedMap[key]; !found {
			unexpected = append(unexpected, key)
		}
	}

	// Sort for consistent output.
	sort.Strings(missing)
	sort.Strings(unexpected)
	sort.Strings(details)

	var out []string
	for _, m := range missing {
		out = append(out, fmt.Sprintf("Should have been reported %s: %s", label, m))
	}
	for _, u := range unexpected {
		out = append(out, fmt.Sprintf("Should not have been reported %s: %s", label, u))
	}
	return append(out, details...)
}

func compareNames(label string, expected, actual []string) []string {
	var out []string
	for _, e := range expected {
		if !slices.Contains(actual, e) {
			out = append(out, fmt.Sprintf("Should have been reported %s: %s", label, e))
		}
	}
	for _, a := range actual {
		if !slices.Contains(expected, a) {
			out = append(out, fmt.Sprintf("Should not have been reported %s: %s", label, a))
		}
	}
	sort.Strings(out)
	return out
}
