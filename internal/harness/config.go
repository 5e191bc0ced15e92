// Package harness provides test harness infrastructure for validating the
// analyzer against fixture projects.
package harness

// DefaultProperties is the properties file used when a configuration names none.
const DefaultProperties = "local.properties"

// ProjectDir is the directory inside a test case that holds the project tree.
const ProjectDir = "project"

// Configuration is one analyzer run over a test case project.
type Configuration struct {
	// Name is a descriptive name for this configuration.
	Name string `yaml:"name"`

	// Properties is the properties file, relative to the test case directory.
	// root.dir is always overridden with the case's project directory.
	Properties string `yaml:"properties,omitempty"`

	// ExpectedUnused lists the sources expected to be reported as unused.
	ExpectedUnused []ExpectedSource `yaml:"expected_unused"`

	// ExpectedSuppressed lists unused sources silenced by a directive.
	ExpectedSuppressed []ExpectedSource `yaml:"expected_suppressed"`

	// ExpectedUnusedDirs lists target directories without a usable source.
	ExpectedUnusedDirs []string `yaml:"expected_unused_dirs"`

	// ExpectedUnusedDependencies lists internal names nothing resolved.
	ExpectedUnusedDependencies []string `yaml:"expected_unused_dependencies"`

	// ExpectedUnusedImages lists image set names no file mentions.
	ExpectedUnusedImages []string `yaml:"expected_unused_images"`

	// ExpectedErrors lists any expected error messages for this configuration.
	ExpectedErrors []string `yaml:"expected_errors"`
}

// ExpectedSource is a source expected in a report.
type ExpectedSource struct {
	// Name is the file base name or type name.
	Name string `yaml:"name"`

	// Kind is "file" or "type".
	Kind string `yaml:"kind"`

	// Reason describes why the source is expected.
	Reason string `yaml:"reason"`

	// File is an optional path, relative to the project root, that must be
	// among the source's files.
	File string `yaml:"file,omitempty"`
}

// key identifies a source within one report.
func (e ExpectedSource) key() string {
	return e.Kind + ":" + e.Name
}
