// Package unusedsrc finds unused Objective-C and Swift sources, imports and
// asset catalog images in a project tree.
package unusedsrc

import "time"

// UsableSource is a Source with at least one usage.
type UsableSource struct {
	Name       string   `json:"name" yaml:"name"`
	Kind       string   `json:"kind" yaml:"kind"`
	Files      []string `json:"files" yaml:"files"`
	Usages     []string `json:"usages" yaml:"usages"`
	EntryPoint bool     `json:"entry_point,omitempty" yaml:"entry_point,omitempty"`
}

// UnusedSource is a Source that nothing uses.
type UnusedSource struct {
	Name       string   `json:"name" yaml:"name"`
	Kind       string   `json:"kind" yaml:"kind"`
	Files      []string `json:"files" yaml:"files"`
	Suppressed bool     `json:"suppressed,omitempty" yaml:"suppressed,omitempty"`
	Reason     string   `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// DependencyUsage is an imported or forward-declared name and where it occurs.
type DependencyUsage struct {
	Name      string   `json:"name" yaml:"name"`
	Locations []string `json:"locations" yaml:"locations"`
}

// Stats describes the work done by one run.
type Stats struct {
	TargetFiles   int           `json:"target_files" yaml:"target_files"`
	ProjectFiles  int           `json:"project_files" yaml:"project_files"`
	SkippedFiles  int           `json:"skipped_files" yaml:"skipped_files"`
	BinaryFiles   int           `json:"binary_files" yaml:"binary_files"`
	BytesRead     int64         `json:"bytes_read" yaml:"bytes_read"`
	Sources       int           `json:"sources" yaml:"sources"`
	Dependencies  int           `json:"dependencies" yaml:"dependencies"`
	ClosurePasses int           `json:"closure_passes" yaml:"closure_passes"`
	Duration      time.Duration `json:"duration" yaml:"duration"`
}

// Result is the outcome of a code analysis.
type Result struct {
	Usable               []UsableSource    `json:"usable" yaml:"usable"`
	UnusedDirs           []string          `json:"unused_dirs" yaml:"unused_dirs"`
	Unused               []UnusedSource    `json:"unused" yaml:"unused"`
	Suppressed           []UnusedSource    `json:"suppressed" yaml:"suppressed"`
	UnusedDependencies   []DependencyUsage `json:"unused_dependencies" yaml:"unused_dependencies"`
	ExternalDependencies []DependencyUsage `json:"external_dependencies" yaml:"external_dependencies"`
	Stats                Stats             `json:"stats" yaml:"stats"`
}

// HasFindings reports whether anything unused was found.
func (r *Result) HasFindings() bool {
	return len(r.Unused) > 0 || len(r.UnusedDirs) > 0 || len(r.UnusedDependencies) > 0
}

// ImageUsage is one line that mentions an image by its quoted name.
type ImageUsage struct {
	File string `json:"file" yaml:"file"`
	Line string `json:"line" yaml:"line"`
}

// Image is an asset catalog image set.
type Image struct {
	Name string `json:"name" yaml:"name"`
	// Path is the image set directory relative to its target.
	Path   string       `json:"path" yaml:"path"`
	Target string       `json:"target" yaml:"target"`
	Usages []ImageUsage `json:"usages,omitempty" yaml:"usages,omitempty"`
}

// ImageResult is the outcome of an image analysis.
type ImageResult struct {
	Used   []Image `json:"used" yaml:"used"`
	Unused []Image `json:"unused" yaml:"unused"`
	Stats  Stats   `json:"stats" yaml:"stats"`
}

// HasFindings reports whether any image is unused.
func (r *ImageResult) HasFindings() bool {
	return len(r.Unused) > 0
}
