// Package config loads the analyzer settings from a properties file,
// environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel configuration errors. They abort a run before any traversal.
var (
	ErrNoRoot    = errors.New("no root directory provided")
	ErrNoTargets = errors.New("no target directories provided")
	ErrBadMode   = errors.New("unknown search mode")
)

// Mode selects what the analyzer looks for.
type Mode string

const (
	// ModeCode finds unused source files, types and imports.
	ModeCode Mode = "code"
	// ModeImages finds unused asset catalog images.
	ModeImages Mode = "images"
)

// ParseMode parses a search mode case-insensitively. Blank means ModeCode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeCode:
		return ModeCode, nil
	case ModeImages:
		return ModeImages, nil
	}
	return "", fmt.Errorf("%w: %q", ErrBadMode, s)
}

// Config is the resolved configuration of one run. All paths except RootPath
// are relative to RootPath and use forward slashes.
type Config struct {
	Mode Mode

	// RootPath is the project directory.
	RootPath string

	// TargetPaths are the directories treated as the project's own code,
	// sorted, with wildcard entries expanded.
	TargetPaths []string

	// ExcludePaths are skipped entirely by every pass.
	ExcludePaths []string

	// ExcludeImports are import paths never tracked as Dependencies.
	ExcludeImports []string

	// ExcludeSwift are Swift identifier patterns, exact or "Prefix*".
	ExcludeSwift []string

	// SourceExtensions are the file extensions classified line by line,
	// without the leading dot.
	SourceExtensions []string

	SkipVendor  bool
	EntryPoints bool
	Workers     int
}

// Validate checks the required settings.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.RootPath) == "" {
		return ErrNoRoot
	}
	if len(c.TargetPaths) == 0 {
		return ErrNoTargets
	}
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}
	return nil
}
