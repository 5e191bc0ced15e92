package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func writeProperties(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "test.properties")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func mkdirs(t *testing.T, root string, dirs ...string) {
	t.Helper()
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(root, filepath.FromSlash(d)), 0o755))
	}
}

func TestLoadConfig(t *testing.T) {
	root := t.TempDir()
	p := writeProperties(t, `
search.mode=CODE
root.dir=`+root+`
target.dirs=Feature:Lib/Core/
exclude.dirs=Pods:./Build
exclude.imports=UIKit/UIKit.h, Foundation/Foundation.h
exclude.swift=Mock*,,Preview
source.extensions=.h,M,swift
skip.vendor=true
detect.entrypoints=false
workers=3
`)

	cfg, err := LoadConfig(p, nil)
	require.NoError(t, err)

	require.Equal(t, ModeCode, cfg.Mode)
	require.Equal(t, filepath.Clean(root), cfg.RootPath)
	require.Equal(t, []string{"Feature", "Lib/Core"}, cfg.TargetPaths)
	require.Equal(t, []string{"Pods", "Build"}, cfg.ExcludePaths)
	require.Equal(t, []string{"UIKit/UIKit.h", "Foundation/Foundation.h"}, cfg.ExcludeImports)
	require.Equal(t, []string{"Mock*", "Preview"}, cfg.ExcludeSwift)
	require.Equal(t, []string{"h", "m", "swift"}, cfg.SourceExtensions)
	require.True(t, cfg.SkipVendor)
	require.False(t, cfg.EntryPoints)
	require.Equal(t, 3, cfg.Workers)
}

func TestLoadConfig_Defaults(t *testing.T) {
	root := t.TempDir()
	p := writeProperties(t, "root.dir="+root+"\ntarget.dirs=App\n")

	cfg, err := LoadConfig(p, nil)
	require.NoError(t, err)

	require.Equal(t, ModeCode, cfg.Mode)
	require.Equal(t, []string{"h", "m", "mm", "swift"}, cfg.SourceExtensions)
	require.False(t, cfg.SkipVendor)
	require.True(t, cfg.EntryPoints)
	require.Equal(t, runtime.NumCPU(), cfg.Workers)
	require.Empty(t, cfg.ExcludePaths)
}

func TestLoadConfig_Errors(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"missing_root", "target.dirs=App\n", ErrNoRoot},
		{"blank_root", "root.dir=   \ntarget.dirs=App\n", ErrNoRoot},
		{"missing_targets", "root.dir=" + root + "\n", ErrNoTargets},
		{"only_separators", "root.dir=" + root + "\ntarget.dirs=::\n", ErrNoTargets},
		{"wildcard_without_parent", "root.dir=" + root + "\ntarget.dirs=Nope/*\n", ErrNoTargets},
		{"bad_mode", "root.dir=" + root + "\ntarget.dirs=App\nsearch.mode=fonts\n", ErrBadMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeProperties(t, tt.content), nil)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.properties"), nil)
	require.Error(t, err)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	root := t.TempDir()
	p := writeProperties(t, "root.dir=/nowhere\ntarget.dirs=App\n")
	t.Setenv("UNUSEDSRC_ROOT_DIR", root)
	t.Setenv("UNUSEDSRC_SEARCH_MODE", "Images")

	cfg, err := LoadConfig(p, nil)
	require.NoError(t, err)
	require.Equal(t, filepath.Clean(root), cfg.RootPath)
	require.Equal(t, ModeImages, cfg.Mode)
}

func TestLoadConfig_FlagOverride(t *testing.T) {
	root := t.TempDir()
	p := writeProperties(t, "root.dir="+root+"\ntarget.dirs=App\nworkers=2\n")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("root", "", "")
	flags.String("targets", "", "")
	flags.Int("workers", 0, "")
	require.NoError(t, flags.Parse([]string{"--targets", "Feature:Kit"}))

	cfg, err := LoadConfig(p, flags)
	require.NoError(t, err)
	require.Equal(t, filepath.Clean(root), cfg.RootPath, "unset flags keep file values")
	require.Equal(t, []string{"Feature", "Kit"}, cfg.TargetPaths)
	require.Equal(t, 2, cfg.Workers)
}

func TestExpandTargets(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "Modules/Zeta", "Modules/Alpha/Nested", "Shared")
	require.NoError(t, os.WriteFile(filepath.Join(root, "Modules", "README.md"), nil, 0o644))

	tests := []struct {
		name    string
		entries []string
		want    []string
	}{
		{"plain_sorted", []string{"Shared", "App"}, []string{"App", "Shared"}},
		{"wildcard_immediate_subdirs", []string{"Modules/*"}, []string{"Modules/Alpha", "Modules/Zeta"}},
		{"wildcard_missing_parent", []string{"Missing/*"}, nil},
		{"mixed_and_duplicates", []string{"Modules/*", "Modules/Alpha", "Shared/"}, []string{"Modules/Alpha", "Modules/Zeta", "Shared"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandTargets(root, tt.entries)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeCode, false},
		{"CODE", ModeCode, false},
		{" images ", ModeImages, false},
		{"IMAGES", ModeImages, false},
		{"fonts", "", true},
	}

	for _, tt := range tests {
		t.Run("mode_"+tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrBadMode)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestSplitList(t *testing.T) {
	require.Equal(t, []string{"a", "b"}, SplitList(" a :: b :", ":"))
	require.Nil(t, SplitList("", ","))
}
