package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultConfigFile is read from the working directory when no path is given.
const DefaultConfigFile = "local.properties"

// configType is the config file format.
const configType = "properties"

// envPrefix is the environment variable prefix, e.g. UNUSEDSRC_ROOT_DIR.
const envPrefix = "UNUSEDSRC"

// List separators.
const (
	pathSeparator = ":"
	nameSeparator = ","
)

// wildcardSuffix expands a target entry to its immediate subdirectories.
const wildcardSuffix = "/*"

// Config keys.
const (
	KeyMode             = "search.mode"
	KeyRoot             = "root.dir"
	KeyTargets          = "target.dirs"
	KeyExcludeDirs      = "exclude.dirs"
	KeyExcludeImports   = "exclude.imports"
	KeyExcludeSwift     = "exclude.swift"
	KeySourceExtensions = "source.extensions"
	KeySkipVendor       = "skip.vendor"
	KeyEntryPoints      = "detect.entrypoints"
	KeyWorkers          = "workers"
)

// FlagKeys maps command-line flag names to the config keys they override.
var FlagKeys = map[string]string{
	"root":        KeyRoot,
	"targets":     KeyTargets,
	"mode":        KeyMode,
	"skip-vendor": KeySkipVendor,
	"workers":     KeyWorkers,
}

// LoadConfig loads configuration from file, env vars, flags and defaults.
// If configPath is empty, DefaultConfigFile is used when it exists; a
// missing default file is not an error. Flags in FlagKeys override the file
// when they were set on the command line; flags may be nil.
func LoadConfig(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	applyDefaults(v)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			configPath = DefaultConfigFile
		}
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configPath, err)
		}
	}

	if flags != nil {
		for name, key := range FlagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	cfg, err := fromViper(v)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault(KeyMode, string(ModeCode))
	v.SetDefault(KeySourceExtensions, "h,m,mm,swift")
	v.SetDefault(KeySkipVendor, false)
	v.SetDefault(KeyEntryPoints, true)
	v.SetDefault(KeyWorkers, runtime.NumCPU())
}

func fromViper(v *viper.Viper) (*Config, error) {
	mode, err := ParseMode(v.GetString(KeyMode))
	if err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	root := strings.TrimSpace(v.GetString(KeyRoot))
	if root == "" {
		return nil, fmt.Errorf("validate config: %w", ErrNoRoot)
	}
	root = filepath.Clean(root)

	targets, err := ExpandTargets(root, SplitList(v.GetString(KeyTargets), pathSeparator))
	if err != nil {
		return nil, err
	}

	exts := SplitList(strings.ToLower(v.GetString(KeySourceExtensions)), nameSeparator)
	for i, e := range exts {
		exts[i] = strings.TrimPrefix(e, ".")
	}

	workers := v.GetInt(KeyWorkers)
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &Config{
		Mode:             mode,
		RootPath:         root,
		TargetPaths:      targets,
		ExcludePaths:     cleanPaths(SplitList(v.GetString(KeyExcludeDirs), pathSeparator)),
		ExcludeImports:   SplitList(v.GetString(KeyExcludeImports), nameSeparator),
		ExcludeSwift:     SplitList(v.GetString(KeyExcludeSwift), nameSeparator),
		SourceExtensions: exts,
		SkipVendor:       v.GetBool(KeySkipVendor),
		EntryPoints:      v.GetBool(KeyEntryPoints),
		Workers:          workers,
	}, nil
}

// SplitList splits s on sep, trims every entry and drops blanks.
func SplitList(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ExpandTargets resolves target entries relative to root. An entry ending in
// "/*" becomes every immediate subdirectory of its parent; a parent that does
// not exist yields nothing. The result is sorted and free of duplicates.
func ExpandTargets(root string, entries []string) ([]string, error) {
	var out []string
	for _, entry := range entries {
		parent, ok := strings.CutSuffix(entry, wildcardSuffix)
		if !ok {
			out = append(out, cleanPath(entry))
			continue
		}

		parent = cleanPath(parent)
		dirEntries, err := os.ReadDir(filepath.Join(root, filepath.FromSlash(parent)))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("expand target %s: %w", entry, err)
		}
		for _, de := range dirEntries {
			if de.IsDir() {
				out = append(out, path.Join(parent, de.Name()))
			}
		}
	}

	slices.Sort(out)
	return slices.Compact(out), nil
}

func cleanPaths(ps []string) []string {
	for i, p := range ps {
		ps[i] = cleanPath(p)
	}
	return ps
}

// cleanPath normalizes a root-relative path to forward slashes without a
// leading "./" or trailing slash.
func cleanPath(p string) string {
	p = path.Clean(filepath.ToSlash(p))
	return strings.TrimPrefix(p, "./")
}
