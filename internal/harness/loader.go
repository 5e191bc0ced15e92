package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	yaml "gopkg.in/yaml.v3"

	"github.com/stretchr/testify/require"

	"github.com/715d/unusedsrc/internal/config"
)

// LoadConfig reads a configuration's properties file with root.dir pointed at
// the test case project.
func LoadConfig(t *testing.T, caseDir string, cfg Configuration) (*config.Config, error) {
	t.Helper()

	props := cfg.Properties
	if props == "" {
		props = DefaultProperties
	}

	flags := pflag.NewFlagSet("harness", pflag.ContinueOnError)
	flags.String("root", "", "")
	require.NoError(t, flags.Set("root", filepath.Join(caseDir, ProjectDir)))

	return config.LoadConfig(filepath.Join(caseDir, props), flags)
}

// LoadTestCase loads a test case from a directory with a specified testdata root.
func LoadTestCase(t *testing.T, dir, root string) *TestCase {
	t.Helper()
	yamlPath := filepath.Join(dir, "expected.yaml")

	tc := &TestCase{}
	data, err := os.ReadFile(yamlPath)
	require.NoError(t, err)
	err = yaml.Unmarshal(data, tc)
	require.NoError(t, err)

	// Use relative path from testdata root if provided.
	if root != "" {
		relPath, err := filepath.Rel(root, dir)
		if err != nil {
			tc.Dir = filepath.Base(dir)
		} else {
			tc.Dir = relPath
		}
		return tc
	}

	tc.Dir = filepath.Base(dir)
	return tc
}
