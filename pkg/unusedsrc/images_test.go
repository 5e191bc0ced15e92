package unusedsrc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestImageAnalyzer_Analyze(t *testing.T) {
	root := writeTree(t, map[string]string{
		"Assets/Images.xcassets/Contents.json":                "{}",
		"Assets/Images.xcassets/Logo.imageset/Contents.json":  "{}",
		"Assets/Images.xcassets/Logo.imageset/logo.png":       "\x89PNG\x00\x00",
		"Assets/Images.xcassets/Logo.imageset/logo@2x.png":    "\x89PNG\x00\x00",
		"Assets/Images.xcassets/Unused.imageset/Contents.json": "{}",
		"App/View.swift":   "let logo = UIImage(named: \"Logo\")\n    let again = UIImage(named: \"Logo\")\nlet logo = UIImage(named: \"Logo\")\n",
		"App/Other.m":      "[UIImage imageNamed:@\"Logo\"];\nNSString *s = @\"Logos\";\n",
		"App/Icon.png":     "\x00\"Unused\"",
		"Vendor/Lib.swift": "UIImage(named: \"Unused\")",
	})

	a := NewImageAnalyzer(NewOSFileSource(root, false), AnalyzerOptions{
		Targets:  []string{"Assets"},
		Excludes: []string{"Vendor"},
	})
	result, err := a.Analyze(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Used, 1)
	logo := result.Used[0]
	require.Equal(t, "Logo", logo.Name)
	require.Equal(t, "Images.xcassets/Logo.imageset", logo.Path)
	require.Equal(t, "Assets", logo.Target)
	require.Equal(t, []ImageUsage{
		{File: "App/Other.m", Line: `[UIImage imageNamed:@"Logo"];`},
		{File: "App/View.swift", Line: `let logo = UIImage(named: "Logo")`},
		{File: "App/View.swift", Line: `let again = UIImage(named: "Logo")`},
	}, logo.Usages)

	require.Len(t, result.Unused, 1)
	require.Equal(t, "Unused", result.Unused[0].Name)
	require.Equal(t, "Images.xcassets/Unused.imageset", result.Unused[0].Path)
	require.True(t, result.HasFindings())

	require.Equal(t, 2, result.Stats.Sources)
	require.Equal(t, 1, result.Stats.BinaryFiles)
	require.Equal(t, 2, result.Stats.ProjectFiles)
}

func TestImageAnalyzer_NoImages(t *testing.T) {
	root := writeTree(t, map[string]string{
		"Assets/readme.txt": "no images",
		"App/main.m":        "int main(void) { return 0; }\n",
	})

	result, err := NewImageAnalyzer(NewOSFileSource(root, false), AnalyzerOptions{Targets: []string{"Assets"}}).
		Analyze(context.Background())
	require.NoError(t, err)
	require.Empty(t, result.Used)
	require.Empty(t, result.Unused)
	require.False(t, result.HasFindings())
}

func TestImageAnalyzer_NoTargets(t *testing.T) {
	_, err := NewImageAnalyzer(NewOSFileSource(t.TempDir(), false), AnalyzerOptions{}).Analyze(context.Background())
	require.Error(t, err)
}
