package unusedsrc

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOSFileSource_ListFiles(t *testing.T) {
	root := writeTree(t, map[string]string{
		"App/main.m":                       "",
		"App/.DS_Store":                    "",
		"App/en.lproj/Localizable.strings": "",
		"App/Sub/View.swift":               "",
		"Kit/Widget.h":                     "",
		"Kit/Internal/Private.h":           "",
		"Pods/Alamofire/Source.swift":      "",
		"Carthage/Checkouts/Kit/Kit.h":     "",
	})

	tests := []struct {
		name       string
		dir        string
		exclude    []string
		skipVendor bool
		want       []string
	}{
		{
			name: "whole_project",
			want: []string{
				"App/Sub/View.swift",
				"App/main.m",
				"Carthage/Checkouts/Kit/Kit.h",
				"Kit/Internal/Private.h",
				"Kit/Widget.h",
				"Pods/Alamofire/Source.swift",
			},
		},
		{
			name: "single_dir",
			dir:  "Kit",
			want: []string{"Kit/Internal/Private.h", "Kit/Widget.h"},
		},
		{
			name:    "excluded_dirs_exact",
			exclude: []string{"Kit/Internal", "App", "Pod"},
			want: []string{
				"Carthage/Checkouts/Kit/Kit.h",
				"Kit/Widget.h",
				"Pods/Alamofire/Source.swift",
			},
		},
		{
			name:       "skip_vendor",
			skipVendor: true,
			want: []string{
				"App/Sub/View.swift",
				"App/main.m",
				"Kit/Internal/Private.h",
				"Kit/Widget.h",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewOSFileSource(root, tt.skipVendor).ListFiles(tt.dir, tt.exclude)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestOSFileSource_MissingDir(t *testing.T) {
	_, err := NewOSFileSource(t.TempDir(), false).ListFiles("Nope", nil)
	require.Error(t, err)
}

func TestOSFileSource_Open(t *testing.T) {
	root := writeTree(t, map[string]string{"Kit/Widget.h": "@interface Widget\n"})

	rc, err := NewOSFileSource(root, false).Open("Kit/Widget.h")
	require.NoError(t, err)
	defer rc.Close()

	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, "@interface Widget\n", string(content))
}

func TestReadFile(t *testing.T) {
	root := writeTree(t, map[string]string{
		"text.m":   "int a;\n",
		"blob.png": "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR",
		"big.m":    strings.Repeat("a", sniffLen*2),
	})
	src := NewOSFileSource(root, false)

	t.Run("text", func(t *testing.T) {
		var got string
		n, binary, err := readFile(src, "text.m", true, func(r io.Reader) error {
			b, err := io.ReadAll(r)
			got = string(b)
			return err
		})
		require.NoError(t, err)
		require.False(t, binary)
		require.Equal(t, int64(7), n)
		require.Equal(t, "int a;\n", got)
	})

	t.Run("binary", func(t *testing.T) {
		called := false
		_, binary, err := readFile(src, "blob.png", true, func(io.Reader) error {
			called = true
			return nil
		})
		require.NoError(t, err)
		require.True(t, binary)
		require.False(t, called)
	})

	t.Run("larger_than_sniff", func(t *testing.T) {
		n, binary, err := readFile(src, "big.m", true, func(r io.Reader) error {
			_, err := io.Copy(io.Discard, r)
			return err
		})
		require.NoError(t, err)
		require.False(t, binary)
		require.Equal(t, int64(sniffLen*2), n)
	})

	t.Run("missing", func(t *testing.T) {
		_, _, err := readFile(src, "absent.m", true, func(io.Reader) error { return nil })
		require.ErrorContains(t, err, "open absent.m")
	})
}

func TestIsExcludedFile(t *testing.T) {
	require.True(t, isExcludedFile(".DS_Store"))
	require.True(t, isExcludedFile("Localizable.strings"))
	require.False(t, isExcludedFile("strings.h"))
	require.False(t, isExcludedFile("DS_Store"))
}

func TestRelativeTo(t *testing.T) {
	require.Equal(t, "Icons/Logo.imageset", relativeTo("Assets/Icons/Logo.imageset", "Assets"))
	require.Equal(t, "Assets/Logo.imageset", relativeTo("Assets/Logo.imageset", ""))
	require.Equal(t, "Other/Logo.imageset", relativeTo("Other/Logo.imageset", "Assets"))
}
