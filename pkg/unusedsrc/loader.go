package unusedsrc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/src-d/enry/v2"
)

//go:generate mockgen -source=loader.go -destination=mocks/loader.gen.go -package=mocks

// FileSource lists and opens project files. Paths are relative to the project
// root and use forward slashes.
type FileSource interface {
	// ListFiles returns every file under dir, recursively and sorted. An empty
	// dir means the whole project. Directories whose path equals an entry of
	// excludeDirs are skipped with everything below them.
	ListFiles(dir string, excludeDirs []string) ([]string, error)

	// Open opens a file for reading.
	Open(relPath string) (io.ReadCloser, error)
}

// excludeFiles are never visited. A leading "*" matches a suffix.
var excludeFiles = []string{".DS_Store", "*.strings"}

// OSFileSource is a FileSource backed by a directory on disk.
type OSFileSource struct {
	// Root is the project directory.
	Root string

	// SkipVendor skips vendored paths such as Pods/ and Carthage/.
	SkipVendor bool
}

// NewOSFileSource creates a FileSource rooted at root.
func NewOSFileSource(root string, skipVendor bool) *OSFileSource {
	return &OSFileSource{Root: root, SkipVendor: skipVendor}
}

// ListFiles implements FileSource.
func (o *OSFileSource) ListFiles(dir string, excludeDirs []string) ([]string, error) {
	start := filepath.Join(o.Root, filepath.FromSlash(dir))

	var files []string
	err := filepath.WalkDir(start, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(o.Root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel != "." && slices.Contains(excludeDirs, rel) {
				return filepath.SkipDir
			}
			if o.SkipVendor && rel != "." && enry.IsVendor(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if isExcludedFile(d.Name()) {
			return nil
		}
		if o.SkipVendor && enry.IsVendor(rel) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", start, err)
	}

	slices.Sort(files)
	return files, nil
}

// Open implements FileSource.
func (o *OSFileSource) Open(relPath string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(o.Root, filepath.FromSlash(relPath)))
}

func isExcludedFile(name string) bool {
	for _, pattern := range excludeFiles {
		if suffix, ok := strings.CutPrefix(pattern, "*"); ok {
			if strings.HasSuffix(name, suffix) {
				return true
			}
			continue
		}
		if name == pattern {
			return true
		}
	}
	return false
}

// sniffLen is how much of a file is inspected for binary content.
const sniffLen = 8000

// countingReader counts the bytes read through it.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// readFile opens relPath and passes its content to fn. With skipBinary set,
// binary files are detected up front and fn is not called. It returns the
// number of bytes read and whether the file was skipped as binary.
func readFile(src FileSource, relPath string, skipBinary bool, fn func(io.Reader) error) (int64, bool, error) {
	rc, err := src.Open(relPath)
	if err != nil {
		return 0, false, fmt.Errorf("open %s: %w", relPath, err)
	}
	defer rc.Close()

	cr := &countingReader{r: rc}
	br := bufio.NewReaderSize(cr, sniffLen)

	if skipBinary {
		head, err := br.Peek(sniffLen)
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
			return cr.n, false, fmt.Errorf("read %s: %w", relPath, err)
		}
		if enry.IsBinary(head) {
			return cr.n, true, nil
		}
	}

	if err := fn(br); err != nil {
		return cr.n, false, fmt.Errorf("scan %s: %w", relPath, err)
	}
	return cr.n, false, nil
}

// relativeTo strips dir from a root-relative path.
func relativeTo(p, dir string) string {
	if dir == "" || dir == "." {
		return p
	}
	if rest, ok := strings.CutPrefix(p, strings.TrimSuffix(dir, "/")+"/"); ok {
		return rest
	}
	return p
}

// hasExtension reports whether p has one of exts, given without the dot.
func hasExtension(p string, exts []string) bool {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(p), "."))
	return ext != "" && slices.Contains(exts, ext)
}
