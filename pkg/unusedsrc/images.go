package unusedsrc

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	goruntime "runtime"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// imageSuffix marks an asset catalog image set directory.
const imageSuffix = ".imageset"

// maxImageLine bounds a single line in the image usage pass.
const maxImageLine = 4 << 20

// ImageAnalyzer finds asset catalog images that no project file mentions by
// their quoted name.
type ImageAnalyzer struct {
	source FileSource
	opts   AnalyzerOptions
}

// NewImageAnalyzer creates an image analyzer. Only Targets, Excludes and
// Workers of opts are used.
func NewImageAnalyzer(source FileSource, opts AnalyzerOptions) *ImageAnalyzer {
	if opts.Workers <= 0 {
		opts.Workers = goruntime.NumCPU()
	}
	return &ImageAnalyzer{source: source, opts: opts}
}

// imageSet is an image registered from a target.
type imageSet struct {
	Image
	dir    string
	quoted string
}

// Analyze registers every image set in the targets and scans the rest of the
// project for lines containing an image name in double quotes.
func (a *ImageAnalyzer) Analyze(ctx context.Context) (*ImageResult, error) {
	if len(a.opts.Targets) == 0 {
		return nil, fmt.Errorf("no target directories provided")
	}

	start := time.Now()
	var stats Stats

	images := a.collectImages(&stats)
	slog.Info("images found", "count", humanize.Comma(int64(len(images))))

	excludes := append(append([]string(nil), a.opts.Excludes...), a.opts.Targets...)
	files, err := a.source.ListFiles("", excludes)
	if err != nil {
		return nil, fmt.Errorf("list project files: %w", err)
	}
	slog.Info("processing root", "files", humanize.Comma(int64(len(files))))

	scans, err := forEachFile(ctx, a.opts.Workers, files, func(p string) *imageScan {
		return a.scanFile(images, p)
	})
	if err != nil {
		return nil, fmt.Errorf("image usage pass: %w", err)
	}

	// Files are sorted, so usages stay grouped by file in path order.
	for _, s := range scans {
		stats.BytesRead += s.bytes
		switch {
		case s.err != nil:
			slog.Warn("skipping file", "path", s.path, "error", s.err)
			stats.SkippedFiles++
			continue
		case s.binary:
			stats.BinaryFiles++
			continue
		}
		stats.ProjectFiles++
		for _, hit := range s.hits {
			img := images[hit.image]
			if !slices.Contains(img.Usages, hit.usage) {
				img.Usages = append(img.Usages, hit.usage)
			}
		}
	}

	result := &ImageResult{}
	for _, img := range images {
		if len(img.Usages) > 0 {
			result.Used = append(result.Used, img.Image)
		} else {
			result.Unused = append(result.Unused, img.Image)
		}
	}
	stats.Sources = len(images)
	stats.Duration = time.Since(start)
	result.Stats = stats
	return result, nil
}

// collectImages registers one image per image set directory found in the
// targets, sorted by directory.
func (a *ImageAnalyzer) collectImages(stats *Stats) []*imageSet {
	seen := make(map[string]struct{})
	var images []*imageSet
	for _, target := range a.opts.Targets {
		files, err := a.source.ListFiles(target, a.opts.Excludes)
		if err != nil {
			slog.Warn("listing target", "dir", target, "error", err)
			continue
		}
		slog.Info("processing target", "dir", target, "files", humanize.Comma(int64(len(files))))
		stats.TargetFiles += len(files)

		for _, f := range files {
			dir := path.Dir(f)
			if !strings.HasSuffix(dir, imageSuffix) {
				continue
			}
			if _, ok := seen[dir]; ok {
				continue
			}
			seen[dir] = struct{}{}

			name := strings.TrimSuffix(path.Base(dir), imageSuffix)
			images = append(images, &imageSet{
				Image: Image{
					Name:   name,
					Path:   relativeTo(dir, target),
					Target: target,
				},
				dir:    dir,
				quoted: `"` + name + `"`,
			})
		}
	}

	slices.SortFunc(images, func(x, y *imageSet) int {
		return strings.Compare(x.dir, y.dir)
	})
	return images
}

type imageHit struct {
	image int
	usage ImageUsage
}

type imageScan struct {
	path   string
	hits   []imageHit
	bytes  int64
	binary bool
	err    error
}

func (a *ImageAnalyzer) scanFile(images []*imageSet, relPath string) *imageScan {
	s := &imageScan{path: relPath}
	s.bytes, s.binary, s.err = readFile(a.source, relPath, true, func(r io.Reader) error {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxImageLine)
		for scanner.Scan() {
			line := scanner.Text()
			if !strings.Contains(line, `"`) {
				continue
			}
			for i, img := range images {
				if strings.Contains(line, img.quoted) {
					s.hits = append(s.hits, imageHit{
						image: i,
						usage: ImageUsage{File: relPath, Line: strings.TrimSpace(line)},
					})
				}
			}
		}
		return scanner.Err()
	})
	return s
}
