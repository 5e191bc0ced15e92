package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/715d/unusedsrc/pkg/unusedsrc"
)

// Output formats.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	headingColor = color.New(color.FgRed, color.Bold)
	usedColor    = color.New(color.FgGreen)
	mutedColor   = color.New(color.FgYellow)
)

// outputFormat resolves the effective format; --json wins over --format.
func outputFormat(o *Options) (string, error) {
	if o.JSON {
		return formatJSON, nil
	}
	switch f := strings.ToLower(o.Format); f {
	case "", formatText:
		return formatText, nil
	case formatJSON, formatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q", o.Format)
	}
}

// envelope wraps a result with run metadata for machine-readable output.
type envelope struct {
	Mode      string `json:"mode" yaml:"mode"`
	Result    any    `json:"result" yaml:"result"`
	Version   string `json:"version" yaml:"version"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
}

func writeEncoded(w io.Writer, format, mode string, result any) error {
	out := envelope{
		Mode:      mode,
		Result:    result,
		Version:   version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling json output: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("marshaling yaml output: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q", format)
}

func writeResult(w io.Writer, result *unusedsrc.Result, format string, verbose bool) error {
	if format != formatText {
		return writeEncoded(w, format, "code", result)
	}

	writeUsable(w, result)

	if len(result.UnusedDirs) > 0 {
		heading(w, "UNUSED DIRECTORIES")
		for _, dir := range result.UnusedDirs {
			fmt.Fprintf(w, "  %s\n", dir)
		}
	}

	if len(result.Unused) > 0 {
		heading(w, "UNUSED SOURCES")
		for _, s := range result.Unused {
			fmt.Fprintf(w, "  %s (%s)\n", s.Name, s.Kind)
			for _, f := range s.Files {
				fmt.Fprintf(w, "    %s\n", f)
			}
		}
	}

	if len(result.Suppressed) > 0 && verbose {
		heading(w, "SUPPRESSED SOURCES")
		for _, s := range result.Suppressed {
			mutedColor.Fprintf(w, "  %s (%s): %s\n", s.Name, s.Kind, s.Reason)
			for _, f := range s.Files {
				fmt.Fprintf(w, "    %s\n", f)
			}
		}
	}

	if len(result.UnusedDependencies) > 0 {
		heading(w, "UNUSED DEPENDENCIES")
		for _, d := range result.UnusedDependencies {
			fmt.Fprintf(w, "  %s was used in:\n", d.Name)
			for _, loc := range d.Locations {
				fmt.Fprintf(w, "    %s\n", loc)
			}
		}
	}

	if len(result.ExternalDependencies) > 0 {
		heading(w, "USABLE DEPENDENCIES")
		for _, d := range result.ExternalDependencies {
			usedColor.Fprintf(w, "  %s", d.Name)
			fmt.Fprintln(w, " used in:")
			for _, loc := range d.Locations {
				fmt.Fprintf(w, "    %s\n", loc)
			}
		}
	}

	if !result.HasFindings() {
		usedColor.Fprintln(w, "No unused sources found")
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, summaryTable(result))
	return nil
}

func writeUsable(w io.Writer, result *unusedsrc.Result) {
	if len(result.Usable) == 0 {
		heading(w, "NO USABLE SOURCES")
		return
	}
	heading(w, "USABLE SOURCES")
	for _, s := range result.Usable {
		usedColor.Fprintf(w, "  %s (%s)", s.Name, s.Kind)
		if s.EntryPoint {
			fmt.Fprint(w, " [entry point]")
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "   Contained in:")
		for _, f := range s.Files {
			fmt.Fprintf(w, "    %s\n", f)
		}
		fmt.Fprintln(w, "   Used in:")
		for _, u := range s.Usages {
			fmt.Fprintf(w, "    %s\n", u)
		}
	}
}

func summaryTable(result *unusedsrc.Result) string {
	st := result.Stats

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Summary", "Count"})
	tbl.AppendRow(table.Row{"Sources", humanize.Comma(int64(st.Sources))})
	tbl.AppendRow(table.Row{"Usable", humanize.Comma(int64(len(result.Usable)))})
	tbl.AppendRow(table.Row{"Unused", humanize.Comma(int64(len(result.Unused)))})
	tbl.AppendRow(table.Row{"Unused directories", humanize.Comma(int64(len(result.UnusedDirs)))})
	tbl.AppendRow(table.Row{"Suppressed", humanize.Comma(int64(len(result.Suppressed)))})
	tbl.AppendRow(table.Row{"Dependencies", humanize.Comma(int64(st.Dependencies))})
	tbl.AppendRow(table.Row{"Unused dependencies", humanize.Comma(int64(len(result.UnusedDependencies)))})
	tbl.AppendSeparator()
	appendStats(tbl, st)
	tbl.AppendRow(table.Row{"Closure passes", humanize.Comma(int64(st.ClosurePasses))})
	tbl.AppendFooter(table.Row{"Duration", st.Duration.Round(time.Millisecond).String()})
	return tbl.Render()
}

func appendStats(tbl table.Writer, st unusedsrc.Stats) {
	tbl.AppendRow(table.Row{"Target files", humanize.Comma(int64(st.TargetFiles))})
	tbl.AppendRow(table.Row{"Project files", humanize.Comma(int64(st.ProjectFiles))})
	tbl.AppendRow(table.Row{"Skipped files", humanize.Comma(int64(st.SkippedFiles))})
	tbl.AppendRow(table.Row{"Binary files", humanize.Comma(int64(st.BinaryFiles))})
	tbl.AppendRow(table.Row{"Bytes read", humanize.Bytes(uint64(st.BytesRead))})
}

func writeImageResult(w io.Writer, result *unusedsrc.ImageResult, format string, verbose bool) error {
	if format != formatText {
		return writeEncoded(w, format, "images", result)
	}

	if verbose {
		for _, img := range result.Used {
			usedColor.Fprintf(w, "%s", path(img))
			fmt.Fprintln(w, " used in:")
			file := ""
			for _, u := range img.Usages {
				if u.File != file {
					file = u.File
					fmt.Fprintf(w, " %s\n", file)
				}
				fmt.Fprintf(w, " > %s\n", u.Line)
			}
		}
	}

	if len(result.Unused) > 0 {
		heading(w, "NOT USED")
		for _, img := range result.Unused {
			fmt.Fprintf(w, "  %s\n", path(img))
		}
	} else {
		usedColor.Fprintln(w, "No unused images found")
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Summary", "Count"})
	tbl.AppendRow(table.Row{"Images", humanize.Comma(int64(result.Stats.Sources))})
	tbl.AppendRow(table.Row{"Used", humanize.Comma(int64(len(result.Used)))})
	tbl.AppendRow(table.Row{"Unused", humanize.Comma(int64(len(result.Unused)))})
	tbl.AppendSeparator()
	appendStats(tbl, result.Stats)
	tbl.AppendFooter(table.Row{"Duration", result.Stats.Duration.Round(time.Millisecond).String()})

	fmt.Fprintln(w)
	fmt.Fprintln(w, tbl.Render())
	return nil
}

// path renders an image as target/relative path.
func path(img unusedsrc.Image) string {
	return img.Target + "/" + img.Path
}

func heading(w io.Writer, title string) {
	fmt.Fprintln(w)
	headingColor.Fprintf(w, "%s:\n", title)
}
