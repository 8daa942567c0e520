package main

import (
	"fmt"
	"io"

	"phpsniff/internal/diagfmt"
	"phpsniff/internal/driver"
)

func reportFiles(rep *driver.Report, onlyFindings bool) []diagfmt.File {
	files := make([]diagfmt.File, 0, len(rep.Files))
	for _, r := range rep.Files {
		if onlyFindings && r.Err == nil && len(r.Diagnostics) == 0 {
			continue
		}
		files = append(files, diagfmt.File{
			Path:        r.Path,
			Content:     r.Final,
			Diagnostics: r.Diagnostics,
			Truncated:   r.Truncated,
			Err:         r.Err,
			Contract:    driver.IsContractError(r.Err),
		})
	}
	return files
}

// render writes the report's diagnostics in the selected format.
func (s *runSettings) render(out io.Writer, rep *driver.Report) error {
	switch s.format {
	case "json":
		return diagfmt.JSON(out, reportFiles(rep, false), diagfmt.JSONOpts{PathMode: s.pathMode})
	case "short":
		diagfmt.Short(out, reportFiles(rep, true), diagfmt.PrettyOpts{PathMode: s.pathMode})
	default:
		diagfmt.Pretty(out, reportFiles(rep, true), diagfmt.PrettyOpts{
			Color:     s.color,
			Context:   1,
			PathMode:  s.pathMode,
			ShowNotes: true,
			Summary:   !s.quiet,
		})
	}
	return nil
}

func (s *runSettings) printTimings(out io.Writer, rep *driver.Report) {
	if !s.timings {
		return
	}
	cached := 0
	for _, f := range rep.Files {
		if f.Cached {
			cached++
		}
	}
	fmt.Fprintf(out, "%d files, %d from cache\n", len(rep.Files), cached)
	fmt.Fprint(out, rep.Timings.String())
}

// exitStatus turns a report into the command's error.
func exitStatus(rep *driver.Report) error {
	if rep.HasErrors() {
		return errFindings
	}
	return nil
}
