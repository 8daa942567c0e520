package diagfmt

import (
	"encoding/json"
	"io"

	"phpsniff/internal/diag"
)

// LocationJSON is a position in a file.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	Line      int    `json:"line"`
	Col       int    `json:"col"`
}

// NoteJSON is an additional note.
type NoteJSON struct {
	Message   string `json:"message"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
}

// DiagnosticJSON is one diagnostic.
type DiagnosticJSON struct {
	Severity diag.Severity `json:"severity"`
	Rule     string        `json:"rule"`
	Code     string        `json:"code"`
	Message  string        `json:"message"`
	Fixable  bool          `json:"fixable"`
	Location LocationJSON  `json:"location"`
	Notes    []NoteJSON    `json:"notes,omitempty"`
}

// FileJSON groups a file's diagnostics.
type FileJSON struct {
	Path        string           `json:"path"`
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Truncated   bool             `json:"truncated,omitempty"`
	Error       string           `json:"error,omitempty"`
	ErrorKind   string           `json:"error_kind,omitempty"` // "tool" or "contract"
}

// DiagnosticsOutput is the root of the JSON output.
type DiagnosticsOutput struct {
	Files  []FileJSON `json:"files"`
	Count  int        `json:"count"`
	Errors int        `json:"errors"`
	Failed int        `json:"failed"`
}

// BuildDiagnosticsOutput assembles the JSON document without encoding it.
func BuildDiagnosticsOutput(files []File, opts JSONOpts) DiagnosticsOutput {
	out := DiagnosticsOutput{Files: make([]FileJSON, 0, len(files))}
	for _, f := range files {
		path := opts.PathMode.format(f.Path, opts.BaseDir)
		fj := FileJSON{Path: path, Diagnostics: make([]DiagnosticJSON, 0, len(f.Diagnostics)), Truncated: f.Truncated}
		if f.Err != nil {
			fj.Error = f.Err.Error()
			fj.ErrorKind = "tool"
			if f.Contract {
				fj.ErrorKind = "contract"
			}
			out.Failed++
		}
		items := f.Diagnostics
		if opts.Max > 0 && opts.Max < len(items) {
			items = items[:opts.Max]
			fj.Truncated = true
		}
		for _, d := range items {
			dj := DiagnosticJSON{
				Severity: d.Severity,
				Rule:     d.Rule,
				Code:     d.Code,
				Message:  d.Message,
				Fixable:  d.Fixable,
				Location: LocationJSON{
					File:      path,
					StartByte: d.Primary.Start,
					EndByte:   d.Primary.End,
					Line:      d.Line,
					Col:       d.Col,
				},
			}
			for _, n := range d.Notes {
				dj.Notes = append(dj.Notes, NoteJSON{Message: n.Msg, StartByte: n.Span.Start, EndByte: n.Span.End})
			}
			if d.Severity >= diag.SevError {
				out.Errors++
			}
			fj.Diagnostics = append(fj.Diagnostics, dj)
		}
		out.Count += len(fj.Diagnostics)
		out.Files = append(out.Files, fj)
	}
	return out
}

// JSON writes diagnostics as an indented JSON document.
func JSON(w io.Writer, files []File, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(files, opts))
}
