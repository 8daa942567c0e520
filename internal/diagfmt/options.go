package diagfmt

import (
	"phpsniff/internal/diag"
	"phpsniff/internal/source"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto keeps the path as given unless it is a long absolute one.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// ParsePathMode maps a flag value to a PathMode.
func ParsePathMode(s string) (PathMode, bool) {
	switch s {
	case "", "auto":
		return PathModeAuto, true
	case "absolute":
		return PathModeAbsolute, true
	case "relative":
		return PathModeRelative, true
	case "basename":
		return PathModeBasename, true
	}
	return PathModeAuto, false
}

func (m PathMode) format(path, baseDir string) string {
	f := &source.File{Path: path}
	switch m {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", baseDir)
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}

// File is one file's diagnostics together with the content they refer
// to. Content is the on-disk text of the last pass; it may carry a BOM and
// CRLF line endings.
type File struct {
	Path        string
	Content     []byte
	Diagnostics []diag.Diagnostic
	Truncated   bool
	Err         error
	// Contract marks Err as a rule misusing the core API rather than a
	// file the tool could not process.
	Contract bool
}

func (f File) failureLabel() string {
	if f.Contract {
		return "rule error"
	}
	return "failed"
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color    bool
	Context  int // source lines shown around the primary line
	PathMode PathMode
	BaseDir  string
	// ShowNotes prints notes under their diagnostic.
	ShowNotes bool
	// Summary adds a closing "N errors" line.
	Summary bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	PathMode PathMode
	BaseDir  string
	Max      int // output cap per file, not the bag cap
}
