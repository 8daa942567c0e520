package diagfmt

import (
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
)

// DiffOpts configures UnifiedDiff.
type DiffOpts struct {
	Color   bool
	Context int
}

// UnifiedDiff writes a unified diff between before and after, labelled
// with path as in "git diff". Nothing is written when they are equal.
func UnifiedDiff(w io.Writer, path string, before, after []byte, opts DiffOpts) error {
	if string(before) == string(after) {
		return nil
	}
	context := opts.Context
	if context <= 0 {
		context = 3
	}
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: "a/" + strings.TrimPrefix(path, "/"),
		ToFile:   "b/" + strings.TrimPrefix(path, "/"),
		Context:  context,
	})
	if err != nil {
		return err
	}
	if !opts.Color {
		_, err = io.WriteString(w, text)
		return err
	}
	add := color.New(color.FgGreen)
	del := color.New(color.FgRed)
	hunk := color.New(color.FgCyan)
	for _, c := range []*color.Color{add, del, hunk} {
		c.EnableColor()
	}
	for _, line := range strings.SplitAfter(text, "\n") {
		var err error
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			_, err = io.WriteString(w, line)
		case strings.HasPrefix(line, "+"):
			_, err = add.Fprint(w, line)
		case strings.HasPrefix(line, "-"):
			_, err = del.Fprint(w, line)
		case strings.HasPrefix(line, "@@"):
			_, err = hunk.Fprint(w, line)
		default:
			_, err = io.WriteString(w, line)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
