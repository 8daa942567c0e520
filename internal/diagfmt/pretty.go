package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"phpsniff/internal/diag"
	"phpsniff/internal/source"
)

type palette struct {
	sev     map[diag.Severity]*color.Color
	code    *color.Color
	path    *color.Color
	gutter  *color.Color
	caret   *color.Color
	fixable *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevError:   color.New(color.FgRed, color.Bold),
			diag.SevWarning: color.New(color.FgYellow, color.Bold),
			diag.SevInfo:    color.New(color.FgCyan, color.Bold),
		},
		code:    color.New(color.Faint),
		path:    color.New(color.Bold),
		gutter:  color.New(color.FgBlue),
		caret:   color.New(color.FgRed, color.Bold),
		fixable: color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.code, p.path, p.gutter, p.caret, p.fixable} {
		setColor(c, enabled)
	}
	for _, c := range p.sev {
		setColor(c, enabled)
	}
	return p
}

func setColor(c *color.Color, enabled bool) {
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
}

// Pretty prints diagnostics for people:
//
//	src/a.php:4:1: ERROR Namespaces.UseFromSameNamespace.UseFromSameNamespace [fixable]: Use Foo\Bar ...
//	   4 | use Foo\Bar;
//	     | ^~~~~~~~~~~~
//
// Files are printed in the order given; a file's diagnostics are expected
// to be sorted already.
func Pretty(w io.Writer, files []File, opts PrettyOpts) {
	p := newPalette(opts.Color)
	errors, warnings, fixable, failed := 0, 0, 0, 0
	for _, f := range files {
		path := opts.PathMode.format(f.Path, opts.BaseDir)
		if f.Err != nil {
			failed++
			fmt.Fprintf(w, "%s: %s %s\n", p.path.Sprint(path), p.sev[diag.SevError].Sprint(strings.ToUpper(f.failureLabel())), f.Err)
		}
		if len(f.Diagnostics) == 0 {
			continue
		}
		file := load(f)
		for _, d := range f.Diagnostics {
			switch d.Severity {
			case diag.SevError:
				errors++
			case diag.SevWarning:
				warnings++
			}
			if d.Fixable {
				fixable++
			}
			prettyOne(w, p, path, file, d, opts)
		}
		if f.Truncated {
			fmt.Fprintf(w, "%s: more diagnostics were dropped\n", p.path.Sprint(path))
		}
	}
	if opts.Summary {
		fmt.Fprintln(w, summary(errors, warnings, fixable, failed))
	}
}

func prettyOne(w io.Writer, p palette, path string, file *source.File, d diag.Diagnostic, opts PrettyOpts) {
	fmt.Fprintf(w, "%s: %s %s",
		p.path.Sprintf("%s:%d:%d", path, d.Line, d.Col),
		p.sev[d.Severity].Sprint(d.Severity.String()),
		p.code.Sprint(d.FullCode()))
	if d.Fixable {
		fmt.Fprintf(w, " %s", p.fixable.Sprint("[fixable]"))
	}
	fmt.Fprintf(w, ": %s\n", d.Message)

	if d.Line > 0 {
		snippet(w, p, file, d.Primary, d.Line, opts.Context)
	}
	if opts.ShowNotes {
		for _, n := range d.Notes {
			fmt.Fprintf(w, "%s note: %s\n", p.gutter.Sprint("     ="), n.Msg)
		}
	}
}

// snippet prints the primary line with context and an underline below the
// span, clipped to the first line of the span.
func snippet(w io.Writer, p palette, file *source.File, span source.Span, line, context int) {
	first := max(1, line-context)
	last := min(file.LineCount(), line+context)
	width := len(strconv.Itoa(last))
	for ln := first; ln <= last; ln++ {
		text := file.GetLine(uint32(ln)) // #nosec G115 -- ln is bounded by LineCount
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", width+2, ln), expandTabs(strings.TrimPrefix(text, bom)))
		if ln != line {
			continue
		}
		start := file.Position(span.Start)
		end := min(len(text), int(start.Col)-1+int(span.Len()))
		prefix := text[:min(len(text), int(start.Col)-1)]
		length := max(1, displayWidth(strings.TrimPrefix(text[:end], bom))-displayWidth(strings.TrimPrefix(prefix, bom)))
		prefix = strings.TrimPrefix(prefix, bom)
		marker := "^" + strings.Repeat("~", length-1)
		fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf("%*s |", width+2, ""), strings.Repeat(" ", displayWidth(prefix)), p.caret.Sprint(marker))
	}
}

func summary(errors, warnings, fixable, failed int) string {
	parts := []string{plural(errors, "error"), plural(warnings, "warning")}
	if fixable > 0 {
		parts = append(parts, strconv.Itoa(fixable)+" fixable")
	}
	if failed > 0 {
		parts = append(parts, plural(failed, "failed file"))
	}
	return strings.Join(parts, ", ")
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}
