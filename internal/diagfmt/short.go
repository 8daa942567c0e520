package diagfmt

import (
	"fmt"
	"io"
	"strings"
)

// Short prints one line per diagnostic, suitable for editors and grep:
//
//	path:line:col: severity Rule.Code: message
func Short(w io.Writer, files []File, opts PrettyOpts) {
	for _, f := range files {
		path := opts.PathMode.format(f.Path, opts.BaseDir)
		if f.Err != nil {
			fmt.Fprintf(w, "%s: %s: %s\n", path, f.failureLabel(), oneLine(f.Err.Error()))
		}
		for _, d := range f.Diagnostics {
			fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, d.Line, d.Col, strings.ToLower(d.Severity.String()), d.FullCode(), oneLine(d.Message))
		}
	}
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
