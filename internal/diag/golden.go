package diag

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// FormatGolden renders diagnostics as stable one-line records:
//
//	error Rule.Code path:line:col message
//
// Records are sorted by path, line, column, code and message.
func FormatGolden(path string, diags []Diagnostic) string {
	type record struct {
		sev, code, msg string
		line, col      int
	}
	rendered := make([]record, 0, len(diags))
	for i := range diags {
		d := &diags[i]
		code := d.FullCode()
		if d.Fixable {
			code += "[fixable]"
		}
		rendered = append(rendered, record{
			sev:  strings.ToLower(d.Severity.String()),
			code: code,
			msg:  sanitizeMessage(d.Message),
			line: d.Line,
			col:  d.Col,
		})
	}
	sort.SliceStable(rendered, func(i, j int) bool {
		a, b := rendered[i], rendered[j]
		if a.line != b.line {
			return a.line < b.line
		}
		if a.col != b.col {
			return a.col < b.col
		}
		if a.code != b.code {
			return a.code < b.code
		}
		return a.msg < b.msg
	})

	p := normalizePath(path)
	var b strings.Builder
	for i, r := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", r.sev, r.code, p, r.line, r.col, r.msg)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
