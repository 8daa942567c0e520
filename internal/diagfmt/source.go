package diagfmt

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"phpsniff/internal/source"
)

const tabWidth = 4

const bom = "\xEF\xBB\xBF"

func load(f File) *source.File {
	fs := source.NewFileSet()
	return fs.Get(fs.Add(f.Path, f.Content, 0))
}

// expandTabs replaces tabs so that display columns line up with the
// underline.
func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return b.String()
}

// displayWidth is the terminal width of s after tab expansion.
func displayWidth(s string) int {
	return runewidth.StringWidth(expandTabs(s))
}
