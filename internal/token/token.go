package token

import (
	"strings"

	"phpsniff/internal/source"
)

// Token is one immutable lexical unit.
// Line and Col are the 1-based position of Span.Start.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	Line int
	Col  int
}

// EndLine returns the line on which the token's last byte sits.
func (t Token) EndLine() int {
	n := strings.Count(t.Text, "\n")
	if n > 0 && strings.HasSuffix(t.Text, "\n") {
		n--
	}
	return t.Line + n
}

// IsEmpty reports whether the token is whitespace or comment.
func (t Token) IsEmpty() bool { return t.Kind.IsEmpty() }

// IsNewline reports whether the token is whitespace that ends a line.
func (t Token) IsNewline() bool {
	return t.Kind.IsWhitespace() && strings.HasSuffix(t.Text, "\n")
}

// Is reports whether the token has kind k and, when text is given, exactly that text.
func (t Token) Is(k Kind, text ...string) bool {
	if t.Kind != k {
		return false
	}
	for _, s := range text {
		if t.Text == s {
			return true
		}
	}
	return len(text) == 0
}
