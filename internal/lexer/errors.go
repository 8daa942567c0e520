package lexer

import "fmt"

// LexError reports input the lexer cannot tokenize. It is fatal for the file.
type LexError struct {
	Path   string
	Offset uint32
	Line   int
	Col    int
	Msg    string
}

func (e *LexError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s:%d:%d: lex error at offset %d: %s", e.Path, e.Line, e.Col, e.Offset, e.Msg)
	}
	return fmt.Sprintf("lex error at offset %d (line %d): %s", e.Offset, e.Line, e.Msg)
}
