package lexer

import (
	"phpsniff/internal/token"
)

// scanIdentOrKeyword scans a name and resolves keywords case-insensitively.
// A keyword right after "->", "?->", "::" or "function" is a member name,
// and one touching a namespace separator is a name segment.
func (lx *Lexer) scanIdentOrKeyword() token.Kind {
	start := lx.cursor.Off
	lx.cursor.Bump()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	switch lx.prev {
	case token.ObjectOperator, token.NullsafeObjectOperator, token.DoubleColon, token.Function, token.NsSeparator:
		return token.String
	}
	if lx.cursor.Peek() == '\\' {
		return token.String
	}
	text := string(lx.file.Content[start:lx.cursor.Off])
	if k, ok := token.LookupKeyword(text); ok {
		return k
	}
	return token.String
}

// scanVariable scans "$name"; a "$" not followed by a name is a lone Dollar.
func (lx *Lexer) scanVariable() token.Kind {
	lx.cursor.Bump()
	if !isIdentStartByte(lx.cursor.Peek()) {
		return token.Dollar
	}
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return token.Variable
}
