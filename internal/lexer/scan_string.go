package lexer

import (
	"phpsniff/internal/token"
)

// scanQuoted consumes a quoted literal. Interpolation inside double quotes
// and backticks is kept inside the single token.
func (lx *Lexer) scanQuoted(quote byte, kind token.Kind) (token.Kind, error) {
	start := lx.cursor.Off
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if b == '\\' {
			lx.cursor.Bump()
			continue
		}
		if b == quote {
			return kind, nil
		}
	}
	return token.Invalid, lx.errorAt(start, "unterminated string literal")
}

// scanHeredoc consumes a heredoc or nowdoc. ok is false when "<<<" does not
// start a valid header, in which case the cursor is left untouched.
func (lx *Lexer) scanHeredoc() (kind token.Kind, ok bool, err error) {
	start := lx.cursor.Mark()
	lx.cursor.BumpN(3)
	for isBlank(lx.cursor.Peek()) && lx.cursor.Peek() != '\r' {
		lx.cursor.Bump()
	}
	quote := lx.cursor.Peek()
	if quote == '"' || quote == '\'' {
		lx.cursor.Bump()
	} else {
		quote = 0
	}
	if !isIdentStartByte(lx.cursor.Peek()) {
		lx.cursor.Reset(start)
		return token.Invalid, false, nil
	}
	labelStart := lx.cursor.Off
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	label := string(lx.file.Content[labelStart:lx.cursor.Off])
	if quote != 0 && !lx.cursor.Eat(quote) {
		lx.cursor.Reset(start)
		return token.Invalid, false, nil
	}
	lx.cursor.Eat('\r')
	if !lx.cursor.Eat('\n') {
		lx.cursor.Reset(start)
		return token.Invalid, false, nil
	}

	for !lx.cursor.EOF() {
		for isBlank(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		if lx.cursor.HasPrefix(label) && !isIdentContinueByte(lx.cursor.PeekAt(uint32(len(label)))) {
			lx.cursor.BumpN(len(label))
			return token.Heredoc, true, nil
		}
		for !lx.cursor.EOF() {
			if lx.cursor.Bump() == '\n' {
				break
			}
		}
	}
	return token.Invalid, true, lx.errorAt(uint32(start), "unterminated heredoc")
}
