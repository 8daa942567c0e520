package lexer

import (
	"phpsniff/internal/token"
)

// scanLineComment consumes "//" or "#" up to, but not including, the line
// break ("\n", "\r\n" or a lone "\r"). A "?>" also ends the comment, as in PHP.
func (lx *Lexer) scanLineComment() {
	for !lx.cursor.EOF() {
		if b := lx.cursor.Peek(); b == '\n' || b == '\r' || lx.cursor.HasPrefix("?>") {
			return
		}
		lx.cursor.Bump()
	}
}

// scanBlockComment handles "/* ... */" as one Comment token and switches to
// doc comment mode for "/**" followed by whitespace. "/**/" is a plain comment.
func (lx *Lexer) scanBlockComment() (token.Kind, error) {
	start := lx.cursor.Off
	if lx.cursor.HasPrefix("/**") && isSpace(lx.cursor.PeekAt(3)) {
		lx.cursor.BumpN(3)
		lx.mode = modeDocComment
		lx.docLineStart = false
		return token.DocCommentOpen, nil
	}
	lx.cursor.BumpN(2)
	for !lx.cursor.EOF() {
		if lx.cursor.HasPrefix("*/") {
			lx.cursor.BumpN(2)
			return token.Comment, nil
		}
		lx.cursor.Bump()
	}
	return token.Invalid, lx.errorAt(start, "unterminated comment")
}

// scanDocComment emits one piece of a doc comment body.
func (lx *Lexer) scanDocComment() (token.Kind, error) {
	ch := lx.cursor.Peek()
	switch {
	case lx.cursor.HasPrefix("*/"):
		lx.cursor.BumpN(2)
		lx.mode = modePHP
		return token.DocCommentClose, nil

	case isSpace(ch):
		for isBlank(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		if lx.cursor.Eat('\n') {
			lx.docLineStart = true
		}
		return token.DocCommentWhitespace, nil

	case ch == '*' && lx.docLineStart:
		lx.cursor.Bump()
		lx.docLineStart = false
		return token.DocCommentStar, nil

	case ch == '@':
		lx.cursor.Bump()
		for !lx.cursor.EOF() && !isSpace(lx.cursor.Peek()) && !lx.cursor.HasPrefix("*/") {
			lx.cursor.Bump()
		}
		lx.docLineStart = false
		return token.DocCommentTag, nil
	}

	// Free text runs to the end of the line or the closer; trailing
	// blanks are left for a whitespace token.
	lx.docLineStart = false
	lastNonBlank := lx.cursor.Off
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' || lx.cursor.HasPrefix("*/") {
			break
		}
		lx.cursor.Bump()
		if !isBlank(b) {
			lastNonBlank = lx.cursor.Off
		}
	}
	if lx.cursor.EOF() {
		return token.Invalid, lx.errorAt(lx.cursor.Off, "unterminated doc comment")
	}
	lx.cursor.Off = lastNonBlank
	return token.DocCommentString, nil
}
