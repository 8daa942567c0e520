package lexer

import (
	"phpsniff/internal/token"
)

// scanHTML emits an open tag at the cursor, or inline HTML up to the next one.
func (lx *Lexer) scanHTML() token.Kind {
	if lx.cursor.HasPrefix("<?=") {
		lx.cursor.BumpN(3)
		lx.mode = modePHP
		return token.OpenTagWithEcho
	}
	if lx.atOpenTag() {
		lx.cursor.BumpN(5)
		// "<?php" owns exactly one following whitespace character.
		switch {
		case lx.cursor.HasPrefix("\r\n"):
			lx.cursor.BumpN(2)
		case isSpace(lx.cursor.Peek()):
			lx.cursor.Bump()
		}
		lx.mode = modePHP
		return token.OpenTag
	}
	for !lx.cursor.EOF() {
		if lx.cursor.HasPrefix("<?=") || lx.atOpenTag() {
			break
		}
		lx.cursor.Bump()
	}
	return token.InlineHTML
}

func (lx *Lexer) atOpenTag() bool {
	if !lx.cursor.HasPrefixFold("<?php") {
		return false
	}
	next := lx.cursor.PeekAt(5)
	return next == 0 || isSpace(next)
}

// scanCloseTag consumes "?>" and a single newline directly after it, as PHP does.
func (lx *Lexer) scanCloseTag() token.Kind {
	lx.cursor.BumpN(2)
	if lx.cursor.HasPrefix("\r\n") {
		lx.cursor.BumpN(2)
	} else {
		lx.cursor.Eat('\n')
	}
	lx.mode = modeHTML
	lx.squares = lx.squares[:0]
	return token.CloseTag
}
