package lexer

// PHP identifiers are [a-zA-Z_\x80-\xff][a-zA-Z0-9_\x80-\xff]*, so any
// non-ASCII byte continues a name.
func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b >= 0x80
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isHex(b byte) bool {
	return (b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'f') ||
		(b >= 'A' && b <= 'F')
}

// isBlank reports horizontal whitespace; '\n' is handled separately because it ends a token.
func isBlank(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\f' || b == '\v'
}

func isSpace(b byte) bool {
	return isBlank(b) || b == '\n'
}

// isNumberAfterDot reports the ".5" case.
func (lx *Lexer) isNumberAfterDot() bool {
	b0, b1, ok := lx.cursor.Peek2()
	return ok && b0 == '.' && isDec(b1)
}

// scanBlanks consumes horizontal whitespace and at most one trailing newline.
func (lx *Lexer) scanBlanks() {
	for isBlank(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	lx.cursor.Eat('\n')
}
