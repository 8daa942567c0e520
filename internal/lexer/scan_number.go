package lexer

import (
	"phpsniff/internal/token"
)

// Supported forms: 0, 123, 1_000, 0b101, 0o17, 017, 0x1F, 1.5, .5, 1., 1e-3, 1.0E+10.
func (lx *Lexer) scanNumber() token.Kind {
	kind := token.LNumber

	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'b', 'B':
			lx.cursor.BumpN(2)
			for b := lx.cursor.Peek(); b == '0' || b == '1' || b == '_'; b = lx.cursor.Peek() {
				lx.cursor.Bump()
			}
			return kind
		case 'o', 'O':
			lx.cursor.BumpN(2)
			for b := lx.cursor.Peek(); (b >= '0' && b <= '7') || b == '_'; b = lx.cursor.Peek() {
				lx.cursor.Bump()
			}
			return kind
		case 'x', 'X':
			lx.cursor.BumpN(2)
			for b := lx.cursor.Peek(); isHex(b) || b == '_'; b = lx.cursor.Peek() {
				lx.cursor.Bump()
			}
			return kind
		}
	}

	lx.scanDigits()
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		kind = token.DNumber
		lx.scanDigits()
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		// only an exponent when digits follow, otherwise "1e" is 1 followed by a name
		off := uint32(1)
		if s := lx.cursor.PeekAt(1); s == '+' || s == '-' {
			off = 2
		}
		if isDec(lx.cursor.PeekAt(off)) {
			lx.cursor.BumpN(int(off))
			lx.scanDigits()
			kind = token.DNumber
		}
	}
	return kind
}

func (lx *Lexer) scanDigits() {
	for b := lx.cursor.Peek(); isDec(b) || (b == '_' && isDec(lx.cursor.PeekAt(1))); b = lx.cursor.Peek() {
		lx.cursor.Bump()
	}
}
