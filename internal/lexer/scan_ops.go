package lexer

import (
	"phpsniff/internal/token"
)

type operator struct {
	text string
	kind token.Kind
}

// operators is ordered longest first so the first prefix match wins.
var operators = []operator{
	{"<=>", token.Operator},
	{"**=", token.Operator},
	{"...", token.Ellipsis},
	{"??=", token.Operator},
	{"===", token.Operator},
	{"!==", token.Operator},
	{"<<=", token.Operator},
	{">>=", token.Operator},
	{"?->", token.NullsafeObjectOperator},

	{"->", token.ObjectOperator},
	{"=>", token.DoubleArrow},
	{"::", token.DoubleColon},
	{"++", token.Operator},
	{"--", token.Operator},
	{"==", token.Operator},
	{"!=", token.Operator},
	{"<>", token.Operator},
	{"<=", token.Operator},
	{">=", token.Operator},
	{"&&", token.Operator},
	{"||", token.Operator},
	{"??", token.Operator},
	{"+=", token.Operator},
	{"-=", token.Operator},
	{"*=", token.Operator},
	{"/=", token.Operator},
	{".=", token.Operator},
	{"%=", token.Operator},
	{"&=", token.Operator},
	{"|=", token.Operator},
	{"^=", token.Operator},
	{"<<", token.Operator},
	{">>", token.Operator},
	{"**", token.Operator},

	{"=", token.Equal},
	{";", token.Semicolon},
	{",", token.Comma},
	{":", token.Colon},
	{"&", token.Ampersand},
	{"?", token.Question},
	{"+", token.Operator},
	{"-", token.Operator},
	{"*", token.Operator},
	{"/", token.Operator},
	{"%", token.Operator},
	{".", token.Operator},
	{"!", token.Operator},
	{"<", token.Operator},
	{">", token.Operator},
	{"|", token.Operator},
	{"^", token.Operator},
	{"~", token.Operator},
	{"@", token.Operator},
}

func (lx *Lexer) scanOperatorOrPunct() (token.Kind, error) {
	switch lx.cursor.Peek() {
	case '(':
		lx.cursor.Bump()
		return token.OpenParenthesis, nil
	case ')':
		lx.cursor.Bump()
		return token.CloseParenthesis, nil
	case '{':
		lx.cursor.Bump()
		lx.curlies = append(lx.curlies, lx.opensExpressionBrace())
		return token.OpenCurlyBracket, nil
	case '}':
		lx.cursor.Bump()
		lx.closedCurlyExp = false
		if n := len(lx.curlies); n > 0 {
			lx.closedCurlyExp = lx.curlies[n-1]
			lx.curlies = lx.curlies[:n-1]
		}
		return token.CloseCurlyBracket, nil
	case '[':
		lx.cursor.Bump()
		if lx.prevIsValue() {
			lx.squares = append(lx.squares, token.CloseSquareBracket)
			return token.OpenSquareBracket, nil
		}
		lx.squares = append(lx.squares, token.CloseShortArray)
		return token.OpenShortArray, nil
	case ']':
		lx.cursor.Bump()
		n := len(lx.squares)
		if n == 0 {
			// unmatched; the index reports it
			return token.CloseSquareBracket, nil
		}
		k := lx.squares[n-1]
		lx.squares = lx.squares[:n-1]
		return k, nil
	}

	for _, op := range operators {
		if lx.cursor.HasPrefix(op.text) {
			lx.cursor.BumpN(len(op.text))
			return op.kind, nil
		}
	}
	return token.Invalid, lx.errorAt(lx.cursor.Off, "unexpected character")
}

// prevIsValue reports whether a "[" at this point indexes into a value
// rather than opening an array literal.
func (lx *Lexer) prevIsValue() bool {
	switch lx.prev {
	case token.Variable, token.String, token.ConstantString, token.DoubleQuotedString, token.Heredoc,
		token.CloseParenthesis, token.CloseSquareBracket, token.CloseShortArray:
		return true
	case token.CloseCurlyBracket:
		return lx.prevCurlyExp
	default:
		return false
	}
}

// opensExpressionBrace reports "{" that belongs to an expression: ${...},
// $obj->{...} and $str{...}.
func (lx *Lexer) opensExpressionBrace() bool {
	switch lx.prev {
	case token.Dollar, token.ObjectOperator, token.NullsafeObjectOperator, token.Variable:
		return true
	default:
		return false
	}
}
