package lexer

import (
	"strings"

	"phpsniff/internal/source"
	"phpsniff/internal/token"
)

type mode uint8

const (
	modeHTML mode = iota
	modePHP
	modeDocComment
)

// Lexer turns one PHP file into a lossless token stream.
// Whitespace and comments are ordinary tokens; nothing is skipped.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	mode   mode

	line      int
	lineStart uint32

	prev           token.Kind   // last non-empty kind
	prevCurlyExp   bool         // prev is '}' closing an expression brace
	squares        []token.Kind // closer kind for every open '[' and '#['
	curlies        []bool       // expression flag for every open '{'
	closedCurlyExp bool
	docLineStart   bool

	err error
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		mode:   modeHTML,
		line:   1,
		prev:   token.Invalid,
	}
}

// Next returns the next token. After the input is consumed it keeps
// returning EOF. Once an error is returned the lexer is stuck on it.
func (lx *Lexer) Next() (token.Token, error) {
	if lx.err != nil {
		return token.Token{}, lx.err
	}
	if lx.cursor.EOF() {
		if lx.mode == modeDocComment {
			return lx.fail(lx.cursor.Off, "unterminated doc comment")
		}
		return lx.eof(), nil
	}

	start := lx.cursor.Mark()
	var (
		kind token.Kind
		err  error
	)
	switch lx.mode {
	case modeHTML:
		kind = lx.scanHTML()
	case modeDocComment:
		kind, err = lx.scanDocComment()
	default:
		kind, err = lx.scanPHP()
	}
	if err != nil {
		lx.err = err
		return token.Token{}, err
	}
	if n := lx.cursor.Off - uint32(start); int(n) > lx.opts.maxTokenLength() {
		return lx.fail(uint32(start), "token exceeds maximum length")
	}
	return lx.emit(kind, start), nil
}

// Tokenize lexes the whole file. The EOF token is not included.
func Tokenize(file *source.File, opts Options) ([]token.Token, error) {
	lx := New(file, opts)
	toks := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == token.EOF {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

func (lx *Lexer) emit(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	tok := token.Token{
		Kind: kind,
		Span: sp,
		Text: text,
		Line: lx.line,
		Col:  int(sp.Start-lx.lineStart) + 1,
	}
	if n := strings.Count(text, "\n"); n > 0 {
		lx.line += n
		lx.lineStart = sp.Start + uint32(strings.LastIndexByte(text, '\n')) + 1
	}
	if !kind.IsEmpty() {
		lx.prev = kind
		lx.prevCurlyExp = kind == token.CloseCurlyBracket && lx.closedCurlyExp
	}
	return tok
}

func (lx *Lexer) eof() token.Token {
	sp := source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
	return token.Token{Kind: token.EOF, Span: sp, Line: lx.line, Col: int(sp.Start-lx.lineStart) + 1}
}

func (lx *Lexer) fail(off uint32, msg string) (token.Token, error) {
	pos := lx.file.Position(off)
	lx.err = &LexError{
		Path:   lx.file.Path,
		Offset: off,
		Line:   int(pos.Line),
		Col:    int(pos.Col),
		Msg:    msg,
	}
	return token.Token{}, lx.err
}

func (lx *Lexer) errorAt(off uint32, msg string) error {
	_, err := lx.fail(off, msg)
	return err
}

// scanPHP dispatches on the first byte of a token inside <?php ... ?>.
func (lx *Lexer) scanPHP() (token.Kind, error) {
	ch := lx.cursor.Peek()
	switch {
	case isSpace(ch):
		lx.scanBlanks()
		return token.Whitespace, nil
	case ch == '?' && lx.cursor.HasPrefix("?>"):
		return lx.scanCloseTag(), nil
	case ch == '#' && lx.cursor.HasPrefix("#["):
		lx.cursor.BumpN(2)
		lx.squares = append(lx.squares, token.AttributeClose)
		return token.AttributeOpen, nil
	case ch == '#' || lx.cursor.HasPrefix("//"):
		lx.scanLineComment()
		return token.Comment, nil
	case lx.cursor.HasPrefix("/*"):
		return lx.scanBlockComment()
	case ch == '$':
		return lx.scanVariable(), nil
	case ch == '\\':
		lx.cursor.Bump()
		return token.NsSeparator, nil
	case isIdentStartByte(ch):
		return lx.scanIdentOrKeyword(), nil
	case isDec(ch) || lx.isNumberAfterDot():
		return lx.scanNumber(), nil
	case ch == '\'':
		return lx.scanQuoted('\'', token.ConstantString)
	case ch == '"':
		return lx.scanQuoted('"', token.DoubleQuotedString)
	case ch == '`':
		return lx.scanQuoted('`', token.Backtick)
	case ch == '<' && lx.cursor.HasPrefix("<<<"):
		if k, ok, err := lx.scanHeredoc(); ok || err != nil {
			return k, err
		}
		return lx.scanOperatorOrPunct()
	default:
		return lx.scanOperatorOrPunct()
	}
}
