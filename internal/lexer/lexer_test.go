package lexer_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"phpsniff/internal/index"
	"phpsniff/internal/lexer"
	"phpsniff/internal/source"
	"phpsniff/internal/testkit"
	"phpsniff/internal/token"
)

func lex(t *testing.T, input string) []token.Token {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.php", []byte(input)))
	toks, err := lexer.Tokenize(file, lexer.Options{})
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", input, err)
	}
	return toks
}

func lexErr(t *testing.T, input string) *lexer.LexError {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.php", []byte(input)))
	_, err := lexer.Tokenize(file, lexer.Options{})
	var le *lexer.LexError
	if !errors.As(err, &le) {
		t.Fatalf("Tokenize(%q): expected *LexError, got %v", input, err)
	}
	return le
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

type want struct {
	kind token.Kind
	text string
}

func expectTokens(t *testing.T, input string, expected []want) {
	t.Helper()
	toks := lex(t, input)
	if len(toks) != len(expected) {
		t.Fatalf("expected %d tokens, got %d\ninput: %q\ntokens: %s", len(expected), len(toks), input, tokensToString(toks))
	}
	for i, tok := range toks {
		if tok.Kind != expected[i].kind || tok.Text != expected[i].text {
			t.Errorf("token %d: expected %v(%q), got %v(%q)", i, expected[i].kind, expected[i].text, tok.Kind, tok.Text)
		}
	}
}

func TestLossless(t *testing.T) {
	inputs := []string{
		"",
		"plain html only\n",
		"<?php\n$a = 1;\n",
		"<?php\r\n\t$a  =  [1, 2];  \n\n\n",
		"<html>\n<?php echo $x; ?>\n<p><?= $y ?></p>\n",
		"<?php\n/**\n * Doc.\n *\n * @var int $a   \n */\n$a = 1; // trailing\n# hash\n",
		"<?php\n$s = <<<EOT\n  body $a\n  EOT;\n$n = <<<'N'\nraw\nN;\n",
		"<?php\nnamespace Foo\\Bar;\nuse Baz\\Qux as Q;\n#[Attr(1)]\nfunction f(int ...$a): ?int { return $a?->b['c'] ?? null; }\n",
		"<?php $x = 'a\\'b' . \"c\\\"d\" . `ls`; $y = 0x1F + 1_000 + .5 + 1e-3;",
	}
	for _, in := range inputs {
		toks := lex(t, in)
		var sb strings.Builder
		var off uint32
		for i, tok := range toks {
			if tok.Span.Start != off {
				t.Fatalf("%q: token %d starts at %d, expected %d", in, i, tok.Span.Start, off)
			}
			if int(tok.Span.Len()) != len(tok.Text) {
				t.Fatalf("%q: token %d span/text length mismatch", in, i)
			}
			off = tok.Span.End
			sb.WriteString(tok.Text)
		}
		if sb.String() != in {
			t.Fatalf("lossless round trip failed:\n got %q\nwant %q", sb.String(), in)
		}
	}
}

func TestLosslessRawBytes(t *testing.T) {
	inputs := []string{
		"<?php\r\n$a = 1;\r\n",
		"\xEF\xBB\xBF<?php\r\nnamespace Foo;\nuse Foo\\Bar;\n$a = 1;\r\n",
		"<?php $a;\r$b; // c\r\n# d\r$e;\n",
		"<?php\r\n/**\r\n * @var int $a\r\n */\r\n$a = 1;\r\n?>\r\ntail\r",
	}
	for _, in := range inputs {
		var sb strings.Builder
		for _, tok := range lex(t, in) {
			sb.WriteString(tok.Text)
		}
		if sb.String() != in {
			t.Errorf("round trip changed the bytes:\n got %q\nwant %q", sb.String(), in)
		}
	}

	expectTokens(t, "\xEF\xBB\xBF<?php\r\n$a; // c\r\n", []want{
		{token.InlineHTML, "\xEF\xBB\xBF"},
		{token.OpenTag, "<?php\r\n"},
		{token.Variable, "$a"},
		{token.Semicolon, ";"},
		{token.Whitespace, " "},
		{token.Comment, "// c"},
		{token.Whitespace, "\r\n"},
	})

	le := lexErr(t, "\xEF\xBB\xBF<?php\r\n/* open")
	if le.Offset != 10 || le.Line != 2 || le.Col != 1 {
		t.Errorf("offset must count raw bytes, got %d at %d:%d", le.Offset, le.Line, le.Col)
	}
}

func TestStreamInvariants(t *testing.T) {
	inputs := []string{
		"<?php\n/** @var Foo $a */\n$a = [1, [2, 3]];\nforeach ($a as [$x, $y]) { echo $x; }\n",
		"<?php\r\nfunction &f(array $a = []) { return fn($b) => $b[0] ?? null; }\r\n",
		"x<?php if ($a) { ?>\n<b><?= $a ?></b>\n<?php } ?>\n",
	}
	for _, in := range inputs {
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("inv.php", []byte(in)))
		toks, err := lexer.Tokenize(file, lexer.Options{})
		if err != nil {
			t.Fatalf("Tokenize(%q): %v", in, err)
		}
		if err := testkit.CheckStreamInvariants(toks, file); err != nil {
			t.Errorf("%q: %v", in, err)
		}
		idx, err := index.Build(toks)
		if err != nil {
			t.Fatalf("Build(%q): %v", in, err)
		}
		if err := testkit.CheckIndexInvariants(idx); err != nil {
			t.Errorf("%q: %v", in, err)
		}
	}
}

func TestShortArrayVersusIndex(t *testing.T) {
	expectTokens(t, "<?php [$a, $b] = $c[0];", []want{
		{token.OpenTag, "<?php "},
		{token.OpenShortArray, "["},
		{token.Variable, "$a"},
		{token.Comma, ","},
		{token.Whitespace, " "},
		{token.Variable, "$b"},
		{token.CloseShortArray, "]"},
		{token.Whitespace, " "},
		{token.Equal, "="},
		{token.Whitespace, " "},
		{token.Variable, "$c"},
		{token.OpenSquareBracket, "["},
		{token.LNumber, "0"},
		{token.CloseSquareBracket, "]"},
		{token.Semicolon, ";"},
	})
}

func TestBracketAfterCurly(t *testing.T) {
	// a block brace ends a statement; an expression brace is a value
	toks := lex(t, "<?php if ($a) { }\n[$b] = $c; $o->{'p'}[0];")
	var got []token.Kind
	for _, tok := range toks {
		if f, _ := tok.Kind.Structure(); f == token.FamilyShortArray || f == token.FamilySquareBracket {
			got = append(got, tok.Kind)
		}
	}
	wantKinds := []token.Kind{token.OpenShortArray, token.CloseShortArray, token.OpenSquareBracket, token.CloseSquareBracket}
	if fmt.Sprint(got) != fmt.Sprint(wantKinds) {
		t.Fatalf("got %v, want %v", got, wantKinds)
	}
}

func TestDocCommentSplit(t *testing.T) {
	expectTokens(t, "<?php /** @var Foo $x */", []want{
		{token.OpenTag, "<?php "},
		{token.DocCommentOpen, "/**"},
		{token.DocCommentWhitespace, " "},
		{token.DocCommentTag, "@var"},
		{token.DocCommentWhitespace, " "},
		{token.DocCommentString, "Foo $x"},
		{token.DocCommentWhitespace, " "},
		{token.DocCommentClose, "*/"},
	})
}

func TestDocCommentMultiline(t *testing.T) {
	expectTokens(t, "<?php\n/**\n * @param int $a desc\n */", []want{
		{token.OpenTag, "<?php\n"},
		{token.DocCommentOpen, "/**"},
		{token.DocCommentWhitespace, "\n"},
		{token.DocCommentWhitespace, " "},
		{token.DocCommentStar, "*"},
		{token.DocCommentWhitespace, " "},
		{token.DocCommentTag, "@param"},
		{token.DocCommentWhitespace, " "},
		{token.DocCommentString, "int $a desc"},
		{token.DocCommentWhitespace, "\n"},
		{token.DocCommentWhitespace, " "},
		{token.DocCommentClose, "*/"},
	})
}

func TestPlainComments(t *testing.T) {
	expectTokens(t, "<?php /**/ /* @var Foo */ // x\n# y", []want{
		{token.OpenTag, "<?php "},
		{token.Comment, "/**/"},
		{token.Whitespace, " "},
		{token.Comment, "/* @var Foo */"},
		{token.Whitespace, " "},
		{token.Comment, "// x"},
		{token.Whitespace, "\n"},
		{token.Comment, "# y"},
	})
}

func TestKeywords(t *testing.T) {
	expectTokens(t, "<?php FOREACH ($o->list as $v) Use", []want{
		{token.OpenTag, "<?php "},
		{token.Foreach, "FOREACH"},
		{token.Whitespace, " "},
		{token.OpenParenthesis, "("},
		{token.Variable, "$o"},
		{token.ObjectOperator, "->"},
		{token.String, "list"},
		{token.Whitespace, " "},
		{token.As, "as"},
		{token.Whitespace, " "},
		{token.Variable, "$v"},
		{token.CloseParenthesis, ")"},
		{token.Whitespace, " "},
		{token.Use, "Use"},
	})
}

func TestKeywordsAsNameSegments(t *testing.T) {
	expectTokens(t, "<?php use App\\List\\Enum; namespace\\f();", []want{
		{token.OpenTag, "<?php "},
		{token.Use, "use"},
		{token.Whitespace, " "},
		{token.String, "App"},
		{token.NsSeparator, "\\"},
		{token.String, "List"},
		{token.NsSeparator, "\\"},
		{token.String, "Enum"},
		{token.Semicolon, ";"},
		{token.Whitespace, " "},
		{token.String, "namespace"},
		{token.NsSeparator, "\\"},
		{token.String, "f"},
		{token.OpenParenthesis, "("},
		{token.CloseParenthesis, ")"},
		{token.Semicolon, ";"},
	})
}

func TestOperatorsLongestMatch(t *testing.T) {
	expectTokens(t, "<?php $a?->b ??= $c <=> ...$d::E", []want{
		{token.OpenTag, "<?php "},
		{token.Variable, "$a"},
		{token.NullsafeObjectOperator, "?->"},
		{token.String, "b"},
		{token.Whitespace, " "},
		{token.Operator, "??="},
		{token.Whitespace, " "},
		{token.Variable, "$c"},
		{token.Whitespace, " "},
		{token.Operator, "<=>"},
		{token.Whitespace, " "},
		{token.Ellipsis, "..."},
		{token.Variable, "$d"},
		{token.DoubleColon, "::"},
		{token.String, "E"},
	})
}

func TestInlineHTMLAndTags(t *testing.T) {
	expectTokens(t, "<b><?php echo 1; ?>\n<i><?= $x ?>", []want{
		{token.InlineHTML, "<b>"},
		{token.OpenTag, "<?php "},
		{token.Echo, "echo"},
		{token.Whitespace, " "},
		{token.LNumber, "1"},
		{token.Semicolon, ";"},
		{token.Whitespace, " "},
		{token.CloseTag, "?>\n"},
		{token.InlineHTML, "<i>"},
		{token.OpenTagWithEcho, "<?="},
		{token.Whitespace, " "},
		{token.Variable, "$x"},
		{token.Whitespace, " "},
		{token.CloseTag, "?>"},
	})
}

func TestAttributeAndNames(t *testing.T) {
	expectTokens(t, "<?php #[A\\B]", []want{
		{token.OpenTag, "<?php "},
		{token.AttributeOpen, "#["},
		{token.String, "A"},
		{token.NsSeparator, "\\"},
		{token.String, "B"},
		{token.AttributeClose, "]"},
	})
}

func TestHeredoc(t *testing.T) {
	expectTokens(t, "<?php $a = <<<\"EOT\"\nx\n  EOT;", []want{
		{token.OpenTag, "<?php "},
		{token.Variable, "$a"},
		{token.Whitespace, " "},
		{token.Equal, "="},
		{token.Whitespace, " "},
		{token.Heredoc, "<<<\"EOT\"\nx\n  EOT"},
		{token.Semicolon, ";"},
	})
}

func TestNumbers(t *testing.T) {
	cases := map[string]token.Kind{
		"0":      token.LNumber,
		"1_000":  token.LNumber,
		"0x1F":   token.LNumber,
		"0b101":  token.LNumber,
		"1.5":    token.DNumber,
		".5":     token.DNumber,
		"1e10":   token.DNumber,
		"2.0E-3": token.DNumber,
	}
	for in, kind := range cases {
		toks := lex(t, "<?php "+in)
		if len(toks) != 2 || toks[1].Kind != kind || toks[1].Text != in {
			t.Errorf("%q: got %s", in, tokensToString(toks))
		}
	}
}

func TestLinesAndColumns(t *testing.T) {
	toks := lex(t, "<?php\n\n  $a = 1;\n/* x\ny */ $b;")
	find := func(text string) token.Token {
		for _, tok := range toks {
			if tok.Text == text {
				return tok
			}
		}
		t.Fatalf("token %q not found in %s", text, tokensToString(toks))
		return token.Token{}
	}
	if a := find("$a"); a.Line != 3 || a.Col != 3 {
		t.Fatalf("$a at %d:%d", a.Line, a.Col)
	}
	if c := find("/* x\ny */"); c.Line != 4 || c.EndLine() != 5 {
		t.Fatalf("comment lines %d..%d", c.Line, c.EndLine())
	}
	if b := find("$b"); b.Line != 5 || b.Col != 6 {
		t.Fatalf("$b at %d:%d", b.Line, b.Col)
	}
	for _, tok := range toks {
		if tok.Kind == token.Whitespace && strings.Contains(strings.TrimSuffix(tok.Text, "\n"), "\n") {
			t.Fatalf("whitespace token spans lines: %q", tok.Text)
		}
	}
}

func TestLexErrors(t *testing.T) {
	cases := []struct {
		input  string
		offset uint32
	}{
		{"<?php $a = 'abc", 11},
		{"<?php $a = \"abc", 11},
		{"<?php /* open", 6},
		{"<?php /** open", 14},
		{"<?php <<<EOT\nbody\n", 6},
		{"<?php \x00", 6},
	}
	for _, tc := range cases {
		le := lexErr(t, tc.input)
		if le.Offset != tc.offset {
			t.Errorf("%q: expected offset %d, got %d (%v)", tc.input, tc.offset, le.Offset, le)
		}
	}
}
