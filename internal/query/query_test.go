package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phpsniff/internal/index"
	"phpsniff/internal/lexer"
	"phpsniff/internal/query"
	"phpsniff/internal/source"
	"phpsniff/internal/token"
)

const sample = `<?php
namespace App;

/** @var Foo $x */
$x = foo($a, [1, 2]); // trailing

$y;
use A\B as C;
`

func build(t *testing.T, src string) *index.Index {
	t.Helper()
	fs := source.NewFileSet()
	toks, err := lexer.Tokenize(fs.Get(fs.AddVirtual("q.php", []byte(src))), lexer.Options{})
	require.NoError(t, err)
	idx, err := index.Build(toks)
	require.NoError(t, err)
	return idx
}

func pos(t *testing.T, idx *index.Index, text string) int {
	t.Helper()
	for i, tok := range idx.Tokens() {
		if tok.Text == text {
			return i
		}
	}
	t.Fatalf("token %q not found", text)
	return -1
}

func TestFindNextAndBounds(t *testing.T) {
	idx := build(t, sample)
	vars := token.NewSet(token.Variable)

	i, ok := query.FindNext(idx, vars, 0, query.NoLimit)
	require.True(t, ok)
	assert.Equal(t, "$x", idx.Text(i))

	j, ok := query.FindNext(idx, vars, i+1, query.NoLimit)
	require.True(t, ok)
	assert.Equal(t, "$a", idx.Text(j))

	_, ok = query.FindNext(idx, vars, i+1, j)
	assert.False(t, ok, "upper bound is exclusive")

	_, ok = query.FindNext(idx, vars, idx.Len()+5, query.NoLimit)
	assert.False(t, ok)

	k, ok := query.FindNextContent(idx, token.Variable, "$y", 0, query.NoLimit)
	require.True(t, ok)
	assert.Equal(t, pos(t, idx, "$y"), k)

	_, ok = query.FindNextContent(idx, token.Variable, "$zzz", 0, query.NoLimit)
	assert.False(t, ok)
}

func TestFindPrevious(t *testing.T) {
	idx := build(t, sample)
	y := pos(t, idx, "$y")

	i, ok := query.FindPrevious(idx, token.NewSet(token.Namespace), y, query.NoLimit)
	require.True(t, ok)
	assert.Equal(t, token.Namespace, idx.Kind(i))

	_, ok = query.FindPrevious(idx, token.NewSet(token.Namespace), y, i+1)
	assert.False(t, ok, "lower bound is inclusive")

	p, ok := query.FindPreviousEffective(idx, y-1)
	require.True(t, ok)
	assert.Equal(t, token.Semicolon, idx.Kind(p), "comments are skipped")
}

func TestFindEffective(t *testing.T) {
	idx := build(t, sample)
	x := pos(t, idx, "$x")

	eq, ok := query.FindNextEffective(idx, x+1)
	require.True(t, ok)
	assert.Equal(t, token.Equal, idx.Kind(eq))

	comment := pos(t, idx, "// trailing")
	next, ok := query.FindNextEffective(idx, comment)
	require.True(t, ok)
	assert.Equal(t, "$y", idx.Text(next))

	prev, ok := query.FindPreviousEffective(idx, next-1)
	require.True(t, ok)
	assert.Equal(t, token.Semicolon, idx.Kind(prev))
}

func TestFindNextLocal(t *testing.T) {
	idx := build(t, sample)
	use := pos(t, idx, "use")
	as, ok := query.FindNextLocal(idx, token.NewSet(token.As), use)
	require.True(t, ok)
	assert.Equal(t, "as", idx.Text(as))

	ns := pos(t, idx, "namespace")
	_, ok = query.FindNextLocal(idx, token.NewSet(token.Variable), ns)
	assert.False(t, ok, "stops at the end of the namespace statement")
}

func TestFindOnAdjacentLines(t *testing.T) {
	idx := build(t, sample)
	open := pos(t, idx, "/**")
	closeTag := pos(t, idx, "*/")

	next, ok := query.FindFirstNonWhitespaceOnNextLine(idx, closeTag)
	require.True(t, ok)
	assert.Equal(t, "$x", idx.Text(next))

	// a blank line separates the doc comment from the namespace line
	_, ok = query.FindFirstNonWhitespaceOnPreviousLine(idx, open)
	assert.False(t, ok)

	// blank lines are skipped going forward
	comment := pos(t, idx, "// trailing")
	next, ok = query.FindFirstNonWhitespaceOnNextLine(idx, comment)
	require.True(t, ok)
	assert.Equal(t, "$y", idx.Text(next))

	y := pos(t, idx, "$y")
	use := pos(t, idx, "use")
	prev, ok := query.FindFirstNonWhitespaceOnPreviousLine(idx, use)
	require.True(t, ok)
	assert.Equal(t, y, prev)

	_, ok = query.FindFirstNonWhitespaceOnNextLine(idx, -1)
	assert.False(t, ok)
}

func TestPreviousLineReturnsFirstToken(t *testing.T) {
	idx := build(t, "<?php\n  $a = 1; $b = 2;\n/** @var int $a */\n")
	prev, ok := query.FindFirstNonWhitespaceOnPreviousLine(idx, pos(t, idx, "/**"))
	require.True(t, ok)
	assert.Equal(t, "$a", idx.Text(prev))
}

func TestFindEndOfStatement(t *testing.T) {
	idx := build(t, sample)
	x := pos(t, idx, "$x")
	end, ok := query.FindEndOfStatement(idx, x)
	require.True(t, ok)
	assert.Equal(t, token.Semicolon, idx.Kind(end))
	assert.Equal(t, "// trailing", idx.Text(end+2))

	block := build(t, "<?php if (1) { $a = [1] }")
	a := pos(t, block, "$a")
	end, ok = query.FindEndOfStatement(block, a)
	require.True(t, ok)
	assert.Equal(t, token.CloseShortArray, block.Kind(end))
}

func TestContent(t *testing.T) {
	idx := build(t, sample)
	x := pos(t, idx, "$x")
	end, _ := query.FindEndOfStatement(idx, x)
	assert.Equal(t, "$x = foo($a, [1, 2]);", query.Content(idx, x, end))
	assert.Equal(t, sample, query.Content(idx, -3, idx.Len()+3))
	assert.Equal(t, "", query.Content(idx, 5, 4))
}
