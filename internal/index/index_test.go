package index_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phpsniff/internal/index"
	"phpsniff/internal/lexer"
	"phpsniff/internal/source"
	"phpsniff/internal/token"
)

func build(t *testing.T, src string) *index.Index {
	t.Helper()
	fs := source.NewFileSet()
	toks, err := lexer.Tokenize(fs.Get(fs.AddVirtual("test.php", []byte(src))), lexer.Options{})
	require.NoError(t, err)
	idx, err := index.Build(toks)
	require.NoError(t, err)
	return idx
}

func find(t *testing.T, idx *index.Index, kind token.Kind, text string) int {
	t.Helper()
	for i, tok := range idx.Tokens() {
		if tok.Kind == kind && (text == "" || tok.Text == text) {
			return i
		}
	}
	t.Fatalf("no %v %q", kind, text)
	return -1
}

func TestPartnersAreSymmetric(t *testing.T) {
	idx := build(t, "<?php\n/** @var int[] $a */\nfunction f($x) { return [$x[0], #[A] fn() => (1)]; }\n")
	pairs := 0
	for i := 0; i < idx.Len(); i++ {
		tok := idx.At(i)
		if !tok.Kind.IsStructural() {
			_, err := idx.PartnerOf(i)
			var ns *index.NotStructuralError
			require.ErrorAs(t, err, &ns)
			assert.Equal(t, i, ns.Index)
			continue
		}
		p, err := idx.PartnerOf(i)
		require.NoError(t, err)
		back, err := idx.PartnerOf(p)
		require.NoError(t, err)
		assert.Equal(t, i, back, "partner of partner")

		f1, o1 := tok.Kind.Structure()
		f2, o2 := idx.At(p).Kind.Structure()
		assert.Equal(t, f1, f2, "same family")
		assert.NotEqual(t, o1, o2, "opener pairs with closer")
		if o1 {
			assert.Less(t, i, p)
			pairs++
		}
	}
	assert.Equal(t, 8, pairs)
}

func TestGetOutOfRange(t *testing.T) {
	idx := build(t, "<?php $a;")
	_, err := idx.Get(idx.Len())
	var oor *index.OutOfRangeError
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, idx.Len(), oor.Index)

	_, err = idx.Get(-1)
	require.ErrorAs(t, err, &oor)

	_, err = idx.PartnerOf(99)
	require.ErrorAs(t, err, &oor)

	assert.Panics(t, func() { idx.At(idx.Len()) })
	assert.Equal(t, token.Invalid, idx.Kind(-5))
	assert.Equal(t, "", idx.Text(100))
}

func TestMalformed(t *testing.T) {
	cases := map[string]token.Kind{
		"<?php foo(;":    token.OpenParenthesis,
		"<?php foo);":    token.CloseParenthesis,
		"<?php [1, 2);":  token.CloseParenthesis,
		"<?php { [ } ]":  token.CloseCurlyBracket,
		"<?php if (1) {": token.OpenCurlyBracket,
	}
	for src, kind := range cases {
		fs := source.NewFileSet()
		toks, err := lexer.Tokenize(fs.Get(fs.AddVirtual("bad.php", []byte(src))), lexer.Options{})
		require.NoError(t, err, src)
		_, err = index.Build(toks)
		var me *index.MalformedStructureError
		require.True(t, errors.As(err, &me), "%q: expected MalformedStructureError, got %v", src, err)
		assert.Equal(t, kind, me.Kind, src)
	}
}

func TestParenthesisOwners(t *testing.T) {
	idx := build(t, "<?php\nforeach ($a as $b) {}\nfunction &g(int $x) {}\n$f = function () use ($y) {};\nlist($c, $d) = $e;\n$z = count($a);\n")

	fe := find(t, idx, token.Foreach, "")
	open, closeP, ok := idx.ParenthesisOf(fe)
	require.True(t, ok)
	assert.Equal(t, token.OpenParenthesis, idx.Kind(open))
	assert.Equal(t, token.CloseParenthesis, idx.Kind(closeP))
	assert.Equal(t, "$a", idx.Text(open+1))

	fn := find(t, idx, token.Function, "")
	open, _, ok = idx.ParenthesisOf(fn)
	require.True(t, ok)
	assert.Equal(t, "int", idx.Text(open+1))

	use := find(t, idx, token.Use, "")
	open, _, ok = idx.ParenthesisOf(use)
	require.True(t, ok)
	assert.Equal(t, "$y", idx.Text(open+1))

	list := find(t, idx, token.List, "")
	_, _, ok = idx.ParenthesisOf(list)
	assert.True(t, ok)

	count := find(t, idx, token.String, "count")
	_, _, ok = idx.ParenthesisOf(count)
	assert.False(t, ok, "a call is not an owner")
}

func TestEnclosing(t *testing.T) {
	idx := build(t, "<?php class A { use T; function f() { $v; } }")
	use := find(t, idx, token.Use, "")
	open, ok := idx.Enclosing(use)
	require.True(t, ok)
	assert.Equal(t, token.OpenCurlyBracket, idx.Kind(open))
	assert.Equal(t, "A", idx.Text(open-2))

	v := find(t, idx, token.Variable, "$v")
	inner, ok := idx.Enclosing(v)
	require.True(t, ok)
	assert.NotEqual(t, open, inner)

	outer, ok := idx.Enclosing(inner)
	require.True(t, ok)
	assert.Equal(t, open, outer)

	closer, err := idx.PartnerOf(open)
	require.NoError(t, err)
	_, ok = idx.Enclosing(closer)
	assert.False(t, ok, "the class closer is at top level")
}
