package commenting_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phpsniff/internal/diag"
	"phpsniff/internal/driver"
	"phpsniff/internal/rule"
	"phpsniff/internal/rules/commenting"
)

func options(t *testing.T, mode driver.Mode) driver.Options {
	t.Helper()
	reg, err := rule.NewRegistry(commenting.InlineDocCommentDeclaration{})
	require.NoError(t, err)
	return driver.Options{Mode: mode, Rules: reg}
}

func check(t *testing.T, src string) []diag.Diagnostic {
	t.Helper()
	res, err := driver.ProcessFile(context.Background(), "test.php", []byte(src), options(t, driver.ModeCheck))
	require.NoError(t, err)
	require.Equal(t, 1, res.Passes)
	assert.Equal(t, src, string(res.Final), "check mode never rewrites")
	return res.Diagnostics
}

func fixed(t *testing.T, src string) *driver.FileResult {
	t.Helper()
	res, err := driver.ProcessFile(context.Background(), "test.php", []byte(src), options(t, driver.ModeFix))
	require.NoError(t, err)

	again, err := driver.ProcessFile(context.Background(), "test.php", res.Final, options(t, driver.ModeFix))
	require.NoError(t, err)
	assert.Equal(t, string(res.Final), string(again.Final), "fixing is idempotent")
	assert.Equal(t, 0, again.Fixes)
	return res
}

func codes(diags []diag.Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Code
	}
	return out
}

func TestPlainCommentWithVar(t *testing.T) {
	src := "<?php\n/* @var Foo */\n$a = 1;\n"
	diags := check(t, src)
	require.Equal(t, []string{commenting.CodeInvalidCommentType, commenting.CodeInvalidFormat}, codes(diags))
	assert.True(t, diags[0].Fixable)
	assert.Equal(t, "Invalid comment type /* */ for inline documentation comment, use /** */.", diags[0].Message)
	assert.False(t, diags[1].Fixable)
	assert.Equal(t, `Invalid inline documentation comment format "@var Foo", expected "@var type $variable".`, diags[1].Message)
	assert.Equal(t, 2, diags[0].Line)

	res := fixed(t, src)
	assert.Equal(t, "<?php\n/** @var Foo */\n$a = 1;\n", string(res.Final))
	assert.Equal(t, 2, res.Passes)
	assert.Equal(t, 1, res.Fixes)
	assert.Equal(t, []string{commenting.CodeInvalidFormat}, codes(res.Diagnostics))
}

func TestReversedOrderIsFixable(t *testing.T) {
	src := "<?php\n/** @var $x Foo */\n$x = 1;\n"
	diags := check(t, src)
	require.Len(t, diags, 1)
	assert.Equal(t, commenting.CodeInvalidFormat, diags[0].Code)
	assert.True(t, diags[0].Fixable)
	assert.Equal(t, `Invalid inline documentation comment format "@var $x Foo", expected "@var Foo $x".`, diags[0].Message)

	res := fixed(t, src)
	assert.Equal(t, "<?php\n/** @var Foo $x */\n$x = 1;\n", string(res.Final))
	assert.Empty(t, res.Diagnostics)
}

func TestReversedOrderKeepsDescription(t *testing.T) {
	res := fixed(t, "<?php\n/** @var $x Foo|Bar the thing */\n$x = 1;\n")
	assert.Equal(t, "<?php\n/** @var Foo|Bar $x the thing */\n$x = 1;\n", string(res.Final))
}

func TestReversedUnionWithSpacesIsNotFixable(t *testing.T) {
	diags := check(t, "<?php\n/** @var $x Foo | Bar */\n$x = 1;\n")
	require.Len(t, diags, 1)
	assert.Equal(t, commenting.CodeInvalidFormat, diags[0].Code)
	assert.False(t, diags[0].Fixable)
}

func TestPlainReversedCommentNeedsTwoFixes(t *testing.T) {
	res := fixed(t, "<?php\n/* @var $x Foo */\n$x = 1;\n")
	assert.Equal(t, "<?php\n/** @var Foo $x */\n$x = 1;\n", string(res.Final))
	assert.Equal(t, 3, res.Passes)
	assert.Equal(t, 2, res.Fixes)
	assert.Zero(t, res.Rejected, "the reorder waits for the re-lexed comment instead of colliding")
	assert.Empty(t, res.Diagnostics)
}

func TestVariableChecks(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
		msg  string
	}{
		{"assignment below", "<?php\n/** @var Foo $x */\n$x = new Foo();\n", nil, ""},
		{"assignment above", "<?php\n$x = foo();\n/** @var Foo $x */\n", nil, ""},
		{"no code around", "<?php\n/** @var Foo $x */\necho 1;\n", []string{commenting.CodeMissingVariable},
			"Missing variable $x before or after the documentation comment."},
		{"no assignment", "<?php\n/** @var Foo $x */\n$x;\n", []string{commenting.CodeNoAssignment},
			"No assignment to $x variable before or after the documentation comment."},
		{"other variable", "<?php\n/** @var Foo $x */\n$y = 1;\n", []string{commenting.CodeMissingVariable}, ""},
		{"compound assignment", "<?php\n/** @var int $x */\n$x += 1;\n", []string{commenting.CodeNoAssignment}, ""},
		{"foreach value", "<?php\n/** @var Foo $v */\nforeach ($list as $k => $v) {}\n", nil, ""},
		{"foreach subject only", "<?php\n/** @var Foo $list */\nforeach ($list as $v) {}\n", []string{commenting.CodeMissingVariable}, ""},
		{"list", "<?php\n/** @var Foo $a */\nlist($a, $b) = $pair;\n", nil, ""},
		{"list without it", "<?php\n/** @var Foo $c */\nlist($a, $b) = $pair;\n", []string{commenting.CodeMissingVariable}, ""},
		{"short array", "<?php\n/** @var Foo $b */\n[$a, $b] = $pair;\n", nil, ""},
		{"short array without assignment", "<?php\n/** @var Foo $a */\n[$a, $b];\n", []string{commenting.CodeNoAssignment}, ""},
		{"short array without it", "<?php\n/** @var Foo $c */\n[$a, $b] = $pair;\n", []string{commenting.CodeMissingVariable}, ""},
		{"while assignment", "<?php\n/** @var Foo $row */\nwhile ($row = next($rows)) {}\n", nil, ""},
		{"while comparison", "<?php\n/** @var Foo $row */\nwhile ($row) {}\n", []string{commenting.CodeNoAssignment}, ""},
		{"while without it", "<?php\n/** @var Foo $row */\nwhile ($x = 1) {}\n", []string{commenting.CodeMissingVariable}, ""},
		{"multi-line block", "<?php\n/**\n * @var $x Foo\n */\n$x = 1;\n", nil, ""},
		{"no var tag", "<?php\n/** @return Foo */\necho 1;\n", nil, ""},
		{"var without variable", "<?php\n/**\n * @var Foo\n */\necho 1;\n", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := check(t, tt.src)
			got := codes(diags)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
			if tt.msg != "" {
				assert.Equal(t, tt.msg, diags[0].Message)
			}
		})
	}
}

func TestPropertyDocsAreSkipped(t *testing.T) {
	for _, src := range []string{
		"<?php\nclass A {\n\t/** @var $x Foo */\n\tpublic $x;\n}\n",
		"<?php\nclass A {\n\t/* @var Foo */\n\tprotected $x;\n}\n",
		"<?php\nclass A {\n\t/** @var Foo $y */\n\tstatic private $x;\n}\n",
	} {
		assert.Empty(t, check(t, src), src)
	}
}

func TestUnrelatedCommentsAreIgnored(t *testing.T) {
	assert.Empty(t, check(t, "<?php\n/* just a note */\n// @var Foo $x\n$y = 1;\n"))
}
