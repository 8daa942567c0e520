package namespaces_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phpsniff/internal/diag"
	"phpsniff/internal/driver"
	"phpsniff/internal/rule"
	"phpsniff/internal/rules/namespaces"
)

func run(t *testing.T, mode driver.Mode, src string) *driver.FileResult {
	t.Helper()
	reg, err := rule.NewRegistry(namespaces.UseFromSameNamespace{})
	require.NoError(t, err)
	res, err := driver.ProcessFile(context.Background(), "test.php", []byte(src), driver.Options{Mode: mode, Rules: reg})
	require.NoError(t, err)
	return res
}

func messages(diags []diag.Diagnostic) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Message)
	}
	return out
}

func TestReportsAndRemovesSameNamespaceUse(t *testing.T) {
	src := "<?php\nnamespace Foo;\n\nuse Foo\\Bar;\nuse Other\\Baz;\n\nclass A {}\n"
	res := run(t, driver.ModeCheck, src)
	require.Len(t, res.Diagnostics, 1)
	d := res.Diagnostics[0]
	assert.Equal(t, "Namespaces.UseFromSameNamespace.UseFromSameNamespace", d.FullCode())
	assert.Equal(t, "Use Foo\\Bar is from the same namespace – that is prohibited.", d.Message)
	assert.Equal(t, 4, d.Line)
	assert.True(t, d.Fixable)

	res = run(t, driver.ModeFix, src)
	assert.Equal(t, "<?php\nnamespace Foo;\n\nuse Other\\Baz;\n\nclass A {}\n", string(res.Final))
	assert.Empty(t, res.Diagnostics)
	assert.Equal(t, 2, res.Passes)

	again := run(t, driver.ModeFix, string(res.Final))
	assert.Equal(t, string(res.Final), string(again.Final))
	assert.Equal(t, 0, again.Fixes)
}

func TestUseFromSameNamespace(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"sub-namespace", "<?php\nnamespace Foo;\nuse Foo\\Bar\\Baz;\n", nil},
		{"aliased", "<?php\nnamespace Foo;\nuse Foo\\Bar as Baz;\n", nil},
		{"leading separator", "<?php\nnamespace Foo;\nuse \\Foo\\Bar;\n",
			[]string{"Use Foo\\Bar is from the same namespace – that is prohibited."}},
		{"name prefix only", "<?php\nnamespace Foo;\nuse FooBar\\Baz;\n", nil},
		{"global namespace", "<?php\nuse Bar;\n",
			[]string{"Use Bar is from the same namespace – that is prohibited."}},
		{"global namespace qualified", "<?php\nuse Foo\\Bar;\n", nil},
		{"closure use", "<?php\nnamespace Foo;\n$f = function () use ($x) { return $x; };\n", nil},
		{"trait use", "<?php\nnamespace Foo;\nclass A {\n\tuse Foo\\T;\n}\n", nil},
		{"trait use in anonymous class", "<?php\nnamespace Foo;\n$a = new class(1) extends B {\n\tuse Foo\\T;\n};\n", nil},
		{"group use", "<?php\nnamespace Foo;\nuse Foo\\{Bar, Baz};\n", nil},
		{"second namespace", "<?php\nnamespace A;\nuse A\\X;\nnamespace B;\nuse A\\Y;\n",
			[]string{"Use A\\X is from the same namespace – that is prohibited."}},
		{"braced namespace", "<?php\nnamespace Foo {\n\tuse Foo\\Bar;\n}\n",
			[]string{"Use Foo\\Bar is from the same namespace – that is prohibited."}},
		{"keyword segment", "<?php\nnamespace App\\List;\nuse App\\List\\Item;\n",
			[]string{"Use App\\List\\Item is from the same namespace – that is prohibited."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := messages(run(t, driver.ModeCheck, tt.src).Diagnostics)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBracedNamespaceFix(t *testing.T) {
	res := run(t, driver.ModeFix, "<?php\nnamespace Foo {\n\tuse Foo\\Bar;\n\tuse Baz\\Qux;\n}\n")
	assert.Equal(t, "<?php\nnamespace Foo {\n\t\tuse Baz\\Qux;\n}\n", string(res.Final))
}
