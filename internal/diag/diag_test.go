package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(d Diagnostic, line, col int) Diagnostic {
	d.Line, d.Col = line, col
	return d
}

func TestFullCode(t *testing.T) {
	d := NewError("Commenting.InlineDocCommentDeclaration", "MissingVariable", 3, "msg")
	assert.Equal(t, "Commenting.InlineDocCommentDeclaration.MissingVariable", d.FullCode())
	assert.Equal(t, "Bare", Diagnostic{Code: "Bare"}.FullCode())
}

func TestBagLimitAndTruncation(t *testing.T) {
	b := NewBag(2)
	require.True(t, b.Add(NewError("R", "A", 1, "a")))
	require.True(t, b.Add(NewError("R", "B", 2, "b")))
	assert.False(t, b.Add(NewError("R", "C", 3, "c")))
	assert.True(t, b.Truncated())
	assert.Equal(t, 2, b.Len())
	assert.True(t, b.HasErrors())
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(0)
	b.Add(at(NewError("R", "B", 9, "second"), 2, 1))
	b.Add(at(NewError("R", "A", 1, "first"), 1, 5))
	b.Add(at(NewError("R", "B", 9, "second"), 2, 1))
	b.Add(at(New(SevWarning, "R", "W", 1, "warn"), 1, 5))
	b.Sort()
	b.Dedup()

	items := b.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "A", items[0].Code)
	assert.Equal(t, "W", items[1].Code)
	assert.Equal(t, "B", items[2].Code)
}

func TestBagFixableCount(t *testing.T) {
	b := NewBag(0)
	d := NewError("R", "A", 0, "x")
	d.Fixable = true
	b.Add(d)
	b.Add(NewError("R", "B", 0, "y"))
	assert.Equal(t, 1, b.Fixable())
}

func TestSuppressReporter(t *testing.T) {
	bag := NewBag(0)
	r := NewSuppressReporter(BagReporter{Bag: bag}, []string{
		"Namespaces.UseFromSameNamespace",
		"Commenting.InlineDocCommentDeclaration.NoAssignment",
	})
	r.Report(NewError("Namespaces.UseFromSameNamespace", "UseFromSameNamespace", 0, "x"))
	r.Report(NewError("Commenting.InlineDocCommentDeclaration", "NoAssignment", 0, "x"))
	r.Report(NewError("Commenting.InlineDocCommentDeclaration", "MissingVariable", 0, "x"))
	require.Equal(t, 1, bag.Len())
	assert.Equal(t, "MissingVariable", bag.Items()[0].Code)
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	d := NewError("R", "A", 4, "same")
	r.Report(d)
	r.Report(d)
	r.Report(NewError("R", "A", 5, "same"))
	assert.Equal(t, 2, bag.Len())
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	b := NewReportBuilder(BagReporter{Bag: bag}, NewError("R", "A", 0, "x")).Fixable().WithNote("n")
	b.Emit()
	b.Emit()
	require.Equal(t, 1, bag.Len())
	assert.True(t, bag.Items()[0].Fixable)
	assert.Len(t, bag.Items()[0].Notes, 1)
}

func TestSeverityText(t *testing.T) {
	txt, err := SevWarning.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "warning", string(txt))

	var s Severity
	require.NoError(t, s.UnmarshalText([]byte("ERROR")))
	assert.Equal(t, SevError, s)
	assert.Error(t, s.UnmarshalText([]byte("fatal")))
}

func TestFormatGolden(t *testing.T) {
	a := at(NewError("R", "B", 7, "line\ntwo"), 3, 2)
	a.Fixable = true
	b := at(NewError("R", "A", 1, "first"), 1, 1)
	got := FormatGolden("./src/a.php", []Diagnostic{a, b})
	want := "error R.A src/a.php:1:1 first\n" +
		"error R.B[fixable] src/a.php:3:2 line two"
	assert.Equal(t, want, got)
}
