package diag

import (
	"phpsniff/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Rule     string
	Code     string
	Message  string
	// Position is the token index the finding refers to, valid for the
	// pass that produced it.
	Position int
	Primary  source.Span
	Line     int
	Col      int
	Fixable  bool
	Notes    []Note
}

// FullCode is the suppression key, e.g. "Namespaces.UseFromSameNamespace.UseFromSameNamespace".
func (d Diagnostic) FullCode() string {
	if d.Rule == "" {
		return d.Code
	}
	return d.Rule + "." + d.Code
}
