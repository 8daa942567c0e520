// Package annotation parses doc comment tags (@var, @param, @return,
// @property, @method) into records.
//
// The grammar is line oriented: an annotation is the tag plus the text that
// follows it on the same line. Two orders are accepted for tags carrying a
// variable, "TYPE $name" and "$name TYPE"; only the first is canonical.
// Annotations are built fresh on every call and never cached, since the
// token stream they point into is rebuilt after every fix.
package annotation

import (
	"strings"
)

const (
	TagVar           = "@var"
	TagParam         = "@param"
	TagReturn        = "@return"
	TagProperty      = "@property"
	TagPropertyRead  = "@property-read"
	TagPropertyWrite = "@property-write"
	TagMethod        = "@method"
)

// Annotation is one parsed tag.
type Annotation struct {
	Tag string
	// Position is the index of the DocCommentTag token, or -1 when parsed
	// from a free-standing line.
	Position int
	// Content is the raw text following the tag.
	Content string

	Type        string
	Variable    string // without the leading "$"
	Description string

	ByReference bool // @param &$x
	Variadic    bool // @param ...$x

	Method     string // @method name
	Parameters string // @method parameter list, without parentheses
	Static     bool   // @method static

	Valid bool
	// Reversed is set when the variable was written before the type.
	Reversed bool
	// NeedsReorder marks the reversed form that can be fixed automatically:
	// the type must not contain whitespace.
	NeedsReorder bool
}

// HasVariable reports whether the tag kind carries a variable name.
func HasVariable(tag string) bool {
	switch tag {
	case TagVar, TagParam, TagProperty, TagPropertyRead, TagPropertyWrite:
		return true
	default:
		return false
	}
}

// Known reports whether tag is one the parser understands.
func Known(tag string) bool {
	return HasVariable(tag) || tag == TagReturn || tag == TagMethod
}

// VariableName returns "$name", the form used in source.
func (a Annotation) VariableName() string {
	if a.Variable == "" {
		return ""
	}
	return "$" + a.Variable
}

// Canonical renders the annotation in canonical order. Invalid annotations
// render unchanged.
func (a Annotation) Canonical() string {
	if !a.Valid {
		return strings.TrimSpace(a.Tag + " " + a.Content)
	}
	var sb strings.Builder
	sb.WriteString(a.Tag)
	switch {
	case a.Tag == TagMethod:
		if a.Static {
			sb.WriteString(" static")
		}
		if a.Type != "" {
			sb.WriteString(" " + a.Type)
		}
		sb.WriteString(" " + a.Method + "(" + a.Parameters + ")")
	case a.Tag == TagReturn:
		sb.WriteString(" " + a.Type)
	default:
		sb.WriteString(" " + a.Type + " ")
		if a.ByReference {
			sb.WriteByte('&')
		}
		if a.Variadic {
			sb.WriteString("...")
		}
		sb.WriteString(a.VariableName())
	}
	if a.Description != "" {
		sb.WriteString(" " + a.Description)
	}
	return sb.String()
}
