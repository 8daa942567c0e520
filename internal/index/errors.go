package index

import (
	"fmt"

	"phpsniff/internal/token"
)

// OutOfRangeError reports a position outside [0, Len).
type OutOfRangeError struct {
	Index int
	Len   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("token index %d out of range [0, %d)", e.Index, e.Len)
}

// NotStructuralError reports a partner lookup on a token that has no partner.
type NotStructuralError struct {
	Index int
	Kind  token.Kind
}

func (e *NotStructuralError) Error() string {
	return fmt.Sprintf("token %d (%s) has no structural partner", e.Index, e.Kind)
}

// MalformedStructureError reports an unmatched or crossing opener/closer.
// The file cannot be analysed.
type MalformedStructureError struct {
	Index  int
	Kind   token.Kind
	Line   int
	Reason string
}

func (e *MalformedStructureError) Error() string {
	return fmt.Sprintf("malformed structure at token %d (%s, line %d): %s", e.Index, e.Kind, e.Line, e.Reason)
}
