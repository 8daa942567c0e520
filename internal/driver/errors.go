package driver

import (
	"errors"
	"fmt"

	"phpsniff/internal/fix"
	"phpsniff/internal/index"
	"phpsniff/internal/lexer"
)

// ErrChangesetLeftOpen is reported when a rule returns without committing
// or discarding its changeset.
var ErrChangesetLeftOpen = errors.New("rule left a changeset open")

// FixDidNotConvergeError is returned when every allowed pass still changed
// the file.
type FixDidNotConvergeError struct {
	Path   string
	Passes int
}

func (e *FixDidNotConvergeError) Error() string {
	return fmt.Sprintf("%s: fixes did not converge after %d passes", e.Path, e.Passes)
}

// RuleError wraps a contract violation raised while a rule ran.
type RuleError struct {
	Rule string
	Pos  int
	Err  error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %s at token %d: %v", e.Rule, e.Pos, e.Err)
}

func (e *RuleError) Unwrap() error { return e.Err }

// FileError attaches the path to a failure while processing one file.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string { return e.Path + ": " + e.Err.Error() }

func (e *FileError) Unwrap() error { return e.Err }

// IsToolFatal reports whether err stopped a file because its input could
// not be processed: it does not lex, its brackets do not match, or its
// fixes never settle. These are tool failures, not style findings.
func IsToolFatal(err error) bool {
	var (
		lex       *lexer.LexError
		malformed *index.MalformedStructureError
		diverged  *FixDidNotConvergeError
	)
	return errors.As(err, &lex) || errors.As(err, &malformed) || errors.As(err, &diverged)
}

// IsContractError reports whether err means a rule misused the core API:
// an index out of range, a partner lookup on a plain token, a bad fix
// target or a changeset left in the wrong state.
func IsContractError(err error) bool {
	var (
		oor    *index.OutOfRangeError
		notStr *index.NotStructuralError
		target *fix.InvalidTargetError
	)
	switch {
	case errors.As(err, &oor), errors.As(err, &notStr), errors.As(err, &target):
		return true
	case errors.Is(err, fix.ErrChangesetAlreadyOpen), errors.Is(err, fix.ErrNoChangeset), errors.Is(err, ErrChangesetLeftOpen):
		return true
	}
	return false
}
