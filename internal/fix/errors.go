package fix

import (
	"errors"
	"fmt"
)

var (
	// ErrChangesetAlreadyOpen is returned by BeginChangeset while another changeset is open.
	ErrChangesetAlreadyOpen = errors.New("fix: changeset already open")
	// ErrNoChangeset is returned when staging or committing without an open changeset.
	ErrNoChangeset = errors.New("fix: no changeset open")
)

// InvalidTargetError reports an operation aimed outside the token stream.
// It is raised at stage time and poisons the open changeset.
type InvalidTargetError struct {
	Op    OpKind
	Index int
	Len   int
}

func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("fix: %s target %d out of range [0, %d)", e.Op, e.Index, e.Len)
}

// ConflictError reports a changeset committed against a snapshot that an
// earlier changeset already rewrote. Its indices are stale, so nothing is
// applied; the rule gets another chance on freshly lexed tokens.
type ConflictError struct {
	Index int // first staged target
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("fix: token %d refers to a snapshot that was already rewritten", e.Index)
}
