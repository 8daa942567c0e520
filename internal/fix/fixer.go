// Package fix implements the transactional rewrite engine.
//
// A Fixer works on the immutable token snapshot of one pass. Rules open a
// changeset, stage operations against snapshot indices and commit. Commits
// are all-or-nothing: a changeset with an invalid target applies nothing.
// The first commit that changes text makes the snapshot stale. The driver
// then stops the pass, renders Contents and re-tokenizes before any rule
// runs again, so staged indices never outlive their snapshot.
package fix

import (
	"slices"
	"strings"

	"phpsniff/internal/token"
)

type tokenEdit struct {
	before   string
	replaced bool
	text     string
	after    string
}

type changeset struct {
	ops []Op
	err error // first staging error; poisons the commit
}

// Stats counts what happened to changesets during one pass.
type Stats struct {
	Committed int
	Rejected  int
	Discarded int
	Ops       int
}

// Fixer is the per-pass edit buffer. It is not safe for concurrent use;
// a pass runs on a single goroutine.
type Fixer struct {
	tokens  []token.Token
	edits   map[int]*tokenEdit
	open    *changeset
	stats   Stats
	enabled bool
}

// New creates a fixer over a snapshot.
func New(tokens []token.Token) *Fixer {
	return &Fixer{
		tokens:  tokens,
		edits:   make(map[int]*tokenEdit),
		enabled: true,
	}
}

// NewDisabled creates a fixer for check mode. Every changeset is discarded
// on commit, so a rule that stages edits anyway leaves the source alone.
func NewDisabled(tokens []token.Token) *Fixer {
	f := New(tokens)
	f.enabled = false
	return f
}

// Enabled reports whether commits are applied.
func (f *Fixer) Enabled() bool { return f.enabled }

// BeginChangeset opens a changeset. Only one may be open at a time.
func (f *Fixer) BeginChangeset() error {
	if f.open != nil {
		return ErrChangesetAlreadyOpen
	}
	f.open = &changeset{}
	return nil
}

// InChangeset reports whether a changeset is open.
func (f *Fixer) InChangeset() bool { return f.open != nil }

// Stage validates op against the snapshot and queues it.
func (f *Fixer) Stage(op Op) error {
	if f.open == nil {
		return ErrNoChangeset
	}
	if op.Target < 0 || op.Target >= len(f.tokens) {
		err := &InvalidTargetError{Op: op.Kind, Index: op.Target, Len: len(f.tokens)}
		if f.open.err == nil {
			f.open.err = err
		}
		return err
	}
	f.open.ops = append(f.open.ops, op)
	return nil
}

// ReplaceToken stages a replacement of token i's text.
func (f *Fixer) ReplaceToken(i int, text string) error { return f.Stage(Replace(i, text)) }

// RemoveToken stages blanking token i.
func (f *Fixer) RemoveToken(i int) error { return f.Stage(Remove(i)) }

// AddContentBefore stages text in front of token i.
func (f *Fixer) AddContentBefore(i int, text string) error { return f.Stage(InsertBefore(i, text)) }

// AddContent stages text behind token i.
func (f *Fixer) AddContent(i int, text string) error { return f.Stage(InsertAfter(i, text)) }

// ReplaceRange stages a full rewrite of tokens [from, to].
func (f *Fixer) ReplaceRange(from, to int, text string) error {
	for _, op := range RewriteRange(from, to, text) {
		if err := f.Stage(op); err != nil {
			return err
		}
	}
	return nil
}

// Discard drops the open changeset, if any.
func (f *Fixer) Discard() {
	if f.open != nil {
		f.open = nil
		f.stats.Discarded++
	}
}

// Commit applies the open changeset in target order and closes it.
func (f *Fixer) Commit() error {
	cs := f.open
	if cs == nil {
		return ErrNoChangeset
	}
	f.open = nil

	if cs.err != nil {
		f.stats.Rejected++
		return cs.err
	}
	if !f.enabled {
		f.stats.Discarded++
		return nil
	}
	if f.Changed() && len(cs.ops) > 0 {
		f.stats.Rejected++
		return &ConflictError{Index: cs.ops[0].Target}
	}

	ops := slices.Clone(cs.ops)
	slices.SortStableFunc(ops, func(a, b Op) int { return a.Target - b.Target })
	for _, op := range ops {
		e := f.edits[op.Target]
		if e == nil {
			e = &tokenEdit{}
			f.edits[op.Target] = e
		}
		switch op.Kind {
		case OpReplace:
			e.replaced, e.text = true, op.Text
		case OpRemove:
			e.replaced, e.text = true, ""
		case OpInsertBefore:
			e.before += op.Text
		case OpInsertAfter:
			e.after += op.Text
		}
	}
	if len(ops) > 0 {
		f.stats.Committed++
		f.stats.Ops += len(ops)
	}
	return nil
}

// Changed reports whether a commit altered the snapshot. Once it has, the
// snapshot is stale and every further commit is rejected.
func (f *Fixer) Changed() bool { return len(f.edits) > 0 }

// Stats returns the counters for this pass.
func (f *Fixer) Stats() Stats { return f.stats }

// TokenContent returns the current text of token i with committed edits.
func (f *Fixer) TokenContent(i int) string {
	if i < 0 || i >= len(f.tokens) {
		return ""
	}
	e := f.edits[i]
	if e == nil {
		return f.tokens[i].Text
	}
	text := f.tokens[i].Text
	if e.replaced {
		text = e.text
	}
	return e.before + text + e.after
}

// Contents renders the snapshot with every committed edit applied.
func (f *Fixer) Contents() string {
	var sb strings.Builder
	for i := range f.tokens {
		sb.WriteString(f.TokenContent(i))
	}
	return sb.String()
}
