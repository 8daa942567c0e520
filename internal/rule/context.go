package rule

import (
	"context"
	"errors"
	"fmt"

	"phpsniff/internal/diag"
	"phpsniff/internal/fix"
	"phpsniff/internal/index"
	"phpsniff/internal/trace"
)

// Context is what a rule sees during one pass over one file.
type Context struct {
	Path  string
	Index *index.Index
	Fixer *fix.Fixer

	ctx      context.Context
	reporter diag.Reporter
	rule     string
	span     uint64
	counts   Counts
}

// Counts tallies what rules did during one pass.
type Counts struct {
	Errors   int
	Fixable  int
	Applied  int
	Rejected int
}

// NewContext binds a pass snapshot. reporter may be nil.
func NewContext(ctx context.Context, path string, idx *index.Index, fixer *fix.Fixer, reporter diag.Reporter) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Context{
		ctx:      ctx,
		Path:     path,
		Index:    idx,
		Fixer:    fixer,
		reporter: reporter,
	}
}

// Enter switches the context to rule r; span is the trace span the rule
// runs under.
func (c *Context) Enter(r Rule, span uint64) {
	c.rule = r.Name()
	c.span = span
}

// Ctx returns the context the pass runs under.
func (c *Context) Ctx() context.Context { return c.ctx }

// Rule returns the name of the rule currently running.
func (c *Context) Rule() string { return c.rule }

// FixMode reports whether a fix staged now will be applied. It turns false
// once a commit has rewritten the pass snapshot.
func (c *Context) FixMode() bool {
	return c.Fixer != nil && c.Fixer.Enabled() && !c.Fixer.Changed()
}

// Counts returns the tallies for this pass.
func (c *Context) Counts() Counts { return c.counts }

// AddError reports a non-fixable finding at token pos.
func (c *Context) AddError(code string, pos int, msg string) {
	c.report(code, pos, msg, false)
}

// AddFixableError reports a fixable finding at token pos and tells the
// rule whether to go on and stage its fix.
func (c *Context) AddFixableError(code string, pos int, msg string) bool {
	c.report(code, pos, msg, true)
	return c.FixMode()
}

func (c *Context) report(code string, pos int, msg string, fixable bool) {
	tok := c.Index.At(pos)
	d := diag.NewError(c.rule, code, pos, msg)
	d.Primary = tok.Span
	d.Line, d.Col = tok.Line, tok.Col
	d.Fixable = fixable

	c.counts.Errors++
	if fixable {
		c.counts.Fixable++
	}
	if c.reporter != nil {
		c.reporter.Report(d)
	}
}

// ApplyFix stages ops as one changeset and commits it. After a commit the
// snapshot is stale: the driver ends the pass and re-tokenizes. A changeset
// committed against a stale snapshot is dropped and traced, and the rule
// gets another chance on fresh tokens. Any other failure is a contract
// error and is returned.
func (c *Context) ApplyFix(ops ...fix.Op) error {
	err := fix.Apply(c.Fixer, ops...)
	tr := trace.FromContext(c.ctx)
	var conflict *fix.ConflictError
	switch {
	case err == nil:
		if !c.Fixer.Enabled() || len(ops) == 0 {
			return nil
		}
		c.counts.Applied++
		trace.Point(tr, trace.ScopeFix, "commit:"+c.rule, c.span, describe(ops))
		return nil
	case errors.As(err, &conflict):
		c.counts.Rejected++
		trace.Point(tr, trace.ScopeFix, "reject:"+c.rule, c.span, err.Error())
		return nil
	default:
		trace.Failure(tr, trace.ScopeFix, "fix:"+c.rule, c.span, err)
		return err
	}
}

func describe(ops []fix.Op) string {
	if len(ops) == 0 {
		return "empty"
	}
	first, last := ops[0].Target, ops[0].Target
	for _, op := range ops[1:] {
		first = min(first, op.Target)
		last = max(last, op.Target)
	}
	return fmt.Sprintf("%d ops on tokens %d..%d", len(ops), first, last)
}
