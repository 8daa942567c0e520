package fix

// OpKind is one of the primitive edit operations.
type OpKind uint8

const (
	OpReplace OpKind = iota
	OpRemove
	OpInsertBefore
	OpInsertAfter
)

func (k OpKind) String() string {
	switch k {
	case OpReplace:
		return "replace"
	case OpRemove:
		return "remove"
	case OpInsertBefore:
		return "insert-before"
	case OpInsertAfter:
		return "insert-after"
	default:
		return "unknown"
	}
}

// Op is a staged edit against one token of the pass snapshot.
type Op struct {
	Kind   OpKind
	Target int
	Text   string
}

// Replace sets the text of token i.
func Replace(i int, text string) Op { return Op{Kind: OpReplace, Target: i, Text: text} }

// Remove blanks token i.
func Remove(i int) Op { return Op{Kind: OpRemove, Target: i} }

// InsertBefore adds text in front of token i.
func InsertBefore(i int, text string) Op { return Op{Kind: OpInsertBefore, Target: i, Text: text} }

// InsertAfter adds text behind token i.
func InsertAfter(i int, text string) Op { return Op{Kind: OpInsertAfter, Target: i, Text: text} }

// RewriteRange blanks every token in [from, to] and puts text before the
// first one. It is how a whole comment or statement is replaced.
func RewriteRange(from, to int, text string) []Op {
	if to < from {
		return nil
	}
	ops := make([]Op, 0, to-from+2)
	for i := from; i <= to; i++ {
		ops = append(ops, Remove(i))
	}
	return append(ops, InsertBefore(from, text))
}

// Apply stages ops in one changeset and commits it.
func Apply(f *Fixer, ops ...Op) error {
	if err := f.BeginChangeset(); err != nil {
		return err
	}
	for _, op := range ops {
		if err := f.Stage(op); err != nil {
			f.Discard()
			return err
		}
	}
	return f.Commit()
}
