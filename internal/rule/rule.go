// Package rule defines the contract between the pass driver and the rules
// it runs.
//
// A Rule names the token kinds it listens to. The driver calls Process once
// per matching token, in position order, handing it a Context that bundles
// the pass's index, fixer and diagnostic sink. Rules keep no state between
// calls.
package rule

import (
	"phpsniff/internal/token"
)

// Rule is one check, optionally with an automatic fix.
type Rule interface {
	// Name is the dotted identifier, e.g. "Namespaces.UseFromSameNamespace".
	Name() string
	// Register lists the token kinds that trigger Process.
	Register() []token.Kind
	// Process inspects the token at pos. A returned error is a misuse of
	// the core API and aborts the file.
	Process(ctx *Context, pos int) error
}

// Triggers folds r.Register into a set.
func Triggers(r Rule) token.Set {
	return token.NewSet(r.Register()...)
}
