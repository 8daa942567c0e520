// Package rules assembles the built-in rule set.
package rules

import (
	"phpsniff/internal/rule"
	"phpsniff/internal/rules/commenting"
	"phpsniff/internal/rules/namespaces"
)

// All returns the built-in rules in run order.
func All() []rule.Rule {
	return []rule.Rule{
		commenting.InlineDocCommentDeclaration{},
		namespaces.UseFromSameNamespace{},
	}
}

// Default returns a registry holding All.
func Default() *rule.Registry {
	reg, err := rule.NewRegistry(All()...)
	if err != nil {
		// names are unique by construction
		panic(err)
	}
	return reg
}

// Names lists the built-in rule names in run order.
func Names() []string {
	return Default().Names()
}
